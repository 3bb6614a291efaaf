package game

import (
	"fmt"
	"math"
	"sort"
)

type thermalCandidate struct {
	x, z   float64
	radius float64
	class  SizeClass
	dist   float64
}

// BuildThermals generates up to ThermalCount non-overlapping thermals from
// seed. The layout (position, radius, size class) is a pure function of the
// seed; only ActivationAtMs depends on the nowMs baseline.
func BuildThermals(seed uint32, nowMs int64) []*Thermal {
	rng := NewRNG(seed)
	thermals := make([]*Thermal, 0, ThermalCount)

	for len(thermals) < ThermalCount {
		cand, ok := drawScoredCandidate(rng, thermals)
		if !ok {
			cand, ok = drawFallbackCandidate(rng, thermals)
		}
		if !ok {
			// Degraded batch: fewer thermals than requested, not an error.
			break
		}
		t := &Thermal{
			ID:              fmt.Sprintf("thermal-%d-%d", seed, len(thermals)),
			SizeClass:       cand.class,
			X:               cand.x,
			Z:               cand.z,
			Radius:          cand.radius,
			GroundY:         0,
			Strength:        strengthFor(cand.class, rng),
			BaseHeight:      rng.Range(ThermalBaseHeightMin, ThermalBaseHeightMax),
			HeightAmplitude: rng.Range(ThermalAmplitudeMin, ThermalAmplitudeMax),
			Phase:           rng.Float() * 2 * math.Pi,
		}
		thermals = append(thermals, t)
	}

	staggerActivations(rng, thermals, nowMs)
	return thermals
}

func drawCandidate(rng *RNG) thermalCandidate {
	angle := rng.Float() * 2 * math.Pi
	// sqrt gives uniform density over the disc instead of clumping at center
	dist := math.Sqrt(rng.Float()) * ThermalFieldRadius
	cand := thermalCandidate{
		x:    dist * math.Cos(angle),
		z:    dist * math.Sin(angle),
		dist: dist,
	}
	if rng.Float() < ThermalSmallChance {
		cand.class = SizeSmall
		cand.radius = rng.Range(ThermalSmallRadiusMin, ThermalSmallRadiusMax)
	} else {
		cand.class = SizeLarge
		cand.radius = rng.Range(ThermalLargeRadiusMin, ThermalLargeRadiusMax)
	}
	return cand
}

func overlapsExisting(cand thermalCandidate, placed []*Thermal) bool {
	for _, t := range placed {
		d := math.Hypot(cand.x-t.X, cand.z-t.Z)
		if d < cand.radius+t.Radius+ThermalMinGap {
			return true
		}
	}
	return false
}

// clearanceTo is the surplus distance beyond the minimum allowed gap to the
// nearest placed thermal, or the field radius when nothing is placed yet.
func clearanceTo(cand thermalCandidate, placed []*Thermal) float64 {
	if len(placed) == 0 {
		return ThermalFieldRadius
	}
	min := math.MaxFloat64
	for _, t := range placed {
		c := math.Hypot(cand.x-t.X, cand.z-t.Z) - (cand.radius + t.Radius + ThermalMinGap)
		if c < min {
			min = c
		}
	}
	return min
}

// drawScoredCandidate draws up to ThermalScoredAttempts candidates and keeps
// the best survivor, scored toward open space and the island edge.
func drawScoredCandidate(rng *RNG, placed []*Thermal) (thermalCandidate, bool) {
	var best thermalCandidate
	bestScore := math.Inf(-1)
	found := false
	for i := 0; i < ThermalScoredAttempts; i++ {
		cand := drawCandidate(rng)
		if overlapsExisting(cand, placed) {
			continue
		}
		edgeBias := cand.dist / ThermalFieldRadius
		score := clearanceTo(cand, placed) + edgeBias*ThermalEdgeBiasWeight
		if score > bestScore {
			best = cand
			bestScore = score
			found = true
		}
	}
	return best, found
}

// drawFallbackCandidate takes the first non-overlapping draw with no scoring.
func drawFallbackCandidate(rng *RNG, placed []*Thermal) (thermalCandidate, bool) {
	for i := 0; i < ThermalFallbackAttempts; i++ {
		cand := drawCandidate(rng)
		if !overlapsExisting(cand, placed) {
			return cand, true
		}
	}
	return thermalCandidate{}, false
}

func strengthFor(class SizeClass, rng *RNG) float64 {
	if class == SizeLarge {
		return rng.Range(ThermalLargeStrengthMin, ThermalLargeStrengthMax)
	}
	return rng.Range(ThermalSmallStrengthMin, ThermalSmallStrengthMax)
}

// staggerActivations spreads activation over [0, ThermalStaggerSpreadMs] so
// thermals turn on in a randomized cadence instead of all at once. Slot
// assignment is permuted by random sort keys, not placement order.
func staggerActivations(rng *RNG, thermals []*Thermal, nowMs int64) {
	n := len(thermals)
	if n == 0 {
		return
	}
	slotMs := float64(ThermalStaggerSpreadMs) / float64(ThermalCount)

	type keyed struct {
		idx int
		key float64
	}
	keys := make([]keyed, n)
	for i := range keys {
		keys[i] = keyed{idx: i, key: rng.Float()}
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a].key < keys[b].key })

	for slot, k := range keys {
		center := (float64(slot) + 0.5) * slotMs
		jitter := (rng.Float()*2 - 1) * ThermalStaggerJitter * slotMs
		delay := Clamp(center+jitter, 0, ThermalStaggerSpreadMs)
		thermals[k.idx].ActivationAtMs = nowMs + int64(delay)
	}
}
