package game

import (
	"fmt"
	"math"
	"testing"
)

func TestBuildThermalsNoOverlap(t *testing.T) {
	for seed := uint32(0); seed < 25; seed++ {
		thermals := BuildThermals(seed, 0)
		for i := 0; i < len(thermals); i++ {
			for j := i + 1; j < len(thermals); j++ {
				a, b := thermals[i], thermals[j]
				d := math.Hypot(a.X-b.X, a.Z-b.Z)
				if d < a.Radius+b.Radius+ThermalMinGap {
					t.Fatalf("seed %d: thermals %d and %d overlap (dist %.2f, need %.2f)",
						seed, i, j, d, a.Radius+b.Radius+ThermalMinGap)
				}
			}
		}
	}
}

func TestBuildThermalsDeterministicLayout(t *testing.T) {
	a := BuildThermals(4242, 1000)
	b := BuildThermals(4242, 55000)
	if len(a) != len(b) {
		t.Fatalf("counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].X != b[i].X || a[i].Z != b[i].Z {
			t.Errorf("thermal %d position differs", i)
		}
		if a[i].Radius != b[i].Radius || a[i].SizeClass != b[i].SizeClass {
			t.Errorf("thermal %d shape differs", i)
		}
		if a[i].Strength != b[i].Strength || a[i].Phase != b[i].Phase {
			t.Errorf("thermal %d dynamics differ", i)
		}
		// activation delay is seed-determined; only the baseline shifts
		if b[i].ActivationAtMs-a[i].ActivationAtMs != 54000 {
			t.Errorf("thermal %d activation delay not baseline-relative", i)
		}
	}
}

func TestBuildThermalsCountAndIDs(t *testing.T) {
	thermals := BuildThermals(77, 0)
	if len(thermals) == 0 || len(thermals) > ThermalCount {
		t.Fatalf("bad thermal count %d", len(thermals))
	}
	for i, th := range thermals {
		want := fmt.Sprintf("thermal-77-%d", i)
		if th.ID != want {
			t.Errorf("thermal %d id %q, want %q", i, th.ID, want)
		}
	}
}

func TestBuildThermalsInsideField(t *testing.T) {
	for seed := uint32(100); seed < 110; seed++ {
		for i, th := range BuildThermals(seed, 0) {
			if d := math.Hypot(th.X, th.Z); d > ThermalFieldRadius {
				t.Errorf("seed %d thermal %d center outside field: %.2f", seed, i, d)
			}
		}
	}
}

func TestBuildThermalsClassRanges(t *testing.T) {
	for _, th := range BuildThermals(9, 0) {
		switch th.SizeClass {
		case SizeSmall:
			if th.Radius < ThermalSmallRadiusMin || th.Radius >= ThermalSmallRadiusMax {
				t.Errorf("small radius out of range: %v", th.Radius)
			}
			if th.Strength < ThermalSmallStrengthMin || th.Strength >= ThermalSmallStrengthMax {
				t.Errorf("small strength out of range: %v", th.Strength)
			}
		case SizeLarge:
			if th.Radius < ThermalLargeRadiusMin || th.Radius >= ThermalLargeRadiusMax {
				t.Errorf("large radius out of range: %v", th.Radius)
			}
			if th.Strength < ThermalLargeStrengthMin || th.Strength >= ThermalLargeStrengthMax {
				t.Errorf("large strength out of range: %v", th.Strength)
			}
		default:
			t.Errorf("unknown size class %q", th.SizeClass)
		}
	}
}

func TestStaggerActivationPermutation(t *testing.T) {
	slotMs := float64(ThermalStaggerSpreadMs) / float64(ThermalCount)
	shuffled := false
	for seed := uint32(0); seed < 50; seed++ {
		thermals := BuildThermals(seed, 0)
		if len(thermals) != ThermalCount {
			continue
		}
		// jitter is under half a slot, so each delay lands inside exactly
		// one slot and the slots must form a permutation
		seen := make(map[int]bool, ThermalCount)
		inPlacementOrder := true
		for i, th := range thermals {
			slot := int(float64(th.ActivationAtMs) / slotMs)
			if slot < 0 || slot >= ThermalCount {
				t.Fatalf("seed %d: thermal %d delay %dms outside any slot", seed, i, th.ActivationAtMs)
			}
			if seen[slot] {
				t.Fatalf("seed %d: slot %d assigned twice", seed, slot)
			}
			seen[slot] = true
			if slot != i {
				inPlacementOrder = false
			}
		}
		if !inPlacementOrder {
			shuffled = true
		}
	}
	if !shuffled {
		t.Fatal("activation slots follow placement order for every seed; expected a random permutation")
	}
}

func TestStaggerActivationWindow(t *testing.T) {
	const now = int64(100000)
	for _, th := range BuildThermals(31, now) {
		delay := th.ActivationAtMs - now
		if delay < 0 || delay > ThermalStaggerSpreadMs {
			t.Errorf("thermal %s activation delay %dms outside [0, %d]",
				th.ID, delay, ThermalStaggerSpreadMs)
		}
	}
}
