package game

import "math"

// Step advances the room by one tick: refresh server time, run the orb
// lifecycle, then holder-follow, pickup-or-steal, and scoring, in that fixed
// order. Elapsed time comes from the caller so tests can drive the clock.
func (r *Room) Step(nowMs int64) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	r.NowMs = nowMs
	var dtMs int64
	if r.lastTickMs > 0 && nowMs > r.lastTickMs {
		dtMs = nowMs - r.lastTickMs
	}
	r.lastTickMs = nowMs

	r.evaluateOrbLocked(nowMs)
	if !r.OrbActive {
		r.scoreAccumMs = 0
		return
	}

	r.followHolderLocked(nowMs)
	if r.Orb.HolderSessionID == "" {
		r.tryPickupLocked(nowMs)
	} else {
		r.tryStealLocked(nowMs)
	}
	r.accrueScoreLocked(dtMs)
}

// followHolderLocked slaves the orb to its holder; a stale holder reference
// degrades to a respawn instead of corrupting the tick.
func (r *Room) followHolderLocked(nowMs int64) {
	hid := r.Orb.HolderSessionID
	if hid == "" {
		return
	}
	p := r.Players[hid]
	if p == nil {
		r.respawnOrbLocked(nowMs)
		return
	}
	r.Orb.Pos = Vec3{X: p.Pos.X, Y: p.Pos.Y + OrbCarryOffsetY, Z: p.Pos.Z}
}

// tryPickupLocked gives the orb to the first qualifying player in insertion
// order. Ties resolve to whoever joined first.
func (r *Room) tryPickupLocked(nowMs int64) {
	for _, sid := range r.order {
		p := r.Players[sid]
		if p == nil {
			continue
		}
		if HorizontalDist(p.Pos, r.Orb.Pos) > OrbPickupRadius {
			continue
		}
		if math.Abs(p.Pos.Y-r.Orb.Pos.Y) > OrbPickupVertTol {
			continue
		}
		r.Orb.HolderSessionID = sid
		p.CurrentOrbScore = 0
		r.Orb.LastTransferAtMs = nowMs
		r.Orb.Pos = Vec3{X: p.Pos.X, Y: p.Pos.Y + OrbCarryOffsetY, Z: p.Pos.Z}
		r.record(MatchEvent{Type: "orb_pickup", AtMs: nowMs, Room: r.ID, To: sid})
		return
	}
}

// tryStealLocked transfers the orb to the first other player inside steal
// range once the transfer cooldown has elapsed.
func (r *Room) tryStealLocked(nowMs int64) {
	if nowMs-r.Orb.LastTransferAtMs < r.tuning.StealCooldownMs {
		return
	}
	hid := r.Orb.HolderSessionID
	holder := r.Players[hid]
	if holder == nil {
		r.respawnOrbLocked(nowMs)
		return
	}
	for _, sid := range r.order {
		if sid == hid {
			continue
		}
		p := r.Players[sid]
		if p == nil {
			continue
		}
		if HorizontalDist(p.Pos, holder.Pos) > OrbStealRadius {
			continue
		}
		if math.Abs(p.Pos.Y-holder.Pos.Y) > OrbStealVertTol {
			continue
		}
		holder.CurrentOrbScore = 0
		p.CurrentOrbScore = 0
		r.Orb.HolderSessionID = sid
		r.Orb.LastTransferAtMs = nowMs
		r.Orb.Pos = Vec3{X: p.Pos.X, Y: p.Pos.Y + OrbCarryOffsetY, Z: p.Pos.Z}
		r.record(MatchEvent{Type: "orb_steal", AtMs: nowMs, Room: r.ID, From: hid, To: sid})
		return
	}
}

// accrueScoreLocked awards one point per full second of holding via an
// accumulator carry-over, immune to tick-rate jitter.
func (r *Room) accrueScoreLocked(dtMs int64) {
	r.scoreAccumMs += dtMs
	for r.scoreAccumMs >= OrbScoreIntervalMs {
		if hid := r.Orb.HolderSessionID; hid != "" {
			if p := r.Players[hid]; p != nil {
				p.CurrentOrbScore++
				if p.CurrentOrbScore > p.BestOrbScore {
					p.BestOrbScore = p.CurrentOrbScore
				}
			}
		}
		r.scoreAccumMs -= OrbScoreIntervalMs
	}
}
