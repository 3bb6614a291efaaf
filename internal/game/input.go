package game

// PoseUpdate carries the raw per-field values of a pose message. Fields stay
// untyped because each one is accepted or ignored independently; a malformed
// x must not discard a valid y.
type PoseUpdate struct {
	X        any `json:"x"`
	Y        any `json:"y"`
	Z        any `json:"z"`
	Yaw      any `json:"yaw"`
	Bank     any `json:"bank"`
	Speedbar any `json:"speedbar"`
}

// HandlePose applies each finite numeric field, retains prior values for the
// rest, and coerces speedbar to a boolean. Unknown senders are ignored.
func (r *Room) HandlePose(sessionID string, pose PoseUpdate, nowMs int64) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	p := r.Players[sessionID]
	if p == nil {
		return
	}
	applyFinite(&p.Pos.X, pose.X)
	applyFinite(&p.Pos.Y, pose.Y)
	applyFinite(&p.Pos.Z, pose.Z)
	applyFinite(&p.Yaw, pose.Yaw)
	applyFinite(&p.Bank, pose.Bank)
	p.Speedbar = truthy(pose.Speedbar)
	p.UpdatedAtMs = nowMs
}

// HandleCrash zeroes the holder's running score and respawns the orb. No-op
// unless the sender holds the active orb.
func (r *Room) HandleCrash(sessionID string, nowMs int64) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if !r.OrbActive || r.Orb.HolderSessionID != sessionID {
		return
	}
	if p := r.Players[sessionID]; p != nil {
		p.CurrentOrbScore = 0
	}
	r.respawnOrbLocked(nowMs)
	r.record(MatchEvent{Type: "crash", AtMs: nowMs, Room: r.ID, Session: sessionID})
}

func applyFinite(dst *float64, v any) {
	f, ok := v.(float64)
	if !ok || !isFinite(f) {
		return
	}
	*dst = f
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return false
	}
}
