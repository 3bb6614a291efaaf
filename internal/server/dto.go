package server

import (
	"ThermalChase/internal/game"
	"ThermalChase/internal/protocol"
)

type playerDTO struct {
	Nickname        string  `json:"nickname"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	Z               float64 `json:"z"`
	Yaw             float64 `json:"yaw"`
	Bank            float64 `json:"bank"`
	Speedbar        bool    `json:"speedbar"`
	CurrentOrbScore int     `json:"currentOrbScore"`
	BestOrbScore    int     `json:"bestOrbScore"`
	UpdatedAtMs     int64   `json:"updatedAtMs"`
}

type thermalDTO struct {
	ID              string  `json:"id"`
	SizeClass       string  `json:"sizeClass"`
	ActivationAt    int64   `json:"activationAt"`
	GroundY         float64 `json:"groundY"`
	X               float64 `json:"x"`
	Z               float64 `json:"z"`
	Radius          float64 `json:"radius"`
	BaseHeight      float64 `json:"baseHeight"`
	HeightAmplitude float64 `json:"heightAmplitude"`
	Strength        float64 `json:"strength"`
	Phase           float64 `json:"phase"`
}

type orbDTO struct {
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	Z                float64 `json:"z"`
	HolderSessionID  string  `json:"holderSessionId"`
	LastTransferAtMs int64   `json:"lastTransferAtMs"`
	SpawnSeq         int     `json:"spawnSeq"`
}

type stateMsg struct {
	Type                    string               `json:"type"`
	Players                 map[string]playerDTO `json:"players"`
	Thermals                []thermalDTO         `json:"thermals"`
	Orb                     orbDTO               `json:"orb"`
	OrbActive               bool                 `json:"orbActive"`
	OrbCountdownRemainingMs int64                `json:"orbCountdownRemainingMs"`
	WorldSeed               uint32               `json:"worldSeed"`
	ServerTimeMs            int64                `json:"serverTimeMs"`
}

type welcomePayload struct {
	SessionID       string `json:"sessionId"`
	ProtocolVersion string `json:"protocolVersion"`
	ServerTimeMs    int64  `json:"serverTimeMs"`
}

type welcomeMsg struct {
	Type    string         `json:"type"`
	Payload welcomePayload `json:"payload"`
}

// buildState snapshots the room into the replicated state message. The full
// snapshot goes out every patch interval; diffing is the client's concern.
func buildState(r *game.Room) stateMsg {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	players := make(map[string]playerDTO, len(r.Players))
	for sid, p := range r.Players {
		players[sid] = playerDTO{
			Nickname:        p.Nickname,
			X:               p.Pos.X,
			Y:               p.Pos.Y,
			Z:               p.Pos.Z,
			Yaw:             p.Yaw,
			Bank:            p.Bank,
			Speedbar:        p.Speedbar,
			CurrentOrbScore: p.CurrentOrbScore,
			BestOrbScore:    p.BestOrbScore,
			UpdatedAtMs:     p.UpdatedAtMs,
		}
	}

	thermals := make([]thermalDTO, len(r.Thermals))
	for i, t := range r.Thermals {
		thermals[i] = thermalDTO{
			ID:              t.ID,
			SizeClass:       string(t.SizeClass),
			ActivationAt:    t.ActivationAtMs,
			GroundY:         t.GroundY,
			X:               t.X,
			Z:               t.Z,
			Radius:          t.Radius,
			BaseHeight:      t.BaseHeight,
			HeightAmplitude: t.HeightAmplitude,
			Strength:        t.Strength,
			Phase:           t.Phase,
		}
	}

	return stateMsg{
		Type:     protocol.TypeState,
		Players:  players,
		Thermals: thermals,
		Orb: orbDTO{
			X:                r.Orb.Pos.X,
			Y:                r.Orb.Pos.Y,
			Z:                r.Orb.Pos.Z,
			HolderSessionID:  r.Orb.HolderSessionID,
			LastTransferAtMs: r.Orb.LastTransferAtMs,
			SpawnSeq:         r.Orb.SpawnSeq,
		},
		OrbActive:               r.OrbActive,
		OrbCountdownRemainingMs: r.OrbCountdownRemainingMs,
		WorldSeed:               r.WorldSeed,
		ServerTimeMs:            r.NowMs,
	}
}
