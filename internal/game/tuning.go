package game

// Params are the deploy-time gameplay tunables a config file or CLI flag may
// override. Everything else is a fixed constant in consts.go.
type Params struct {
	OrbCountdownMs   int64
	ReseedIntervalMs int64
	StealCooldownMs  int64
	MaxPlayers       int
}

func DefaultParams() Params {
	return Params{
		OrbCountdownMs:   OrbCountdownMs,
		ReseedIntervalMs: ThermalReseedMs,
		StealCooldownMs:  OrbStealCooldownMs,
		MaxPlayers:       RoomMaxPlayers,
	}
}

// SanitizeParams replaces non-positive values with defaults.
func SanitizeParams(p Params) Params {
	def := DefaultParams()
	if p.OrbCountdownMs <= 0 {
		p.OrbCountdownMs = def.OrbCountdownMs
	}
	if p.ReseedIntervalMs <= 0 {
		p.ReseedIntervalMs = def.ReseedIntervalMs
	}
	if p.StealCooldownMs <= 0 {
		p.StealCooldownMs = def.StealCooldownMs
	}
	if p.MaxPlayers <= 0 {
		p.MaxPlayers = def.MaxPlayers
	}
	return p
}
