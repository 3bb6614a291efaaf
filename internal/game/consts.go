package game

const (
	TickIntervalMs  = 50 // authoritative sim tick
	PatchIntervalMs = 50 // per-client WS state pushes
	RoomMaxPlayers  = 32
	NicknameMaxLen  = 24
	DefaultNickname = "Pilot"

	SpawnRingRadius = 60.0 // players spawn on this ring around the origin
	SpawnAltitude   = 30.0

	OrbCountdownMs     = 10000
	OrbSpawnRadius     = 72.0
	OrbSpawnAltMin     = 24.0
	OrbSpawnAltMax     = 34.0
	OrbCarryOffsetY    = 0.9 // orb rides this far above its holder
	OrbPickupRadius    = 2.8
	OrbPickupVertTol   = 4.5
	OrbStealRadius     = 2.4
	OrbStealVertTol    = 3.5
	OrbStealCooldownMs = 1000
	OrbScoreIntervalMs = 1000

	ThermalCount            = 10
	ThermalFieldRadius      = 110.0
	ThermalMinGap           = 6.0
	ThermalEdgeBiasWeight   = 6.0
	ThermalScoredAttempts   = 64  // candidate draws per slot before fallback
	ThermalFallbackAttempts = 120 // unscored draws before giving up on a slot
	ThermalReseedMs         = 18000
	ThermalSeedStep         = 131
	ThermalStaggerSpreadMs  = 6000
	ThermalStaggerJitter    = 0.35 // fraction of one stagger slot

	ThermalSmallChance      = 0.7
	ThermalSmallRadiusMin   = 7.0
	ThermalSmallRadiusMax   = 11.0
	ThermalSmallStrengthMin = 4.5
	ThermalSmallStrengthMax = 6.5
	ThermalLargeRadiusMin   = 12.0
	ThermalLargeRadiusMax   = 18.0
	ThermalLargeStrengthMin = 6.5
	ThermalLargeStrengthMax = 9.0
	ThermalBaseHeightMin    = 18.0
	ThermalBaseHeightMax    = 30.0
	ThermalAmplitudeMin     = 6.0
	ThermalAmplitudeMax     = 14.0
)
