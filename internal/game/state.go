package game

// Player is one connected session's replicated state. Owned exclusively by
// its Room; mutated by pose messages and by the tick loop's scoring.
type Player struct {
	SessionID       string
	Nickname        string
	Pos             Vec3
	Yaw             float64
	Bank            float64
	Speedbar        bool
	CurrentOrbScore int
	BestOrbScore    int
	UpdatedAtMs     int64
}

// Orb is the single contested scoring object. HolderSessionID empty means
// unheld; if set it must reference a currently connected player.
type Orb struct {
	Pos              Vec3
	HolderSessionID  string
	LastTransferAtMs int64
	SpawnSeq         int
}

type SizeClass string

const (
	SizeSmall SizeClass = "small"
	SizeLarge SizeClass = "large"
)

// Thermal is one lift column of a generation batch. Members are immutable
// after the staggering pass; the whole set is replaced on reseed.
type Thermal struct {
	ID              string
	SizeClass       SizeClass
	X, Z            float64
	Radius          float64
	GroundY         float64
	BaseHeight      float64
	HeightAmplitude float64
	Strength        float64
	Phase           float64
	ActivationAtMs  int64
}

// MatchEvent is one line of the append-only match log.
type MatchEvent struct {
	Type    string `json:"type"`
	AtMs    int64  `json:"atMs"`
	Room    string `json:"room"`
	Session string `json:"session,omitempty"`
	From    string `json:"from,omitempty"`
	To      string `json:"to,omitempty"`
	Seed    uint32 `json:"seed,omitempty"`
}

// EventSink receives match events; a nil sink disables logging.
type EventSink interface {
	Write(v any) error
}
