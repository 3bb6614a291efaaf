package game

import (
	"errors"
	"log"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"
)

var ErrRoomFull = errors.New("room full")

// Room is one authoritative simulation instance: the world state, its
// connected sessions, and the timers that advance it. All handlers and both
// timers serialize on Mu, so no two mutations run concurrently.
type Room struct {
	ID string
	Mu sync.Mutex

	Players  map[string]*Player
	order    []string // insertion order; pickup/steal tie-breaks depend on it
	Thermals []*Thermal
	Orb      Orb

	OrbActive               bool
	OrbCountdownRemainingMs int64
	WorldSeed               uint32
	NowMs                   int64

	countdownDeadlineMs int64 // 0 = no countdown running
	scoreAccumMs        int64
	lastTickMs          int64

	tuning Params
	sink   EventSink

	done      chan struct{}
	closeOnce sync.Once
}

func NewRoom(id string, seed uint32, tuning Params, sink EventSink) *Room {
	now := time.Now().UnixMilli()
	r := &Room{
		ID:        id,
		Players:   map[string]*Player{},
		WorldSeed: seed,
		NowMs:     now,
		tuning:    SanitizeParams(tuning),
		sink:      sink,
		done:      make(chan struct{}),
	}
	r.Thermals = BuildThermals(seed, now)
	r.respawnOrbLocked(now)
	return r
}

// Run drives the tick loop and the reseed timer until Close.
func (r *Room) Run() {
	tick := time.NewTicker(TickIntervalMs * time.Millisecond)
	defer tick.Stop()
	reseed := time.NewTicker(time.Duration(r.tuning.ReseedIntervalMs) * time.Millisecond)
	defer reseed.Stop()
	for {
		select {
		case <-r.done:
			return
		case <-tick.C:
			r.Step(time.Now().UnixMilli())
		case <-reseed.C:
			r.ReseedNow(time.Now().UnixMilli())
		}
	}
}

// Close stops the room's timers. Idempotent.
func (r *Room) Close() {
	r.closeOnce.Do(func() { close(r.done) })
}

func SanitizeNickname(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultNickname
	}
	if runes := []rune(name); len(runes) > NicknameMaxLen {
		name = string(runes[:NicknameMaxLen])
	}
	return name
}

// Join creates the session's player on a ring around the origin, facing it.
func (r *Room) Join(sessionID, nickname string, nowMs int64) (*Player, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if len(r.Players) >= r.tuning.MaxPlayers {
		return nil, ErrRoomFull
	}

	angle := rand.Float64() * 2 * math.Pi
	pos := Vec3{
		X: SpawnRingRadius * math.Cos(angle),
		Y: SpawnAltitude,
		Z: SpawnRingRadius * math.Sin(angle),
	}
	p := &Player{
		SessionID:   sessionID,
		Nickname:    SanitizeNickname(nickname),
		Pos:         pos,
		Yaw:         math.Atan2(-pos.X, -pos.Z),
		UpdatedAtMs: nowMs,
	}
	r.Players[sessionID] = p
	r.order = append(r.order, sessionID)

	r.evaluateOrbLocked(nowMs)
	r.record(MatchEvent{Type: "join", AtMs: nowMs, Room: r.ID, Session: sessionID})
	return p, nil
}

// SetNickname renames an existing player. Unknown senders are ignored.
func (r *Room) SetNickname(sessionID, nickname string) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if p := r.Players[sessionID]; p != nil {
		p.Nickname = SanitizeNickname(nickname)
	}
}

// Leave removes the session; a holder leaving forces an orb respawn first so
// no dangling holder reference survives.
func (r *Room) Leave(sessionID string, nowMs int64) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if _, ok := r.Players[sessionID]; !ok {
		return
	}
	if r.Orb.HolderSessionID == sessionID {
		r.respawnOrbLocked(nowMs)
	}
	delete(r.Players, sessionID)
	for i, sid := range r.order {
		if sid == sessionID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.evaluateOrbLocked(nowMs)
	r.record(MatchEvent{Type: "leave", AtMs: nowMs, Room: r.ID, Session: sessionID})
}

// ReseedNow replaces the whole thermal set from the next seed. Full replace,
// never a merge; clients handle add/remove by id.
func (r *Room) ReseedNow(nowMs int64) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	r.WorldSeed += ThermalSeedStep
	r.Thermals = BuildThermals(r.WorldSeed, nowMs)
	r.record(MatchEvent{Type: "reseed", AtMs: nowMs, Room: r.ID, Seed: r.WorldSeed})
}

// evaluateOrbLocked runs the orb lifecycle state machine: Inactive with <2
// players (unconditionally, even mid-hold), Countdown once a 2nd player is
// present, Active when the countdown expires.
func (r *Room) evaluateOrbLocked(nowMs int64) {
	if len(r.Players) < 2 {
		if r.Orb.HolderSessionID != "" {
			if p := r.Players[r.Orb.HolderSessionID]; p != nil {
				p.CurrentOrbScore = 0
			}
			r.Orb.HolderSessionID = ""
		}
		r.OrbActive = false
		r.countdownDeadlineMs = 0
		r.OrbCountdownRemainingMs = 0
		r.scoreAccumMs = 0
		return
	}
	if r.OrbActive {
		r.OrbCountdownRemainingMs = 0
		return
	}
	if r.countdownDeadlineMs == 0 {
		r.countdownDeadlineMs = nowMs + r.tuning.OrbCountdownMs
		r.OrbCountdownRemainingMs = r.tuning.OrbCountdownMs
		return
	}
	remaining := r.countdownDeadlineMs - nowMs
	if remaining < 0 {
		remaining = 0
	}
	r.OrbCountdownRemainingMs = remaining
	if remaining == 0 {
		r.OrbActive = true
		r.countdownDeadlineMs = 0
		r.respawnOrbLocked(nowMs)
	}
}

// respawnOrbLocked relocates the orb unheld, zeroing the previous holder's
// running score.
func (r *Room) respawnOrbLocked(nowMs int64) {
	if prev := r.Orb.HolderSessionID; prev != "" {
		if p := r.Players[prev]; p != nil {
			p.CurrentOrbScore = 0
		}
	}
	angle := rand.Float64() * 2 * math.Pi
	dist := math.Sqrt(rand.Float64()) * OrbSpawnRadius
	r.Orb.Pos = Vec3{
		X: dist * math.Cos(angle),
		Y: OrbSpawnAltMin + rand.Float64()*(OrbSpawnAltMax-OrbSpawnAltMin),
		Z: dist * math.Sin(angle),
	}
	r.Orb.HolderSessionID = ""
	r.Orb.LastTransferAtMs = nowMs
	r.Orb.SpawnSeq++
	r.record(MatchEvent{Type: "orb_respawn", AtMs: nowMs, Room: r.ID})
}

func (r *Room) record(ev MatchEvent) {
	if r.sink == nil {
		return
	}
	if err := r.sink.Write(ev); err != nil {
		log.Printf("room %s: match log write: %v", r.ID, err)
	}
}

type Hub struct {
	Rooms  map[string]*Room
	Mu     sync.Mutex
	tuning Params
	sink   EventSink
}

func NewHub(tuning Params, sink EventSink) *Hub {
	return &Hub{
		Rooms:  map[string]*Room{},
		tuning: SanitizeParams(tuning),
		sink:   sink,
	}
}

// GetRoom returns the room, creating it and starting its timers on first use.
func (h *Hub) GetRoom(id string) *Room {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	r, ok := h.Rooms[id]
	if !ok {
		r = NewRoom(id, rand.Uint32(), h.tuning, h.sink)
		h.Rooms[id] = r
		go r.Run()
		log.Printf("room %s created (seed %d)", id, r.WorldSeed)
	}
	return r
}

// CleanupEmptyRooms closes and drops rooms with no connected players.
func (h *Hub) CleanupEmptyRooms() {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	for id, r := range h.Rooms {
		r.Mu.Lock()
		empty := len(r.Players) == 0
		r.Mu.Unlock()
		if empty {
			r.Close()
			delete(h.Rooms, id)
			log.Printf("room %s closed (empty)", id)
		}
	}
}

// Shutdown closes every room.
func (h *Hub) Shutdown() {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	for id, r := range h.Rooms {
		r.Close()
		delete(h.Rooms, id)
	}
}
