package game

import "testing"

func placePlayer(r *Room, sid string, pos Vec3) {
	r.Players[sid].Pos = pos
}

func TestPickupWithinRange(t *testing.T) {
	r, act := newActiveRoom(t, 1000)
	r.Orb.Pos = Vec3{X: 10, Y: 30, Z: 10}
	placePlayer(r, "a", Vec3{X: 11, Y: 32, Z: 10})
	placePlayer(r, "b", Vec3{X: 200, Y: 30, Z: 200})

	r.Step(act + 50)
	if r.Orb.HolderSessionID != "a" {
		t.Fatalf("holder %q, want a", r.Orb.HolderSessionID)
	}
	if r.Orb.LastTransferAtMs != act+50 {
		t.Errorf("transfer ts %d, want %d", r.Orb.LastTransferAtMs, act+50)
	}
	want := Vec3{X: 11, Y: 32 + OrbCarryOffsetY, Z: 10}
	if r.Orb.Pos != want {
		t.Errorf("orb pos %+v, want carried at %+v", r.Orb.Pos, want)
	}
}

func TestPickupOutOfRange(t *testing.T) {
	r, act := newActiveRoom(t, 1000)
	r.Orb.Pos = Vec3{X: 0, Y: 30, Z: 0}
	// horizontal miss
	placePlayer(r, "a", Vec3{X: 3.0, Y: 30, Z: 0})
	// vertical miss
	placePlayer(r, "b", Vec3{X: 0, Y: 35, Z: 0})

	r.Step(act + 50)
	if r.Orb.HolderSessionID != "" {
		t.Fatalf("holder %q, want unheld", r.Orb.HolderSessionID)
	}
}

func TestPickupTieBreaksByJoinOrder(t *testing.T) {
	r, act := newActiveRoom(t, 1000)
	r.Orb.Pos = Vec3{X: 0, Y: 30, Z: 0}
	placePlayer(r, "a", Vec3{X: 1, Y: 30, Z: 0})
	placePlayer(r, "b", Vec3{X: 1, Y: 30, Z: 0})

	r.Step(act + 50)
	if r.Orb.HolderSessionID != "a" {
		t.Fatalf("holder %q, want a (joined first)", r.Orb.HolderSessionID)
	}
}

func TestOrbFollowsHolder(t *testing.T) {
	r, act := newActiveRoom(t, 1000)
	r.Orb.HolderSessionID = "a"
	r.Orb.LastTransferAtMs = act
	placePlayer(r, "a", Vec3{X: 40, Y: 25, Z: -12})
	placePlayer(r, "b", Vec3{X: 200, Y: 30, Z: 200})

	r.Step(act + 50)
	want := Vec3{X: 40, Y: 25 + OrbCarryOffsetY, Z: -12}
	if r.Orb.Pos != want {
		t.Errorf("orb pos %+v, want %+v", r.Orb.Pos, want)
	}
}

func TestStealRespectsCooldown(t *testing.T) {
	r, act := newActiveRoom(t, 1000)
	r.Orb.HolderSessionID = "a"
	r.Orb.LastTransferAtMs = act
	placePlayer(r, "a", Vec3{X: 0, Y: 30, Z: 0})
	placePlayer(r, "b", Vec3{X: 1, Y: 30, Z: 0})

	r.Step(act + 500)
	if r.Orb.HolderSessionID != "a" {
		t.Fatalf("stolen inside cooldown: holder %q", r.Orb.HolderSessionID)
	}
	r.Step(act + OrbStealCooldownMs)
	if r.Orb.HolderSessionID != "b" {
		t.Fatalf("holder %q after cooldown, want b", r.Orb.HolderSessionID)
	}
	if r.Orb.LastTransferAtMs != act+OrbStealCooldownMs {
		t.Errorf("transfer ts %d, want %d", r.Orb.LastTransferAtMs, act+OrbStealCooldownMs)
	}
}

func TestStealZeroesBothRunningScores(t *testing.T) {
	r, act := newActiveRoom(t, 1000)
	r.Orb.HolderSessionID = "a"
	r.Orb.LastTransferAtMs = act
	r.Players["a"].CurrentOrbScore = 5
	r.Players["a"].BestOrbScore = 5
	r.Players["b"].CurrentOrbScore = 3
	placePlayer(r, "a", Vec3{X: 0, Y: 30, Z: 0})
	placePlayer(r, "b", Vec3{X: 1, Y: 30, Z: 0})

	r.Step(act + 2000)
	if r.Orb.HolderSessionID != "b" {
		t.Fatalf("holder %q, want b", r.Orb.HolderSessionID)
	}
	if r.Players["a"].CurrentOrbScore != 0 || r.Players["b"].CurrentOrbScore != 0 {
		t.Errorf("running scores %d/%d after steal, want 0/0",
			r.Players["a"].CurrentOrbScore, r.Players["b"].CurrentOrbScore)
	}
	if r.Players["a"].BestOrbScore != 5 {
		t.Errorf("best score %d lost on steal", r.Players["a"].BestOrbScore)
	}
}

func TestStealOutOfRange(t *testing.T) {
	r, act := newActiveRoom(t, 1000)
	r.Orb.HolderSessionID = "a"
	r.Orb.LastTransferAtMs = act
	placePlayer(r, "a", Vec3{X: 0, Y: 30, Z: 0})
	placePlayer(r, "b", Vec3{X: OrbStealRadius + 0.1, Y: 30, Z: 0})

	r.Step(act + 2000)
	if r.Orb.HolderSessionID != "a" {
		t.Fatalf("holder %q, want a (thief out of range)", r.Orb.HolderSessionID)
	}
}

func TestScoreAccrualUnderTickJitter(t *testing.T) {
	r, act := newActiveRoom(t, 1000)
	r.Orb.HolderSessionID = "a"
	r.Orb.LastTransferAtMs = act
	placePlayer(r, "a", Vec3{X: 0, Y: 30, Z: 0})
	placePlayer(r, "b", Vec3{X: 200, Y: 30, Z: 200})

	// irregular tick arrivals summing to 3500ms
	for _, at := range []int64{700, 1800, 2600, 3500} {
		r.Step(act + at)
	}
	if got := r.Players["a"].CurrentOrbScore; got != 3 {
		t.Fatalf("score %d after 3500ms held, want 3", got)
	}
	if got := r.Players["a"].BestOrbScore; got != 3 {
		t.Errorf("best %d, want 3", got)
	}
}

func TestNoScoreWhileUnheld(t *testing.T) {
	r, act := newActiveRoom(t, 1000)
	placePlayer(r, "a", Vec3{X: 200, Y: 30, Z: 200})
	placePlayer(r, "b", Vec3{X: -200, Y: 30, Z: -200})

	r.Step(act + 3000)
	if r.Players["a"].CurrentOrbScore != 0 || r.Players["b"].CurrentOrbScore != 0 {
		t.Error("score accrued with no holder")
	}
}

func TestStaleHolderRespawnsOrb(t *testing.T) {
	r, act := newActiveRoom(t, 1000)
	r.Orb.HolderSessionID = "ghost"
	seq := r.Orb.SpawnSeq
	r.Step(act + 50)
	if r.Orb.HolderSessionID != "" {
		t.Errorf("stale holder %q survived tick", r.Orb.HolderSessionID)
	}
	if r.Orb.SpawnSeq != seq+1 {
		t.Errorf("spawn seq %d, want %d", r.Orb.SpawnSeq, seq+1)
	}
}

func TestMatchScenario(t *testing.T) {
	r := NewRoom("test", 1, DefaultParams(), nil)
	r.Join("a", "Alice", 1000)
	r.Join("b", "Bob", 2000)

	r.Step(7000)
	if r.OrbCountdownRemainingMs != 5000 {
		t.Fatalf("countdown %d at t=7000, want 5000", r.OrbCountdownRemainingMs)
	}
	r.Step(12000)
	if !r.OrbActive {
		t.Fatal("orb not active at t=12000")
	}

	// Alice flies onto the orb and holds for two full seconds.
	r.Orb.Pos = Vec3{X: 10, Y: 30, Z: 10}
	placePlayer(r, "a", Vec3{X: 10, Y: 30, Z: 10})
	placePlayer(r, "b", Vec3{X: 200, Y: 30, Z: 200})
	r.Step(12050)
	if r.Orb.HolderSessionID != "a" {
		t.Fatalf("holder %q at pickup, want a", r.Orb.HolderSessionID)
	}
	r.Step(13050)
	r.Step(14050)
	if got := r.Players["a"].CurrentOrbScore; got != 2 {
		t.Fatalf("alice score %d after 2s, want 2", got)
	}

	// Bob closes in and steals once the cooldown is over.
	placePlayer(r, "b", Vec3{X: 11, Y: 30, Z: 10})
	r.Step(14100)
	if r.Orb.HolderSessionID != "b" {
		t.Fatalf("holder %q after steal, want b", r.Orb.HolderSessionID)
	}
	if r.Players["a"].CurrentOrbScore != 0 {
		t.Error("alice running score survived steal")
	}
	if r.Players["a"].BestOrbScore != 2 {
		t.Errorf("alice best %d, want 2", r.Players["a"].BestOrbScore)
	}

	r.Step(15100)
	if got := r.Players["b"].CurrentOrbScore; got != 1 {
		t.Fatalf("bob score %d after 1s, want 1", got)
	}

	// Bob crashes; the orb respawns unheld and his run ends.
	r.HandleCrash("b", 15200)
	if r.Orb.HolderSessionID != "" {
		t.Errorf("holder %q after crash", r.Orb.HolderSessionID)
	}
	if r.Players["b"].CurrentOrbScore != 0 {
		t.Error("bob running score survived crash")
	}
	if r.Players["b"].BestOrbScore != 1 {
		t.Errorf("bob best %d, want 1", r.Players["b"].BestOrbScore)
	}

	// Alice disconnects; one player left, orb goes dormant.
	r.Leave("a", 16000)
	if r.OrbActive {
		t.Error("orb active with one player")
	}
}
