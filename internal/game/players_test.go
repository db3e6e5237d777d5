package game

import (
	"math"
	"testing"
)

func TestPlayerMovesLeftOneTick(t *testing.T) {
	params := DefaultParams()
	params.PlayerSpeed = 200
	_, room, clock, _ := newTestRoom(t, params)
	startTestRound(t, room)

	room.Mu.Lock()
	room.Players[0].Input = &PlayerInput{Left: true}
	room.Game.playerByID("p1").Position = Vec2{X: 400, Y: 550}
	room.Mu.Unlock()

	step(room, clock, 16)

	room.Mu.Lock()
	got := room.Game.playerByID("p1").Position.X
	room.Mu.Unlock()
	if math.Abs(got-396.8) > 1e-9 {
		t.Fatalf("player x = %v, want 396.8", got)
	}
}

func TestPlayerClampedToPlayField(t *testing.T) {
	_, room, clock, _ := newTestRoom(t, DefaultParams())
	startTestRound(t, room)

	room.Mu.Lock()
	room.Players[0].Input = &PlayerInput{Left: true}
	room.Mu.Unlock()
	for i := 0; i < 600; i++ {
		step(room, clock, 16)
		room.Mu.Lock()
		x := room.Game.playerByID("p1").Position.X
		room.Mu.Unlock()
		if x < PlayerEdgeMargin {
			t.Fatalf("player escaped left bound: x=%v", x)
		}
	}

	room.Mu.Lock()
	room.Players[0].Input = &PlayerInput{Right: true}
	room.Mu.Unlock()
	for i := 0; i < 600; i++ {
		step(room, clock, 16)
		room.Mu.Lock()
		x := room.Game.playerByID("p1").Position.X
		room.Mu.Unlock()
		if x > ScreenW-PlayerEdgeMargin {
			t.Fatalf("player escaped right bound: x=%v", x)
		}
	}
}

func TestLeftWinsWhenBothHeld(t *testing.T) {
	_, room, clock, _ := newTestRoom(t, DefaultParams())
	startTestRound(t, room)

	room.Mu.Lock()
	start := room.Game.playerByID("p1").Position.X
	room.Players[0].Input = &PlayerInput{Left: true, Right: true}
	room.Mu.Unlock()

	step(room, clock, 16)

	room.Mu.Lock()
	got := room.Game.playerByID("p1").Position.X
	room.Mu.Unlock()
	if got >= start {
		t.Fatalf("expected leftward movement, went from %v to %v", start, got)
	}
}

func TestFireRateGatedByCooldown(t *testing.T) {
	_, room, clock, _ := newTestRoom(t, DefaultParams())
	startTestRound(t, room)

	// Move wave-1 enemies out of the way and drop the barriers so bullets
	// fly clean and the count only reflects the cooldown.
	room.Mu.Lock()
	for _, e := range room.Game.Enemies {
		e.Position.X = -500
		e.TargetPosition.X = -500
		e.OriginalPosition.X = -500
	}
	room.Game.Barriers = nil
	room.Mu.Unlock()

	fired := 0
	for elapsed := int64(0); elapsed < 1000; elapsed += 16 {
		room.Mu.Lock()
		room.Players[0].Input = &PlayerInput{Fire: true, Time: clock.Now() + 16}
		before := len(room.Game.Bullets)
		room.Mu.Unlock()

		step(room, clock, 16)

		room.Mu.Lock()
		if len(room.Game.Bullets) > before {
			fired++
		}
		room.Mu.Unlock()
	}

	// One shot per 200ms window over a second, plus the opening shot.
	if fired < 5 || fired > 6 {
		t.Fatalf("fired %d bullets in 1s, want 5 or 6", fired)
	}
}

func TestDeadPlayerIgnoresInput(t *testing.T) {
	_, room, clock, _ := newTestRoom(t, DefaultParams())
	startTestRound(t, room)

	room.Mu.Lock()
	ps := room.Game.playerByID("p1")
	start := ps.Position.X
	ps.Lives = 0
	room.Players[0].Input = &PlayerInput{Left: true, Fire: true}
	room.Mu.Unlock()

	step(room, clock, 16)

	room.Mu.Lock()
	got := room.Game.playerByID("p1").Position.X
	bullets := len(room.Game.Bullets)
	room.Mu.Unlock()
	if got != start {
		t.Fatalf("dead player moved from %v to %v", start, got)
	}
	if bullets != 0 {
		t.Fatalf("dead player fired %d bullets", bullets)
	}
}
