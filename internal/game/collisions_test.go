package game

import (
	"testing"
)

func TestEnemyBulletHitsPlayer(t *testing.T) {
	_, room, clock, _ := newTestRoom(t, DefaultParams())
	startTestRound(t, room)

	room.Mu.Lock()
	room.Game.Barriers = nil
	ps := room.Game.playerByID("p1")
	ps.Position = Vec2{X: 100, Y: 104}
	room.Game.EnemyBullets = []*Bullet{{
		ID:       "eb1",
		Position: Vec2{X: 100, Y: 100},
		Velocity: Vec2{Y: EnemyBulletSpeed},
		EnemyID:  "w1",
	}}
	room.Mu.Unlock()

	step(room, clock, 16)

	room.Mu.Lock()
	defer room.Mu.Unlock()
	if ps.Lives != StartingLives-1 {
		t.Fatalf("lives = %d, want %d", ps.Lives, StartingLives-1)
	}
	if !ps.Invincible {
		t.Fatal("hit player should be invincible")
	}
	if len(room.Game.EnemyBullets) != 0 {
		t.Fatal("hitting bullet should be consumed")
	}
	if room.Players[0].Lives != ps.Lives {
		t.Fatalf("room player lives %d not mirrored from game state %d", room.Players[0].Lives, ps.Lives)
	}
	if len(room.Game.HitEffects) != 0 {
		t.Fatal("hit effects should be cleared after the broadcast")
	}
}

func TestInvinciblePlayerTakesNoFurtherHits(t *testing.T) {
	_, room, clock, _ := newTestRoom(t, DefaultParams())
	startTestRound(t, room)

	room.Mu.Lock()
	room.Game.Barriers = nil
	ps := room.Game.playerByID("p1")
	ps.Position = Vec2{X: 100, Y: 300}
	ps.Invincible = true
	room.Game.EnemyBullets = []*Bullet{{
		ID:       "eb1",
		Position: Vec2{X: 100, Y: 298},
		Velocity: Vec2{Y: EnemyBulletSpeed},
	}}
	room.Mu.Unlock()

	step(room, clock, 16)

	room.Mu.Lock()
	defer room.Mu.Unlock()
	if ps.Lives != StartingLives {
		t.Fatalf("invincible player lost a life: %d", ps.Lives)
	}
	if len(room.Game.EnemyBullets) != 1 {
		t.Fatal("bullet should pass through an invincible player")
	}
}

func TestPlayerBulletKillsEnemyAndScores(t *testing.T) {
	_, room, clock, _ := newTestRoom(t, DefaultParams())
	startTestRound(t, room)

	room.Mu.Lock()
	room.Game.Barriers = nil
	e := room.Game.Enemies[0]
	e.Position = e.TargetPosition
	e.OriginalPosition = e.TargetPosition
	e.FormationReached = true
	e.Health = 1
	points := e.Points
	room.Game.Bullets = []*Bullet{{
		ID:       "b1",
		Position: Vec2{X: e.Position.X, Y: e.Position.Y + 5},
		Velocity: Vec2{Y: -BulletSpeed},
		PlayerID: "p1",
	}}
	before := len(room.Game.Enemies)
	room.Mu.Unlock()

	step(room, clock, 16)

	room.Mu.Lock()
	defer room.Mu.Unlock()
	if len(room.Game.Enemies) != before-1 {
		t.Fatalf("enemy not removed: %d left, want %d", len(room.Game.Enemies), before-1)
	}
	if room.Players[0].Score != points {
		t.Fatalf("score = %d, want %d", room.Players[0].Score, points)
	}
	if room.Game.playerByID("p1").Score != points {
		t.Fatal("score not mirrored into game state")
	}
	if len(room.Game.Explosions) != 1 {
		t.Fatalf("expected one explosion, got %d", len(room.Game.Explosions))
	}
}

func TestBulletPassesUnformedEnemy(t *testing.T) {
	_, room, clock, _ := newTestRoom(t, DefaultParams())
	startTestRound(t, room)

	room.Mu.Lock()
	room.Game.Barriers = nil
	e := room.Game.Enemies[0]
	if e.FormationReached {
		t.Fatal("fresh wave enemy should not be formed")
	}
	room.Game.Bullets = []*Bullet{{
		ID:       "b1",
		Position: e.Position,
		Velocity: Vec2{Y: -BulletSpeed},
		PlayerID: "p1",
	}}
	before := len(room.Game.Enemies)
	room.Mu.Unlock()

	step(room, clock, 16)

	room.Mu.Lock()
	defer room.Mu.Unlock()
	if len(room.Game.Enemies) != before {
		t.Fatalf("fly-in enemy was hit: %d enemies left", len(room.Game.Enemies))
	}
}

func TestBarrierAbsorbsAndErodes(t *testing.T) {
	_, room, clock, _ := newTestRoom(t, DefaultParams())
	startTestRound(t, room)

	room.Mu.Lock()
	piece := room.Game.Barriers[0]
	piece.Durability = 2
	pos := piece.Position
	room.Game.EnemyBullets = []*Bullet{{ID: "eb1", Position: pos, Velocity: Vec2{Y: EnemyBulletSpeed}}}
	room.Mu.Unlock()

	step(room, clock, 16)

	room.Mu.Lock()
	if piece.Durability != 1 {
		t.Fatalf("durability = %d, want 1", piece.Durability)
	}
	if len(room.Game.EnemyBullets) != 0 {
		t.Fatal("barrier should absorb the bullet")
	}
	room.Game.EnemyBullets = []*Bullet{{ID: "eb2", Position: pos, Velocity: Vec2{Y: EnemyBulletSpeed}}}
	room.Mu.Unlock()

	step(room, clock, 16)

	room.Mu.Lock()
	defer room.Mu.Unlock()
	for _, p := range room.Game.Barriers {
		if p.ID == piece.ID {
			t.Fatal("destroyed barrier piece still on the field")
		}
	}
}

func TestPlayerBulletChipsBarrierBeforeEnemies(t *testing.T) {
	_, room, clock, _ := newTestRoom(t, DefaultParams())
	startTestRound(t, room)

	room.Mu.Lock()
	piece := room.Game.Barriers[0]
	// A formed enemy sits on the same spot as the barrier piece; the barrier
	// pass runs first, so the bullet must never reach the enemy.
	e := room.Game.Enemies[0]
	e.Position = piece.Position
	e.OriginalPosition = piece.Position
	e.TargetPosition = piece.Position
	e.FormationReached = true
	health := e.Health
	room.Game.Bullets = []*Bullet{{ID: "b1", Position: piece.Position, Velocity: Vec2{Y: -BulletSpeed}, PlayerID: "p1"}}
	room.Mu.Unlock()

	step(room, clock, 16)

	room.Mu.Lock()
	defer room.Mu.Unlock()
	if e.Health != health {
		t.Fatal("enemy behind a barrier took damage")
	}
	if len(room.Game.Bullets) != 0 {
		t.Fatal("bullet should be spent on the barrier")
	}
}
