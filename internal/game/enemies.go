package game

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

// updateEnemies advances the formation: garbage-collects runaway enemies,
// flips the sweep direction at the field edges, flies new spawns into their
// formation slots, then applies the per-type movement patterns. Caller
// holds Mu.
func (r *Room) updateEnemies(dt float64) {
	gs := r.Game

	// Enemies that drifted far off screen will never matter again; keeping
	// them would stall wave completion forever.
	kept := gs.Enemies[:0]
	for _, e := range gs.Enemies {
		if e.Position.Y > StuckEnemyFloorY || (e.Position.Y < StuckEnemyCeilY && e.FormationReached) {
			log.Debug().Str("enemy", e.ID).Float64("y", e.Position.Y).Msg("removed stuck enemy")
			continue
		}
		kept = append(kept, e)
	}
	gs.Enemies = kept

	// Only formed enemies trigger the edge flip; spawns flying in from
	// above would otherwise bounce the whole formation.
	moveDown := false
	for _, e := range gs.Enemies {
		if !e.FormationReached {
			continue
		}
		if (e.Position.X < PlayerEdgeMargin && gs.EnemyDirection < 0) ||
			(e.Position.X > ScreenW-PlayerEdgeMargin && gs.EnemyDirection > 0) {
			moveDown = true
			break
		}
	}
	if moveDown {
		gs.EnemyDirection *= -1
		for _, e := range gs.Enemies {
			e.Position.Y += 5
			if e.FormationReached {
				e.OriginalPosition.Y += 5
				e.TargetPosition.Y += 5
			}
		}
	}

	step := r.params.EnemySpeed * dt / 1000
	for _, e := range gs.Enemies {
		if !e.FormationReached {
			r.flyIntoFormation(e, dt)
			continue
		}

		e.Position.X += step * gs.EnemyDirection

		switch e.MovePattern {
		case PatternZigzag:
			e.MoveTimer += dt
			e.Position.Y = e.OriginalPosition.Y + math.Sin(e.MoveTimer/300)*15
		case PatternSineWave:
			e.MoveTimer += dt
			e.Position.X += math.Sin(e.MoveTimer/1000) * 0.5
			e.Position.Y += 0.002 * dt
		case PatternSwooping:
			e.MoveTimer += dt
			if math.Mod(e.MoveTimer, 5000) < 2500 {
				e.Position.Y += 0.005 * dt
			} else {
				e.Position.Y += 0.001 * dt
			}
		default:
			e.Position.Y += 0.002 * dt
		}
	}
}

// flyIntoFormation moves a fresh spawn toward its slot on each axis
// independently, snapping once within two pixels.
func (r *Room) flyIntoFormation(e *Enemy, dt float64) {
	step := FormationSpeed * dt / 1000
	dx := math.Abs(e.Position.X - e.TargetPosition.X)
	dy := math.Abs(e.Position.Y - e.TargetPosition.Y)

	if dx > 2 {
		if e.TargetPosition.X > e.Position.X {
			e.Position.X += step
		} else {
			e.Position.X -= step
		}
	}
	if dy > 2 {
		if e.TargetPosition.Y > e.Position.Y {
			e.Position.Y += step
		} else {
			e.Position.Y -= step
		}
	}
	if dx <= 2 && dy <= 2 {
		e.Position = e.TargetPosition
		e.OriginalPosition = e.TargetPosition
		e.FormationReached = true
	}
}

// enemyFire gives one random formed wasp a shot attempt, gated globally so
// the formation never sprays. Caller holds Mu.
func (r *Room) enemyFire(now int64) {
	gs := r.Game
	if now-gs.LastEnemyShot < r.params.EnemyFireGapMs {
		return
	}
	if r.rng.Float64() >= r.params.EnemyFireChance {
		return
	}

	var wasps []*Enemy
	for _, e := range gs.Enemies {
		if e.Type == EnemyWasp && e.FormationReached {
			wasps = append(wasps, e)
		}
	}
	if len(wasps) == 0 {
		return
	}
	shooter := wasps[r.rng.Intn(len(wasps))]
	shooter.LastShot = now
	gs.EnemyBullets = append(gs.EnemyBullets, &Bullet{
		ID:       fmt.Sprintf("%s-%d", shooter.ID, now),
		Position: Vec2{X: shooter.Position.X, Y: shooter.Position.Y + 20},
		Velocity: Vec2{Y: r.params.EnemyBulletSpeed},
		EnemyID:  shooter.ID,
	})
	gs.LastEnemyShot = now
}
