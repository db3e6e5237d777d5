package game

// updateBullets advances every bullet by its velocity and drops the ones
// that leave the screen vertically.
func updateBullets(gs *GameState, dt float64) {
	gs.Bullets = advanceBullets(gs.Bullets, dt)
	gs.EnemyBullets = advanceBullets(gs.EnemyBullets, dt)
}

func advanceBullets(bullets []*Bullet, dt float64) []*Bullet {
	kept := bullets[:0]
	for _, b := range bullets {
		b.Position = b.Position.Add(b.Velocity.Scale(dt / 1000))
		if b.Position.Y > 0 && b.Position.Y < ScreenH {
			kept = append(kept, b)
		}
	}
	return kept
}
