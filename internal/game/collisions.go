package game

// resolveCollisions runs the four collision passes in a fixed order so a
// bullet consumed by a barrier can never also hit what stands behind it:
// player bullets vs barriers, enemy bullets vs barriers, player bullets vs
// enemies, enemy bullets vs players. One bullet resolves at most one hit.
// Caller holds Mu.
func (r *Room) resolveCollisions() {
	gs := r.Game
	gs.Bullets = r.bulletsVsBarriers(gs.Bullets)
	gs.EnemyBullets = r.bulletsVsBarriers(gs.EnemyBullets)
	r.bulletsVsEnemies()
	r.bulletsVsPlayers()
}

// bulletsVsBarriers chips barrier pieces and absorbs the hitting bullet.
func (r *Room) bulletsVsBarriers(bullets []*Bullet) []*Bullet {
	gs := r.Game
	kept := bullets[:0]
	for _, b := range bullets {
		hit := false
		for _, piece := range gs.Barriers {
			if Distance(b.Position, piece.Position) >= BarrierHitRadius {
				continue
			}
			hit = true
			piece.Durability--
			gs.addHitEffect(piece.ID, "barrier-hit")
			if piece.Durability <= 0 {
				gs.removeBarrier(piece.ID)
				gs.addExplosion(piece.Position, "barrier")
			}
			break
		}
		if !hit {
			kept = append(kept, b)
		}
	}
	return kept
}

// bulletsVsEnemies damages formed enemies, credits the shooter on a kill,
// and mirrors the score onto the room player so it survives the round.
func (r *Room) bulletsVsEnemies() {
	gs := r.Game
	kept := gs.Bullets[:0]
	for _, b := range gs.Bullets {
		hit := false
		for _, e := range gs.Enemies {
			if !e.FormationReached {
				continue
			}
			if Distance(b.Position, e.Position) >= e.Type.HitboxRadius() {
				continue
			}
			hit = true
			e.Health--
			gs.addHitEffect(e.ID, "flash")
			if e.Health <= 0 {
				if p := r.playerByID(b.PlayerID); p != nil {
					p.Score += e.Points
					if ps := gs.playerByID(p.ID); ps != nil {
						ps.Score = p.Score
					}
				}
				// An enemy that died far off screen gets no explosion,
				// clients would just queue an invisible sprite.
				if e.Position.X > -50 && e.Position.X < ScreenW+50 &&
					e.Position.Y > -50 && e.Position.Y < ScreenH+50 {
					gs.addExplosion(e.Position, "enemy")
				}
				gs.removeEnemy(e.ID)
			}
			break
		}
		if !hit {
			kept = append(kept, b)
		}
	}
	gs.Bullets = kept
}

// bulletsVsPlayers costs a life per hit, grants the invincibility window,
// and mirrors lives onto the room player.
func (r *Room) bulletsVsPlayers() {
	gs := r.Game
	kept := gs.EnemyBullets[:0]
	for _, b := range gs.EnemyBullets {
		hit := false
		for _, ps := range gs.Players {
			if ps.Invincible || ps.Lives <= 0 {
				continue
			}
			if Distance(b.Position, ps.Position) >= PlayerHitRadius {
				continue
			}
			hit = true
			ps.Lives--
			if p := r.playerByID(ps.ID); p != nil {
				p.Lives = ps.Lives
			}
			gs.addHitEffect(ps.ID, "player-hit")
			r.grantInvincibility(ps)
			break
		}
		if !hit {
			kept = append(kept, b)
		}
	}
	gs.EnemyBullets = kept
}
