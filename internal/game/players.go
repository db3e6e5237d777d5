package game

import "fmt"

// updatePlayers applies buffered inputs: horizontal movement clamped to the
// play field, then fire gated by invincibility and the cooldown. Left wins when
// both directions are held. Caller holds Mu.
func (r *Room) updatePlayers(now int64, dt float64) {
	gs := r.Game
	for _, p := range r.Players {
		ps := gs.playerByID(p.ID)
		if ps == nil || ps.Lives <= 0 {
			continue
		}
		in := p.Input
		if in == nil {
			continue
		}

		step := r.params.PlayerSpeed * dt / 1000
		if in.Left {
			ps.Position.X -= step
		} else if in.Right {
			ps.Position.X += step
		}
		ps.Position.X = Clamp(ps.Position.X, PlayerEdgeMargin, ScreenW-PlayerEdgeMargin)
		p.Position = ps.Position

		if in.Fire && !ps.Invincible {
			stamp := in.Time
			if stamp == 0 {
				stamp = now
			}
			if stamp-p.LastShot >= r.params.FireCooldownMs {
				p.LastShot = stamp
				gs.Bullets = append(gs.Bullets, &Bullet{
					ID:       fmt.Sprintf("%s-%d", p.ID, now),
					Position: Vec2{X: ps.Position.X, Y: ps.Position.Y - 30},
					Velocity: Vec2{Y: -r.params.BulletSpeed},
					PlayerID: p.ID,
				})
			}
		}
	}
}
