package game

import (
	"time"

	"github.com/rs/zerolog/log"
)

// StartRound transitions the room from lobby to a running round and spins
// up the tick loop. Only the host may start, and a running round refuses a
// second start.
func (h *Hub) StartRound(roomID, playerID string) error {
	r := h.GetRoom(roomID)
	if r == nil {
		return ErrRoomNotFound
	}

	r.Mu.Lock()
	defer r.Mu.Unlock()

	if playerID != "" && playerID != r.HostID {
		return ErrNotHost
	}
	if err := r.startRoundLocked(); err != nil {
		return err
	}

	log.Info().Str("room", r.ID).Int("players", len(r.Players)).Msg("round started")
	go r.runLoop(r.generation, r.quit)
	return nil
}

// startRoundLocked resets scores, seeds wave one and the barriers, and
// marks the round running. It does not start the tick loop. Caller holds Mu.
func (r *Room) startRoundLocked() error {
	if r.InProgress {
		return ErrAlreadyRunning
	}

	now := r.clock()
	r.Waves.Reset()
	gs := &GameState{
		EnemyDirection: 1,
		CurrentWave:    1,
		LastEnemyShot:  now,
		Timestamp:      now,
	}
	for i, p := range r.Players {
		p.Score = 0
		p.Lives = StartingLives
		p.Ready = false
		p.Input = nil
		p.LastShot = 0
		p.Position = playerStartPosition(i)
		gs.Players = append(gs.Players, &PlayerState{
			ID:       p.ID,
			Position: p.Position,
			Lives:    p.Lives,
		})
	}
	gs.Enemies = r.Waves.GenerateWave()
	gs.Barriers = GenerateBarriers(r.rng)

	r.Game = gs
	r.InProgress = true
	r.generation++
	r.quit = make(chan struct{})
	return nil
}

// runLoop drives the fixed-cadence simulation until the round stops.
func (r *Room) runLoop(gen uint64, quit chan struct{}) {
	interval := time.Duration(float64(time.Second) / r.params.TickHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			r.Mu.Lock()
			if r.generation != gen || !r.InProgress {
				r.Mu.Unlock()
				return
			}
			r.advanceTick()
			r.Mu.Unlock()
		}
	}
}

// advanceTick runs one simulation step. Caller holds Mu.
func (r *Room) advanceTick() {
	gs := r.Game
	if gs == nil {
		return
	}
	now := r.clock()
	dt := Clamp(float64(now-gs.Timestamp), MinTickDeltaMs, MaxTickDeltaMs)

	if !gs.GameOver {
		r.updatePlayers(now, dt)
		updateBullets(gs, dt)
		r.updateEnemies(dt)
		r.enemyFire(now)
		r.resolveCollisions()
		r.checkEndConditions()
	}

	ageExplosions(gs, dt)
	gs.Timestamp = now
	r.events.GameState(r.ID, gs)
	gs.ClearTransientEffects()
}

// ageExplosions counts down explosion lifetimes and drops expired ones.
func ageExplosions(gs *GameState, dt float64) {
	kept := gs.Explosions[:0]
	for _, e := range gs.Explosions {
		e.TimeLeft -= dt
		if e.TimeLeft > 0 {
			kept = append(kept, e)
		}
	}
	gs.Explosions = kept
}

// checkEndConditions handles wave completion and both loss conditions.
// Caller holds Mu.
func (r *Room) checkEndConditions() {
	gs := r.Game

	res := r.Waves.CheckWaveComplete(len(gs.Enemies))
	if res.WaveComplete {
		gs.WaveTransition = true
		r.events.WaveComplete(r.ID, WaveCompleteEvent{
			WaveNumber: res.WaveNumber - 1,
			NextWave:   res.WaveNumber,
			DelayMs:    res.DelayMs,
		})
		gen := r.generation
		time.AfterFunc(time.Duration(res.DelayMs)*time.Millisecond, func() {
			r.installWave(gen, res)
		})
	}

	alive := false
	for _, p := range gs.Players {
		if p.Lives > 0 {
			alive = true
			break
		}
	}
	breached := false
	for _, e := range gs.Enemies {
		if e.FormationReached && e.Position.Y > EnemyBottomY {
			breached = true
			break
		}
	}
	if !alive || breached {
		r.endRoundLocked(WinnerEnemies)
	}
}

// installWave materialises the next wave after the transition delay. It
// re-validates against the captured generation so a stale timer from a
// stopped round does nothing.
func (r *Room) installWave(gen uint64, res WaveResult) {
	r.Mu.Lock()
	if r.generation != gen || !r.InProgress || r.Game == nil {
		r.Mu.Unlock()
		return
	}
	r.Game.Enemies = res.NewEnemies
	r.Game.CurrentWave = res.WaveNumber
	r.Game.WaveTransition = false
	r.Game.EnemyDirection = 1
	r.Waves.Transitioning = false
	ev := WaveStartedEvent{WaveNumber: res.WaveNumber, EnemyCount: len(res.NewEnemies)}
	r.events.WaveStarted(r.ID, ev)
	r.Mu.Unlock()

	log.Info().Str("room", r.ID).Int("wave", ev.WaveNumber).Int("enemies", ev.EnemyCount).Msg("wave started")
}

// endRoundLocked marks the round lost, then after a grace window (so
// clients can render the ending frames) emits the final-score event exactly
// once and tears the round down. Caller holds Mu.
func (r *Room) endRoundLocked(winner string) {
	gs := r.Game
	if gs.GameOver {
		return
	}
	gs.GameOver = true
	gs.Winner = winner
	log.Info().Str("room", r.ID).Str("winner", winner).Msg("round over")

	gen := r.generation
	time.AfterFunc(time.Duration(r.params.RoundOverGraceMs)*time.Millisecond, func() {
		r.Mu.Lock()
		defer r.Mu.Unlock()
		if r.generation != gen {
			return
		}
		ev := GameEndedEvent{Winner: winner}
		for _, p := range r.Players {
			ev.FinalScores = append(ev.FinalScores, FinalScore{ID: p.ID, Name: p.Name, Score: p.Score})
		}
		r.stopRoundLocked()
		r.events.GameEnded(r.ID, ev)
	})
}

// stopRoundLocked tears the round down immediately: stops the loop,
// invalidates outstanding timers, resets lobby state. Caller holds Mu.
func (r *Room) stopRoundLocked() {
	if !r.InProgress {
		return
	}
	r.InProgress = false
	r.Game = nil
	r.generation++
	if r.quit != nil {
		close(r.quit)
		r.quit = nil
	}
	for _, p := range r.Players {
		p.Ready = false
		p.Input = nil
	}
}

// EndRound cancels a running round from outside the simulation (host quit,
// admin action).
func (h *Hub) EndRound(roomID string) {
	r := h.GetRoom(roomID)
	if r == nil {
		return
	}
	r.Mu.Lock()
	r.stopRoundLocked()
	r.Mu.Unlock()
}

// grantInvincibility flags the player and schedules expiry. The expiry
// callback re-validates both the round generation and the flag; a new round
// started in the meantime is untouched. Caller holds Mu.
func (r *Room) grantInvincibility(ps *PlayerState) {
	ps.Invincible = true
	gen := r.generation
	id := ps.ID
	time.AfterFunc(time.Duration(r.params.InvincibleMs)*time.Millisecond, func() {
		r.expireInvincibility(gen, id)
	})
}

// expireInvincibility clears the flag if the same round is still running,
// then pushes the updated state out right away instead of waiting for the
// next tick.
func (r *Room) expireInvincibility(gen uint64, playerID string) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if r.generation != gen || r.Game == nil {
		return
	}
	if ps := r.Game.playerByID(playerID); ps != nil {
		ps.Invincible = false
		r.events.GameState(r.ID, r.Game)
	}
}
