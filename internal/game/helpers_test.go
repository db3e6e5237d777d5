package game

import (
	"sync"
	"testing"
)

// manualClock lets tests advance simulated wall time explicitly.
type manualClock struct {
	mu  sync.Mutex
	now int64
}

func (c *manualClock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(ms int64) {
	c.mu.Lock()
	c.now += ms
	c.mu.Unlock()
}

// recordingEvents captures emitted events for assertions.
type recordingEvents struct {
	mu            sync.Mutex
	states        int
	waveCompletes []WaveCompleteEvent
	waveStarts    []WaveStartedEvent
	ended         []GameEndedEvent
	roomUpdates   []RoomSnapshot
	playersLeft   []string
}

func (e *recordingEvents) GameState(roomID string, gs *GameState) {
	e.mu.Lock()
	e.states++
	e.mu.Unlock()
}

func (e *recordingEvents) WaveComplete(roomID string, ev WaveCompleteEvent) {
	e.mu.Lock()
	e.waveCompletes = append(e.waveCompletes, ev)
	e.mu.Unlock()
}

func (e *recordingEvents) WaveStarted(roomID string, ev WaveStartedEvent) {
	e.mu.Lock()
	e.waveStarts = append(e.waveStarts, ev)
	e.mu.Unlock()
}

func (e *recordingEvents) GameEnded(roomID string, ev GameEndedEvent) {
	e.mu.Lock()
	e.ended = append(e.ended, ev)
	e.mu.Unlock()
}

func (e *recordingEvents) RoomUpdate(roomID string, snap RoomSnapshot) {
	e.mu.Lock()
	e.roomUpdates = append(e.roomUpdates, snap)
	e.mu.Unlock()
}

func (e *recordingEvents) PlayerLeft(roomID, playerID string) {
	e.mu.Lock()
	e.playersLeft = append(e.playersLeft, playerID)
	e.mu.Unlock()
}

func (e *recordingEvents) stateCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.states
}

func (e *recordingEvents) endedCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.ended)
}

// newTestRoom builds an isolated hub plus a one-player room on a manual
// clock with a fixed RNG seed.
func newTestRoom(t *testing.T, params Params) (*Hub, *Room, *manualClock, *recordingEvents) {
	t.Helper()
	clock := &manualClock{now: 1_000_000}
	events := &recordingEvents{}
	hub := NewHub(params, events)
	hub.SetClock(clock.Now)
	hub.SetSeed(42)
	room := hub.CreateRoom("p1", "Alice")
	return hub, room, clock, events
}

// startTestRound seeds a round without the background loop so tests drive
// ticks by hand.
func startTestRound(t *testing.T, r *Room) {
	t.Helper()
	r.Mu.Lock()
	err := r.startRoundLocked()
	r.Mu.Unlock()
	if err != nil {
		t.Fatalf("start round: %v", err)
	}
}

// step advances the manual clock and runs one tick.
func step(r *Room, clock *manualClock, ms int64) {
	clock.Advance(ms)
	r.Mu.Lock()
	r.advanceTick()
	r.Mu.Unlock()
}
