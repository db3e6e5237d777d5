package game

// Events is the outbound boundary of the simulation. The server layer fans
// these out to every socket in the room; tests plug in a recording fake.
// Calls happen while the room lock is held, so implementations must not call
// back into the room.
type Events interface {
	GameState(roomID string, state *GameState)
	WaveComplete(roomID string, ev WaveCompleteEvent)
	WaveStarted(roomID string, ev WaveStartedEvent)
	GameEnded(roomID string, ev GameEndedEvent)
	RoomUpdate(roomID string, snap RoomSnapshot)
	PlayerLeft(roomID string, playerID string)
}

type WaveCompleteEvent struct {
	WaveNumber int   `json:"waveNumber"` // the wave just cleared
	NextWave   int   `json:"nextWave"`
	DelayMs    int64 `json:"delay"`
}

type WaveStartedEvent struct {
	WaveNumber int `json:"waveNumber"`
	EnemyCount int `json:"enemyCount"`
}

type FinalScore struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type GameEndedEvent struct {
	Winner      string       `json:"winner"`
	FinalScores []FinalScore `json:"finalScores"`
}

type PlayerSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Lives    int    `json:"lives"`
	Ready    bool   `json:"ready"`
	Position Vec2   `json:"position"`
}

// RoomSnapshot is the lobby-facing view of a room, broadcast on membership
// and readiness changes.
type RoomSnapshot struct {
	ID         string          `json:"id"`
	HostID     string          `json:"hostId"`
	Players    []PlayerSummary `json:"players"`
	InProgress bool            `json:"gameInProgress"`
	CreatedAt  int64           `json:"createdAt"`
}

// NopEvents discards everything; the zero value is ready to use.
type NopEvents struct{}

func (NopEvents) GameState(string, *GameState)           {}
func (NopEvents) WaveComplete(string, WaveCompleteEvent) {}
func (NopEvents) WaveStarted(string, WaveStartedEvent)   {}
func (NopEvents) GameEnded(string, GameEndedEvent)       {}
func (NopEvents) RoomUpdate(string, RoomSnapshot)        {}
func (NopEvents) PlayerLeft(string, string)              {}

