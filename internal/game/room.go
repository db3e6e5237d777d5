package game

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomFull        = errors.New("room is full")
	ErrGameInProgress  = errors.New("game already in progress")
	ErrNotHost         = errors.New("only the host can start the game")
	ErrAlreadyRunning  = errors.New("round already running")
	ErrPlayerNotInRoom = errors.New("player not in room")
)

// PlayerInput is the buffered input snapshot for one player, last-write-wins.
// It is consumed, not cleared, each tick; fire is additionally gated by the
// per-player cooldown so a stale fire=true cannot stream bullets.
type PlayerInput struct {
	Left  bool  `json:"left"`
	Right bool  `json:"right"`
	Fire  bool  `json:"fire"`
	Time  int64 `json:"time,omitempty"`
}

// Player is the room membership record. Score and lives live here so they
// survive round teardown; the per-round PlayerState mirrors onto them.
type Player struct {
	ID       string
	Name     string
	Score    int
	Lives    int
	Ready    bool
	Position Vec2
	Input    *PlayerInput
	LastShot int64
}

// Room is one multiplayer match: membership plus, while a round runs, the
// authoritative GameState. All fields are guarded by Mu; the tick goroutine,
// websocket handlers, and deferred timers all lock it.
type Room struct {
	ID         string
	HostID     string
	Players    []*Player
	Game       *GameState
	InProgress bool
	Waves      *WaveManager
	CreatedAt  int64
	Mu         sync.Mutex

	params Params
	events Events
	clock  func() int64
	rng    *rand.Rand

	// generation increments on every round start/stop; deferred callbacks
	// captured during round N no-op once it differs.
	generation uint64
	quit       chan struct{}
}

func newRoom(id, hostID string, params Params, events Events, clock func() int64, rng *rand.Rand) *Room {
	waves := NewWaveManager(rng)
	waves.DelayMs = params.WaveDelayMs
	return &Room{
		ID:        id,
		HostID:    hostID,
		CreatedAt: clock(),
		Waves:     waves,
		params:    params,
		events:    events,
		clock:     clock,
		rng:       rng,
	}
}

// playerStartPosition spreads players across the bottom row.
func playerStartPosition(index int) Vec2 {
	return Vec2{X: 200 + float64(index)*200, Y: 550}
}

func (r *Room) playerByID(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// addPlayerLocked appends a member with defaults; idempotent on re-join.
func (r *Room) addPlayerLocked(playerID, name string) error {
	if r.playerByID(playerID) != nil {
		return nil
	}
	if len(r.Players) >= RoomMaxPlayers {
		return ErrRoomFull
	}
	if r.InProgress {
		return ErrGameInProgress
	}
	if strings.TrimSpace(name) == "" {
		name = "Player " + string(rune('1'+len(r.Players)))
	}
	r.Players = append(r.Players, &Player{
		ID:       playerID,
		Name:     name,
		Lives:    StartingLives,
		Position: playerStartPosition(len(r.Players)),
	})
	return nil
}

// removePlayerLocked drops a member, transferring host if needed. Returns
// true when the room is now empty.
func (r *Room) removePlayerLocked(playerID string) bool {
	for i, p := range r.Players {
		if p.ID == playerID {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			break
		}
	}
	if len(r.Players) == 0 {
		return true
	}
	if r.HostID == playerID {
		r.HostID = r.Players[0].ID
	}
	return false
}

// Snapshot builds the lobby-facing view. Callers must hold Mu.
func (r *Room) snapshotLocked() RoomSnapshot {
	snap := RoomSnapshot{
		ID:         r.ID,
		HostID:     r.HostID,
		InProgress: r.InProgress,
		CreatedAt:  r.CreatedAt,
	}
	for _, p := range r.Players {
		snap.Players = append(snap.Players, PlayerSummary{
			ID:       p.ID,
			Name:     p.Name,
			Score:    p.Score,
			Lives:    p.Lives,
			Ready:    p.Ready,
			Position: p.Position,
		})
	}
	return snap
}

func (r *Room) Snapshot() RoomSnapshot {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return r.snapshotLocked()
}

// RoomInfo is the /api/rooms listing entry.
type RoomInfo struct {
	ID          string `json:"id"`
	PlayerCount int    `json:"playerCount"`
	InProgress  bool   `json:"inProgress"`
	CreatedAt   int64  `json:"createdAt"`
}

// Hub is the registry of active rooms. It is an explicit injected instance
// rather than package state so tests can build isolated hubs.
type Hub struct {
	Mu    sync.Mutex
	Rooms map[string]*Room

	params Params
	events Events
	clock  func() int64
	seed   func() int64
}

func NewHub(params Params, events Events) *Hub {
	if events == nil {
		events = NopEvents{}
	}
	return &Hub{
		Rooms:  map[string]*Room{},
		params: SanitizeParams(params),
		events: events,
		clock:  func() int64 { return time.Now().UnixMilli() },
		seed:   func() int64 { return time.Now().UnixNano() },
	}
}

// SetClock replaces the wall clock, for tests.
func (h *Hub) SetClock(clock func() int64) { h.clock = clock }

// SetSeed fixes the per-room RNG seed, for tests.
func (h *Hub) SetSeed(seed int64) { h.seed = func() int64 { return seed } }

// newRoomCode derives a short upper-case join code.
func newRoomCode() string {
	return strings.ToUpper(uuid.NewString()[:6])
}

// CreateRoom opens a room with the creator as host and sole member.
func (h *Hub) CreateRoom(hostID, hostName string) *Room {
	h.Mu.Lock()
	defer h.Mu.Unlock()

	id := newRoomCode()
	for h.Rooms[id] != nil {
		id = newRoomCode()
	}
	rng := rand.New(rand.NewSource(h.seed()))
	r := newRoom(id, hostID, h.params, h.events, h.clock, rng)
	r.Mu.Lock()
	_ = r.addPlayerLocked(hostID, hostName)
	r.Mu.Unlock()
	h.Rooms[id] = r
	log.Info().Str("room", id).Str("host", hostID).Msg("room created")
	return r
}

func (h *Hub) GetRoom(id string) *Room {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	return h.Rooms[id]
}

// JoinRoom adds a player to an existing room and broadcasts the updated
// lobby state.
func (h *Hub) JoinRoom(roomID, playerID, name string) error {
	r := h.GetRoom(roomID)
	if r == nil {
		return ErrRoomNotFound
	}

	r.Mu.Lock()
	err := r.addPlayerLocked(playerID, name)
	var snap RoomSnapshot
	if err == nil {
		snap = r.snapshotLocked()
	}
	r.Mu.Unlock()

	if err != nil {
		return err
	}
	h.events.RoomUpdate(roomID, snap)
	return nil
}

// LeaveRoom removes the player from any room holding them. Emptied rooms
// are torn down (cancelling a running round); otherwise membership updates
// are broadcast and, mid-round, a player_left notice.
func (h *Hub) LeaveRoom(playerID string) []string {
	h.Mu.Lock()
	rooms := make([]*Room, 0, len(h.Rooms))
	for _, r := range h.Rooms {
		rooms = append(rooms, r)
	}
	h.Mu.Unlock()

	var affected []string
	for _, r := range rooms {
		r.Mu.Lock()
		if r.playerByID(playerID) == nil {
			r.Mu.Unlock()
			continue
		}
		affected = append(affected, r.ID)
		empty := r.removePlayerLocked(playerID)
		wasRunning := r.InProgress
		if empty {
			r.stopRoundLocked()
		}
		var snap RoomSnapshot
		if !empty {
			snap = r.snapshotLocked()
		}
		r.Mu.Unlock()

		if empty {
			h.Mu.Lock()
			delete(h.Rooms, r.ID)
			h.Mu.Unlock()
			log.Info().Str("room", r.ID).Msg("room emptied, removed")
			continue
		}
		h.events.RoomUpdate(r.ID, snap)
		if wasRunning {
			h.events.PlayerLeft(r.ID, playerID)
		}
	}
	return affected
}

// SetPlayerReady flips a member's ready flag and broadcasts the room.
func (h *Hub) SetPlayerReady(roomID, playerID string, ready bool) bool {
	r := h.GetRoom(roomID)
	if r == nil {
		return false
	}

	r.Mu.Lock()
	p := r.playerByID(playerID)
	if p == nil {
		r.Mu.Unlock()
		return false
	}
	p.Ready = ready
	snap := r.snapshotLocked()
	r.Mu.Unlock()

	h.events.RoomUpdate(roomID, snap)
	return true
}

// AllPlayersReady reports whether the room can start.
func (h *Hub) AllPlayersReady(roomID string) bool {
	r := h.GetRoom(roomID)
	if r == nil {
		return false
	}
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if len(r.Players) == 0 {
		return false
	}
	for _, p := range r.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}

// SubmitInput stores the input snapshot on whichever room owns the player.
// The linear scan over rooms mirrors the original lookup and is fine at the
// expected scale. Unknown players and idle rooms are silent no-ops.
func (h *Hub) SubmitInput(playerID string, input PlayerInput) string {
	h.Mu.Lock()
	rooms := make([]*Room, 0, len(h.Rooms))
	for _, r := range h.Rooms {
		rooms = append(rooms, r)
	}
	h.Mu.Unlock()

	for _, r := range rooms {
		r.Mu.Lock()
		p := r.playerByID(playerID)
		if p == nil {
			r.Mu.Unlock()
			continue
		}
		if !r.InProgress {
			r.Mu.Unlock()
			log.Debug().Str("player", playerID).Str("room", r.ID).Msg("input ignored, no round running")
			return ""
		}
		in := input
		p.Input = &in
		id := r.ID
		r.Mu.Unlock()
		return id
	}
	log.Debug().Str("player", playerID).Msg("input from player in no room")
	return ""
}

// Rooms lists active rooms for the lobby API.
func (h *Hub) RoomList() []RoomInfo {
	h.Mu.Lock()
	rooms := make([]*Room, 0, len(h.Rooms))
	for _, r := range h.Rooms {
		rooms = append(rooms, r)
	}
	h.Mu.Unlock()

	out := make([]RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		r.Mu.Lock()
		out = append(out, RoomInfo{
			ID:          r.ID,
			PlayerCount: len(r.Players),
			InProgress:  r.InProgress,
			CreatedAt:   r.CreatedAt,
		})
		r.Mu.Unlock()
	}
	return out
}

// CleanupEmptyRooms sweeps rooms that somehow lost all members without
// going through LeaveRoom (defends the registry against leaks).
func (h *Hub) CleanupEmptyRooms() {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	for id, r := range h.Rooms {
		r.Mu.Lock()
		empty := len(r.Players) == 0
		if empty {
			r.stopRoundLocked()
		}
		r.Mu.Unlock()
		if empty {
			delete(h.Rooms, id)
			log.Info().Str("room", id).Msg("swept empty room")
		}
	}
}
