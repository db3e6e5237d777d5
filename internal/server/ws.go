package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	. "DeepInvaders/internal/game"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// writeWait bounds every socket write. Broadcasts run under the room lock,
// so a peer that stops draining its TCP buffer must time out instead of
// stalling the room's tick loop.
const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// client is one websocket connection. Writes are serialized through mu;
// gorilla connections do not allow concurrent writers.
type client struct {
	conn     *websocket.Conn
	mu       sync.Mutex
	playerID string
}

func (c *client) send(msg outboundMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("type", msg.Type).Msg("marshal outbound frame")
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Debug().Err(err).Str("player", c.playerID).Msg("set write deadline failed")
		_ = c.conn.Close()
		return
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		// A timed-out or broken write means the peer is gone; closing the
		// connection unblocks the read loop, which tears the player down.
		log.Debug().Err(err).Str("player", c.playerID).Msg("write failed")
		_ = c.conn.Close()
	}
}

// SocketServer owns the connection registry and implements the simulation's
// event sink: room-scoped events fan out to every member connection. Event
// callbacks arrive while the room lock is held, so nothing here calls back
// into the hub.
type SocketServer struct {
	mu       sync.Mutex
	hub      *Hub
	byPlayer map[string]*client
	byRoom   map[string]map[*client]struct{}
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		byPlayer: map[string]*client{},
		byRoom:   map[string]map[*client]struct{}{},
	}
}

// SetHub wires the hub in after construction; the hub itself needs the
// socket server as its event sink, so the two are built in sequence.
func (s *SocketServer) SetHub(h *Hub) { s.hub = h }

func (s *SocketServer) register(c *client) {
	s.mu.Lock()
	s.byPlayer[c.playerID] = c
	s.mu.Unlock()
}

func (s *SocketServer) joinRoom(c *client, roomID string) {
	s.mu.Lock()
	if s.byRoom[roomID] == nil {
		s.byRoom[roomID] = map[*client]struct{}{}
	}
	s.byRoom[roomID][c] = struct{}{}
	s.mu.Unlock()
}

func (s *SocketServer) unregister(c *client) {
	s.mu.Lock()
	delete(s.byPlayer, c.playerID)
	for roomID, members := range s.byRoom {
		delete(members, c)
		if len(members) == 0 {
			delete(s.byRoom, roomID)
		}
	}
	s.mu.Unlock()
}

func (s *SocketServer) dropRoom(roomID string) {
	s.mu.Lock()
	delete(s.byRoom, roomID)
	s.mu.Unlock()
}

// broadcast sends one frame to every connection in the room.
func (s *SocketServer) broadcast(roomID string, msg outboundMessage) {
	s.mu.Lock()
	members := make([]*client, 0, len(s.byRoom[roomID]))
	for c := range s.byRoom[roomID] {
		members = append(members, c)
	}
	s.mu.Unlock()

	for _, c := range members {
		c.send(msg)
	}
}

/* --------------------------- game.Events ---------------------------- */

func (s *SocketServer) GameState(roomID string, gs *GameState) {
	s.broadcast(roomID, outboundMessage{Type: "game_state", Payload: gs})
}

func (s *SocketServer) WaveComplete(roomID string, ev WaveCompleteEvent) {
	s.broadcast(roomID, outboundMessage{Type: "wave_complete", Payload: ev})
}

func (s *SocketServer) WaveStarted(roomID string, ev WaveStartedEvent) {
	s.broadcast(roomID, outboundMessage{Type: "wave_started", Payload: ev})
}

func (s *SocketServer) GameEnded(roomID string, ev GameEndedEvent) {
	s.broadcast(roomID, outboundMessage{Type: "game_ended", Payload: ev})
}

func (s *SocketServer) RoomUpdate(roomID string, snap RoomSnapshot) {
	s.broadcast(roomID, outboundMessage{Type: "room_update", Payload: snap})
}

func (s *SocketServer) PlayerLeft(roomID, playerID string) {
	s.broadcast(roomID, outboundMessage{Type: "player_left", Payload: playerLeftMsg{RoomID: roomID, PlayerID: playerID}})
}

/* ---------------------------- Connection ----------------------------- */

// ServeWS upgrades the request and runs the read loop until the peer goes
// away, then removes the player from any room they were in.
func (s *SocketServer) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		playerID = RandId("player")
	}
	c := &client{conn: conn, playerID: playerID}
	s.register(c)
	log.Info().Str("player", playerID).Msg("player connected")

	defer func() {
		s.unregister(c)
		emptied := s.hub.LeaveRoom(playerID)
		for _, roomID := range emptied {
			if s.hub.GetRoom(roomID) == nil {
				s.dropRoom(roomID)
			}
		}
		_ = conn.Close()
		log.Info().Str("player", playerID).Msg("player disconnected")
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.send(outboundMessage{Type: "error", Payload: errorMsg{Message: "malformed message"}})
			continue
		}
		s.dispatch(c, msg)
	}
}

func (s *SocketServer) dispatch(c *client, msg inboundMessage) {
	switch msg.Type {
	case "create_room":
		var p createRoomPayload
		_ = json.Unmarshal(msg.Payload, &p)
		room := s.hub.CreateRoom(c.playerID, p.Name)
		s.joinRoom(c, room.ID)
		c.send(outboundMessage{Type: "room_created", Payload: roomCreatedMsg{
			RoomID:   room.ID,
			PlayerID: c.playerID,
			Room:     room.Snapshot(),
		}})

	case "join_room":
		var p joinRoomPayload
		_ = json.Unmarshal(msg.Payload, &p)
		if err := s.hub.JoinRoom(p.RoomID, c.playerID, p.Name); err != nil {
			c.send(outboundMessage{Type: "error", Payload: errorMsg{Message: err.Error()}})
			return
		}
		s.joinRoom(c, p.RoomID)
		room := s.hub.GetRoom(p.RoomID)
		c.send(outboundMessage{Type: "room_joined", Payload: roomJoinedMsg{
			RoomID:   p.RoomID,
			PlayerID: c.playerID,
			Room:     room.Snapshot(),
		}})

	case "player_ready":
		var p playerReadyPayload
		_ = json.Unmarshal(msg.Payload, &p)
		if !s.hub.SetPlayerReady(p.RoomID, c.playerID, p.Ready) {
			c.send(outboundMessage{Type: "error", Payload: errorMsg{Message: "not in room"}})
		}

	case "start_game":
		var p startGamePayload
		_ = json.Unmarshal(msg.Payload, &p)
		if !s.hub.AllPlayersReady(p.RoomID) {
			c.send(outboundMessage{Type: "error", Payload: errorMsg{Message: "not all players are ready"}})
			return
		}
		if err := s.hub.StartRound(p.RoomID, c.playerID); err != nil {
			c.send(outboundMessage{Type: "error", Payload: errorMsg{Message: err.Error()}})
			return
		}
		s.broadcast(p.RoomID, outboundMessage{Type: "game_started", Payload: gameStartedMsg{RoomID: p.RoomID}})

	case "player_input":
		// Malformed input decodes to all-false, which is a harmless no-op.
		var p playerInputPayload
		_ = json.Unmarshal(msg.Payload, &p)
		s.hub.SubmitInput(c.playerID, PlayerInput{
			Left:  p.Left,
			Right: p.Right,
			Fire:  p.Fire,
			Time:  p.Time,
		})

	case "leave_room":
		emptied := s.hub.LeaveRoom(c.playerID)
		s.mu.Lock()
		for _, members := range s.byRoom {
			delete(members, c)
		}
		s.mu.Unlock()
		for _, roomID := range emptied {
			if s.hub.GetRoom(roomID) == nil {
				s.dropRoom(roomID)
			}
		}

	default:
		c.send(outboundMessage{Type: "error", Payload: errorMsg{Message: "unknown message type"}})
	}
}
