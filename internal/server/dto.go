package server

import (
	"encoding/json"

	. "DeepInvaders/internal/game"
)

/* ----------------------------- Inbound ------------------------------ */

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type createRoomPayload struct {
	Name string `json:"name"`
}

type joinRoomPayload struct {
	RoomID string `json:"roomId"`
	Name   string `json:"name"`
}

type playerReadyPayload struct {
	RoomID string `json:"roomId"`
	Ready  bool   `json:"ready"`
}

type startGamePayload struct {
	RoomID string `json:"roomId"`
}

type playerInputPayload struct {
	Left  bool  `json:"left"`
	Right bool  `json:"right"`
	Fire  bool  `json:"fire"`
	Time  int64 `json:"time"`
}

/* ----------------------------- Outbound ----------------------------- */

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type roomCreatedMsg struct {
	RoomID   string       `json:"roomId"`
	PlayerID string       `json:"playerId"`
	Room     RoomSnapshot `json:"room"`
}

type roomJoinedMsg struct {
	RoomID   string       `json:"roomId"`
	PlayerID string       `json:"playerId"`
	Room     RoomSnapshot `json:"room"`
}

type errorMsg struct {
	Message string `json:"message"`
}

type gameStartedMsg struct {
	RoomID string `json:"roomId"`
}

type playerLeftMsg struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}
