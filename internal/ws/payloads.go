package ws

import "encoding/json"

// client → server
type inbound struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RoomPayload struct {
	Code string `json:"code"`
}

type MovePayload struct {
	Code string `json:"code"`
	Move string `json:"move"` // rock | paper | scissors
}

// server → client
type RoomJoinedPayload struct {
	Code string `json:"code"`
	Seat int    `json:"seat"`
}

type MoveAcceptedPayload struct {
	Code string `json:"code"`
	Move string `json:"move"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
