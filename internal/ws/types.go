package ws

const (
	// client - server
	MsgCreateRoom = "create_room"
	MsgJoinRoom   = "join_room"
	MsgSubmitMove = "submit_move"
	MsgLeaveRoom  = "leave_room"
	MsgPing       = "ping"

	// server - client; match events use the match.Event type names
	MsgReady        = "ready"
	MsgRoomJoined   = "room_joined"
	MsgMoveAccepted = "move_accepted"
	MsgRoomLeft     = "room_left"
	MsgError        = "error"
	MsgPong         = "pong"
)

// Message is the envelope for every frame in both directions. ID is unique
// per server event so clients can drop repeated deliveries.
type Message struct {
	Type    string `json:"type"`
	ID      string `json:"id,omitempty"`
	Payload any    `json:"payload,omitempty"`
}
