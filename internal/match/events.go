package match

import "rps_webapp/internal/game"

type EventType string

// server → client
const (
	EventRoomCreated    EventType = "room_created"
	EventOpponentJoined EventType = "opponent_joined"
	EventRoundResult    EventType = "round_result"
	EventMatchComplete  EventType = "match_complete"
	EventOpponentLeft   EventType = "opponent_left"
)

type Event struct {
	Type    EventType
	Code    string
	Payload any
}

// Notifier delivers events to a player's session.
//
// Notify is called while the room lock is held so that events reach each
// player in the order they were produced. Implementations must not block and
// must not call back into the Coordinator.
type Notifier interface {
	Notify(playerID int64, ev Event)
}

type NotifierFunc func(playerID int64, ev Event)

func (f NotifierFunc) Notify(playerID int64, ev Event) {
	f(playerID, ev)
}

type RoomCreatedPayload struct {
	Code        string `json:"code"`
	RoundsTotal int    `json:"rounds_total"`
}

type OpponentJoinedPayload struct {
	Code         string `json:"code"`
	Seat         Seat   `json:"seat"`
	OpponentName string `json:"opponent_name"`
	RoundsTotal  int    `json:"rounds_total"`
}

type RoundResultPayload struct {
	Code            string      `json:"code"`
	Round           int         `json:"round"`
	YourMove        game.Move   `json:"your_move"`
	OpponentMove    game.Move   `json:"opponent_move"`
	Outcome         game.Result `json:"outcome"`
	RoundsRemaining int         `json:"rounds_remaining"`
}

type MatchCompletePayload struct {
	Code        string `json:"code"`
	FinalWins   int    `json:"final_wins"`
	FinalLosses int    `json:"final_losses"`
	FinalDraws  int    `json:"final_draws"`
}

type OpponentLeftPayload struct {
	Code string `json:"code"`
}
