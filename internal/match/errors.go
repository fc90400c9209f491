package match

import (
	"errors"

	"rps_webapp/internal/game"
)

var (
	ErrRoomNotFound          = errors.New("room not found")
	ErrRoomFull              = errors.New("room is full")
	ErrAlreadyInRoom         = errors.New("player already holds a seat in another room")
	ErrInvalidSeat           = errors.New("invalid seat")
	ErrMatchNotInProgress    = errors.New("match not in progress")
	ErrMissingIdentity       = errors.New("display name is required to play")
	ErrRegistryExhausted     = errors.New("could not allocate a room code")
	ErrTransportDisconnected = errors.New("transport disconnected")
)

// ErrorCode maps an error to the stable code sent to clients.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, ErrRoomFull):
		return "room_full"
	case errors.Is(err, ErrAlreadyInRoom):
		return "already_in_room"
	case errors.Is(err, ErrInvalidSeat):
		return "invalid_seat"
	case errors.Is(err, ErrMatchNotInProgress):
		return "match_not_in_progress"
	case errors.Is(err, ErrMissingIdentity):
		return "missing_identity"
	case errors.Is(err, ErrRegistryExhausted):
		return "registry_exhausted"
	case errors.Is(err, ErrTransportDisconnected):
		return "transport_disconnected"
	case errors.Is(err, game.ErrInvalidMove):
		return "invalid_move"
	default:
		return "internal"
	}
}

// ErrorMessage is the text shown to the player for err.
func ErrorMessage(err error) string {
	switch ErrorCode(err) {
	case "registry_exhausted", "internal":
		return "something went wrong, try again later"
	default:
		return err.Error()
	}
}
