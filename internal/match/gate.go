package match

import (
	"context"
	"errors"
	"strings"
)

func identify(playerID int64, displayName string) (Player, error) {
	name := strings.TrimSpace(displayName)
	if playerID == 0 || name == "" {
		return Player{}, ErrMissingIdentity
	}
	return Player{ID: playerID, Name: name}, nil
}

// CreateRoom opens a room with the caller in seat 1 and returns its code.
// Repeating the call while that room still waits for an opponent returns the
// same code.
func (c *Coordinator) CreateRoom(ctx context.Context, playerID int64, displayName string) (string, error) {
	p, err := identify(playerID, displayName)
	if err != nil {
		return "", err
	}

	room, err := c.rooms.Create(p, c.cfg.RoundsPerMatch)
	if errors.Is(err, ErrAlreadyInRoom) {
		if code, ok := c.reopenWaiting(playerID); ok {
			return code, nil
		}
		return "", err
	}
	if err != nil {
		c.log.Error("create room failed", "user", playerID, "error", err)
		return "", err
	}
	defer room.mu.Unlock()

	c.log.Info("room created", "room", room.Code, "user", playerID)
	c.notify(playerID, roomCreatedEvent(room))
	return room.Code, nil
}

// reopenWaiting re-announces a room the player created and is still waiting in.
func (c *Coordinator) reopenWaiting(playerID int64) (string, bool) {
	room := c.rooms.roomOf(playerID)
	if room == nil {
		return "", false
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.state != StateWaiting {
		return "", false
	}
	if seat, ok := room.seatOf(playerID); !ok || seat != Seat1 {
		return "", false
	}
	c.notify(playerID, roomCreatedEvent(room))
	return room.Code, true
}

// JoinRoom seats the caller in seat 2 and starts the match. A player who
// already sits in this room gets their existing seat back.
func (c *Coordinator) JoinRoom(ctx context.Context, code string, playerID int64, displayName string) (Seat, error) {
	p, err := identify(playerID, displayName)
	if err != nil {
		return 0, err
	}

	room, err := c.rooms.Get(code)
	if err != nil {
		return 0, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.state.Terminal() {
		return 0, ErrRoomNotFound
	}

	if seat, ok := room.seatOf(playerID); ok {
		// retry after a lost acknowledgement
		if room.state == StateInProgress {
			c.notify(playerID, opponentJoinedEvent(room, seat))
		}
		return seat, nil
	}

	if room.seats[Seat2.index()] != nil {
		return 0, ErrRoomFull
	}
	if err := c.rooms.claim(playerID, room.Code); err != nil {
		return 0, err
	}

	room.seats[Seat2.index()] = &p
	room.state = StateInProgress

	c.log.Info("opponent joined", "room", room.Code, "user", playerID)
	c.notify(room.seats[Seat1.index()].ID, opponentJoinedEvent(room, Seat1))
	c.notify(playerID, opponentJoinedEvent(room, Seat2))
	return Seat2, nil
}

// Leave is a client-initiated cancel. Leaving a completed match is a no-op.
func (c *Coordinator) Leave(ctx context.Context, code string, playerID int64) error {
	room, err := c.rooms.Get(code)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	seat, ok := room.seatOf(playerID)
	if !ok {
		return ErrInvalidSeat
	}
	c.abandon(room, seat)
	return nil
}

// PlayerDisconnected is called by the transport when a session is gone.
func (c *Coordinator) PlayerDisconnected(ctx context.Context, playerID int64) {
	room := c.rooms.roomOf(playerID)
	if room == nil {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if seat, ok := room.seatOf(playerID); ok {
		c.abandon(room, seat)
	}
}

func roomCreatedEvent(room *Room) Event {
	return Event{
		Type: EventRoomCreated,
		Code: room.Code,
		Payload: RoomCreatedPayload{
			Code:        room.Code,
			RoundsTotal: room.roundsTotal,
		},
	}
}

// opponentJoinedEvent is addressed to the player in seat. Caller holds room.mu.
func opponentJoinedEvent(room *Room, seat Seat) Event {
	var name string
	if opp := room.player(seat.Other()); opp != nil {
		name = opp.Name
	}
	return Event{
		Type: EventOpponentJoined,
		Code: room.Code,
		Payload: OpponentJoinedPayload{
			Code:         room.Code,
			Seat:         seat,
			OpponentName: name,
			RoundsTotal:  room.roundsTotal,
		},
	}
}
