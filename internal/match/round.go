package match

import (
	"context"

	"rps_webapp/internal/game"
)

// SubmitMove records move for seat in the current round of room code.
func (c *Coordinator) SubmitMove(ctx context.Context, code string, seat Seat, move game.Move) error {
	if !move.Valid() {
		return game.ErrInvalidMove
	}
	room, err := c.rooms.Get(code)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.player(seat) == nil {
		return ErrInvalidSeat
	}
	return c.submitLocked(room, seat, move)
}

// SubmitPlayerMove is SubmitMove addressed by player instead of seat.
func (c *Coordinator) SubmitPlayerMove(ctx context.Context, code string, playerID int64, move game.Move) error {
	if !move.Valid() {
		return game.ErrInvalidMove
	}
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
	return c.submitLocked(room, seat, move)
}

// submitLocked fills the seat's slot and, when both slots are set, resolves
// the round in the same critical section. A seat may replace its own move
// until the round resolves.
func (c *Coordinator) submitLocked(room *Room, seat Seat, move game.Move) error {
	if room.state != StateInProgress {
		return ErrMatchNotInProgress
	}

	room.pending[seat.index()] = move
	if room.pending[0] == "" || room.pending[1] == "" {
		return nil
	}
	c.resolveLocked(room)
	return nil
}

func (c *Coordinator) resolveLocked(room *Room) {
	m1, m2 := room.pending[0], room.pending[1]
	room.pending = [2]game.Move{}

	outcome := game.Resolve(m1, m2)
	room.tally.add(outcome)
	room.roundsCompleted++
	roundsResolved.Inc()

	round := room.roundsCompleted
	remaining := room.roundsTotal - room.roundsCompleted
	p1, p2 := room.seats[0], room.seats[1]

	c.log.Debug("round resolved", "room", room.Code, "round", round, "seat1", m1, "seat2", m2, "outcome", outcome.String())

	c.notify(p1.ID, Event{
		Type: EventRoundResult,
		Code: room.Code,
		Payload: RoundResultPayload{
			Code:            room.Code,
			Round:           round,
			YourMove:        m1,
			OpponentMove:    m2,
			Outcome:         game.ResultFor(outcome, true),
			RoundsRemaining: remaining,
		},
	})
	c.notify(p2.ID, Event{
		Type: EventRoundResult,
		Code: room.Code,
		Payload: RoundResultPayload{
			Code:            room.Code,
			Round:           round,
			YourMove:        m2,
			OpponentMove:    m1,
			Outcome:         game.ResultFor(outcome, false),
			RoundsRemaining: remaining,
		},
	})

	if remaining <= 0 {
		c.completeLocked(room)
	}
}

func (c *Coordinator) completeLocked(room *Room) {
	room.state = StateCompleted
	c.rooms.release(room.Code)
	matchesFinished.WithLabelValues(string(StateCompleted)).Inc()

	p1, p2 := room.seats[0], room.seats[1]
	t1, t2 := room.tally, room.tally.Mirror()

	c.log.Info("match complete", "room", room.Code,
		"seat1_wins", t1.Wins, "seat1_losses", t1.Losses, "draws", t1.Draws)

	c.notify(p1.ID, matchCompleteEvent(room.Code, t1))
	c.notify(p2.ID, matchCompleteEvent(room.Code, t2))

	c.report(room.Code, p1, t1)
	c.report(room.Code, p2, t2)

	c.rooms.scheduleRemoval(room.Code, c.cfg.GracePeriod)
}

func matchCompleteEvent(code string, t Tally) Event {
	return Event{
		Type: EventMatchComplete,
		Code: code,
		Payload: MatchCompletePayload{
			Code:        code,
			FinalWins:   t.Wins,
			FinalLosses: t.Losses,
			FinalDraws:  t.Draws,
		},
	}
}
