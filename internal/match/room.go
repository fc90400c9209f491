package match

import (
	"sync"
	"time"

	"rps_webapp/internal/game"
)

// Seat is one of the two player slots of a room.
type Seat int

const (
	Seat1 Seat = 1
	Seat2 Seat = 2
)

func (s Seat) Valid() bool {
	return s == Seat1 || s == Seat2
}

func (s Seat) Other() Seat {
	if s == Seat1 {
		return Seat2
	}
	return Seat1
}

func (s Seat) index() int {
	return int(s) - 1
}

type State string

const (
	StateWaiting    State = "waiting_for_opponent"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateAbandoned  State = "abandoned"
)

// Terminal reports whether the room is only waiting for teardown.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateAbandoned
}

type Player struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Tally counts rounds from one seat's perspective.
type Tally struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// Mirror returns the opponent's view of t.
func (t Tally) Mirror() Tally {
	return Tally{Wins: t.Losses, Losses: t.Wins, Draws: t.Draws}
}

func (t *Tally) add(o game.Outcome) {
	switch o {
	case game.Player1Wins:
		t.Wins++
	case game.Player2Wins:
		t.Losses++
	default:
		t.Draws++
	}
}

// Room is a two-seat match. All fields are guarded by mu; the tally is kept
// from seat 1's perspective.
type Room struct {
	Code string

	mu              sync.Mutex
	seats           [2]*Player
	pending         [2]game.Move
	state           State
	roundsTotal     int
	roundsCompleted int
	tally           Tally
	createdAt       time.Time
}

func newRoom(code string, creator Player, roundsTotal int) *Room {
	return &Room{
		Code:        code,
		seats:       [2]*Player{&creator, nil},
		state:       StateWaiting,
		roundsTotal: roundsTotal,
		createdAt:   time.Now(),
	}
}

// seatOf returns the seat held by playerID. Caller holds r.mu.
func (r *Room) seatOf(playerID int64) (Seat, bool) {
	for i, p := range r.seats {
		if p != nil && p.ID == playerID {
			return Seat(i + 1), true
		}
	}
	return 0, false
}

// player returns the occupant of seat or nil. Caller holds r.mu.
func (r *Room) player(seat Seat) *Player {
	if !seat.Valid() {
		return nil
	}
	return r.seats[seat.index()]
}

// Snapshot is a point-in-time copy of a room without pending move values.
type Snapshot struct {
	Code            string    `json:"code"`
	State           State     `json:"state"`
	Seat1           *Player   `json:"seat1,omitempty"`
	Seat2           *Player   `json:"seat2,omitempty"`
	RoundsTotal     int       `json:"rounds_total"`
	RoundsCompleted int       `json:"rounds_completed"`
	MovesSubmitted  int       `json:"moves_submitted"`
	Tally           Tally     `json:"tally"`
	CreatedAt       time.Time `json:"created_at"`
}

func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Snapshot{
		Code:            r.Code,
		State:           r.state,
		RoundsTotal:     r.roundsTotal,
		RoundsCompleted: r.roundsCompleted,
		Tally:           r.tally,
		CreatedAt:       r.createdAt,
	}
	if p := r.seats[0]; p != nil {
		cp := *p
		s.Seat1 = &cp
	}
	if p := r.seats[1]; p != nil {
		cp := *p
		s.Seat2 = &cp
	}
	for _, m := range r.pending {
		if m != "" {
			s.MovesSubmitted++
		}
	}
	return s
}
