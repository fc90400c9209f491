package game

import (
	"errors"
	"strings"
)

var ErrInvalidMove = errors.New("invalid move")

// Move is one of the three hand shapes.
type Move string

const (
	Rock     Move = "rock"
	Paper    Move = "paper"
	Scissors Move = "scissors"
)

// Moves lists every valid move in table order.
var Moves = [3]Move{Rock, Paper, Scissors}

// ParseMove accepts any casing and surrounding whitespace.
func ParseMove(s string) (Move, error) {
	m := Move(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", ErrInvalidMove
	}
	return m, nil
}

func (m Move) Valid() bool {
	switch m {
	case Rock, Paper, Scissors:
		return true
	}
	return false
}

func (m Move) String() string {
	return string(m)
}

// Outcome of comparing move A against move B.
type Outcome int

const (
	Draw Outcome = iota
	AWins
	BWins
)

// Seat-oriented names: A is always seat 1 in a room.
const (
	Player1Wins = AWins
	Player2Wins = BWins
)

func (o Outcome) String() string {
	switch o {
	case AWins:
		return "player1_wins"
	case BWins:
		return "player2_wins"
	default:
		return "draw"
	}
}

// Invert swaps the winning side. Draw stays Draw.
func Invert(o Outcome) Outcome {
	switch o {
	case AWins:
		return BWins
	case BWins:
		return AWins
	default:
		return Draw
	}
}

// Result is a single player's view of an outcome.
type Result string

const (
	ResultWin  Result = "win"
	ResultLose Result = "lose"
	ResultDraw Result = "draw"
)

// ResultFor returns the outcome as seen by side A (asA=true) or side B.
func ResultFor(o Outcome, asA bool) Result {
	if !asA {
		o = Invert(o)
	}
	switch o {
	case AWins:
		return ResultWin
	case BWins:
		return ResultLose
	default:
		return ResultDraw
	}
}
