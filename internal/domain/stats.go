package domain

import "time"

// MatchOutcome - результат матча для одного игрока
type MatchOutcome string

const (
	MatchWon   MatchOutcome = "won"
	MatchLost  MatchOutcome = "lost"
	MatchDrawn MatchOutcome = "drawn"
)

// OutcomeOf decides the match from round counts.
func OutcomeOf(wins, losses int) MatchOutcome {
	switch {
	case wins > losses:
		return MatchWon
	case wins < losses:
		return MatchLost
	default:
		return MatchDrawn
	}
}

// PlayerStats - накопленная статистика игрока
type PlayerStats struct {
	UserID        int64     `db:"user_id" json:"user_id"`
	DisplayName   string    `db:"display_name" json:"display_name,omitempty"`
	MatchesPlayed int       `db:"matches_played" json:"matches_played"`
	MatchesWon    int       `db:"matches_won" json:"matches_won"`
	MatchesLost   int       `db:"matches_lost" json:"matches_lost"`
	MatchesDrawn  int       `db:"matches_drawn" json:"matches_drawn"`
	RoundsWon     int       `db:"rounds_won" json:"rounds_won"`
	RoundsLost    int       `db:"rounds_lost" json:"rounds_lost"`
	RoundsDrawn   int       `db:"rounds_drawn" json:"rounds_drawn"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// WinRate is matches won over matches played, 0 when nothing was played.
func (s PlayerStats) WinRate() float64 {
	if s.MatchesPlayed == 0 {
		return 0
	}
	return float64(s.MatchesWon) / float64(s.MatchesPlayed)
}
