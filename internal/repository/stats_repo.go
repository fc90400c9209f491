package repository

import (
	"context"

	"rps_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepository struct {
	db *pgxpool.Pool
}

func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// RecordMatch adds one finished match to the player's totals.
func (r *StatsRepository) RecordMatch(ctx context.Context, userID int64, wins, losses, draws int) error {
	outcome := domain.OutcomeOf(wins, losses)

	won, lost, drawn := 0, 0, 0
	switch outcome {
	case domain.MatchWon:
		won = 1
	case domain.MatchLost:
		lost = 1
	default:
		drawn = 1
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO player_stats
			(user_id, matches_played, matches_won, matches_lost, matches_drawn,
			 rounds_won, rounds_lost, rounds_drawn, updated_at)
		 VALUES ($1, 1, $2, $3, $4, $5, $6, $7, now())
		 ON CONFLICT (user_id) DO UPDATE SET
			matches_played = player_stats.matches_played + 1,
			matches_won    = player_stats.matches_won + EXCLUDED.matches_won,
			matches_lost   = player_stats.matches_lost + EXCLUDED.matches_lost,
			matches_drawn  = player_stats.matches_drawn + EXCLUDED.matches_drawn,
			rounds_won     = player_stats.rounds_won + EXCLUDED.rounds_won,
			rounds_lost    = player_stats.rounds_lost + EXCLUDED.rounds_lost,
			rounds_drawn   = player_stats.rounds_drawn + EXCLUDED.rounds_drawn,
			updated_at     = now()`,
		userID, won, lost, drawn, wins, losses, draws,
	)
	return err
}

func (r *StatsRepository) GetByUser(ctx context.Context, userID int64) (*domain.PlayerStats, error) {
	row := r.db.QueryRow(ctx,
		`SELECT s.user_id, u.display_name, s.matches_played, s.matches_won, s.matches_lost,
				s.matches_drawn, s.rounds_won, s.rounds_lost, s.rounds_drawn, s.updated_at
		 FROM player_stats s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.user_id = $1`,
		userID,
	)

	s, err := scanStats(row)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	return s, err
}

// Top returns the leaderboard ordered by matches won, then rounds won.
func (r *StatsRepository) Top(ctx context.Context, limit int) ([]*domain.PlayerStats, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT s.user_id, u.display_name, s.matches_played, s.matches_won, s.matches_lost,
				s.matches_drawn, s.rounds_won, s.rounds_lost, s.rounds_drawn, s.updated_at
		 FROM player_stats s
		 JOIN users u ON u.id = s.user_id
		 ORDER BY s.matches_won DESC, s.rounds_won DESC, s.user_id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.PlayerStats
	for rows.Next() {
		s, err := scanStats(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

func scanStats(row pgx.Row) (*domain.PlayerStats, error) {
	var s domain.PlayerStats
	err := row.Scan(
		&s.UserID,
		&s.DisplayName,
		&s.MatchesPlayed,
		&s.MatchesWon,
		&s.MatchesLost,
		&s.MatchesDrawn,
		&s.RoundsWon,
		&s.RoundsLost,
		&s.RoundsDrawn,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
