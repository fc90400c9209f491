package service

import (
	"context"
	"errors"
	"fmt"

	"rps_webapp/internal/domain"
)

var ErrInvalidTally = errors.New("invalid tally")

type StatsStore interface {
	RecordMatch(ctx context.Context, userID int64, wins, losses, draws int) error
	GetByUser(ctx context.Context, userID int64) (*domain.PlayerStats, error)
	Top(ctx context.Context, limit int) ([]*domain.PlayerStats, error)
}

// StatsService is the persistence side of finished matches.
type StatsService struct {
	store StatsStore
}

func NewStatsService(store StatsStore) *StatsService {
	return &StatsService{store: store}
}

// RecordMatchResult adds a finished match for playerID.
func (s *StatsService) RecordMatchResult(ctx context.Context, playerID int64, wins, losses, draws int) error {
	if playerID <= 0 || wins < 0 || losses < 0 || draws < 0 {
		return ErrInvalidTally
	}
	if err := s.store.RecordMatch(ctx, playerID, wins, losses, draws); err != nil {
		return fmt.Errorf("record match for user %d: %w", playerID, err)
	}
	return nil
}

func (s *StatsService) ForUser(ctx context.Context, playerID int64) (*domain.PlayerStats, error) {
	return s.store.GetByUser(ctx, playerID)
}

func (s *StatsService) Leaderboard(ctx context.Context, limit int) ([]*domain.PlayerStats, error) {
	return s.store.Top(ctx, limit)
}
