package handlers

import (
	"context"

	"rps_webapp/internal/domain"
	"rps_webapp/internal/match"
)

type RoomLookup interface {
	Room(code string) (match.Snapshot, error)
}

type StatsReader interface {
	ForUser(ctx context.Context, playerID int64) (*domain.PlayerStats, error)
	Leaderboard(ctx context.Context, limit int) ([]*domain.PlayerStats, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Handler struct {
	Rooms RoomLookup
	Stats StatsReader
	Users UserReader
}

func NewHandler(rooms RoomLookup, stats StatsReader, users UserReader) *Handler {
	return &Handler{
		Rooms: rooms,
		Stats: stats,
		Users: users,
	}
}

// getUserID извлекает user_id из контекста Gin
func getUserID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
