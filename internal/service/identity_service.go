package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"rps_webapp/internal/domain"
	"rps_webapp/internal/logger"

	redis "github.com/redis/go-redis/v9"
)

const identityCacheTTL = 10 * time.Minute

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// IdentityService resolves a player's display name. Names are cached in
// Redis when a client is configured; cache errors fall through to the store.
type IdentityService struct {
	users UserLookup
	cache *redis.Client
	log   *slog.Logger
}

func NewIdentityService(users UserLookup, cache *redis.Client) *IdentityService {
	return &IdentityService{
		users: users,
		cache: cache,
		log:   logger.With("component", "identity"),
	}
}

func identityKey(playerID int64) string {
	return "identity:name:" + strconv.FormatInt(playerID, 10)
}

// DisplayName returns the player's name. An empty name is not an error here;
// the match layer rejects it with its own error.
func (s *IdentityService) DisplayName(ctx context.Context, playerID int64) (string, error) {
	if s.cache != nil {
		name, err := s.cache.Get(ctx, identityKey(playerID)).Result()
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.Warn("identity cache read failed", "user", playerID, "error", err)
		}
	}

	u, err := s.users.GetByID(ctx, playerID)
	if err != nil {
		return "", err
	}

	if s.cache != nil && u.DisplayName != "" {
		if err := s.cache.Set(ctx, identityKey(playerID), u.DisplayName, identityCacheTTL).Err(); err != nil {
			s.log.Warn("identity cache write failed", "user", playerID, "error", err)
		}
	}
	return u.DisplayName, nil
}

// Invalidate drops a cached name after the profile changed.
func (s *IdentityService) Invalidate(ctx context.Context, playerID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, identityKey(playerID)).Err(); err != nil {
		s.log.Warn("identity cache delete failed", "user", playerID, "error", err)
	}
}
