package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"rps_webapp/internal/db"
	"rps_webapp/internal/domain"
	"rps_webapp/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

func connectDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Migrate(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return pool
}

// newUser creates a player with a unique email so runs don't collide.
func newUser(t *testing.T, repo *repository.UserRepository, name string) *domain.User {
	t.Helper()
	u := &domain.User{
		Email:       fmt.Sprintf("%s-%d@it.example", name, time.Now().UnixNano()),
		DisplayName: name,
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}
