// Command issue_token creates (or finds) a local player and prints a token
// for it. Tokens in production come from the auth service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"rps_webapp/internal/db"
	"rps_webapp/internal/domain"
	"rps_webapp/internal/logger"
	"rps_webapp/internal/repository"
	"rps_webapp/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	email := flag.String("email", "tester@example.com", "player email")
	name := flag.String("name", "Tester", "display name")
	flag.Parse()

	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Fatal("JWT_SECRET not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	u, err := ensureUser(context.Background(), repository.NewUserRepository(pool), *email, *name)
	if err != nil {
		logger.Fatal("prepare user failed", "error", err)
	}

	service.InitJWT(secret)
	token, err := service.GenerateJWT(u.ID)
	if err != nil {
		logger.Fatal("failed to generate token", "error", err)
	}
	logger.Info("token issued", "user_id", u.ID, "display_name", u.DisplayName)
	fmt.Println(token)
}

func ensureUser(ctx context.Context, repo *repository.UserRepository, email, name string) (*domain.User, error) {
	u, err := repo.GetByEmail(ctx, email)
	if err == nil {
		if u.DisplayName != name {
			if err := repo.UpdateDisplayName(ctx, u.ID, name); err != nil {
				return nil, err
			}
			u.DisplayName = name
		}
		return u, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	u = &domain.User{Email: email, DisplayName: name}
	if err := repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
