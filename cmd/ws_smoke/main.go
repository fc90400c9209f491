// Command ws_smoke plays one full match against a running server with two
// local players.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"rps_webapp/internal/db"
	"rps_webapp/internal/domain"
	"rps_webapp/internal/game"
	"rps_webapp/internal/repository"
	"rps_webapp/internal/service"

	"github.com/gorilla/websocket"
)

type envelope struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	ur := repository.NewUserRepository(pool)
	ctx := context.Background()

	uA := smokeUser(ctx, ur, "smoke-a@example.com", "Smoke A")
	uB := smokeUser(ctx, ur, "smoke-b@example.com", "Smoke B")

	service.InitJWT(jwtSecret)
	connA := dial(port, uA.ID)
	defer connA.Close()
	connB := dial(port, uB.ID)
	defer connB.Close()

	send(connA, "create_room", nil)
	var created struct {
		Code        string `json:"code"`
		RoundsTotal int    `json:"rounds_total"`
	}
	decode(waitFor(connA, "room_created"), &created)
	log.Printf("room %s created, %d rounds", created.Code, created.RoundsTotal)

	send(connB, "join_room", map[string]string{"code": created.Code})
	waitFor(connB, "room_joined")
	waitFor(connA, "opponent_joined")

	for i := 0; i < created.RoundsTotal; i++ {
		send(connA, "submit_move", map[string]string{"code": created.Code, "move": game.Moves[i%3].String()})
		send(connB, "submit_move", map[string]string{"code": created.Code, "move": game.Rock.String()})

		var res struct {
			Round   int    `json:"round"`
			Outcome string `json:"outcome"`
		}
		decode(waitFor(connA, "round_result"), &res)
		waitFor(connB, "round_result")
		log.Printf("round %d: A %s", res.Round, res.Outcome)
	}

	var final map[string]any
	decode(waitFor(connA, "match_complete"), &final)
	log.Printf("A final: %v", final)
	waitFor(connB, "match_complete")

	log.Println("smoke test finished")
}

func smokeUser(ctx context.Context, ur *repository.UserRepository, email, name string) *domain.User {
	u, err := ur.GetByEmail(ctx, email)
	if err == nil {
		return u
	}
	if !errors.Is(err, repository.ErrNotFound) {
		log.Fatalf("get %s: %v", email, err)
	}
	u = &domain.User{Email: email, DisplayName: name}
	if err := ur.Create(ctx, u); err != nil {
		log.Fatalf("create %s: %v", email, err)
	}
	return u
}

func dial(port string, userID int64) *websocket.Conn {
	token, err := service.GenerateJWT(userID)
	if err != nil {
		log.Fatalf("gen token: %v", err)
	}
	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	url := fmt.Sprintf("ws://127.0.0.1:%s/ws?token=%s", port, token)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		log.Fatalf("dial user %d: %v", userID, err)
	}
	waitFor(conn, "ready")
	return conn
}

func send(conn *websocket.Conn, typ string, payload any) {
	if err := conn.WriteJSON(map[string]any{"type": typ, "payload": payload}); err != nil {
		log.Fatalf("write %s: %v", typ, err)
	}
}

func waitFor(conn *websocket.Conn, typ string) envelope {
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var msg envelope
		if err := conn.ReadJSON(&msg); err != nil {
			log.Fatalf("waiting for %s: %v", typ, err)
		}
		if msg.Type == "error" {
			log.Fatalf("server error while waiting for %s: %s", typ, msg.Payload)
		}
		if msg.Type == typ {
			return msg
		}
	}
}

func decode(msg envelope, dst any) {
	if err := json.Unmarshal(msg.Payload, dst); err != nil {
		log.Fatalf("decode %s: %v", msg.Type, err)
	}
}
