package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rps_webapp/internal/config"
	"rps_webapp/internal/domain"
	"rps_webapp/internal/http/handlers"
	"rps_webapp/internal/match"
	"rps_webapp/internal/service"
	"rps_webapp/internal/ws"

	"github.com/gin-gonic/gin"
)

type noStats struct{}

func (noStats) ForUser(ctx context.Context, id int64) (*domain.PlayerStats, error) {
	return &domain.PlayerStats{UserID: id}, nil
}

func (noStats) Leaderboard(ctx context.Context, limit int) ([]*domain.PlayerStats, error) {
	return nil, nil
}

type noUsers struct{}

func (noUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return &domain.User{ID: id, DisplayName: "p"}, nil
}

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	service.InitJWT("routes-test-secret")

	hub := ws.NewHub()
	coord := match.NewCoordinator(match.NewRegistry(), hub, nil, match.DefaultConfig())
	t.Cleanup(coord.Close)

	cfg := &config.Config{APIRateLimit: 100, APIRateWindow: time.Minute, WSMessageRateLimit: 10}
	r := gin.New()
	r.Use(CORS(""))
	RegisterRoutes(r, Deps{
		Handler: handlers.NewHandler(coord, noStats{}, noUsers{}),
		Health:  handlers.NewHealthHandler("test", nil),
		Hub:     hub,
		Game:    coord,
	}, cfg)
	return r
}

func TestRoutes(t *testing.T) {
	r := newEngine(t)
	token, _ := service.GenerateJWT(5)

	tests := []struct {
		path   string
		auth   bool
		status int
	}{
		{"/healthz", false, http.StatusOK},
		{"/readyz", false, http.StatusOK},
		{"/metrics", false, http.StatusOK},
		{"/api/v1/leaderboard", false, http.StatusOK},
		{"/api/v1/rooms/ABCDEF", false, http.StatusNotFound},
		{"/api/v1/me/stats", false, http.StatusUnauthorized},
		{"/api/v1/me/stats", true, http.StatusOK},
		{"/api/v1/me", true, http.StatusOK},
		{"/ws", false, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		if tt.auth {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tt.status {
			t.Errorf("GET %s (auth=%v) = %d, want %d", tt.path, tt.auth, w.Code, tt.status)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newEngine(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/leaderboard", nil)
	req.Header.Set("Origin", "https://play.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://play.example" {
		t.Errorf("allow origin = %q", got)
	}
}
