package http

import (
	"rps_webapp/internal/config"
	"rps_webapp/internal/http/handlers"
	"rps_webapp/internal/http/middleware"
	"rps_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the components the routes are served from.
type Deps struct {
	Handler  *handlers.Handler
	Health   *handlers.HealthHandler
	Hub      *ws.Hub
	Game     ws.Game
	Identity ws.Identity
}

func RegisterRoutes(r *gin.Engine, d Deps, cfg *config.Config) {
	// Health checks (no rate limiting)
	r.GET("/health", d.Health.Health)
	r.GET("/healthz", d.Health.Liveness)
	r.GET("/readyz", d.Health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(v1, d.Handler)

	r.GET("/ws", ws.HandleWS(d.Hub, d.Game, d.Identity, ws.HandlerOptions{
		AllowedOrigin: cfg.AllowedOrigin,
		MessageRate:   cfg.WSMessageRateLimit,
	}))
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler) {
	api.GET("/rooms/:code", h.GetRoom)
	api.GET("/leaderboard", h.GetLeaderboard)

	me := api.Group("/me")
	me.Use(middleware.JWT())
	{
		me.GET("", h.Me)
		me.GET("/stats", h.MyStats)
	}
}

// CORS mirrors the request origin, or only ALLOWED_ORIGIN when it is set.
func CORS(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && (allowedOrigin == "" || origin == allowedOrigin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
