package ws

import (
	"context"
	"net/http"
	"strings"

	"rps_webapp/internal/logger"
	"rps_webapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type HandlerOptions struct {
	// AllowedOrigin restricts the Origin header; empty allows any.
	AllowedOrigin string
	// MessageRate caps inbound messages per session per second; 0 disables it.
	MessageRate int
}

func HandleWS(hub *Hub, g Game, ids Identity, opts HandlerOptions) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if opts.AllowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == opts.AllowedOrigin
		},
	}

	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}

		userID, err := service.ParseJWT(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if hub.Connected(userID) {
			c.JSON(http.StatusConflict, gin.H{"error": "session already open"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade failed", "user_id", userID, "error", err)
			return
		}

		client := NewClient(userID, conn, hub, g, ids, opts.MessageRate)
		if err := hub.Register(client); err != nil {
			// lost a race with another connection for the same player
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
			conn.Close()
			return
		}

		client.log.Info("session opened")
		// blocks until the connection ends
		client.Run(context.WithoutCancel(c.Request.Context()))
	}
}
