package handlers

import (
	"net/http"
	"strconv"

	"rps_webapp/internal/domain"
	"rps_webapp/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	defaultLeaderboardLimit = 20
	maxLeaderboardLimit     = 100
)

type leaderboardEntry struct {
	Rank int `json:"rank"`
	*domain.PlayerStats
	WinRate float64 `json:"win_rate"`
}

// GetLeaderboard returns players ordered by matches won.
func (h *Handler) GetLeaderboard(c *gin.Context) {
	limit := defaultLeaderboardLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxLeaderboardLimit)
	}

	top, err := h.Stats.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		logger.Error("leaderboard query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get leaderboard"})
		return
	}

	entries := make([]leaderboardEntry, 0, len(top))
	for i, s := range top {
		entries = append(entries, leaderboardEntry{Rank: i + 1, PlayerStats: s, WinRate: s.WinRate()})
	}

	c.JSON(http.StatusOK, gin.H{
		"leaderboard": entries,
	})
}
