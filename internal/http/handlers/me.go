package handlers

import (
	"errors"
	"net/http"

	"rps_webapp/internal/domain"
	"rps_webapp/internal/logger"
	"rps_webapp/internal/repository"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"display_name": user.DisplayName,
		"created_at":   user.CreatedAt,
	})
}

// MyStats returns the caller's totals; players without a finished match get zeros.
func (h *Handler) MyStats(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	stats, err := h.Stats.ForUser(c.Request.Context(), userID)
	if errors.Is(err, repository.ErrNotFound) {
		stats = &domain.PlayerStats{UserID: userID}
	} else if err != nil {
		logger.Error("stats query failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":    stats,
		"win_rate": stats.WinRate(),
	})
}
