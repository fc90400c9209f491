package handlers

import (
	"errors"
	"net/http"

	"rps_webapp/internal/match"

	"github.com/gin-gonic/gin"
)

// GetRoom lets a player check a code before joining.
func (h *Handler) GetRoom(c *gin.Context) {
	snap, err := h.Rooms.Room(c.Param("code"))
	if errors.Is(err, match.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found", "code": match.ErrorCode(err)})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get room"})
		return
	}

	c.JSON(http.StatusOK, snap)
}
