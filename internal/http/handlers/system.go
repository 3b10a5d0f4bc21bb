package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health reports service status plus the state of optional dependencies.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"time":     time.Now().UTC().Format(time.RFC3339),
		"sessions": h.Registry.Len(),
		"archive":  h.Archive.Enabled(),
	})
}
