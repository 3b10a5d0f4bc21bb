package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// AdminListBookings lists archived bookings, newest first.
func (h *Handler) AdminListBookings(c *gin.Context) {
	if !h.Archive.Enabled() {
		RespondError(c, http.StatusServiceUnavailable, "booking archive is not configured", nil)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	bookings, err := h.Archive.List(limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// AdminGetBooking fetches one archived booking by reference.
func (h *Handler) AdminGetBooking(c *gin.Context) {
	if !h.Archive.Enabled() {
		RespondError(c, http.StatusServiceUnavailable, "booking archive is not configured", nil)
		return
	}
	booked, err := h.Archive.GetByReference(c.Param("reference"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booked})
}
