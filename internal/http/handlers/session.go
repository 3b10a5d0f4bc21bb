package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tiketi/internal/booking"
	"tiketi/internal/utils"
)

// sessionState is the wizard view rendered after every state-changing call, so
// the client never needs a second round trip to know where it stands.
func sessionState(sess *booking.Session) gin.H {
	return gin.H{
		"session_id": sess.ID,
		"stage":      sess.Wizard.Stage(),
		"no_trips":   sess.Wizard.NoTripsFound(),
		"booking":    sess.Store.Snapshot(),
	}
}

// CreateSession opens a fresh booking session at the search stage.
func (h *Handler) CreateSession(c *gin.Context) {
	sess := h.Registry.Create()
	utils.LogEvent(requestID(c), "session", "create", "session="+sess.ID)
	c.JSON(http.StatusCreated, sessionState(sess))
}

// GetSession returns the current wizard state for polling clients.
func (h *Handler) GetSession(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}
	c.JSON(http.StatusOK, sessionState(sess))
}

// DeleteSession discards the session and everything in it.
func (h *Handler) DeleteSession(c *gin.Context) {
	id := c.Param("id")
	h.Registry.Delete(id)
	utils.LogEvent(requestID(c), "session", "delete", "session="+id)
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ClearBooking resets the session for a fresh booking after the receipt.
func (h *Handler) ClearBooking(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}
	sess.Wizard.Reset()
	utils.LogEvent(requestID(c), "session", "clear", "session="+sess.ID)
	c.JSON(http.StatusOK, sessionState(sess))
}

// Back performs the explicit backward transition of the current stage.
func (h *Handler) Back(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}
	if err := sess.Wizard.Back(); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionState(sess))
}
