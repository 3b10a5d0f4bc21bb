package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tiketi/internal/seatmap"
	"tiketi/internal/services"
	"tiketi/internal/utils"
)

type selectProviderRequest struct {
	CompanyID int64 `json:"company_id"`
	TripID    int64 `json:"trip_id"`
}

// SelectProvider commits a trip choice, loads the vehicle, and moves the
// wizard to the seats stage.
func (h *Handler) SelectProvider(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}
	var req selectProviderRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.TripDetailService{Trips: h.Trips, RequestID: requestID(c)}
	vehicle, fallback, err := svc.SelectProvider(c.Request.Context(), sess, req.CompanyID, req.TripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	state := sessionState(sess)
	state["vehicle"] = vehicle
	state["fallback"] = fallback
	c.JSON(http.StatusOK, state)
}

// SeatMap renders the current vehicle layout with per-cell states.
func (h *Handler) SeatMap(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}
	snap := sess.Store.Snapshot()
	if snap.Vehicle == nil {
		RespondError(c, http.StatusConflict, "no vehicle loaded", nil)
		return
	}
	grid := seatmap.Build(snap.Vehicle.Configuration, snap.Vehicle.Seats, sess.Store.SelectedNumbers())
	c.JSON(http.StatusOK, gin.H{
		"session_id":   sess.ID,
		"stage":        sess.Wizard.Stage(),
		"grid":         grid,
		"total_amount": snap.TotalAmount,
	})
}

type toggleSeatRequest struct {
	Number string `json:"number"`
}

// ToggleSeat flips one seat in or out of the selection.
func (h *Handler) ToggleSeat(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}
	var req toggleSeatRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	req.Number = utils.TrimOrEmpty(req.Number)
	if req.Number == "" {
		RespondError(c, http.StatusBadRequest, "seat number is required", nil)
		return
	}

	selected, err := sess.Store.ToggleSeat(req.Number)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	state := sessionState(sess)
	state["seat"] = req.Number
	state["selected"] = selected
	c.JSON(http.StatusOK, state)
}
