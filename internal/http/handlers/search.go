package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tiketi/internal/domain/models"
	"tiketi/internal/services"
)

// Search runs the trip search for the session and advances the wizard when
// trips are found.
func (h *Handler) Search(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}
	var criteria models.SearchCriteria
	if !BindJSONOrError(c, &criteria) {
		return
	}

	svc := services.SearchService{Trips: h.Trips, RequestID: requestID(c)}
	result, err := svc.Search(c.Request.Context(), sess, criteria)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	state := sessionState(sess)
	state["trips"] = result.Data.Trips
	state["fallback"] = result.Fallback
	c.JSON(http.StatusOK, state)
}
