package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tiketi/internal/booking"
	"tiketi/internal/domain"
	"tiketi/internal/http/middleware"
)

// RespondDomainError maps the domain error taxonomy to HTTP statuses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrStaleFetch):
		RespondError(c, http.StatusConflict, err.Error(), nil)
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, err.Error(), nil)
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error(), nil)
	case domain.IsConflict(err):
		RespondError(c, http.StatusConflict, err.Error(), nil)
	case domain.IsUpstream(err):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":      err.Error(),
			"retryable":  domain.IsRetryableUpstream(err),
			"request_id": middleware.GetRequestID(c),
		})
	default:
		RespondError(c, http.StatusInternalServerError, "internal server error", err)
	}
}
