package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tiketi/internal/booking"
	"tiketi/internal/config"
	"tiketi/internal/http/middleware"
	"tiketi/internal/repositories"
	"tiketi/internal/services"
	"tiketi/internal/upstream"
)

// Handler carries the wired dependencies for all endpoints.
type Handler struct {
	Env      config.Env
	Registry *booking.Registry
	Trips    *upstream.Client
	Gateway  services.PaymentGateway
	Archive  repositories.BookingArchiveRepository
}

func New(env config.Env, registry *booking.Registry, trips *upstream.Client, gateway services.PaymentGateway, archive repositories.BookingArchiveRepository) *Handler {
	return &Handler{
		Env:      env,
		Registry: registry,
		Trips:    trips,
		Gateway:  gateway,
		Archive:  archive,
	}
}

// RespondError sends a standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"error":      message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["details"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures the body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "request body is required", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

func requestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}

// session resolves the :id path parameter; a nil result means the response has
// already been written.
func (h *Handler) session(c *gin.Context) *booking.Session {
	sess, err := h.Registry.Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return nil
	}
	return sess
}
