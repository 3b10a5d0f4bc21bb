package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tiketi/internal/booking"
	"tiketi/internal/domain/models"
	"tiketi/internal/services"
)

type paymentRequest struct {
	FullName    string `json:"full_name"`
	IDNumber    string `json:"id_number"`
	MobilePhone string `json:"mobile_phone"`
	Method      string `json:"method"`
	PhoneNumber string `json:"phone_number"`
}

// Pay locks in the selection, charges through the gateway, and completes the
// booking. The wizard must already be at the payment stage; clients get there
// via the separate begin-payment transition baked into this handler when they
// are still on seats.
func (h *Handler) Pay(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}
	var req paymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	// seats to payment happens on the first payment attempt; a failed
	// attempt leaves the session at payment for a retry
	if sess.Wizard.Stage() == booking.StageSeats {
		if err := sess.Wizard.BeginPayment(); err != nil {
			RespondDomainError(c, err)
			return
		}
	}

	svc := services.PaymentService{Gateway: h.Gateway, Archive: h.Archive, RequestID: requestID(c)}
	data, err := svc.Process(c.Request.Context(), sess, services.PaymentInput{
		Customer: models.CustomerDetails{
			FullName:    req.FullName,
			IDNumber:    req.IDNumber,
			MobilePhone: req.MobilePhone,
		},
		Method: models.PaymentMethod(req.Method),
		Phone:  req.PhoneNumber,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	state := sessionState(sess)
	state["booking_reference"] = data.BookingReference
	c.JSON(http.StatusOK, state)
}
