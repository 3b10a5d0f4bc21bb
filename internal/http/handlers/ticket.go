package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tiketi/internal/services"
)

// Receipt returns the completed booking as JSON for the receipt screen.
func (h *Handler) Receipt(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}
	snap := sess.Store.Snapshot()
	if snap.BookingReference == "" {
		RespondError(c, http.StatusConflict, "booking not completed", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": sess.ID,
		"stage":      sess.Wizard.Stage(),
		"booking":    snap,
	})
}

// TicketPDF streams the boarding ticket for a completed booking.
func (h *Handler) TicketPDF(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}
	svc := services.TicketService{RequestID: requestID(c)}
	pdf, filename, err := svc.GenerateTicket(sess.Store.Snapshot())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	servePDF(c, pdf, filename)
}

// ReceiptPDF streams the payment receipt for a completed booking.
func (h *Handler) ReceiptPDF(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}
	svc := services.TicketService{RequestID: requestID(c)}
	pdf, filename, err := svc.GenerateReceipt(sess.Store.Snapshot())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	servePDF(c, pdf, filename)
}

func servePDF(c *gin.Context, pdf []byte, filename string) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
