// Package http wires the gin router for the booking service.
package http

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"tiketi/internal/http/handlers"
	"tiketi/internal/http/middleware"
)

// NewRouter builds the full route tree with the shared middleware stack.
func NewRouter(h *handlers.Handler) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies(nil)

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(h.Env.CORSOrigins))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(nethttp.StatusNotFound, gin.H{"error": "route not found"})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.POST("/auth/login", h.Login)

		sessions := api.Group("/sessions")
		{
			sessions.POST("", h.CreateSession)
			sessions.GET("/:id", h.GetSession)
			sessions.DELETE("/:id", h.DeleteSession)

			sessions.POST("/:id/search", h.Search)
			sessions.POST("/:id/provider", h.SelectProvider)
			sessions.GET("/:id/seatmap", h.SeatMap)
			sessions.POST("/:id/seats/toggle", h.ToggleSeat)
			sessions.POST("/:id/back", h.Back)
			sessions.POST("/:id/payment", h.Pay)
			sessions.POST("/:id/clear", h.ClearBooking)

			sessions.GET("/:id/receipt", h.Receipt)
			sessions.GET("/:id/ticket", h.TicketPDF)
			sessions.GET("/:id/receipt.pdf", h.ReceiptPDF)
		}

		admin := api.Group("/admin", middleware.RequireAdmin(h.Env.JWTSecret))
		{
			admin.GET("/bookings", h.AdminListBookings)
			admin.GET("/bookings/:reference", h.AdminGetBooking)
		}
	}

	return r
}
