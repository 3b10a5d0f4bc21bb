package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tiketi/internal/config"
)

// CORS allows the configured front-end origins. An empty list falls back to
// the default local origins; cors.New panics when every origin is disabled, so
// a zero-value config must never reach it.
func CORS(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = config.DefaultCORSOrigins()
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
