package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"tiketi/internal/booking"
	intconfig "tiketi/internal/config"
	router "tiketi/internal/http"
	"tiketi/internal/http/handlers"
	"tiketi/internal/repositories"
	"tiketi/internal/services"
	"tiketi/internal/upstream"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db := intconfig.ConnectDB(env.MySQLDSN)
	defer intconfig.CloseDB()

	archive := repositories.BookingArchiveRepository{DB: db}
	if archive.Enabled() {
		if err := archive.EnsureTable(); err != nil {
			log.Printf("warning: ensure booking_archive table failed: %v", err)
		}
	}

	registry := booking.NewRegistry(env.SessionTTL)
	defer registry.Close()

	trips := upstream.NewClient(env.UpstreamBaseURL, env.UpstreamFallback)
	trips.SearchTimeout = env.SearchTimeout
	trips.DetailTimeout = env.DetailTimeout

	gateway := services.SimulatedGateway{Delay: env.PaymentDelay}

	h := handlers.New(env, registry, trips, gateway, archive)
	r := router.NewRouter(h)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("booking service listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly.")
}
