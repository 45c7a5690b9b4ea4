package main // Entry point package

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-inventory/internal/config"
	"github.com/iliyamo/ticket-inventory/internal/database"
	"github.com/iliyamo/ticket-inventory/internal/handler"
	"github.com/iliyamo/ticket-inventory/internal/queue"
	"github.com/iliyamo/ticket-inventory/internal/reclaimer"
	"github.com/iliyamo/ticket-inventory/internal/repository"
	"github.com/iliyamo/ticket-inventory/internal/router"
	"github.com/iliyamo/ticket-inventory/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	showRepo := repository.NewShowRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	holdRepo := repository.NewHoldRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	userRepo := repository.NewUserRepo(db)

	holdSvc := service.NewHoldService(db, showRepo, seatRepo, holdRepo)
	bookingSvc := service.NewBookingService(db, seatRepo, holdRepo, bookingRepo)

	// The reclaimer is owned here: it starts with the process and observes
	// the same shutdown signal as the HTTP server.
	rec := reclaimer.New(db, seatRepo, holdRepo, cfg.ReclaimInterval)
	go rec.Run(ctx)

	// Booking log consumer; reconnects on broker failure for the life of
	// the process.
	go queue.StartBookingConsumer()

	e := echo.New()
	e.HideBanner = true
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}
	router.Register(e, cfg, config.LoadRateLimit(), rdb,
		handler.NewAuthHandler(cfg, userRepo),
		handler.NewShowHandler(showRepo, seatRepo),
		handler.NewHoldHandler(holdSvc, bookingSvc, showRepo),
	)

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutdown signal received")

	// Drain in-flight requests; their transactions run to completion or
	// roll back on their own.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
