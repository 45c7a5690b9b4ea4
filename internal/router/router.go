// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/ticket-inventory/internal/config"
	"github.com/iliyamo/ticket-inventory/internal/handler"
	"github.com/iliyamo/ticket-inventory/internal/middleware"
)

// Register wires every route of the service onto the provided Echo
// instance.  Read-only inventory endpoints are public; everything that
// mutates state sits behind JWT authentication, and the hold/confirm pair
// additionally goes through the Redis rate limiter since those are the
// endpoints a checkout burst hits.
func Register(e *echo.Echo, cfg config.Config, rlCfg config.RateLimitConfig, rdb *redis.Client,
	auth *handler.AuthHandler, shows *handler.ShowHandler, holds *handler.HoldHandler) {

	e.GET("/healthz", handler.Health)

	// Auth endpoints live under /v1/auth and need no token.
	a := e.Group("/v1/auth")
	a.POST("/register", auth.Register)
	a.POST("/login", auth.Login)

	// Public browse endpoints.
	e.GET("/v1/shows", shows.ListShows)
	e.GET("/v1/shows/:id/seats/summary", shows.SeatSummary)
	e.GET("/v1/shows/:id/seats/available", shows.AvailableSeats)

	// Protected endpoints: every mutation requires a valid access token.
	protected := e.Group("/v1")
	protected.Use(middleware.JWTAuth(cfg.JWTSecret))
	protected.GET("/me", auth.Me)
	protected.POST("/shows", shows.CreateShow)

	limited := protected.Group("")
	limited.Use(middleware.NewTokenBucket(rlCfg, rdb))
	limited.POST("/shows/:id/holds", holds.HoldSeats)
	limited.POST("/holds/:id/confirm", holds.Confirm)
}
