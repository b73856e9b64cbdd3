package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"studyroom-backend/internal/mw"
	"studyroom-backend/internal/seats"
)

// RouterOptions tunes the middleware stack.
type RouterOptions struct {
	RateLimitPerSec float64
	CacheTTL        time.Duration
}

// NewRouter creates and configures a new Gin router.
func NewRouter(svc *seats.Service, opts RouterOptions) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(svc)

	if opts.RateLimitPerSec <= 0 {
		opts.RateLimitPerSec = 20
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Second
	}

	rateLimiter := mw.RateLimiter(rate.Limit(opts.RateLimitPerSec), int(opts.RateLimitPerSec))

	// Seat maps change on every transition, so the list cache stays short.
	cacheStore := cache.New(opts.CacheTTL, 10*opts.CacheTTL)
	caching := mw.Cache(cacheStore, opts.CacheTTL)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter, mw.RequireOrg())
	{
		api.GET("/seat-assignments", caching, handler.ListSeats)
		api.POST("/seat-assignments", handler.AssignSeat)
		api.PUT("/seat-assignments/:seat_number/status", handler.SetSeatStatus)
		api.DELETE("/seat-assignments/:seat_number", handler.RemoveSeat)
	}

	return r
}
