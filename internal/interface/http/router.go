package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/singhHarcharan/trip-planner-agent/internal/domain/auth"
	"github.com/singhHarcharan/trip-planner-agent/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
// authSvc is only consulted when auth is enabled.
func NewRouter(cfg *config.Config, handler *Handler, authSvc auth.Service) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.CORSOrigins),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/healthz", handler.Healthz)

	api := router.Group("/api/v1")
	api.Use(rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger))
	if cfg.Auth.Enabled && authSvc != nil {
		api.Use(authMiddleware(authSvc))
	}
	{
		api.POST("/trips/plan", handler.PlanTrip)
		api.POST("/trips/extract", handler.ExtractTrip)
		api.GET("/weather/dates", handler.WeatherDates)
		api.GET("/holidays", handler.Holidays)
		api.POST("/hotel-preferences/index", handler.IndexPreferences)
		api.GET("/hotel-preferences", handler.HotelPreferences)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}
