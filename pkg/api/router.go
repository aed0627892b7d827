package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestObserver records HTTP request metrics.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// NewRouter wires the API, health and metrics endpoints.
func NewRouter(h *Handler, health *HealthHandler, metrics http.Handler, obs RequestObserver, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger, obs))

	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}

	v1 := r.Group("/api/v1")
	{
		v1.GET("/schema", h.Schema)
		v1.POST("/assessments", h.CreateAssessment)
		v1.GET("/assessments", h.ListAssessments)
		v1.GET("/assessments/:id", h.GetAssessment)
	}
	return r
}

func requestLogger(logger *slog.Logger, obs RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		if obs != nil {
			obs.ObserveRequest(c.Request.Method, route, c.Writer.Status(), elapsed)
		}
		logger.Debug("http request",
			slog.String("method", c.Request.Method),
			slog.String("route", route),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("elapsed", elapsed),
		)
	}
}
