package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pitstop/oficina-api/internal/infra/metrics"
	"go.uber.org/zap"
)

// MetricsMiddleware coleta métricas de cada requisição
type MetricsMiddleware struct {
	metrics *metrics.APIMetrics
	logger  *zap.Logger
}

// NewMetricsMiddleware cria um novo middleware de métricas
func NewMetricsMiddleware(apiMetrics *metrics.APIMetrics, logger *zap.Logger) *MetricsMiddleware {
	return &MetricsMiddleware{
		metrics: apiMetrics,
		logger:  logger,
	}
}

// Middleware registra métricas para cada requisição
func (m *MetricsMiddleware) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		method := c.Request.Method

		m.metrics.RequestStarted(path, method)
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		m.metrics.RequestCompleted(path, method, status, time.Since(start))

		if c.Writer.Status() >= 500 {
			m.metrics.RequestError(path, method, "server_error")
		} else if c.Writer.Status() >= 400 {
			m.metrics.RequestError(path, method, "client_error")
		}
	}
}
