package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pitstop/oficina-api/internal/infra/metrics"
	"github.com/pitstop/oficina-api/pkg/config"
	"github.com/pitstop/oficina-api/pkg/security"
	"go.uber.org/zap"
)

// Middleware contém todos os middlewares da aplicação
type Middleware struct {
	logger             *zap.Logger
	authMiddleware     *AuthMiddleware
	recoveryMiddleware *RecoveryMiddleware
	securityMiddleware *SecurityMiddleware
	tracingMiddleware  *TracingMiddleware
	metricsMiddleware  *MetricsMiddleware
}

// NewMiddleware cria um novo conjunto de middlewares
func NewMiddleware(logger *zap.Logger, keyManager *security.KeyManager, apiMetrics *metrics.APIMetrics, cfg *config.Config) *Middleware {
	return &Middleware{
		logger:             logger,
		authMiddleware:     NewAuthMiddleware(keyManager, logger),
		recoveryMiddleware: NewRecoveryMiddleware(logger),
		securityMiddleware: NewSecurityMiddleware(cfg.Auth.AllowedOrigins, logger),
		tracingMiddleware:  NewTracingMiddleware(logger, cfg.Tracing.ServiceName),
		metricsMiddleware:  NewMetricsMiddleware(apiMetrics, logger),
	}
}

// Authorize retorna o middleware de autorização configurado com a lista de papéis
func (m *Middleware) Authorize(roles ...string) gin.HandlerFunc {
	return m.authMiddleware.Authorize(roles...)
}

// Recovery middleware para recuperação de pânicos
func (m *Middleware) Recovery() gin.HandlerFunc {
	return m.recoveryMiddleware.Recovery()
}

// SecurityHeaders middleware para adicionar cabeçalhos de segurança
func (m *Middleware) SecurityHeaders() gin.HandlerFunc {
	return m.securityMiddleware.Headers()
}

// CORS middleware para configurar CORS
func (m *Middleware) CORS() gin.HandlerFunc {
	return m.securityMiddleware.CORS()
}

// Metrics middleware para coleta de métricas
func (m *Middleware) Metrics() gin.HandlerFunc {
	return m.metricsMiddleware.Middleware()
}

// Tracing retorna o middleware de tracing
func (m *Middleware) Tracing() gin.HandlerFunc {
	return m.tracingMiddleware.Middleware()
}

// Logger middleware para logging de requisições
func (m *Middleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method

		m.logger.Info("request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("ip", clientIP),
		)
	}
}
