package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pitstop/oficina-api/internal/adapter/database"
	"go.uber.org/zap"
)

// HealthHandler expõe os endpoints de verificação de saúde
type HealthHandler struct {
	db     *database.Database
	logger *zap.Logger
}

func NewHealthHandler(db *database.Database, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// Root responde a mensagem de boas-vindas da API
func (h *HealthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "API da Oficina rodando!")
}

// HealthCheck verifica a saúde da aplicação e a conexão com o banco
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	dbStatus := "ok"
	status := http.StatusOK

	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.logger.Error("health check: banco indisponível", zap.Error(err))
		dbStatus = "unavailable"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   "ok",
		"database": dbStatus,
	})
}
