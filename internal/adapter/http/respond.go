package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/pitstop/oficina-api/pkg/errors"
	"go.uber.org/zap"
)

// respondError mapeia o erro da camada de serviço para o status HTTP e o
// corpo JSON {"error": mensagem}. Erros não classificados viram 500 com
// mensagem genérica; o detalhe fica apenas no log.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var apiErr *apperrors.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code >= http.StatusInternalServerError {
			logger.Error("erro interno",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
		}
		c.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
		return
	}

	logger.Error("erro não classificado",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor."})
}

// respondBindError responde 400 para corpos de requisição inválidos
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
}
