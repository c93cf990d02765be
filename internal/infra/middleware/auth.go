package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pitstop/oficina-api/internal/domain/model"
	"github.com/pitstop/oficina-api/pkg/security"
	"go.uber.org/zap"
)

// SubjectKey é a chave do contexto gin onde a identidade autenticada fica
// disponível para os handlers
const SubjectKey = "subject"

// AuthMiddleware autentica a requisição: extrai o bearer token, verifica
// a assinatura e a validade e aplica a lista de papéis permitidos. Não
// faz nenhuma consulta ao banco.
type AuthMiddleware struct {
	keyManager *security.KeyManager
	logger     *zap.Logger
}

// NewAuthMiddleware cria uma nova instância do middleware de autenticação
func NewAuthMiddleware(keyManager *security.KeyManager, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		keyManager: keyManager,
		logger:     logger,
	}
}

// Authorize autentica a requisição e verifica se o papel do sujeito está
// na lista informada
func (m *AuthMiddleware) Authorize(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token não fornecido."})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mal formatado."})
			return
		}

		claims, err := m.keyManager.VerifyToken(parts[1])
		if err != nil {
			m.logger.Warn("token rejeitado", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido."})
			return
		}

		subject := &model.Subject{
			SubjectID: claims.UserID,
			Role:      claims.Role,
		}

		if len(allowed) > 0 && !allowed[subject.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Acesso negado."})
			return
		}

		c.Set(SubjectKey, subject)
		c.Next()
	}
}

// SubjectFrom recupera a identidade autenticada do contexto da requisição
func SubjectFrom(c *gin.Context) *model.Subject {
	value, exists := c.Get(SubjectKey)
	if !exists {
		return nil
	}
	subject, ok := value.(*model.Subject)
	if !ok {
		return nil
	}
	return subject
}
