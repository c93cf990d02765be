package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pitstop/oficina-api/internal/app/auth"
	"github.com/pitstop/oficina-api/internal/infra/middleware"
	"go.uber.org/zap"
)

// AuthHandler expõe cadastro, login e consulta de identidade
type AuthHandler struct {
	service *auth.Service
	logger  *zap.Logger
}

func NewAuthHandler(service *auth.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

// Signup cria o usuário de autenticação e o cliente vinculado
func (h *AuthHandler) Signup(c *gin.Context) {
	var input auth.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user, client, err := h.service.Signup(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Usuário e Cliente criados com sucesso!",
		"user":    user,
		"client":  client,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login autentica as credenciais e devolve o token JWT
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Me devolve a identidade autenticada anexada pelo middleware de autorização
func (h *AuthHandler) Me(c *gin.Context) {
	subject := middleware.SubjectFrom(c)
	if subject == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuário não autenticado."})
		return
	}
	c.JSON(http.StatusOK, subject)
}
