package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pitstop/oficina-api/internal/adapter/database"
	"github.com/pitstop/oficina-api/internal/domain/model"
	apperrors "github.com/pitstop/oficina-api/pkg/errors"
	"github.com/pitstop/oficina-api/pkg/security"
	"go.uber.org/zap"
)

// UserRepository define a interface para acesso a dados de usuário
type UserRepository interface {
	CreateWithClient(ctx context.Context, user *model.UserEntity, client *model.Client) error
	GetByCredentials(ctx context.Context, email, password string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// Service gerencia cadastro e autenticação de usuários
type Service struct {
	keyManager *security.KeyManager
	users      UserRepository
	tokenTTL   time.Duration
	logger     *zap.Logger
}

func NewService(keyManager *security.KeyManager, users UserRepository, tokenTTL time.Duration, logger *zap.Logger) *Service {
	if tokenTTL <= 0 {
		tokenTTL = 8 * time.Hour
	}
	return &Service{
		keyManager: keyManager,
		users:      users,
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

// SignupInput são os dados de auto-cadastro
type SignupInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Signup cria o registro de autenticação (User) e o registro de negócio
// (Client) em uma única transação. O papel é sempre CLIENT no auto-cadastro.
func (s *Service) Signup(ctx context.Context, input SignupInput) (*model.User, *model.Client, error) {
	user := &model.UserEntity{
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: input.Password,
		Role:     model.RoleClient,
	}
	client := &model.Client{
		Name:    user.Name,
		Email:   user.Email,
		Phone:   input.Phone,
		Address: input.Address,
	}

	if err := s.users.CreateWithClient(ctx, user, client); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, nil, apperrors.Conflict("Este email já está cadastrado.", err)
		}
		s.logger.Error("falha no cadastro de usuário", zap.String("email", user.Email), zap.Error(err))
		return nil, nil, apperrors.InternalServer("Não foi possível realizar o cadastro.", err)
	}

	s.logger.Info("usuário cadastrado",
		zap.String("user_id", user.ID),
		zap.String("client_id", client.ID))
	return user.Public(), client, nil
}

// Login autentica um usuário e gera um token JWT
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByCredentials(ctx, email, password)
	if err != nil {
		s.logger.Warn("falha na autenticação", zap.String("email", email))
		return "", apperrors.Unauthorized("Credenciais inválidas", err)
	}

	token, err := s.keyManager.GenerateToken(user.ID, user.Role, s.tokenTTL)
	if err != nil {
		s.logger.Error("falha ao gerar token", zap.String("user_id", user.ID), zap.Error(err))
		return "", apperrors.InternalServer("", err)
	}

	s.logger.Info("login bem-sucedido", zap.String("user_id", user.ID))
	return token, nil
}
