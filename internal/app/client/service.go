package client

import (
	"context"
	"errors"

	"github.com/pitstop/oficina-api/internal/adapter/database"
	"github.com/pitstop/oficina-api/internal/domain/model"
	apperrors "github.com/pitstop/oficina-api/pkg/errors"
	"go.uber.org/zap"
)

// Repository define o acesso ao armazenamento de clientes
type Repository interface {
	List(ctx context.Context, search string) ([]model.Client, error)
	GetByID(ctx context.Context, id string) (*model.Client, error)
	GetByUserID(ctx context.Context, userID string) (*model.Client, error)
	Create(ctx context.Context, client *model.Client) error
	Update(ctx context.Context, id string, patch map[string]interface{}) (*model.Client, error)
	Delete(ctx context.Context, id string) error
}

// Service implementa as regras de negócio de clientes
type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateInput são os dados de criação de cliente
type CreateInput struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	UserID  string `json:"userId"`
}

// List retorna os clientes, com busca opcional sobre nome e telefone
func (s *Service) List(ctx context.Context, search string) ([]model.Client, error) {
	clients, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, apperrors.InternalServer("Não foi possível listar os clientes.", err)
	}
	if clients == nil {
		clients = []model.Client{}
	}
	return clients, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*model.Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.NotFound("Cliente não encontrado.", err)
		}
		return nil, apperrors.InternalServer("Não foi possível buscar o cliente.", err)
	}
	return c, nil
}

// FindByUserID resolve o cliente vinculado ao sujeito autenticado.
// Retorna nil (sem erro) quando o sujeito não possui cliente vinculado.
func (s *Service) FindByUserID(ctx context.Context, userID string) (*model.Client, error) {
	c, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, apperrors.InternalServer("Não foi possível buscar o cliente.", err)
	}
	return c, nil
}

// Create registra um novo cliente. Quando o sujeito tem papel CLIENT, o
// vínculo userId é forçado para o próprio sujeito.
func (s *Service) Create(ctx context.Context, input CreateInput, subject *model.Subject) (*model.Client, error) {
	c := &model.Client{
		Name:    input.Name,
		Phone:   input.Phone,
		Email:   input.Email,
		Address: input.Address,
		UserID:  input.UserID,
	}
	if subject != nil && !subject.IsAdmin() {
		c.UserID = subject.SubjectID
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("falha ao criar cliente", zap.Error(err))
		return nil, apperrors.InternalServer("Não foi possível criar o cliente.", err)
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, id string, patch map[string]interface{}) (*model.Client, error) {
	c, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.NotFound("Cliente não encontrado.", err)
		}
		return nil, apperrors.InternalServer("Não foi possível atualizar o cliente.", err)
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			return apperrors.NotFound("Cliente não encontrado.", err)
		case errors.Is(err, database.ErrForeignKey):
			return apperrors.BadRequest("Não é possível excluir este cliente pois ele possui veículos ou ordens de serviço.", err)
		default:
			return apperrors.InternalServer("Não foi possível deletar o cliente.", err)
		}
	}
	return nil
}
