package servicecatalog

import (
	"context"
	"errors"

	"github.com/pitstop/oficina-api/internal/adapter/database"
	"github.com/pitstop/oficina-api/internal/domain/model"
	apperrors "github.com/pitstop/oficina-api/pkg/errors"
	"go.uber.org/zap"
)

// Repository define o acesso ao catálogo de serviços
type Repository interface {
	List(ctx context.Context) ([]model.Service, error)
	GetByID(ctx context.Context, id string) (*model.Service, error)
	Create(ctx context.Context, service *model.Service) error
	Update(ctx context.Context, id string, patch map[string]interface{}) (*model.Service, error)
	Delete(ctx context.Context, id string) error
}

// Service implementa as regras de negócio do catálogo de serviços
type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateInput são os dados de criação de serviço
type CreateInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"min=0"`
}

func (s *Service) List(ctx context.Context) ([]model.Service, error) {
	services, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.InternalServer("Não foi possível listar os serviços.", err)
	}
	if services == nil {
		services = []model.Service{}
	}
	return services, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*model.Service, error) {
	sv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.NotFound("Serviço não encontrado.", err)
		}
		return nil, apperrors.InternalServer("Não foi possível buscar o serviço.", err)
	}
	return sv, nil
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*model.Service, error) {
	sv := &model.Service{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
	}
	if err := s.repo.Create(ctx, sv); err != nil {
		s.logger.Error("falha ao criar serviço", zap.Error(err))
		return nil, apperrors.InternalServer("Não foi possível criar o serviço.", err)
	}
	return sv, nil
}

func (s *Service) Update(ctx context.Context, id string, patch map[string]interface{}) (*model.Service, error) {
	sv, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.NotFound("Serviço não encontrado.", err)
		}
		return nil, apperrors.InternalServer("Não foi possível atualizar o serviço.", err)
	}
	return sv, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			return apperrors.NotFound("Serviço não encontrado.", err)
		case errors.Is(err, database.ErrForeignKey):
			return apperrors.BadRequest("Não é possível excluir este serviço pois ele é utilizado em Ordens de Serviço.", err)
		default:
			return apperrors.InternalServer("Não foi possível deletar o serviço.", err)
		}
	}
	return nil
}
