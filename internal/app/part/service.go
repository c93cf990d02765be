package part

import (
	"context"
	"errors"

	"github.com/pitstop/oficina-api/internal/adapter/database"
	"github.com/pitstop/oficina-api/internal/domain/model"
	apperrors "github.com/pitstop/oficina-api/pkg/errors"
	"go.uber.org/zap"
)

// Repository define o acesso ao catálogo de peças
type Repository interface {
	List(ctx context.Context) ([]model.Part, error)
	GetByID(ctx context.Context, id string) (*model.Part, error)
	Create(ctx context.Context, part *model.Part) error
	Update(ctx context.Context, id string, patch map[string]interface{}) (*model.Part, error)
	Delete(ctx context.Context, id string) error
}

// Service implementa as regras de negócio do catálogo de peças
type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateInput são os dados de criação de peça
type CreateInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"min=0"`
	Stock       int     `json:"stock" binding:"min=0"`
}

func (s *Service) List(ctx context.Context) ([]model.Part, error) {
	parts, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.InternalServer("Não foi possível listar as peças.", err)
	}
	if parts == nil {
		parts = []model.Part{}
	}
	return parts, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*model.Part, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.NotFound("Peça não encontrada.", err)
		}
		return nil, apperrors.InternalServer("Não foi possível buscar a peça.", err)
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*model.Part, error) {
	p := &model.Part{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("falha ao criar peça", zap.Error(err))
		return nil, apperrors.InternalServer("Não foi possível criar a peça.", err)
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, patch map[string]interface{}) (*model.Part, error) {
	p, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.NotFound("Peça não encontrada.", err)
		}
		return nil, apperrors.InternalServer("Não foi possível atualizar a peça.", err)
	}
	return p, nil
}

// Delete remove a peça; peças referenciadas por ordens de serviço são
// protegidas pela chave estrangeira
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			return apperrors.NotFound("Peça não encontrada.", err)
		case errors.Is(err, database.ErrForeignKey):
			return apperrors.BadRequest("Não é possível excluir esta peça pois ela é utilizada em Ordens de Serviço.", err)
		default:
			return apperrors.InternalServer("Não foi possível deletar a peça.", err)
		}
	}
	return nil
}
