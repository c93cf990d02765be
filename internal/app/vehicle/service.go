package vehicle

import (
	"context"
	"errors"

	"github.com/pitstop/oficina-api/internal/adapter/database"
	"github.com/pitstop/oficina-api/internal/domain/model"
	apperrors "github.com/pitstop/oficina-api/pkg/errors"
	"go.uber.org/zap"
)

// Repository define o acesso ao armazenamento de veículos
type Repository interface {
	List(ctx context.Context) ([]model.Vehicle, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Vehicle, error)
	GetByID(ctx context.Context, id string) (*model.Vehicle, error)
	Create(ctx context.Context, vehicle *model.Vehicle) error
	Update(ctx context.Context, id string, patch map[string]interface{}) (*model.Vehicle, error)
	Delete(ctx context.Context, id string) error
}

// Service implementa as regras de negócio de veículos
type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateInput são os dados de criação de veículo
type CreateInput struct {
	Plate   string `json:"plate" binding:"required"`
	Model   string `json:"model" binding:"required"`
	Brand   string `json:"brand"`
	Year    int    `json:"year"`
	Color   string `json:"color"`
	OwnerID string `json:"ownerId"`
}

func (s *Service) List(ctx context.Context) ([]model.Vehicle, error) {
	vehicles, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.InternalServer("Não foi possível listar os veículos.", err)
	}
	if vehicles == nil {
		vehicles = []model.Vehicle{}
	}
	return vehicles, nil
}

// ListByOwner retorna os veículos de um cliente
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]model.Vehicle, error) {
	vehicles, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.InternalServer("Não foi possível listar os veículos.", err)
	}
	if vehicles == nil {
		vehicles = []model.Vehicle{}
	}
	return vehicles, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*model.Vehicle, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.NotFound("Veículo não encontrado.", err)
		}
		return nil, apperrors.InternalServer("Não foi possível buscar o veículo.", err)
	}
	return v, nil
}

// Create registra um novo veículo. A placa é única e o ownerId precisa
// referenciar um cliente existente; ambas as regras são garantidas pelas
// constraints do banco e traduzidas aqui.
func (s *Service) Create(ctx context.Context, input CreateInput) (*model.Vehicle, error) {
	if input.OwnerID == "" {
		return nil, apperrors.BadRequest("O campo ownerId (ID do Cliente) é obrigatório.", nil)
	}

	v := &model.Vehicle{
		Plate:   input.Plate,
		Model:   input.Model,
		Brand:   input.Brand,
		Year:    input.Year,
		Color:   input.Color,
		OwnerID: input.OwnerID,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		switch {
		case errors.Is(err, database.ErrDuplicate):
			return nil, apperrors.Conflict("Já existe um veículo com esta placa.", err)
		case errors.Is(err, database.ErrForeignKey):
			return nil, apperrors.BadRequest("O ownerId informado não existe (Cliente não encontrado).", err)
		default:
			s.logger.Error("falha ao criar veículo", zap.String("plate", input.Plate), zap.Error(err))
			return nil, apperrors.InternalServer("Não foi possível criar o veículo.", err)
		}
	}
	return v, nil
}

func (s *Service) Update(ctx context.Context, id string, patch map[string]interface{}) (*model.Vehicle, error) {
	v, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			return nil, apperrors.NotFound("Veículo não encontrado.", err)
		case errors.Is(err, database.ErrDuplicate):
			return nil, apperrors.Conflict("Já existe um veículo com esta placa.", err)
		case errors.Is(err, database.ErrForeignKey):
			return nil, apperrors.BadRequest("O ownerId informado não existe (Cliente não encontrado).", err)
		default:
			return nil, apperrors.InternalServer("Não foi possível atualizar o veículo.", err)
		}
	}
	return v, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			return apperrors.NotFound("Veículo não encontrado.", err)
		case errors.Is(err, database.ErrForeignKey):
			return apperrors.BadRequest("Não é possível excluir este veículo pois ele possui ordens de serviço.", err)
		default:
			return apperrors.InternalServer("Não foi possível deletar o veículo.", err)
		}
	}
	return nil
}
