package order

import (
	"context"
	"errors"
	"time"

	"github.com/pitstop/oficina-api/internal/adapter/database"
	"github.com/pitstop/oficina-api/internal/domain/model"
	apperrors "github.com/pitstop/oficina-api/pkg/errors"
	"go.uber.org/zap"
)

// Repository define o acesso às ordens de serviço
type Repository interface {
	List(ctx context.Context, filters database.OrderFilters) ([]model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	Create(ctx context.Context, order *model.Order) error
	Update(ctx context.Context, id string, patch map[string]interface{}) (*model.Order, error)
	Delete(ctx context.Context, id string) error
	UpsertPartUsage(ctx context.Context, orderID, partID string, quantity int) (*model.PartUsage, error)
	CreateServiceUsage(ctx context.Context, orderID, serviceID string) (*model.ServiceUsage, error)
	DeletePartUsage(ctx context.Context, usageID string) error
	DeleteServiceUsage(ctx context.Context, usageID string) error
}

// ClientStore resolve clientes durante a validação de criação de ordens
type ClientStore interface {
	GetByID(ctx context.Context, id string) (*model.Client, error)
}

// VehicleStore resolve veículos durante a validação de criação de ordens
type VehicleStore interface {
	GetByID(ctx context.Context, id string) (*model.Vehicle, error)
}

// Service implementa as regras de negócio de ordens de serviço
type Service struct {
	repo     Repository
	clients  ClientStore
	vehicles VehicleStore
	logger   *zap.Logger
}

func NewService(repo Repository, clients ClientStore, vehicles VehicleStore, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		clients:  clients,
		vehicles: vehicles,
		logger:   logger,
	}
}

// CreateInput são os dados de abertura de uma ordem de serviço
type CreateInput struct {
	Description string `json:"description" binding:"required"`
	ClientID    string `json:"clientId" binding:"required"`
	VehicleID   string `json:"vehicleId" binding:"required"`
}

// UpdateStatusInput são os dados da transição de status
type UpdateStatusInput struct {
	Status     model.OrderStatus `json:"status" binding:"required"`
	EndDate    *time.Time        `json:"endDate"`
	TotalValue *float64          `json:"totalValue"`
}

// Create valida o cliente e o veículo e abre a ordem com status OPEN.
// O veículo precisa pertencer ao cliente informado.
func (s *Service) Create(ctx context.Context, input CreateInput) (*model.Order, error) {
	if _, err := s.clients.GetByID(ctx, input.ClientID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.BadRequest("Cliente não encontrado.", err)
		}
		return nil, apperrors.InternalServer("Não foi possível criar a ordem de serviço.", err)
	}

	vehicle, err := s.vehicles.GetByID(ctx, input.VehicleID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.BadRequest("O veículo informado não pertence a este cliente.", err)
		}
		return nil, apperrors.InternalServer("Não foi possível criar a ordem de serviço.", err)
	}
	if vehicle.OwnerID != input.ClientID {
		return nil, apperrors.BadRequest("O veículo informado não pertence a este cliente.", nil)
	}

	o := &model.Order{
		Description: input.Description,
		ClientID:    input.ClientID,
		VehicleID:   input.VehicleID,
		Status:      model.StatusOpen,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		s.logger.Error("falha ao criar ordem de serviço", zap.Error(err))
		return nil, apperrors.InternalServer("Não foi possível criar a ordem de serviço.", err)
	}
	return o, nil
}

// List retorna as ordens filtradas por status/cliente/veículo
func (s *Service) List(ctx context.Context, filters database.OrderFilters) ([]model.Order, error) {
	if filters.Status != "" && !filters.Status.Valid() {
		return nil, apperrors.BadRequest("Status inválido.", nil)
	}
	orders, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, apperrors.InternalServer("Não foi possível listar as ordens de serviço.", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*model.Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.NotFound("Ordem de serviço não encontrada.", err)
		}
		return nil, apperrors.InternalServer("Não foi possível buscar a ordem de serviço.", err)
	}
	return o, nil
}

// ListByClient retorna as ordens de um cliente específico
func (s *Service) ListByClient(ctx context.Context, clientID string) ([]model.Order, error) {
	return s.List(ctx, database.OrderFilters{ClientID: clientID})
}

// UpdateStatus aplica a transição de status da ordem. Ao finalizar, o
// valor total é recalculado a partir das peças e serviços associados e
// sobrescreve qualquer valor enviado pelo chamador; a data de término é
// preenchida com o momento atual quando não informada.
func (s *Service) UpdateStatus(ctx context.Context, id string, input UpdateStatusInput) (*model.Order, error) {
	if !input.Status.Valid() {
		return nil, apperrors.BadRequest("Status inválido.", nil)
	}

	patch := map[string]interface{}{"status": input.Status}

	if input.Status == model.StatusFinished {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return nil, apperrors.NotFound("Ordem de serviço não encontrada.", err)
			}
			return nil, apperrors.InternalServer("Não foi possível atualizar o status da ordem.", err)
		}

		patch["total_value"] = computeTotal(current)

		endDate := time.Now()
		if input.EndDate != nil {
			endDate = *input.EndDate
		}
		patch["end_date"] = endDate
	} else {
		if input.TotalValue != nil {
			patch["total_value"] = *input.TotalValue
		}
		if input.EndDate != nil {
			patch["end_date"] = *input.EndDate
		}
	}

	o, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.NotFound("Ordem de serviço não encontrada.", err)
		}
		return nil, apperrors.InternalServer("Não foi possível atualizar o status da ordem.", err)
	}

	s.logger.Info("status da ordem atualizado",
		zap.String("order_id", id),
		zap.String("status", string(input.Status)))
	return o, nil
}

// Update altera descrição e observações da ordem
func (s *Service) Update(ctx context.Context, id string, patch map[string]interface{}) (*model.Order, error) {
	o, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.NotFound("Ordem de serviço não encontrada.", err)
		}
		return nil, apperrors.InternalServer("Não foi possível atualizar a ordem de serviço.", err)
	}
	return o, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return apperrors.NotFound("Ordem de serviço não encontrada.", err)
		}
		return apperrors.InternalServer("Não foi possível deletar a ordem de serviço.", err)
	}
	return nil
}

// AddPart associa uma peça à ordem. Adições repetidas da mesma peça
// incrementam a quantidade da linha existente.
func (s *Service) AddPart(ctx context.Context, orderID, partID string, quantity int) (*model.PartUsage, error) {
	if quantity <= 0 {
		return nil, apperrors.BadRequest("A quantidade deve ser maior que zero.", nil)
	}

	usage, err := s.repo.UpsertPartUsage(ctx, orderID, partID, quantity)
	if err != nil {
		if errors.Is(err, database.ErrForeignKey) {
			return nil, apperrors.BadRequest("Ordem de serviço ou peça não encontrada.", err)
		}
		return nil, apperrors.InternalServer("Não foi possível adicionar a peça à ordem.", err)
	}
	return usage, nil
}

// AddService associa um serviço à ordem. Cada adição cria uma nova linha.
func (s *Service) AddService(ctx context.Context, orderID, serviceID string) (*model.ServiceUsage, error) {
	usage, err := s.repo.CreateServiceUsage(ctx, orderID, serviceID)
	if err != nil {
		if errors.Is(err, database.ErrForeignKey) {
			return nil, apperrors.BadRequest("Ordem de serviço ou serviço não encontrado.", err)
		}
		return nil, apperrors.InternalServer("Não foi possível adicionar o serviço à ordem.", err)
	}
	return usage, nil
}

// RemovePart exclui a linha de uso de peça pelo seu id
func (s *Service) RemovePart(ctx context.Context, usageID string) error {
	if err := s.repo.DeletePartUsage(ctx, usageID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return apperrors.NotFound("Peça não encontrada na ordem de serviço.", err)
		}
		return apperrors.InternalServer("Não foi possível remover a peça da ordem.", err)
	}
	return nil
}

// RemoveService exclui a linha de uso de serviço pelo seu id
func (s *Service) RemoveService(ctx context.Context, usageID string) error {
	if err := s.repo.DeleteServiceUsage(ctx, usageID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return apperrors.NotFound("Serviço não encontrado na ordem de serviço.", err)
		}
		return apperrors.InternalServer("Não foi possível remover o serviço da ordem.", err)
	}
	return nil
}

// computeTotal soma os preços dos serviços e das peças (preço × quantidade)
// associados à ordem
func computeTotal(o *model.Order) float64 {
	var total float64
	for _, su := range o.ServicesPerformed {
		if su.Service != nil {
			total += su.Service.Price
		}
	}
	for _, pu := range o.PartsUsed {
		if pu.Part != nil {
			total += pu.Part.Price * float64(pu.Quantity)
		}
	}
	return total
}
