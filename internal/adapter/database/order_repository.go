package database

import (
	"context"

	"github.com/pitstop/oficina-api/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderFilters restringe a listagem de ordens de serviço
type OrderFilters struct {
	Status    model.OrderStatus
	ClientID  string
	VehicleID string
}

// OrderRepository acessa as ordens de serviço e suas associações
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) List(ctx context.Context, filters OrderFilters) ([]model.Order, error) {
	query := r.db.WithContext(ctx).Preload("Client").Preload("Vehicle")

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.ClientID != "" {
		query = query.Where("client_id = ?", filters.ClientID)
	}
	if filters.VehicleID != "" {
		query = query.Where("vehicle_id = ?", filters.VehicleID)
	}

	var orders []model.Order
	if err := query.Order("start_date DESC").Find(&orders).Error; err != nil {
		return nil, TranslateError(err)
	}
	return orders, nil
}

// GetByID retorna a ordem com cliente, veículo, peças e serviços
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Vehicle").
		Preload("PartsUsed.Part").
		Preload("ServicesPerformed.Service").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, TranslateError(err)
	}
	return &order, nil
}

func (r *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	return TranslateError(r.db.WithContext(ctx).Create(order).Error)
}

// Update aplica um patch arbitrário sobre a ordem
func (r *OrderRepository) Update(ctx context.Context, id string, patch map[string]interface{}) (*model.Order, error) {
	result := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return nil, TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete remove a ordem e suas linhas de uso em uma transação
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&model.PartUsage{}).Error; err != nil {
			return TranslateError(err)
		}
		if err := tx.Where("order_id = ?", id).Delete(&model.ServiceUsage{}).Error; err != nil {
			return TranslateError(err)
		}

		result := tx.Where("id = ?", id).Delete(&model.Order{})
		if result.Error != nil {
			return TranslateError(result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// UpsertPartUsage insere a linha (ordem, peça) ou incrementa a quantidade
// existente. O incremento acontece no banco, em uma única instrução, para
// que adições concorrentes não se percam.
func (r *OrderRepository) UpsertPartUsage(ctx context.Context, orderID, partID string, quantity int) (*model.PartUsage, error) {
	usage := model.PartUsage{
		OrderID:  orderID,
		PartID:   partID,
		Quantity: quantity,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "order_id"}, {Name: "part_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", quantity),
		}),
	}).Create(&usage).Error
	if err != nil {
		return nil, TranslateError(err)
	}

	// Em caso de conflito a linha original é mantida; recarregar para
	// devolver o id e a quantidade acumulada
	var stored model.PartUsage
	err = r.db.WithContext(ctx).Preload("Part").
		Where("order_id = ? AND part_id = ?", orderID, partID).
		First(&stored).Error
	if err != nil {
		return nil, TranslateError(err)
	}
	return &stored, nil
}

// CreateServiceUsage adiciona uma nova linha de serviço à ordem
func (r *OrderRepository) CreateServiceUsage(ctx context.Context, orderID, serviceID string) (*model.ServiceUsage, error) {
	usage := model.ServiceUsage{
		OrderID:   orderID,
		ServiceID: serviceID,
	}
	if err := r.db.WithContext(ctx).Create(&usage).Error; err != nil {
		return nil, TranslateError(err)
	}
	return &usage, nil
}

func (r *OrderRepository) DeletePartUsage(ctx context.Context, usageID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", usageID).Delete(&model.PartUsage{})
	if result.Error != nil {
		return TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *OrderRepository) DeleteServiceUsage(ctx context.Context, usageID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", usageID).Delete(&model.ServiceUsage{})
	if result.Error != nil {
		return TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
