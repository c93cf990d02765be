package database

import (
	"context"

	"github.com/pitstop/oficina-api/internal/domain/model"
	"gorm.io/gorm"
)

// VehicleRepository acessa os registros de veículos
type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) List(ctx context.Context) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := r.db.WithContext(ctx).Order("created_at").Find(&vehicles).Error; err != nil {
		return nil, TranslateError(err)
	}
	return vehicles, nil
}

func (r *VehicleRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&vehicles).Error; err != nil {
		return nil, TranslateError(err)
	}
	return vehicles, nil
}

func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&vehicle).Error; err != nil {
		return nil, TranslateError(err)
	}
	return &vehicle, nil
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	return TranslateError(r.db.WithContext(ctx).Create(vehicle).Error)
}

func (r *VehicleRepository) Update(ctx context.Context, id string, patch map[string]interface{}) (*model.Vehicle, error) {
	result := r.db.WithContext(ctx).Model(&model.Vehicle{}).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return nil, TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Vehicle{})
	if result.Error != nil {
		return TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
