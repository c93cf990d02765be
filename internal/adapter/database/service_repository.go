package database

import (
	"context"

	"github.com/pitstop/oficina-api/internal/domain/model"
	"gorm.io/gorm"
)

// ServiceRepository acessa o catálogo de serviços
type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) List(ctx context.Context) ([]model.Service, error) {
	var services []model.Service
	if err := r.db.WithContext(ctx).Order("name").Find(&services).Error; err != nil {
		return nil, TranslateError(err)
	}
	return services, nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*model.Service, error) {
	var service model.Service
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&service).Error; err != nil {
		return nil, TranslateError(err)
	}
	return &service, nil
}

func (r *ServiceRepository) Create(ctx context.Context, service *model.Service) error {
	return TranslateError(r.db.WithContext(ctx).Create(service).Error)
}

func (r *ServiceRepository) Update(ctx context.Context, id string, patch map[string]interface{}) (*model.Service, error) {
	result := r.db.WithContext(ctx).Model(&model.Service{}).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return nil, TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Service{})
	if result.Error != nil {
		return TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
