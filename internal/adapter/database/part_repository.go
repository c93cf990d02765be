package database

import (
	"context"

	"github.com/pitstop/oficina-api/internal/domain/model"
	"gorm.io/gorm"
)

// PartRepository acessa o catálogo de peças
type PartRepository struct {
	db *gorm.DB
}

func NewPartRepository(db *gorm.DB) *PartRepository {
	return &PartRepository{db: db}
}

func (r *PartRepository) List(ctx context.Context) ([]model.Part, error) {
	var parts []model.Part
	if err := r.db.WithContext(ctx).Order("name").Find(&parts).Error; err != nil {
		return nil, TranslateError(err)
	}
	return parts, nil
}

func (r *PartRepository) GetByID(ctx context.Context, id string) (*model.Part, error) {
	var part model.Part
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&part).Error; err != nil {
		return nil, TranslateError(err)
	}
	return &part, nil
}

func (r *PartRepository) Create(ctx context.Context, part *model.Part) error {
	return TranslateError(r.db.WithContext(ctx).Create(part).Error)
}

func (r *PartRepository) Update(ctx context.Context, id string, patch map[string]interface{}) (*model.Part, error) {
	result := r.db.WithContext(ctx).Model(&model.Part{}).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return nil, TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PartRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Part{})
	if result.Error != nil {
		return TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
