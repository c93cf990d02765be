package database

import (
	"context"
	"strings"

	"github.com/pitstop/oficina-api/internal/domain/model"
	"gorm.io/gorm"
)

// ClientRepository acessa os registros de clientes
type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// List retorna os clientes, opcionalmente filtrados por busca
// case-insensitive sobre nome e telefone
func (r *ClientRepository) List(ctx context.Context, search string) ([]model.Client, error) {
	query := r.db.WithContext(ctx)

	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(phone) LIKE ?", term, term)
	}

	var clients []model.Client
	if err := query.Order("name").Find(&clients).Error; err != nil {
		return nil, TranslateError(err)
	}
	return clients, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&client).Error; err != nil {
		return nil, TranslateError(err)
	}
	return &client, nil
}

// GetByUserID resolve o cliente vinculado a um usuário autenticado
func (r *ClientRepository) GetByUserID(ctx context.Context, userID string) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&client).Error; err != nil {
		return nil, TranslateError(err)
	}
	return &client, nil
}

func (r *ClientRepository) Create(ctx context.Context, client *model.Client) error {
	return TranslateError(r.db.WithContext(ctx).Create(client).Error)
}

func (r *ClientRepository) Update(ctx context.Context, id string, patch map[string]interface{}) (*model.Client, error) {
	result := r.db.WithContext(ctx).Model(&model.Client{}).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return nil, TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Client{})
	if result.Error != nil {
		return TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
