package database

import (
	"context"

	"github.com/pitstop/oficina-api/internal/domain/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Custo usado no hash de senhas
const bcryptCost = 10

// UserRepository acessa os registros de usuários
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateWithClient cria o usuário e o cliente vinculado em uma única transação
func (r *UserRepository) CreateWithClient(ctx context.Context, user *model.UserEntity, client *model.Client) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcryptCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		client.UserID = user.ID
		return tx.Create(client).Error
	})
	return TranslateError(err)
}

// GetByCredentials busca o usuário pelo email e valida a senha
func (r *UserRepository) GetByCredentials(ctx context.Context, email, password string) (*model.User, error) {
	var user model.UserEntity
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, TranslateError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrNotFound
	}

	return user.Public(), nil
}

// GetByID busca um usuário pelo identificador
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.UserEntity
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, TranslateError(err)
	}
	return user.Public(), nil
}
