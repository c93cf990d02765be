package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Papéis reconhecidos pelo controle de acesso
const (
	RoleAdmin  = "ADMIN"
	RoleClient = "CLIENT"
)

// User é a visão pública de um usuário (sem a senha)
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Subject é a identidade autenticada anexada à requisição pelo middleware
// de autorização
type Subject struct {
	SubjectID string `json:"subjectId"`
	Role      string `json:"role"`
}

// IsAdmin informa se o sujeito tem papel de administrador
func (s *Subject) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// UserEntity é a representação de banco de dados de um usuário
type UserEntity struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Name      string    `gorm:"size:100;not null"`
	Email     string    `gorm:"uniqueIndex;size:100;not null"`
	Password  string    `gorm:"not null"`
	Role      string    `gorm:"size:20;default:CLIENT"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName define o nome da tabela
func (UserEntity) TableName() string {
	return "users"
}

func (u *UserEntity) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// Public converte a entidade para a visão sem senha
func (u *UserEntity) Public() *User {
	return &User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
