package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Part representa uma peça do catálogo
type Part struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:300" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Part) TableName() string {
	return "parts"
}

func (p *Part) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
