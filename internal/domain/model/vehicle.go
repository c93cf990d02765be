package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vehicle representa um veículo pertencente a um cliente
type Vehicle struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Plate     string    `gorm:"uniqueIndex;size:10;not null" json:"plate"`
	Model     string    `gorm:"size:60;not null" json:"model"`
	Brand     string    `gorm:"size:60" json:"brand"`
	Year      int       `json:"year"`
	Color     string    `gorm:"size:30" json:"color"`
	OwnerID   string    `gorm:"size:36;not null;index" json:"ownerId"`
	Owner     *Client   `gorm:"foreignKey:OwnerID;constraint:OnDelete:RESTRICT" json:"owner,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

func (v *Vehicle) BeforeCreate(_ *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}
