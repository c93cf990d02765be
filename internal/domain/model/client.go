package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client representa um cliente da oficina
type Client struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:100;not null;index" json:"name"`
	Phone     string    `gorm:"size:30" json:"phone"`
	Email     string    `gorm:"size:100" json:"email"`
	Address   string    `gorm:"size:200" json:"address"`
	UserID    string    `gorm:"size:36;index" json:"userId"`
	Vehicles  []Vehicle `gorm:"foreignKey:OwnerID" json:"vehicles,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Client) TableName() string {
	return "clients"
}

func (c *Client) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
