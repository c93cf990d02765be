package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus é o estado de uma ordem de serviço
type OrderStatus string

const (
	StatusOpen       OrderStatus = "OPEN"
	StatusInProgress OrderStatus = "IN_PROGRESS"
	StatusFinished   OrderStatus = "FINISHED"
	StatusCanceled   OrderStatus = "CANCELED"
)

// Valid informa se o valor corresponde a um status conhecido
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusFinished, StatusCanceled:
		return true
	}
	return false
}

// Order representa uma ordem de serviço
type Order struct {
	ID                string         `gorm:"primaryKey;size:36" json:"id"`
	Description       string         `gorm:"size:300;not null" json:"description"`
	ClientID          string         `gorm:"size:36;not null;index" json:"clientId"`
	Client            *Client        `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT" json:"client,omitempty"`
	VehicleID         string         `gorm:"size:36;not null;index" json:"vehicleId"`
	Vehicle           *Vehicle       `gorm:"foreignKey:VehicleID;constraint:OnDelete:RESTRICT" json:"vehicle,omitempty"`
	Status            OrderStatus    `gorm:"size:20;not null;default:OPEN;index" json:"status"`
	StartDate         time.Time      `gorm:"autoCreateTime" json:"startDate"`
	EndDate           *time.Time     `json:"endDate"`
	TotalValue        float64        `json:"totalValue"`
	Observations      string         `gorm:"size:500" json:"observations"`
	PartsUsed         []PartUsage    `gorm:"foreignKey:OrderID" json:"partsUsed,omitempty"`
	ServicesPerformed []ServiceUsage `gorm:"foreignKey:OrderID" json:"servicesPerformed,omitempty"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.Status == "" {
		o.Status = StatusOpen
	}
	return nil
}

// PartUsage é a associação N:N entre ordem e peça, com quantidade.
// Uma peça aparece no máximo uma vez por ordem; adições repetidas
// incrementam a quantidade.
type PartUsage struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	OrderID   string    `gorm:"size:36;not null;uniqueIndex:idx_order_part" json:"orderId"`
	PartID    string    `gorm:"size:36;not null;uniqueIndex:idx_order_part" json:"partId"`
	Part      *Part     `gorm:"foreignKey:PartID;constraint:OnDelete:RESTRICT" json:"part,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (PartUsage) TableName() string {
	return "part_usages"
}

func (u *PartUsage) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// ServiceUsage é a associação N:N entre ordem e serviço. Cada adição
// cria uma nova linha.
type ServiceUsage struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	OrderID   string    `gorm:"size:36;not null;index" json:"orderId"`
	ServiceID string    `gorm:"size:36;not null;index" json:"serviceId"`
	Service   *Service  `gorm:"foreignKey:ServiceID;constraint:OnDelete:RESTRICT" json:"service,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (ServiceUsage) TableName() string {
	return "service_usages"
}

func (u *ServiceUsage) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
