package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Address struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	Street     string    `json:"street" gorm:"type:varchar(255);not null"`
	City       string    `json:"city" gorm:"type:varchar(100);not null"`
	State      string    `json:"state" gorm:"type:varchar(100);not null"`
	PostalCode string    `json:"postalCode" gorm:"column:postal_code;type:varchar(20);not null"`
	Country    string    `json:"country" gorm:"type:varchar(100);not null"`
	IsDefault  bool      `json:"isDefault" gorm:"default:false"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Address) TableName() string {
	return "addresses"
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

// AddressInput is shared by address creation and order shipping details.
type AddressInput struct {
	Street     string `json:"street" binding:"required,max=255" example:"12 Moi Avenue"`
	City       string `json:"city" binding:"required,max=100" example:"Nairobi"`
	State      string `json:"state" binding:"required,max=100" example:"Nairobi County"`
	PostalCode string `json:"postalCode" binding:"required,max=20" example:"00100"`
	Country    string `json:"country" binding:"required,max=100" example:"Kenya"`
}

type AddAddressRequest struct {
	AddressInput
	IsDefault bool `json:"isDefault"`
}
