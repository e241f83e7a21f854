package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"

	OrderSourceAPI      = "api"
	OrderSourceCheckout = "checkout"
)

// Order represents a complete customer order. UserID is nil for guest checkouts.
type Order struct {
	ID               uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID           *uuid.UUID     `json:"userId,omitempty" gorm:"type:uuid;index"`
	OrderNumber      string         `json:"orderNumber" gorm:"column:order_number;type:varchar(32);uniqueIndex;not null"`
	Email            string         `json:"email,omitempty" gorm:"type:varchar(255)"`
	TotalAmount      int64          `json:"totalAmount" gorm:"column:total_amount;not null"`
	PaymentMethod    string         `json:"paymentMethod" gorm:"column:payment_method;type:varchar(20);not null"`
	PaymentReference string         `json:"paymentReference,omitempty" gorm:"column:payment_reference;type:varchar(64)"`
	ShippingAddress  datatypes.JSON `json:"shippingAddress,omitempty" gorm:"column:shipping_address"`
	Status           string         `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Source           string         `json:"source" gorm:"type:varchar(20);default:'api'"`
	CreatedAt        time.Time      `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt        time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

// OrderItem is one product line, priced at the moment the order was placed.
type OrderItem struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `json:"orderId" gorm:"type:uuid;not null;index"`
	ProductID   string    `json:"productId" gorm:"column:product_id;type:varchar(64);not null"`
	ProductName string    `json:"productName" gorm:"column:product_name;type:varchar(255);not null"`
	Price       int64     `json:"price" gorm:"not null"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	Subtotal    int64     `json:"subtotal" gorm:"not null"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	Items           []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	ShippingAddress AddressInput     `json:"shippingAddress" binding:"required"`
	PaymentMethod   string           `json:"paymentMethod" binding:"required,oneof=mpesa mobile-money card" example:"mpesa"`
	TotalAmount     *int64           `json:"totalAmount" binding:"omitempty,min=0" example:"2500"`
}

type OrderItemInput struct {
	ProductID string `json:"productId" binding:"required" example:"1"`
	Quantity  int    `json:"quantity" binding:"required,min=1" example:"2"`
}

// OrderPlacedEvent is published after an order commits.
type OrderPlacedEvent struct {
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	UserID      string    `json:"userId,omitempty"`
	Email       string    `json:"email,omitempty"`
	TotalAmount int64     `json:"totalAmount"`
	Method      string    `json:"paymentMethod"`
	Source      string    `json:"source"`
	ItemCount   int       `json:"itemCount"`
	PlacedAt    time.Time `json:"placedAt"`
}
