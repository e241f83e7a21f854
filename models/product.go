package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a catalog entry. Price is in whole KES units.
type Product struct {
	ID            string    `json:"id" gorm:"type:varchar(64);primaryKey"`
	Name          string    `json:"name" gorm:"type:varchar(255);not null"`
	Description   string    `json:"description" gorm:"type:text"`
	Price         int64     `json:"price" gorm:"not null;check:price >= 0;index"`
	Image         string    `json:"image" gorm:"type:text"`
	Category      string    `json:"category" gorm:"type:varchar(50);not null;index"`
	AverageRating float64   `json:"averageRating" gorm:"column:average_rating;default:0"`
	ReviewCount   int       `json:"reviewCount" gorm:"column:review_count;default:0"`
	Position      int       `json:"-" gorm:"not null;default:0;index"`
	CreatedAt     time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}

// Review is a customer rating of a product.
type Review struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID string    `json:"productId" gorm:"column:product_id;type:varchar(64);not null;index"`
	UserID    uuid.UUID `json:"userId" gorm:"column:user_id;type:uuid;not null;index"`
	UserName  string    `json:"userName" gorm:"column:user_name;type:varchar(255)"`
	Rating    int       `json:"rating" gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Comment   string    `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime;index"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

// ProductQuery is the query string accepted by GET /products.
type ProductQuery struct {
	Category string `form:"category" binding:"omitempty,oneof=all gear trainers supplements accessories" example:"gear"`
	Search   string `form:"search" binding:"omitempty,max=100" example:"shoes"`
	MinPrice *int64 `form:"minPrice" binding:"omitempty,min=0" example:"1000"`
	MaxPrice *int64 `form:"maxPrice" binding:"omitempty,min=0" example:"20000"`
}

// AddReviewRequest is the body of POST /products/:id/reviews.
type AddReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5" example:"5"`
	Comment string `json:"comment" binding:"omitempty,max=2000" example:"Great grip"`
}
