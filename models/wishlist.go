package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WishlistItem links a user to a saved product. A user "has a wishlist"
// once at least one row exists for them.
type WishlistItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_product"`
	ProductID string    `json:"productId" gorm:"column:product_id;type:varchar(64);not null;uniqueIndex:idx_wishlist_user_product"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}

func (w *WishlistItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

type WishlistResponse struct {
	UserID   uuid.UUID `json:"userId"`
	Products []Product `json:"products"`
}
