package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookModel "maktabati_backend/internals/features/catalog/books/model"
)

// CartItemModel holds one (user, book) line. The composite unique index keeps
// at most one line per pair; adding the same book again increments quantity.
type CartItemModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_book" json:"user_id"`
	BookID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_book" json:"book_id"`
	Quantity int       `gorm:"not null" json:"quantity"`

	Book *bookModel.BookModel `gorm:"foreignKey:BookID" json:"book,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CartItemModel) TableName() string { return "cart_items" }

func (m *CartItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
