package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookModel "maktabati_backend/internals/features/catalog/books/model"
)

// WishlistModel is a liked (user, book) pair; the unique index is what turns
// a duplicate add into a conflict instead of a second row.
type WishlistModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_book" json:"user_id"`
	BookID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_book" json:"book_id"`

	Book *bookModel.BookModel `gorm:"foreignKey:BookID" json:"book,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (WishlistModel) TableName() string { return "wishlists" }

func (m *WishlistModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
