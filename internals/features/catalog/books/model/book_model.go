package model

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	categoryModel "maktabati_backend/internals/features/catalog/categories/model"
)

type BookModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Author      string    `gorm:"size:255;not null" json:"author"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Price       float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	Discount    int       `gorm:"not null;default:0" json:"discount"` // percent, 0–100
	CoverImage  *string   `gorm:"size:255" json:"cover_image,omitempty"`

	CategoryID uuid.UUID                    `gorm:"type:uuid;not null;index" json:"category_id"`
	Category   *categoryModel.CategoryModel `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BookModel) TableName() string { return "books" }

func (b *BookModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// FinalPrice is the discounted price, rounded to cents.
func (b *BookModel) FinalPrice() float64 {
	return math.Round(b.Price*(1-float64(b.Discount)/100)*100) / 100
}
