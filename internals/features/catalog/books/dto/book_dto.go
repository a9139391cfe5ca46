package dto

import (
	"strings"

	"github.com/google/uuid"

	"maktabati_backend/internals/features/catalog/books/model"
)

type BookCreateRequest struct {
	Title       string    `json:"title" form:"title" validate:"required,min=1,max=255"`
	Author      string    `json:"author" form:"author" validate:"required,min=1,max=255"`
	Description string    `json:"description" form:"description" validate:"required"`
	Price       float64   `json:"price" form:"price" validate:"gte=0"`
	Stock       int       `json:"stock" form:"stock" validate:"gte=0"`
	Discount    int       `json:"discount" form:"discount" validate:"gte=0,lte=100"`
	CategoryID  uuid.UUID `json:"category_id" form:"category_id" validate:"required"`
}

func (r *BookCreateRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	r.Description = strings.TrimSpace(r.Description)
}

type BookUpdateRequest struct {
	Title       *string    `json:"title,omitempty" form:"title" validate:"omitempty,min=1,max=255"`
	Author      *string    `json:"author,omitempty" form:"author" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description,omitempty" form:"description"`
	Price       *float64   `json:"price,omitempty" form:"price" validate:"omitempty,gte=0"`
	Stock       *int       `json:"stock,omitempty" form:"stock" validate:"omitempty,gte=0"`
	Discount    *int       `json:"discount,omitempty" form:"discount" validate:"omitempty,gte=0,lte=100"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty" form:"category_id"`
}

type DiscountRequest struct {
	Discount int `json:"discount" validate:"gte=0,lte=100"`
}

// BookResponse is the book row plus the derived discounted price.
type BookResponse struct {
	model.BookModel
	FinalPrice float64 `json:"final_price"`
}

func FromModel(b model.BookModel) BookResponse {
	return BookResponse{BookModel: b, FinalPrice: b.FinalPrice()}
}

func FromModels(books []model.BookModel) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, FromModel(b))
	}
	return out
}
