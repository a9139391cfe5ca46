package dto

import "github.com/google/uuid"

type CartAddRequest struct {
	BookID   uuid.UUID `json:"book_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,gte=1"`
}

type CartUpdateRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}
