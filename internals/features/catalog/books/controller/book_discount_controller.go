package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"maktabati_backend/internals/features/catalog/books/dto"
	"maktabati_backend/internals/features/catalog/books/service"
	helper "maktabati_backend/internals/helpers"
)

// PATCH /api/books/discount (admin) — discount on every book
func (h *BooksController) UpdateAllDiscount(c *fiber.Ctx) error {
	var p dto.DiscountRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&p); err != nil {
		return helper.ValidationError(c, err)
	}

	affected, err := service.SetDiscountAll(h.DB, p.Discount)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, fmt.Sprintf("Discount applied to %d books", affected), nil)
}

// PATCH /api/books/discount/:id (admin)
func (h *BooksController) UpdateDiscount(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid book id")
	}

	var p dto.DiscountRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&p); err != nil {
		return helper.ValidationError(c, err)
	}

	book, err := service.SetDiscount(h.DB, id, p.Discount)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Discount updated", dto.FromModel(*book))
}

// PATCH /api/books/clear-discount (admin)
func (h *BooksController) ClearAllDiscount(c *fiber.Ctx) error {
	affected, err := service.ClearDiscountAll(h.DB)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, fmt.Sprintf("Discount cleared on %d books", affected), nil)
}

// PATCH /api/books/clear-discount/:id (admin)
func (h *BooksController) ClearDiscount(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid book id")
	}

	book, err := service.ClearDiscount(h.DB, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Discount cleared", dto.FromModel(*book))
}

// GET /api/books/category/:categoryId (public)
func (h *BooksController) FindByCategory(c *fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Params("categoryId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid category id")
	}

	books, err := service.FindByCategory(h.DB, categoryID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "OK", dto.FromModels(books))
}
