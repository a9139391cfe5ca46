package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"maktabati_backend/internals/features/shop/wishlist/service"
	helper "maktabati_backend/internals/helpers"
)

var validate = validator.New()

type WishlistController struct {
	DB *gorm.DB
}

type addRequest struct {
	BookID uuid.UUID `json:"book_id" validate:"required"`
}

// POST /api/wishlist
func (h *WishlistController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var p addRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&p); err != nil {
		return helper.ValidationError(c, err)
	}

	entry, err := service.Create(h.DB, userID, p.BookID)
	if err != nil {
		if _, ok := err.(*fiber.Error); !ok {
			log.Printf("[WISHLIST][ADD] failed: %v", err)
		}
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Book added to wishlist", entry)
}

// GET /api/wishlist
func (h *WishlistController) FindAll(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	entries, err := service.FindAll(h.DB, userID)
	if err != nil {
		log.Printf("[WISHLIST][LIST] failed: %v", err)
		return helper.FromError(c, err)
	}
	return helper.Success(c, "OK", entries)
}

// GET /api/wishlist/:bookId
func (h *WishlistController) FindOne(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	bookID, err := uuid.Parse(c.Params("bookId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid book id")
	}

	entry, err := service.FindOne(h.DB, userID, bookID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "OK", entry)
}

// DELETE /api/wishlist/:bookId
func (h *WishlistController) Remove(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	bookID, err := uuid.Parse(c.Params("bookId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid book id")
	}

	if err := service.Remove(h.DB, userID, bookID); err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Book removed from wishlist", nil)
}
