package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"maktabati_backend/internals/features/shop/cart/dto"
	"maktabati_backend/internals/features/shop/cart/service"
	helper "maktabati_backend/internals/helpers"
)

var validate = validator.New()

type CartController struct {
	DB *gorm.DB
}

// POST /api/cart
func (h *CartController) AddItem(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var p dto.CartAddRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&p); err != nil {
		return helper.ValidationError(c, err)
	}

	item, err := service.AddItem(h.DB, userID, p.BookID, p.Quantity)
	if err != nil {
		if _, ok := err.(*fiber.Error); !ok {
			log.Printf("[CART][ADD] failed: %v", err)
		}
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Item added to cart", item)
}

// GET /api/cart
func (h *CartController) FindAll(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	items, err := service.FindAll(h.DB, userID)
	if err != nil {
		log.Printf("[CART][LIST] failed: %v", err)
		return helper.FromError(c, err)
	}
	return helper.Success(c, "OK", items)
}

// PATCH /api/cart/:itemId
func (h *CartController) UpdateItem(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid cart item id")
	}

	var p dto.CartUpdateRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&p); err != nil {
		return helper.ValidationError(c, err)
	}

	item, err := service.UpdateItem(h.DB, userID, itemID, p.Quantity)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Cart item updated", item)
}

// DELETE /api/cart/:itemId
func (h *CartController) RemoveItem(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid cart item id")
	}

	if err := service.RemoveItem(h.DB, userID, itemID); err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Cart item removed", nil)
}

// DELETE /api/cart
func (h *CartController) ClearCart(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	if err := service.ClearCart(h.DB, userID); err != nil {
		log.Printf("[CART][CLEAR] failed: %v", err)
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Cart cleared", nil)
}
