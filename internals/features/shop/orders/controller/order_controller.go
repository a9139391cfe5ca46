package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"maktabati_backend/internals/features/shop/orders/service"
	helper "maktabati_backend/internals/helpers"
)

var validate = validator.New()

type OrderController struct {
	DB *gorm.DB
}

// POST /api/orders — checkout the caller's cart
func (h *OrderController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	order, err := service.CreateOrderFromCart(h.DB, userID)
	if err != nil {
		if _, ok := err.(*fiber.Error); !ok {
			log.Printf("[ORDER][CREATE] failed: %v", err)
		}
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Order created successfully", order)
}

// GET /api/orders — the caller's orders
func (h *OrderController) FindMyOrders(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	orders, err := service.FindMyOrders(h.DB, userID)
	if err != nil {
		log.Printf("[ORDER][LIST] failed: %v", err)
		return helper.FromError(c, err)
	}
	return helper.Success(c, "OK", orders)
}

// GET /api/orders/:id
func (h *OrderController) FindOne(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid order id")
	}

	order, err := service.FindOne(h.DB, userID, orderID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "OK", order)
}

// PATCH /api/orders/:id/cancel — self-service cancellation of a pending order
func (h *OrderController) CancelMyOrder(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid order id")
	}

	order, err := service.CancelMyOrder(h.DB, userID, orderID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Order cancelled", order)
}
