package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"maktabati_backend/internals/features/shop/orders/dto"
	"maktabati_backend/internals/features/shop/orders/service"
	helper "maktabati_backend/internals/helpers"
)

// GET /api/admin/orders — every order in the system, paginated
func (h *OrderController) FindAllByAdmin(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	orders, total, err := service.FindAll(h.DB, paging.Offset, paging.Limit)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.SuccessWithPagination(c, "OK", orders, helper.BuildPagination(total, paging, len(orders)))
}

// GET /api/admin/orders/user/:userId
func (h *OrderController) FindAllByUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid user id")
	}

	orders, err := service.FindAllByUser(h.DB, userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "OK", orders)
}

// PATCH /api/admin/orders/:id/status
func (h *OrderController) UpdateStatusByAdmin(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid order id")
	}

	var p dto.StatusUpdateRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&p); err != nil {
		return helper.ValidationError(c, err)
	}

	order, err := service.UpdateStatusByAdmin(h.DB, orderID, p.Status)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, fmt.Sprintf("Order status updated to %s", order.Status), order)
}

// DELETE /api/admin/orders/:id — hard delete, restores stock
func (h *OrderController) Remove(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid order id")
	}

	if err := service.Remove(h.DB, orderID); err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Order removed successfully", nil)
}
