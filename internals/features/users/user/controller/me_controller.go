package controller

import (
	"github.com/gofiber/fiber/v2"

	"maktabati_backend/internals/features/users/user/dto"
	"maktabati_backend/internals/features/users/user/service"
	helper "maktabati_backend/internals/helpers"
)

// GET /api/users/me
func (h *UserController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	user, err := service.FindUser(h.DB, userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "OK", user)
}

// PATCH /api/users/me
func (h *UserController) UpdateMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var p dto.UserUpdateRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	p.Normalize()
	if err := validate.Struct(&p); err != nil {
		return helper.ValidationError(c, err)
	}
	if p.Address != nil {
		if err := validate.Struct(p.Address); err != nil {
			return helper.ValidationError(c, err)
		}
	}

	user, err := service.UpdateMe(h.DB, userID, p)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "User data updated successfully", user)
}

// PATCH /api/users/me/password
func (h *UserController) UpdateMyPassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var p dto.PasswordUpdateRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&p); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := service.UpdateMyPassword(h.DB, userID, p.NewPassword); err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Password updated successfully, please login again", nil)
}

// DELETE /api/users/me — soft delete (deactivate)
func (h *UserController) DeactivateMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	user, err := service.DeactivateMe(h.DB, userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "User account deactivated successfully", user)
}
