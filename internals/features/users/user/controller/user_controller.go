package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"maktabati_backend/internals/features/users/user/dto"
	"maktabati_backend/internals/features/users/user/service"
	helper "maktabati_backend/internals/helpers"
)

var validate = validator.New()

type UserController struct {
	DB *gorm.DB
}

// POST /api/users (admin)
func (h *UserController) Create(c *fiber.Ctx) error {
	var p dto.UserCreateRequest
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

	user, err := service.CreateUser(h.DB, p)
	if err != nil {
		if _, ok := err.(*fiber.Error); !ok {
			log.Printf("[USERS][CREATE] failed: %v", err)
		}
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "User created successfully", user)
}

// GET /api/users (admin)
func (h *UserController) FindAll(c *fiber.Ctx) error {
	users, err := service.FindAllUsers(h.DB)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "OK", users)
}

// GET /api/users/:id (admin)
func (h *UserController) FindOne(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid user id")
	}

	user, err := service.FindUser(h.DB, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "OK", user)
}

// PATCH /api/users/:id (admin)
func (h *UserController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var p dto.UserUpdateRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	p.Normalize()
	if err := validate.Struct(&p); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := service.UpdateUser(h.DB, id, p)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "User updated successfully", user)
}

// DELETE /api/users/:id (admin)
func (h *UserController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid user id")
	}

	if err := service.DeleteUser(h.DB, id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "User deleted successfully", nil)
}
