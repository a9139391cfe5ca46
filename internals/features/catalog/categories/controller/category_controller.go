package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	bookModel "maktabati_backend/internals/features/catalog/books/model"
	"maktabati_backend/internals/features/catalog/categories/dto"
	"maktabati_backend/internals/features/catalog/categories/model"
	helper "maktabati_backend/internals/helpers"
)

var validate = validator.New()

type CategoryController struct {
	DB *gorm.DB
}

// POST /api/categories (admin)
func (h *CategoryController) Create(c *fiber.Ctx) error {
	var p dto.CategoryCreateRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	p.Normalize()
	if err := validate.Struct(&p); err != nil {
		return helper.ValidationError(c, err)
	}

	var existing model.CategoryModel
	if err := h.DB.Where("name = ?", p.Name).First(&existing).Error; err == nil {
		return helper.Error(c, fiber.StatusBadRequest, "Category with this name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[CATEGORY][CREATE] lookup failed: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal server error")
	}

	category := model.CategoryModel{
		Name:        p.Name,
		Description: p.Description,
	}
	if err := h.DB.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.Error(c, fiber.StatusBadRequest, "Category with this name already exists")
		}
		log.Printf("[CATEGORY][CREATE] insert failed: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create category")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Category created successfully", category)
}

// GET /api/categories (public)
func (h *CategoryController) FindAll(c *fiber.Ctx) error {
	var categories []model.CategoryModel
	if err := h.DB.Order("name asc").Find(&categories).Error; err != nil {
		log.Printf("[CATEGORY][LIST] query failed: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list categories")
	}
	return helper.Success(c, "OK", categories)
}

// GET /api/categories/:id (public) — returns the category with its books.
func (h *CategoryController) FindOne(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid category id")
	}

	var category model.CategoryModel
	if err := h.DB.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Category not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal server error")
	}

	var books []bookModel.BookModel
	if err := h.DB.Where("category_id = ?", id).Find(&books).Error; err != nil {
		log.Printf("[CATEGORY][GET] books query failed: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return helper.Success(c, "OK", fiber.Map{
		"category": category,
		"books":    books,
	})
}

// PATCH /api/categories/:id (admin)
func (h *CategoryController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid category id")
	}

	var p dto.CategoryUpdateRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	p.Normalize()
	if err := validate.Struct(&p); err != nil {
		return helper.ValidationError(c, err)
	}

	var category model.CategoryModel
	if err := h.DB.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Category not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal server error")
	}

	if p.Name != nil && *p.Name != category.Name {
		var dup model.CategoryModel
		if err := h.DB.Where("name = ? AND id <> ?", *p.Name, id).First(&dup).Error; err == nil {
			return helper.Error(c, fiber.StatusBadRequest, "Category with this name already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusInternalServerError, "Internal server error")
		}
		category.Name = *p.Name
	}
	if p.Description != nil {
		category.Description = p.Description
	}

	if err := h.DB.Save(&category).Error; err != nil {
		log.Printf("[CATEGORY][UPDATE] save failed: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update category")
	}

	return helper.Success(c, "Category updated successfully", category)
}

// DELETE /api/categories/:id (admin) — rejected while books still reference it.
func (h *CategoryController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid category id")
	}

	var category model.CategoryModel
	if err := h.DB.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Category not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal server error")
	}

	var bookCount int64
	if err := h.DB.Model(&bookModel.BookModel{}).Where("category_id = ?", id).Count(&bookCount).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Internal server error")
	}
	if bookCount > 0 {
		return helper.Error(c, fiber.StatusConflict, "Category still has books and cannot be deleted")
	}

	if err := h.DB.Delete(&category).Error; err != nil {
		log.Printf("[CATEGORY][DELETE] delete failed: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete category")
	}

	return helper.Success(c, "Category deleted successfully", nil)
}
