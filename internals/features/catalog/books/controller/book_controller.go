package controller

import (
	"errors"
	"log"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"maktabati_backend/internals/features/catalog/books/dto"
	"maktabati_backend/internals/features/catalog/books/model"
	categoryModel "maktabati_backend/internals/features/catalog/categories/model"
	helper "maktabati_backend/internals/helpers"
	storage "maktabati_backend/internals/helpers/storage"
)

var validate = validator.New()

type BooksController struct {
	DB *gorm.DB
}

// pickCoverFile accepts the cover under a few common field names.
func pickCoverFile(c *fiber.Ctx, keys ...string) *multipart.FileHeader {
	for _, k := range keys {
		if fh, err := c.FormFile(k); err == nil && fh != nil {
			return fh
		}
	}
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	for _, arr := range form.File {
		if len(arr) > 0 {
			return arr[0]
		}
	}
	return nil
}

func isMultipart(c *fiber.Ctx) bool {
	ct := strings.ToLower(strings.TrimSpace(c.Get("Content-Type")))
	return strings.HasPrefix(ct, "multipart/form-data")
}

// POST /api/books (admin, multipart, cover required)
func (h *BooksController) Create(c *fiber.Ctx) error {
	if !isMultipart(c) {
		return helper.Error(c, fiber.StatusBadRequest, "Expected multipart/form-data")
	}

	var p dto.BookCreateRequest
	p.Title = c.FormValue("title")
	p.Author = c.FormValue("author")
	p.Description = c.FormValue("description")

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid price")
	}
	p.Price = price

	stock, err := strconv.Atoi(c.FormValue("stock"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid stock")
	}
	p.Stock = stock

	discount, err := strconv.Atoi(c.FormValue("discount", "0"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid discount")
	}
	p.Discount = discount

	catID, err := uuid.Parse(c.FormValue("category_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid category_id")
	}
	p.CategoryID = catID

	p.Normalize()
	if err := validate.Struct(&p); err != nil {
		return helper.ValidationError(c, err)
	}

	cover := pickCoverFile(c, "cover_image", "cover", "image", "file")
	if cover == nil {
		return helper.Error(c, fiber.StatusBadRequest, "Cover image is required")
	}

	var category categoryModel.CategoryModel
	if err := h.DB.First(&category, "id = ?", p.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Category not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal server error")
	}

	filename, err := storage.SaveCover(cover)
	if err != nil {
		log.Printf("[BOOKS][CREATE] cover save failed: %v", err)
		return helper.Error(c, fiber.StatusBadRequest, "Invalid cover image")
	}

	book := model.BookModel{
		Title:       p.Title,
		Author:      p.Author,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Discount:    p.Discount,
		CategoryID:  p.CategoryID,
		CoverImage:  &filename,
	}
	if err := h.DB.Create(&book).Error; err != nil {
		storage.DeleteCover(filename)
		log.Printf("[BOOKS][CREATE] insert failed: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create book")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Book created successfully", dto.FromModel(book))
}

// GET /api/books (public, paginated)
func (h *BooksController) FindAll(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := h.DB.Model(&model.BookModel{}).Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list books")
	}

	var books []model.BookModel
	if err := h.DB.Order("created_at desc").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&books).Error; err != nil {
		log.Printf("[BOOKS][LIST] query failed: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list books")
	}

	resp := dto.FromModels(books)
	return helper.SuccessWithPagination(c, "OK", resp, helper.BuildPagination(total, paging, len(resp)))
}

// GET /api/books/:id (public)
func (h *BooksController) FindOne(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid book id")
	}

	var book model.BookModel
	if err := h.DB.Preload("Category").First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Book not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return helper.Success(c, "OK", dto.FromModel(book))
}

// PATCH /api/books/:id (admin, multipart or JSON; new cover replaces the old file)
func (h *BooksController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid book id")
	}

	var book model.BookModel
	if err := h.DB.First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Book not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal server error")
	}

	var p dto.BookUpdateRequest
	var cover *multipart.FileHeader
	if isMultipart(c) {
		p, err = parseUpdateForm(c)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, err.Error())
		}
		cover = pickCoverFile(c, "cover_image", "cover", "image", "file")
	} else if err := c.BodyParser(&p); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&p); err != nil {
		return helper.ValidationError(c, err)
	}

	if p.CategoryID != nil {
		var category categoryModel.CategoryModel
		if err := h.DB.First(&category, "id = ?", *p.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.Error(c, fiber.StatusNotFound, "Category not found")
			}
			return helper.Error(c, fiber.StatusInternalServerError, "Internal server error")
		}
		book.CategoryID = *p.CategoryID
	}

	if p.Title != nil {
		book.Title = *p.Title
	}
	if p.Author != nil {
		book.Author = *p.Author
	}
	if p.Description != nil {
		book.Description = *p.Description
	}
	if p.Price != nil {
		book.Price = *p.Price
	}
	if p.Stock != nil {
		book.Stock = *p.Stock
	}
	if p.Discount != nil {
		book.Discount = *p.Discount
	}

	if cover != nil {
		old := ""
		if book.CoverImage != nil {
			old = *book.CoverImage
		}
		filename, err := storage.ReplaceCover(old, cover)
		if err != nil {
			log.Printf("[BOOKS][UPDATE] cover replace failed: %v", err)
			return helper.Error(c, fiber.StatusBadRequest, "Invalid cover image")
		}
		book.CoverImage = &filename
	}

	if err := h.DB.Save(&book).Error; err != nil {
		log.Printf("[BOOKS][UPDATE] save failed: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update book")
	}

	return helper.Success(c, "Book updated successfully", dto.FromModel(book))
}

// DELETE /api/books/:id (admin; removes the cover file)
func (h *BooksController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid book id")
	}

	var book model.BookModel
	if err := h.DB.First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Book not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal server error")
	}

	if err := h.DB.Delete(&book).Error; err != nil {
		log.Printf("[BOOKS][DELETE] delete failed: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete book")
	}

	if book.CoverImage != nil {
		storage.DeleteCover(*book.CoverImage)
	}

	return helper.Success(c, "Book deleted successfully", nil)
}

func parseUpdateForm(c *fiber.Ctx) (dto.BookUpdateRequest, error) {
	var p dto.BookUpdateRequest
	if v := strings.TrimSpace(c.FormValue("title")); v != "" {
		p.Title = &v
	}
	if v := strings.TrimSpace(c.FormValue("author")); v != "" {
		p.Author = &v
	}
	if v := strings.TrimSpace(c.FormValue("description")); v != "" {
		p.Description = &v
	}
	if v := c.FormValue("price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, errors.New("Invalid price")
		}
		p.Price = &f
	}
	if v := c.FormValue("stock"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, errors.New("Invalid stock")
		}
		p.Stock = &n
	}
	if v := c.FormValue("discount"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, errors.New("Invalid discount")
		}
		p.Discount = &n
	}
	if v := c.FormValue("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return p, errors.New("Invalid category_id")
		}
		p.CategoryID = &id
	}
	return p, nil
}
