package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"maktabati_backend/internals/features/catalog/books/model"
)

// SetDiscount applies a discount percent to one book.
func SetDiscount(db *gorm.DB, bookID uuid.UUID, discount int) (*model.BookModel, error) {
	if discount < 0 || discount > 100 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Discount must be between 0 and 100")
	}

	var book model.BookModel
	if err := db.First(&book, "id = ?", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Book not found")
		}
		return nil, err
	}

	if err := db.Model(&book).Update("discount", discount).Error; err != nil {
		return nil, err
	}
	book.Discount = discount
	return &book, nil
}

// SetDiscountAll applies a discount percent to every book.
func SetDiscountAll(db *gorm.DB, discount int) (int64, error) {
	if discount < 0 || discount > 100 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Discount must be between 0 and 100")
	}

	res := db.Model(&model.BookModel{}).Where("1 = 1").Update("discount", discount)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// ClearDiscount resets one book's discount to zero.
func ClearDiscount(db *gorm.DB, bookID uuid.UUID) (*model.BookModel, error) {
	return SetDiscount(db, bookID, 0)
}

// ClearDiscountAll resets every book's discount to zero.
func ClearDiscountAll(db *gorm.DB) (int64, error) {
	return SetDiscountAll(db, 0)
}

// FindByCategory lists books in a category; empty result is a 404, matching
// the storefront contract.
func FindByCategory(db *gorm.DB, categoryID uuid.UUID) ([]model.BookModel, error) {
	var books []model.BookModel
	if err := db.Where("category_id = ?", categoryID).Find(&books).Error; err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "No books found in this category")
	}
	return books, nil
}
