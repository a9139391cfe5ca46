package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	bookModel "maktabati_backend/internals/features/catalog/books/model"
	"maktabati_backend/internals/features/shop/cart/model"
)

// AddItem puts a book in the user's cart. An existing (user, book) line is
// incremented instead of duplicated, and the stock check runs against the
// prospective total quantity, not just the incoming delta.
func AddItem(db *gorm.DB, userID, bookID uuid.UUID, quantity int) (*model.CartItemModel, error) {
	var book bookModel.BookModel
	if err := db.First(&book, "id = ?", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Book not found")
		}
		return nil, err
	}

	var existing model.CartItemModel
	err := db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&existing).Error
	switch {
	case err == nil:
		// Relative update with the stock bound in the WHERE clause, so two
		// concurrent adds of the same book cannot lose an increment or walk
		// past the stock.
		res := db.Model(&model.CartItemModel{}).
			Where("id = ? AND quantity + ? <= ?", existing.ID, quantity, book.Stock).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, fiber.NewError(fiber.StatusConflict, "Insufficient stock for the requested book")
		}
		if err := db.First(&existing, "id = ?", existing.ID).Error; err != nil {
			return nil, err
		}
		existing.Book = &book
		return &existing, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		if book.Stock < quantity {
			return nil, fiber.NewError(fiber.StatusConflict, "Insufficient stock for the requested book")
		}
		item := model.CartItemModel{
			UserID:   userID,
			BookID:   bookID,
			Quantity: quantity,
		}
		if err := db.Create(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost the race against a concurrent add of the same book;
				// retry as an increment.
				return AddItem(db, userID, bookID, quantity)
			}
			return nil, err
		}
		item.Book = &book
		return &item, nil

	default:
		return nil, err
	}
}

// FindAll returns the user's cart lines with embedded books, newest first.
func FindAll(db *gorm.DB, userID uuid.UUID) ([]model.CartItemModel, error) {
	var items []model.CartItemModel
	if err := db.Preload("Book").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItem replaces a line's quantity, re-validated against current stock.
func UpdateItem(db *gorm.DB, userID, itemID uuid.UUID, quantity int) (*model.CartItemModel, error) {
	item, err := ownedItem(db, userID, itemID)
	if err != nil {
		return nil, err
	}

	var book bookModel.BookModel
	if err := db.First(&book, "id = ?", item.BookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Book not found")
		}
		return nil, err
	}
	if book.Stock < quantity {
		return nil, fiber.NewError(fiber.StatusConflict, "Insufficient stock for the requested book")
	}

	if err := db.Model(item).Update("quantity", quantity).Error; err != nil {
		return nil, err
	}
	item.Quantity = quantity
	item.Book = &book
	return item, nil
}

// RemoveItem deletes one owned line.
func RemoveItem(db *gorm.DB, userID, itemID uuid.UUID) error {
	item, err := ownedItem(db, userID, itemID)
	if err != nil {
		return err
	}
	return db.Delete(item).Error
}

// ClearCart deletes every line the user has.
func ClearCart(db *gorm.DB, userID uuid.UUID) error {
	return db.Where("user_id = ?", userID).Delete(&model.CartItemModel{}).Error
}

// ownedItem loads a cart line and enforces ownership: absent rows are 404,
// someone else's rows are 403.
func ownedItem(db *gorm.DB, userID, itemID uuid.UUID) (*model.CartItemModel, error) {
	var item model.CartItemModel
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Cart item not found")
		}
		return nil, err
	}
	if item.UserID != userID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Cart item belongs to another user")
	}
	return &item, nil
}
