package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	bookModel "maktabati_backend/internals/features/catalog/books/model"
	"maktabati_backend/internals/features/shop/wishlist/model"
)

// Create likes a book. A missing book is a 404 and a duplicate pair a 409;
// the two are reported distinctly.
func Create(db *gorm.DB, userID, bookID uuid.UUID) (*model.WishlistModel, error) {
	var book bookModel.BookModel
	if err := db.First(&book, "id = ?", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Book not found")
		}
		return nil, err
	}

	entry := model.WishlistModel{
		UserID: userID,
		BookID: bookID,
	}
	if err := db.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fiber.NewError(fiber.StatusConflict, "This book is already in the wishlist")
		}
		return nil, err
	}

	entry.Book = &book
	return &entry, nil
}

func FindAll(db *gorm.DB, userID uuid.UUID) ([]model.WishlistModel, error) {
	var entries []model.WishlistModel
	if err := db.Preload("Book").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func FindOne(db *gorm.DB, userID, bookID uuid.UUID) (*model.WishlistModel, error) {
	var entry model.WishlistModel
	if err := db.Preload("Book").
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Wishlist item not found")
		}
		return nil, err
	}
	return &entry, nil
}

func Remove(db *gorm.DB, userID, bookID uuid.UUID) error {
	res := db.Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&model.WishlistModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Wishlist item not found")
	}
	return nil
}
