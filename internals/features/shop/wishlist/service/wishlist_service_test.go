package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	bookModel "maktabati_backend/internals/features/catalog/books/model"
	categoryModel "maktabati_backend/internals/features/catalog/categories/model"
	"maktabati_backend/internals/features/shop/wishlist/model"
	userModel "maktabati_backend/internals/features/users/user/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&categoryModel.CategoryModel{},
		&bookModel.BookModel{},
		&model.WishlistModel{},
	))
	return db
}

func seedFixtures(t *testing.T, db *gorm.DB) (uuid.UUID, *bookModel.BookModel) {
	t.Helper()
	user := userModel.UserModel{
		Email:    uuid.NewString() + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, db.Create(&user).Error)

	cat := categoryModel.CategoryModel{Name: "Category-" + uuid.NewString()}
	require.NoError(t, db.Create(&cat).Error)
	book := bookModel.BookModel{
		Title:       "كتاب",
		Author:      "مؤلف",
		Description: "desc",
		Price:       30,
		Stock:       5,
		CategoryID:  cat.ID,
	}
	require.NoError(t, db.Create(&book).Error)
	return user.ID, &book
}

func requireFiberStatus(t *testing.T, err error, status int) {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, status, fe.Code)
}

func TestCreateDistinguishesMissingFromDuplicate(t *testing.T) {
	db := setupDB(t)
	userID, book := seedFixtures(t, db)

	_, err := Create(db, userID, uuid.New())
	requireFiberStatus(t, err, fiber.StatusNotFound)

	entry, err := Create(db, userID, book.ID)
	require.NoError(t, err)
	require.Equal(t, book.ID, entry.BookID)

	_, err = Create(db, userID, book.ID)
	requireFiberStatus(t, err, fiber.StatusConflict)
}

func TestFindAndRemove(t *testing.T) {
	db := setupDB(t)
	userID, book := seedFixtures(t, db)

	_, err := Create(db, userID, book.ID)
	require.NoError(t, err)

	entries, err := FindAll(db, userID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Book)

	entry, err := FindOne(db, userID, book.ID)
	require.NoError(t, err)
	require.Equal(t, book.ID, entry.BookID)

	require.NoError(t, Remove(db, userID, book.ID))

	err = Remove(db, userID, book.ID)
	requireFiberStatus(t, err, fiber.StatusNotFound)

	_, err = FindOne(db, userID, book.ID)
	requireFiberStatus(t, err, fiber.StatusNotFound)
}
