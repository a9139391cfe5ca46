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
	"maktabati_backend/internals/features/shop/cart/model"
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
		&model.CartItemModel{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *userModel.UserModel {
	t.Helper()
	user := userModel.UserModel{
		Email:    uuid.NewString() + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedBook(t *testing.T, db *gorm.DB, stock int) *bookModel.BookModel {
	t.Helper()
	cat := categoryModel.CategoryModel{Name: "Category-" + uuid.NewString()}
	require.NoError(t, db.Create(&cat).Error)
	book := bookModel.BookModel{
		Title:       "كتاب",
		Author:      "مؤلف",
		Description: "desc",
		Price:       50,
		Stock:       stock,
		CategoryID:  cat.ID,
	}
	require.NoError(t, db.Create(&book).Error)
	return &book
}

func requireFiberStatus(t *testing.T, err error, status int) {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, status, fe.Code)
}

func TestAddItemCreatesThenIncrements(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db)
	book := seedBook(t, db, 5)

	item, err := AddItem(db, user.ID, book.ID, 2)
	require.NoError(t, err)
	require.Equal(t, 2, item.Quantity)

	// Same book again merges into the existing line.
	item, err = AddItem(db, user.ID, book.ID, 1)
	require.NoError(t, err)
	require.Equal(t, 3, item.Quantity)

	// The increment is applied relative to the stored row, and the returned
	// quantity reflects what the row now holds.
	var stored model.CartItemModel
	require.NoError(t, db.First(&stored, "id = ?", item.ID).Error)
	require.Equal(t, 3, stored.Quantity)

	var count int64
	require.NoError(t, db.Model(&model.CartItemModel{}).
		Where("user_id = ?", user.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestAddItemValidatesProspectiveTotal(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db)
	book := seedBook(t, db, 3)

	_, err := AddItem(db, user.ID, book.ID, 2)
	require.NoError(t, err)

	// 2 already in the cart; adding 2 more would exceed stock 3.
	_, err = AddItem(db, user.ID, book.ID, 2)
	requireFiberStatus(t, err, fiber.StatusConflict)

	_, err = AddItem(db, user.ID, book.ID, 1)
	require.NoError(t, err)
}

func TestAddItemUnknownBook(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db)

	_, err := AddItem(db, user.ID, uuid.New(), 1)
	requireFiberStatus(t, err, fiber.StatusNotFound)
}

func TestUpdateItemChecksStock(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db)
	book := seedBook(t, db, 4)
	item, err := AddItem(db, user.ID, book.ID, 1)
	require.NoError(t, err)

	updated, err := UpdateItem(db, user.ID, item.ID, 4)
	require.NoError(t, err)
	require.Equal(t, 4, updated.Quantity)

	_, err = UpdateItem(db, user.ID, item.ID, 5)
	requireFiberStatus(t, err, fiber.StatusConflict)
}

func TestOwnershipSplit(t *testing.T) {
	db := setupDB(t)
	owner := seedUser(t, db)
	other := seedUser(t, db)
	book := seedBook(t, db, 5)
	item, err := AddItem(db, owner.ID, book.ID, 1)
	require.NoError(t, err)

	// Someone else's line is 403, a missing line is 404.
	_, err = UpdateItem(db, other.ID, item.ID, 2)
	requireFiberStatus(t, err, fiber.StatusForbidden)

	err = RemoveItem(db, other.ID, item.ID)
	requireFiberStatus(t, err, fiber.StatusForbidden)

	err = RemoveItem(db, owner.ID, uuid.New())
	requireFiberStatus(t, err, fiber.StatusNotFound)
}

func TestClearCart(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db)
	first := seedBook(t, db, 5)
	second := seedBook(t, db, 5)
	_, err := AddItem(db, user.ID, first.ID, 1)
	require.NoError(t, err)
	_, err = AddItem(db, user.ID, second.ID, 2)
	require.NoError(t, err)

	require.NoError(t, ClearCart(db, user.ID))

	items, err := FindAll(db, user.ID)
	require.NoError(t, err)
	require.Empty(t, items)
}
