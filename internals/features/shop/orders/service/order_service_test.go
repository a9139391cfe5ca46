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
	cartModel "maktabati_backend/internals/features/shop/cart/model"
	"maktabati_backend/internals/features/shop/orders/model"
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
		&userModel.AddressModel{},
		&categoryModel.CategoryModel{},
		&bookModel.BookModel{},
		&cartModel.CartItemModel{},
		&model.OrderModel{},
		&model.OrderItemModel{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, complete bool) *userModel.UserModel {
	t.Helper()
	name := "Aya"
	user := userModel.UserModel{
		Name:     &name,
		Email:    uuid.NewString() + "@example.com",
		Password: "hashed",
	}
	if complete {
		phone := "+962790000000"
		user.Phone = &phone
	}
	require.NoError(t, db.Create(&user).Error)
	if complete {
		addr := userModel.AddressModel{
			UserID:  user.ID,
			Country: "Jordan",
			City:    "Amman",
			Street:  "Rainbow St.",
		}
		require.NoError(t, db.Create(&addr).Error)
		user.Address = &addr
	}
	return &user
}

func seedBook(t *testing.T, db *gorm.DB, title string, price float64, stock int) *bookModel.BookModel {
	t.Helper()
	cat := categoryModel.CategoryModel{Name: "Fiction-" + uuid.NewString()}
	require.NoError(t, db.Create(&cat).Error)
	book := bookModel.BookModel{
		Title:       title,
		Author:      "Unknown",
		Description: "desc",
		Price:       price,
		Stock:       stock,
		CategoryID:  cat.ID,
	}
	require.NoError(t, db.Create(&book).Error)
	return &book
}

func addToCart(t *testing.T, db *gorm.DB, userID, bookID uuid.UUID, qty int) {
	t.Helper()
	require.NoError(t, db.Create(&cartModel.CartItemModel{
		UserID:   userID,
		BookID:   bookID,
		Quantity: qty,
	}).Error)
}

func requireFiberStatus(t *testing.T, err error, status int) {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, status, fe.Code)
}

func stockOf(t *testing.T, db *gorm.DB, bookID uuid.UUID) int {
	t.Helper()
	var book bookModel.BookModel
	require.NoError(t, db.First(&book, "id = ?", bookID).Error)
	return book.Stock
}

func TestCreateOrderFromCart(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, true)
	novel := seedBook(t, db, "رواية", 100, 5)
	poems := seedBook(t, db, "ديوان", 50, 3)
	addToCart(t, db, user.ID, novel.ID, 2)
	addToCart(t, db, user.ID, poems.ID, 1)

	order, err := CreateOrderFromCart(db, user.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusPending, order.Status)
	require.Equal(t, 250.0, order.TotalPrice)
	require.Len(t, order.Items, 2)
	require.NotEmpty(t, order.ShippingAddress)

	require.Equal(t, 3, stockOf(t, db, novel.ID))
	require.Equal(t, 2, stockOf(t, db, poems.ID))

	var cartCount int64
	require.NoError(t, db.Model(&cartModel.CartItemModel{}).
		Where("user_id = ?", user.ID).Count(&cartCount).Error)
	require.Zero(t, cartCount)
}

func TestCreateOrderFromCartSnapshotsUndiscountedPrice(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, true)
	book := seedBook(t, db, "مخفض", 200, 10)
	require.NoError(t, db.Model(book).Update("discount", 50).Error)
	addToCart(t, db, user.ID, book.ID, 1)

	order, err := CreateOrderFromCart(db, user.ID)
	require.NoError(t, err)
	require.Equal(t, 200.0, order.TotalPrice)
	require.Equal(t, 200.0, order.Items[0].Price)
}

func TestCreateOrderFromCartEmptyCart(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, true)

	_, err := CreateOrderFromCart(db, user.ID)
	requireFiberStatus(t, err, fiber.StatusNotFound)
}

func TestCreateOrderFromCartIncompleteProfile(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, false)
	book := seedBook(t, db, "كتاب", 30, 4)
	addToCart(t, db, user.ID, book.ID, 1)

	_, err := CreateOrderFromCart(db, user.ID)
	requireFiberStatus(t, err, fiber.StatusBadRequest)
}

func TestCreateOrderFromCartInsufficientStockRollsBack(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, true)
	inStock := seedBook(t, db, "متوفر", 100, 5)
	scarce := seedBook(t, db, "نادر", 80, 1)
	addToCart(t, db, user.ID, inStock.ID, 2)
	addToCart(t, db, user.ID, scarce.ID, 3)

	_, err := CreateOrderFromCart(db, user.ID)
	requireFiberStatus(t, err, fiber.StatusConflict)

	// Nothing moved: stock untouched, cart intact, no order rows.
	require.Equal(t, 5, stockOf(t, db, inStock.ID))
	require.Equal(t, 1, stockOf(t, db, scarce.ID))

	var cartCount, orderCount int64
	require.NoError(t, db.Model(&cartModel.CartItemModel{}).Count(&cartCount).Error)
	require.NoError(t, db.Model(&model.OrderModel{}).Count(&orderCount).Error)
	require.EqualValues(t, 2, cartCount)
	require.Zero(t, orderCount)
}

func TestCancelMyOrderRestoresStockOnce(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, true)
	book := seedBook(t, db, "كتاب", 40, 5)
	addToCart(t, db, user.ID, book.ID, 2)

	order, err := CreateOrderFromCart(db, user.ID)
	require.NoError(t, err)
	require.Equal(t, 3, stockOf(t, db, book.ID))

	cancelled, err := CancelMyOrder(db, user.ID, order.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusCancelled, cancelled.Status)
	require.Equal(t, 5, stockOf(t, db, book.ID))

	// Already CANCELLED: the second cancel fails and stock stays put.
	_, err = CancelMyOrder(db, user.ID, order.ID)
	requireFiberStatus(t, err, fiber.StatusUnprocessableEntity)
	require.Equal(t, 5, stockOf(t, db, book.ID))
}

func TestCancelMyOrderOwnership(t *testing.T) {
	db := setupDB(t)
	owner := seedUser(t, db, true)
	other := seedUser(t, db, true)
	book := seedBook(t, db, "كتاب", 25, 3)
	addToCart(t, db, owner.ID, book.ID, 1)

	order, err := CreateOrderFromCart(db, owner.ID)
	require.NoError(t, err)

	_, err = CancelMyOrder(db, other.ID, order.ID)
	requireFiberStatus(t, err, fiber.StatusForbidden)

	_, err = CancelMyOrder(db, owner.ID, uuid.New())
	requireFiberStatus(t, err, fiber.StatusNotFound)
}

func TestUpdateStatusByAdminTransitions(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, true)
	book := seedBook(t, db, "كتاب", 60, 8)
	addToCart(t, db, user.ID, book.ID, 2)
	order, err := CreateOrderFromCart(db, user.ID)
	require.NoError(t, err)

	_, err = UpdateStatusByAdmin(db, order.ID, "SHIPPED")
	requireFiberStatus(t, err, fiber.StatusBadRequest)

	_, err = UpdateStatusByAdmin(db, order.ID, model.StatusCompleted)
	requireFiberStatus(t, err, fiber.StatusUnprocessableEntity)

	updated, err := UpdateStatusByAdmin(db, order.ID, model.StatusProcessing)
	require.NoError(t, err)
	require.Equal(t, model.StatusProcessing, updated.Status)

	updated, err = UpdateStatusByAdmin(db, order.ID, model.StatusCompleted)
	require.NoError(t, err)
	require.Equal(t, model.StatusCompleted, updated.Status)

	// COMPLETED is terminal.
	_, err = UpdateStatusByAdmin(db, order.ID, model.StatusCancelled)
	requireFiberStatus(t, err, fiber.StatusUnprocessableEntity)
	require.Equal(t, 6, stockOf(t, db, book.ID))
}

func TestUpdateStatusByAdminCancelFromProcessingRestoresStock(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, true)
	book := seedBook(t, db, "كتاب", 60, 8)
	addToCart(t, db, user.ID, book.ID, 3)
	order, err := CreateOrderFromCart(db, user.ID)
	require.NoError(t, err)
	require.Equal(t, 5, stockOf(t, db, book.ID))

	_, err = UpdateStatusByAdmin(db, order.ID, model.StatusProcessing)
	require.NoError(t, err)

	updated, err := UpdateStatusByAdmin(db, order.ID, model.StatusCancelled)
	require.NoError(t, err)
	require.Equal(t, model.StatusCancelled, updated.Status)
	require.Equal(t, 8, stockOf(t, db, book.ID))
}

func TestRemoveRestoresStockUnlessCancelled(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, true)
	book := seedBook(t, db, "كتاب", 45, 10)
	addToCart(t, db, user.ID, book.ID, 4)
	order, err := CreateOrderFromCart(db, user.ID)
	require.NoError(t, err)
	require.Equal(t, 6, stockOf(t, db, book.ID))

	require.NoError(t, Remove(db, order.ID))
	require.Equal(t, 10, stockOf(t, db, book.ID))

	err = Remove(db, order.ID)
	requireFiberStatus(t, err, fiber.StatusNotFound)
	require.Equal(t, 10, stockOf(t, db, book.ID))
}

func TestRemoveAbortsWhenStatusChangesMidFlight(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, true)
	book := seedBook(t, db, "كتاب", 45, 5)
	addToCart(t, db, user.ID, book.ID, 2)
	order, err := CreateOrderFromCart(db, user.ID)
	require.NoError(t, err)
	require.Equal(t, 3, stockOf(t, db, book.ID))

	// Flip the order to CANCELLED after Remove has read it but before its
	// delete runs, the way a cancellation committing in between would.
	fired := false
	err = db.Callback().Delete().Before("gorm:delete").Register("cancel_mid_remove", func(d *gorm.DB) {
		if fired || d.Statement.Table != "orders" {
			return
		}
		fired = true
		_, execErr := d.Statement.ConnPool.ExecContext(d.Statement.Context,
			"UPDATE orders SET status = ? WHERE id = ?", model.StatusCancelled, order.ID)
		require.NoError(t, execErr)
	})
	require.NoError(t, err)

	err = Remove(db, order.ID)
	requireFiberStatus(t, err, fiber.StatusConflict)
	require.True(t, fired)

	// The stale delete affected nothing and the transaction rolled back:
	// the order survives and stock was not restored by this path.
	require.NoError(t, db.Callback().Delete().Remove("cancel_mid_remove"))

	var reloaded model.OrderModel
	require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
	require.Equal(t, model.StatusPending, reloaded.Status)
	require.Equal(t, 3, stockOf(t, db, book.ID))

	var itemCount int64
	require.NoError(t, db.Model(&model.OrderItemModel{}).
		Where("order_id = ?", order.ID).Count(&itemCount).Error)
	require.EqualValues(t, 1, itemCount)
}

func TestRemoveCancelledOrderDoesNotRestoreTwice(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, true)
	book := seedBook(t, db, "كتاب", 45, 10)
	addToCart(t, db, user.ID, book.ID, 4)
	order, err := CreateOrderFromCart(db, user.ID)
	require.NoError(t, err)

	_, err = CancelMyOrder(db, user.ID, order.ID)
	require.NoError(t, err)
	require.Equal(t, 10, stockOf(t, db, book.ID))

	require.NoError(t, Remove(db, order.ID))
	require.Equal(t, 10, stockOf(t, db, book.ID))
}

func TestFindOneOwnership(t *testing.T) {
	db := setupDB(t)
	owner := seedUser(t, db, true)
	other := seedUser(t, db, true)
	book := seedBook(t, db, "كتاب", 20, 2)
	addToCart(t, db, owner.ID, book.ID, 1)
	order, err := CreateOrderFromCart(db, owner.ID)
	require.NoError(t, err)

	found, err := FindOne(db, owner.ID, order.ID)
	require.NoError(t, err)
	require.Equal(t, order.ID, found.ID)

	_, err = FindOne(db, other.ID, order.ID)
	requireFiberStatus(t, err, fiber.StatusForbidden)

	_, err = FindOne(db, owner.ID, uuid.New())
	requireFiberStatus(t, err, fiber.StatusNotFound)
}

func TestFindAllByUser(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, true)
	book := seedBook(t, db, "كتاب", 20, 5)
	addToCart(t, db, user.ID, book.ID, 1)
	_, err := CreateOrderFromCart(db, user.ID)
	require.NoError(t, err)

	orders, err := FindAllByUser(db, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	_, err = FindAllByUser(db, uuid.New())
	requireFiberStatus(t, err, fiber.StatusNotFound)

	empty := seedUser(t, db, true)
	_, err = FindAllByUser(db, empty.ID)
	requireFiberStatus(t, err, fiber.StatusNotFound)
}
