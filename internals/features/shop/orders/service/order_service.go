package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	bookModel "maktabati_backend/internals/features/catalog/books/model"
	cartModel "maktabati_backend/internals/features/shop/cart/model"
	"maktabati_backend/internals/features/shop/orders/model"
	userModel "maktabati_backend/internals/features/users/user/model"
)

// CreateOrderFromCart converts the user's cart into a PENDING order.
//
// The whole step runs in one transaction: order + items insert, per-line
// conditional stock decrement, cart clear. Stock is decremented with
// `UPDATE books SET stock = stock - q WHERE id = ? AND stock >= q` and the
// affected-row count checked, so two users racing for the last copy cannot
// drive stock negative. The cart is cleared by the exact row ids read at the
// start and the delete count compared against that snapshot; a second
// checkout racing on the same cart deletes nothing and the whole transaction
// rolls back, so one cart produces at most one order.
//
// Line prices and the order total snapshot the undiscounted book price at
// checkout time; discounts stay a catalog-display concern.
func CreateOrderFromCart(db *gorm.DB, userID uuid.UUID) (*model.OrderModel, error) {
	var user userModel.UserModel
	if err := db.Preload("Address").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, err
	}
	if user.Phone == nil || *user.Phone == "" || user.Address == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "User profile incomplete. Please update phone and address.")
	}

	addressSnapshot, err := json.Marshal(user.Address)
	if err != nil {
		return nil, err
	}

	var order model.OrderModel
	err = db.Transaction(func(tx *gorm.DB) error {
		var cartItems []cartModel.CartItemModel
		if err := tx.Preload("Book").
			Where("user_id = ?", userID).
			Order("created_at desc").
			Find(&cartItems).Error; err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Cart is empty")
		}

		totalPrice := 0.0
		items := make([]model.OrderItemModel, 0, len(cartItems))
		cartIDs := make([]uuid.UUID, 0, len(cartItems))
		for _, ci := range cartItems {
			if ci.Book == nil {
				return fmt.Errorf("cart line %s has no book", ci.ID)
			}
			totalPrice += ci.Book.Price * float64(ci.Quantity)
			items = append(items, model.OrderItemModel{
				BookID:   ci.BookID,
				Quantity: ci.Quantity,
				Price:    ci.Book.Price,
			})
			cartIDs = append(cartIDs, ci.ID)
		}

		order = model.OrderModel{
			UserID:          userID,
			Status:          model.StatusPending,
			TotalPrice:      totalPrice,
			ShippingAddress: datatypes.JSON(addressSnapshot),
			Items:           items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, ci := range cartItems {
			res := tx.Model(&bookModel.BookModel{}).
				Where("id = ? AND stock >= ?", ci.BookID, ci.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", ci.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fiber.NewError(fiber.StatusConflict,
					fmt.Sprintf("Insufficient stock for %q", ci.Book.Title))
			}
		}

		res := tx.Where("id IN ?", cartIDs).Delete(&cartModel.CartItemModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(cartIDs)) {
			return fiber.NewError(fiber.StatusConflict, "Checkout already in progress")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[ORDER][CREATE] user=%s order=%s total=%.2f lines=%d",
		userID, order.ID, order.TotalPrice, len(order.Items))
	return &order, nil
}

// FindMyOrders lists the caller's orders, newest first.
func FindMyOrders(db *gorm.DB, userID uuid.UUID) ([]model.OrderModel, error) {
	var orders []model.OrderModel
	if err := db.Preload("Items.Book").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindOne returns one order, enforcing ownership.
func FindOne(db *gorm.DB, userID, orderID uuid.UUID) (*model.OrderModel, error) {
	var order model.OrderModel
	if err := db.Preload("Items.Book").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Order not found")
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Order belongs to another user")
	}
	return &order, nil
}

// CancelMyOrder is the only self-service status change: PENDING → CANCELLED.
// Cancellation restores the stock the order had reserved.
func CancelMyOrder(db *gorm.DB, userID, orderID uuid.UUID) (*model.OrderModel, error) {
	var order model.OrderModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Order not found")
			}
			return err
		}
		if order.UserID != userID {
			return fiber.NewError(fiber.StatusForbidden, "Order belongs to another user")
		}
		if order.Status != model.StatusPending {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("Invalid status transition %s → %s", order.Status, model.StatusCancelled))
		}
		return transition(tx, &order, model.StatusCancelled)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatusByAdmin moves an order along the transition table. Moving into
// CANCELLED restores stock (once — CANCELLED is terminal, so no transition
// can enter it twice).
func UpdateStatusByAdmin(db *gorm.DB, orderID uuid.UUID, status string) (*model.OrderModel, error) {
	if !model.ValidStatus(status) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Unknown order status")
	}

	var order model.OrderModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Order not found")
			}
			return err
		}
		if !model.CanTransition(order.Status, status) {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("Invalid status transition %s → %s", order.Status, status))
		}
		return transition(tx, &order, status)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// transition performs the guarded status write: the UPDATE is conditional on
// the status the caller read, so racing transitions cannot be lost, and stock
// restoration rides in the same transaction as the write.
func transition(tx *gorm.DB, order *model.OrderModel, to string) error {
	from := order.Status
	res := tx.Model(&model.OrderModel{}).
		Where("id = ? AND status = ?", order.ID, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusConflict, "Order status changed concurrently")
	}
	order.Status = to

	if to == model.StatusCancelled {
		if err := restoreStock(tx, order.Items); err != nil {
			return err
		}
	}
	return nil
}

// Remove hard-deletes an order, restoring each line's stock first. Orders
// already CANCELLED got their stock back at cancellation, so deleting one
// must not restore again. The delete is conditional on the status read at the
// start: a cancellation committing in between restores stock itself, so this
// path must abort rather than delete the row and restore a second time.
func Remove(db *gorm.DB, orderID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var order model.OrderModel
		if err := tx.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Order not found")
			}
			return err
		}

		if err := tx.Where("order_id = ?", orderID).Delete(&model.OrderItemModel{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND status = ?", orderID, order.Status).
			Delete(&model.OrderModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Deleted or transitioned concurrently; whoever won handled the
			// stock. Retry sees the current state.
			return fiber.NewError(fiber.StatusConflict, "Order changed concurrently")
		}

		if order.Status != model.StatusCancelled {
			if err := restoreStock(tx, order.Items); err != nil {
				return err
			}
		}
		return nil
	})
}

func restoreStock(tx *gorm.DB, items []model.OrderItemModel) error {
	for _, item := range items {
		if err := tx.Model(&bookModel.BookModel{}).
			Where("id = ?", item.BookID).
			UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
			return err
		}
	}
	return nil
}

// FindAll lists every order in the system (admin), newest first, paginated.
func FindAll(db *gorm.DB, offset, limit int) ([]model.OrderModel, int64, error) {
	var total int64
	if err := db.Model(&model.OrderModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []model.OrderModel
	if err := db.Preload("Items.Book").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// FindAllByUser lists one user's orders for an admin; 404 when the user does
// not exist and when they have no orders, matching the storefront contract.
func FindAllByUser(db *gorm.DB, userID uuid.UUID) ([]model.OrderModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, err
	}

	var orders []model.OrderModel
	if err := db.Preload("Items.Book").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "No orders found for this user")
	}
	return orders, nil
}
