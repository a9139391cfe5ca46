package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"maktabati_backend/internals/features/shop/cart/controller"
	authMiddleware "maktabati_backend/internals/middlewares/auth"
)

func CartRoutes(api fiber.Router, db *gorm.DB) {
	h := &controller.CartController{DB: db}

	cart := api.Group("/cart", authMiddleware.AuthMiddleware(db))
	cart.Post("/", h.AddItem)
	cart.Get("/", h.FindAll)
	cart.Patch("/:itemId", h.UpdateItem)
	cart.Delete("/:itemId", h.RemoveItem)
	cart.Delete("/", h.ClearCart)
}
