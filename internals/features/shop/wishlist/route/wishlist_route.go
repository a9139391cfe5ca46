package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"maktabati_backend/internals/features/shop/wishlist/controller"
	authMiddleware "maktabati_backend/internals/middlewares/auth"
)

func WishlistRoutes(api fiber.Router, db *gorm.DB) {
	h := &controller.WishlistController{DB: db}

	wishlist := api.Group("/wishlist", authMiddleware.AuthMiddleware(db))
	wishlist.Post("/", h.Create)
	wishlist.Get("/", h.FindAll)
	wishlist.Get("/:bookId", h.FindOne)
	wishlist.Delete("/:bookId", h.Remove)
}
