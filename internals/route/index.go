package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookRoute "maktabati_backend/internals/features/catalog/books/route"
	categoryRoute "maktabati_backend/internals/features/catalog/categories/route"
	cartRoute "maktabati_backend/internals/features/shop/cart/route"
	orderRoute "maktabati_backend/internals/features/shop/orders/route"
	wishlistRoute "maktabati_backend/internals/features/shop/wishlist/route"
	authRoute "maktabati_backend/internals/features/users/auth/route"
	userRoute "maktabati_backend/internals/features/users/user/route"
)

// SetupRoutes mounts every feature group under /api.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	authRoute.AuthRoutes(api, db)
	userRoute.UserRoutes(api, db)
	categoryRoute.CategoryRoutes(api, db)
	bookRoute.BookRoutes(api, db)
	cartRoute.CartRoutes(api, db)
	orderRoute.OrderRoutes(api, db)
	wishlistRoute.WishlistRoutes(api, db)
}
