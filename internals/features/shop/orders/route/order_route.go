package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"maktabati_backend/internals/constants"
	"maktabati_backend/internals/features/shop/orders/controller"
	authMiddleware "maktabati_backend/internals/middlewares/auth"
)

func OrderRoutes(api fiber.Router, db *gorm.DB) {
	h := &controller.OrderController{DB: db}

	orders := api.Group("/orders", authMiddleware.AuthMiddleware(db))
	orders.Post("/", h.Create)
	orders.Get("/", h.FindMyOrders)
	orders.Get("/:id", h.FindOne)
	orders.Patch("/:id/cancel", h.CancelMyOrder)

	admin := api.Group("/admin/orders",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("orders"), constants.AdminOnly...),
	)
	admin.Get("/", h.FindAllByAdmin)
	admin.Get("/user/:userId", h.FindAllByUser)
	admin.Patch("/:id/status", h.UpdateStatusByAdmin)
	admin.Delete("/:id", h.Remove)
}
