package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"maktabati_backend/internals/constants"
	"maktabati_backend/internals/features/catalog/categories/controller"
	authMiddleware "maktabati_backend/internals/middlewares/auth"
)

func CategoryRoutes(api fiber.Router, db *gorm.DB) {
	h := &controller.CategoryController{DB: db}

	categories := api.Group("/categories")
	categories.Get("/", h.FindAll)
	categories.Get("/:id", h.FindOne)

	admin := categories.Group("/",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("categories"), constants.AdminOnly...),
	)
	admin.Post("/", h.Create)
	admin.Patch("/:id", h.Update)
	admin.Delete("/:id", h.Delete)
}
