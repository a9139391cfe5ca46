package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"maktabati_backend/internals/constants"
	"maktabati_backend/internals/features/catalog/books/controller"
	authMiddleware "maktabati_backend/internals/middlewares/auth"
)

func BookRoutes(api fiber.Router, db *gorm.DB) {
	h := &controller.BooksController{DB: db}

	books := api.Group("/books")

	// Static segments before the :id catch-all.
	books.Get("/category/:categoryId", h.FindByCategory)
	books.Get("/", h.FindAll)

	adminGate := []fiber.Handler{
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("books"), constants.AdminOnly...),
	}

	books.Patch("/discount", adminGate[0], adminGate[1], h.UpdateAllDiscount)
	books.Patch("/discount/:id", adminGate[0], adminGate[1], h.UpdateDiscount)
	books.Patch("/clear-discount", adminGate[0], adminGate[1], h.ClearAllDiscount)
	books.Patch("/clear-discount/:id", adminGate[0], adminGate[1], h.ClearDiscount)

	books.Get("/:id", h.FindOne)
	books.Post("/", adminGate[0], adminGate[1], h.Create)
	books.Patch("/:id", adminGate[0], adminGate[1], h.Update)
	books.Delete("/:id", adminGate[0], adminGate[1], h.Delete)
}
