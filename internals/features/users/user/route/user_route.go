package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"maktabati_backend/internals/constants"
	"maktabati_backend/internals/features/users/user/controller"
	authMiddleware "maktabati_backend/internals/middlewares/auth"
)

func UserRoutes(api fiber.Router, db *gorm.DB) {
	h := &controller.UserController{DB: db}

	users := api.Group("/users", authMiddleware.AuthMiddleware(db))

	// Self-service, any authenticated role. "me" before ":id".
	users.Get("/me", h.Me)
	users.Patch("/me", h.UpdateMe)
	users.Patch("/me/password", h.UpdateMyPassword)
	users.Delete("/me", h.DeactivateMe)

	adminGate := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("users"), constants.AdminOnly...)
	users.Post("/", adminGate, h.Create)
	users.Get("/", adminGate, h.FindAll)
	users.Get("/:id", adminGate, h.FindOne)
	users.Patch("/:id", adminGate, h.Update)
	users.Delete("/:id", adminGate, h.Delete)
}
