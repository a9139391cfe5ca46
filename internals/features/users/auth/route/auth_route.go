package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"maktabati_backend/internals/features/users/auth/controller"
	"maktabati_backend/internals/middlewares"
)

func AuthRoutes(api fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/signUp", authController.SignUp)
	auth.Post("/signIn", middlewares.LoginRateLimiter(), authController.SignIn)
	auth.Post("/forgotPassword", authController.ForgotPassword)
	auth.Post("/verifyResetCode", authController.VerifyResetCode)
	auth.Post("/resetPassword", authController.ResetPassword)
}
