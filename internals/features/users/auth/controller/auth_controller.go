package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"maktabati_backend/internals/features/users/auth/dto"
	"maktabati_backend/internals/features/users/auth/service"
	helper "maktabati_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

var validate = validator.New()

func (ac *AuthController) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, token, err := service.SignUp(ac.DB, &req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Account created successfully", fiber.Map{
		"user":  user,
		"token": token,
	})
}

func (ac *AuthController) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, token, err := service.SignIn(ac.DB, &req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Signed in successfully", fiber.Map{
		"user":  user,
		"token": token,
	})
}

func (ac *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := service.ForgotPassword(ac.DB, req.Email); err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Reset code sent to your email", nil)
}

func (ac *AuthController) VerifyResetCode(c *fiber.Ctx) error {
	var req dto.VerifyResetCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := service.VerifyResetCode(ac.DB, req.Email, req.Code); err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Reset code verified", nil)
}

func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := service.ResetPassword(ac.DB, req.Email, req.Code, req.NewPassword); err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Password has been reset, please sign in", nil)
}
