package service

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"maktabati_backend/internals/features/users/auth/dto"
	userModel "maktabati_backend/internals/features/users/user/model"
)

// SignUp registers a new account and hands back a ready-to-use token.
func SignUp(db *gorm.DB, req *dto.SignUpRequest) (*userModel.UserModel, string, error) {
	var existing userModel.UserModel
	err := db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, "", fiber.NewError(fiber.StatusConflict, "This user already exists, please login")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[AUTH] signup lookup failed: %v", err)
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Failed to create user")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Failed to create user")
	}

	user := userModel.UserModel{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", fiber.NewError(fiber.StatusConflict, "This user already exists, please login")
		}
		log.Printf("[AUTH] signup create failed: %v", err)
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Failed to create user")
	}

	token, err := IssueToken(&user)
	if err != nil {
		log.Printf("[AUTH] token signing failed: %v", err)
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Failed to issue token")
	}
	return &user, token, nil
}

// SignIn checks credentials and issues a fresh token.
func SignIn(db *gorm.DB, req *dto.SignInRequest) (*userModel.UserModel, string, error) {
	var user userModel.UserModel
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fiber.NewError(fiber.StatusUnauthorized, "Password or email is incorrect")
		}
		log.Printf("[AUTH] signin lookup failed: %v", err)
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Failed to sign in")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", fiber.NewError(fiber.StatusUnauthorized, "Password or email is incorrect")
	}
	if !user.IsActive {
		return nil, "", fiber.NewError(fiber.StatusUnauthorized, "This account has been deactivated")
	}

	token, err := IssueToken(&user)
	if err != nil {
		log.Printf("[AUTH] token signing failed: %v", err)
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Failed to issue token")
	}
	return &user, token, nil
}
