package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	authModel "maktabati_backend/internals/features/users/auth/model"
	userModel "maktabati_backend/internals/features/users/user/model"
	"maktabati_backend/internals/helpers/mailer"
)

const resetCodeTTL = 10 * time.Minute

// ForgotPassword issues a 6-digit reset code and mails it to the account.
// Only the bcrypt hash of the code is stored.
func ForgotPassword(db *gorm.DB, email string) error {
	user, err := findByEmail(db, email)
	if err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		log.Printf("[AUTH] reset code generation failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate reset code")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate reset code")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).
			Delete(&authModel.PasswordResetModel{}).Error; err != nil {
			return err
		}
		reset := authModel.PasswordResetModel{
			UserID:    user.ID,
			CodeHash:  string(hash),
			ExpiresAt: time.Now().Add(resetCodeTTL),
		}
		return tx.Create(&reset).Error
	})
	if err != nil {
		log.Printf("[AUTH] storing reset code failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate reset code")
	}

	// Delivery is best effort, the code stays valid either way.
	go func() {
		if err := mailer.SendResetCode(user.Email, code); err != nil {
			log.Printf("[MAILER] reset code delivery to %s failed: %v", user.Email, err)
		}
	}()
	return nil
}

// VerifyResetCode checks the emailed code and marks it usable for ResetPassword.
func VerifyResetCode(db *gorm.DB, email, code string) error {
	user, err := findByEmail(db, email)
	if err != nil {
		return err
	}
	reset, err := activeReset(db, user.ID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(reset.CodeHash), []byte(code)) != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid or expired reset code")
	}
	if err := db.Model(reset).Update("verified", true).Error; err != nil {
		log.Printf("[AUTH] marking reset code verified failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to verify reset code")
	}
	return nil
}

// ResetPassword consumes a verified code and replaces the account password.
// Existing tokens stop working because password_changed_at moves forward.
func ResetPassword(db *gorm.DB, email, code, newPassword string) error {
	user, err := findByEmail(db, email)
	if err != nil {
		return err
	}
	reset, err := activeReset(db, user.ID)
	if err != nil {
		return err
	}
	if !reset.Verified {
		return fiber.NewError(fiber.StatusBadRequest, "Reset code has not been verified")
	}
	if bcrypt.CompareHashAndPassword([]byte(reset.CodeHash), []byte(code)) != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid or expired reset code")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to reset password")
	}

	now := time.Now()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&userModel.UserModel{}).
			Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"password":            string(hashed),
				"password_changed_at": now,
			}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", user.ID).
			Delete(&authModel.PasswordResetModel{}).Error
	})
	if err != nil {
		log.Printf("[AUTH] password reset failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to reset password")
	}
	return nil
}

func findByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "No account found for this email")
		}
		log.Printf("[AUTH] user lookup failed: %v", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to look up user")
	}
	return &user, nil
}

func activeReset(db *gorm.DB, userID interface{}) (*authModel.PasswordResetModel, error) {
	var reset authModel.PasswordResetModel
	err := db.Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Order("created_at DESC").
		First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid or expired reset code")
		}
		log.Printf("[AUTH] reset lookup failed: %v", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to verify reset code")
	}
	return &reset, nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
