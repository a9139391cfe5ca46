package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"maktabati_backend/internals/features/users/user/dto"
	"maktabati_backend/internals/features/users/user/model"
)

// CreateUser is the admin-side create: hashes the password and attaches the
// optional address in one transaction.
func CreateUser(db *gorm.DB, p dto.UserCreateRequest) (*model.UserModel, error) {
	if taken, err := emailTaken(db, p.Email, uuid.Nil); err != nil {
		return nil, err
	} else if taken {
		return nil, fiber.NewError(fiber.StatusBadRequest, "User with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.UserModel{
		Name:     optional(p.Name),
		Email:    p.Email,
		Password: string(hashed),
		Phone:    p.Phone,
	}
	if p.Role != nil {
		user.Role = *p.Role
	}
	if p.Address != nil {
		user.Address = addressFromRequest(*p.Address)
	}

	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "User with this email already exists")
		}
		return nil, err
	}
	return &user, nil
}

// FindAllUsers lists everyone with addresses; empty is a 404 per the
// storefront contract.
func FindAllUsers(db *gorm.DB) ([]model.UserModel, error) {
	var users []model.UserModel
	if err := db.Preload("Address").Order("created_at desc").Find(&users).Error; err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "No users found")
	}
	return users, nil
}

func FindUser(db *gorm.DB, id uuid.UUID) (*model.UserModel, error) {
	var user model.UserModel
	if err := db.Preload("Address").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUser is the admin-side update: duplicate-email checked, address
// upserted.
func UpdateUser(db *gorm.DB, id uuid.UUID, p dto.UserUpdateRequest) (*model.UserModel, error) {
	user, err := FindUser(db, id)
	if err != nil {
		return nil, err
	}
	if err := applyUpdate(db, user, p, fiber.StatusBadRequest); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser hard-deletes a user (admin only).
func DeleteUser(db *gorm.DB, id uuid.UUID) error {
	user, err := FindUser(db, id)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.AddressModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}

// UpdateMe is the self-service profile update; duplicate email is a 409 here.
func UpdateMe(db *gorm.DB, userID uuid.UUID, p dto.UserUpdateRequest) (*model.UserModel, error) {
	user, err := FindUser(db, userID)
	if err != nil {
		return nil, err
	}
	p.Role = nil // users do not promote themselves
	if err := applyUpdate(db, user, p, fiber.StatusConflict); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateMyPassword rejects reusing the current password and stamps
// PasswordChangedAt so every outstanding token dies.
func UpdateMyPassword(db *gorm.DB, userID uuid.UUID, newPassword string) error {
	user, err := FindUser(db, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(newPassword)) == nil {
		return fiber.NewError(fiber.StatusBadRequest, "New password cannot be the same as the old password")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	return db.Model(user).Updates(map[string]interface{}{
		"password":            string(hashed),
		"password_changed_at": now,
	}).Error
}

// DeactivateMe is the soft delete: IsActive=false, row kept.
func DeactivateMe(db *gorm.DB, userID uuid.UUID) (*model.UserModel, error) {
	user, err := FindUser(db, userID)
	if err != nil {
		return nil, err
	}
	if err := db.Model(user).Update("is_active", false).Error; err != nil {
		return nil, err
	}
	user.IsActive = false
	return user, nil
}

func applyUpdate(db *gorm.DB, user *model.UserModel, p dto.UserUpdateRequest, dupStatus int) error {
	if p.Email != nil && *p.Email != user.Email {
		if taken, err := emailTaken(db, *p.Email, user.ID); err != nil {
			return err
		} else if taken {
			return fiber.NewError(dupStatus, "Email already exists")
		}
		user.Email = *p.Email
	}
	if p.Name != nil {
		user.Name = p.Name
	}
	if p.Phone != nil {
		user.Phone = p.Phone
	}
	if p.Role != nil {
		user.Role = *p.Role
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(dupStatus, "Email already exists")
			}
			return err
		}
		if p.Address != nil {
			if err := upsertAddress(tx, user, *p.Address); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertAddress(tx *gorm.DB, user *model.UserModel, p dto.AddressRequest) error {
	var addr model.AddressModel
	err := tx.Where("user_id = ?", user.ID).First(&addr).Error
	switch {
	case err == nil:
		addr.Country = p.Country
		addr.City = p.City
		addr.Street = p.Street
		addr.HouseNumber = p.HouseNumber
		addr.Floor = p.Floor
		if err := tx.Save(&addr).Error; err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		addr = *addressFromRequest(p)
		addr.UserID = user.ID
		if err := tx.Create(&addr).Error; err != nil {
			return err
		}
	default:
		return err
	}
	user.Address = &addr
	return nil
}

func emailTaken(db *gorm.DB, email string, exclude uuid.UUID) (bool, error) {
	q := db.Model(&model.UserModel{}).Where("email = ?", email)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func addressFromRequest(p dto.AddressRequest) *model.AddressModel {
	return &model.AddressModel{
		Country:     p.Country,
		City:        p.City,
		Street:      p.Street,
		HouseNumber: p.HouseNumber,
		Floor:       p.Floor,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
