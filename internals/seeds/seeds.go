package seeds

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"maktabati_backend/internals/configs"
	"maktabati_backend/internals/constants"
	categoryModel "maktabati_backend/internals/features/catalog/categories/model"
	userModel "maktabati_backend/internals/features/users/user/model"
)

var defaultCategories = []string{
	"الأدب العربي",
	"التاريخ الإسلامي",
	"تطوير الذات",
	"العلوم",
	"كتب الأطفال",
}

// Run seeds the admin account and the starter categories.
// Every step is idempotent so it is safe on each boot.
func Run(db *gorm.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	return seedCategories(db)
}

func seedAdmin(db *gorm.DB) error {
	email := configs.GetEnv("ADMIN_EMAIL", "admin@maktabati.local")
	password := configs.GetEnv("ADMIN_PASSWORD", "")
	if password == "" {
		log.Println("[SEED] ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var existing userModel.UserModel
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	name := "Admin"
	admin := userModel.UserModel{
		Name:     &name,
		Email:    email,
		Password: string(hashed),
		Role:     constants.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("[SEED] admin account '%s' created", email)
	return nil
}

func seedCategories(db *gorm.DB) error {
	for _, name := range defaultCategories {
		var existing categoryModel.CategoryModel
		err := db.Where("name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&categoryModel.CategoryModel{Name: name}).Error; err != nil {
			return err
		}
		log.Printf("[SEED] category '%s' created", name)
	}
	return nil
}
