package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"maktabati_backend/internals/configs"
	bookModel "maktabati_backend/internals/features/catalog/books/model"
	categoryModel "maktabati_backend/internals/features/catalog/categories/model"
	cartModel "maktabati_backend/internals/features/shop/cart/model"
	orderModel "maktabati_backend/internals/features/shop/orders/model"
	wishlistModel "maktabati_backend/internals/features/shop/wishlist/model"
	authModel "maktabati_backend/internals/features/users/auth/model"
	userModel "maktabati_backend/internals/features/users/user/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL...")

	dsn := configs.GetEnv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"postgresql://%s:%s@%s:%s/%s?sslmode=%s",
			configs.GetEnv("DB_USER"),
			configs.GetEnv("DB_PASSWORD"),
			configs.GetEnv("DB_HOST", "localhost"),
			configs.GetEnv("DB_PORT", "5432"),
			configs.GetEnv("DB_NAME"),
			configs.GetEnv("DB_SSLMODE", "require"),
		)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // avoid prepared-statement cache behind PgBouncer
	}), &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true, // surface unique violations as gorm.ErrDuplicatedKey
	})
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}

	DB = db
	log.Println("✅ PostgreSQL connected")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("[WARN] cannot access sql.DB for pool tuning: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
}

// AutoMigrate keeps the schema in sync on boot. Order matters: referenced
// tables first so the FK constraints can be created.
func AutoMigrate() {
	if err := DB.AutoMigrate(
		&userModel.UserModel{},
		&userModel.AddressModel{},
		&authModel.PasswordResetModel{},
		&categoryModel.CategoryModel{},
		&bookModel.BookModel{},
		&cartModel.CartItemModel{},
		&orderModel.OrderModel{},
		&orderModel.OrderItemModel{},
		&wishlistModel.WishlistModel{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}
	log.Println("✅ Schema migrated")
}
