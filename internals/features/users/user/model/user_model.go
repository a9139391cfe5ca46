package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the users table.
type UserModel struct {
	ID                uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name              *string       `gorm:"size:50" json:"name,omitempty"`
	Email             string        `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password          string        `gorm:"not null" json:"-"`
	Phone             *string       `gorm:"size:30" json:"phone,omitempty"`
	Role              string        `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	IsActive          bool          `gorm:"not null;default:true" json:"is_active"`
	PasswordChangedAt *time.Time    `json:"password_changed_at,omitempty"`
	Address           *AddressModel `gorm:"foreignKey:UserID" json:"address,omitempty"`
	CreatedAt         time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = "USER"
	}
	return nil
}
