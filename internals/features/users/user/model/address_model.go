package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AddressModel is the single shipping address attached to a user.
type AddressModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Country     string    `gorm:"size:100;not null" json:"country"`
	City        string    `gorm:"size:100;not null" json:"city"`
	Street      string    `gorm:"size:255;not null" json:"street"`
	HouseNumber *string   `gorm:"size:30" json:"house_number,omitempty"`
	Floor       *string   `gorm:"size:30" json:"floor,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AddressModel) TableName() string { return "addresses" }

func (a *AddressModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
