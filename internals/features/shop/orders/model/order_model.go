package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	bookModel "maktabati_backend/internals/features/catalog/books/model"
)

// Order statuses. PENDING is initial; COMPLETED and CANCELLED are terminal.
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

// Transitions is the enforced state machine. Self-service cancellation is a
// further restriction on top of this (PENDING → CANCELLED only).
var Transitions = map[string][]string{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func CanTransition(from, to string) bool {
	for _, next := range Transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func ValidStatus(s string) bool {
	_, ok := Transitions[s]
	return ok
}

// OrderModel is an immutable snapshot of a checkout: total price, line prices
// and the shipping address are frozen at creation and never recomputed.
type OrderModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Status     string    `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	TotalPrice float64   `gorm:"type:numeric(10,2);not null" json:"total_price"`

	// Shipping address as captured at checkout time.
	ShippingAddress datatypes.JSON `json:"shipping_address,omitempty"`

	Items []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (OrderModel) TableName() string { return "orders" }

func (m *OrderModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = StatusPending
	}
	return nil
}

// OrderItemModel is one frozen line: unit price is the book price at checkout.
type OrderItemModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	BookID   uuid.UUID `gorm:"type:uuid;not null" json:"book_id"`
	Quantity int       `gorm:"not null" json:"quantity"`
	Price    float64   `gorm:"type:numeric(10,2);not null" json:"price"`

	Book *bookModel.BookModel `gorm:"foreignKey:BookID" json:"book,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (OrderItemModel) TableName() string { return "order_items" }

func (m *OrderItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
