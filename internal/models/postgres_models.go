package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, j)
}

// StringArray type for PostgreSQL arrays
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, s)
}

// OrderItems is the order-detail payload persisted with an order.
type OrderItems []OrderItem

func (o OrderItems) Value() (driver.Value, error) {
	return json.Marshal(o)
}

func (o *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, o)
}

// User model - PostgreSQL
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"default:customer" json:"role"` // customer, restaurant_owner, admin
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Restaurant model - PostgreSQL. Monetary fields are stored as numeric
// columns and surfaced as two-fraction-digit decimal strings.
type Restaurant struct {
	ID             uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string      `gorm:"not null" json:"name"`
	Description    string      `json:"description"`
	Logo           string      `json:"logo"`
	CuisineTypes   StringArray `gorm:"type:jsonb" json:"cuisine_types"`
	OwnerID        uuid.UUID   `gorm:"type:uuid;not null;index" json:"owner_id"`
	DeliveryFee    string      `gorm:"type:numeric(10,2);default:0" json:"delivery_fee"`
	MinOrderAmount string      `gorm:"type:numeric(10,2);default:0" json:"min_order_amount"`
	ContactNumber  string      `json:"contact_number"`
	IsOpen         bool        `gorm:"default:true" json:"is_open"`
	Status         string      `gorm:"default:active" json:"status"` // active, inactive, suspended
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// OrderItem is one priced line of an order, carried over verbatim from
// the cart that produced it.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

// Order model - PostgreSQL (critical transactional data)
type Order struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User         User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	Items        OrderItems `gorm:"type:jsonb" json:"items"`
	TotalAmount  string     `gorm:"type:numeric(12,2)" json:"total_amount"`
	Status       string     `gorm:"default:pending" json:"status"` // pending, confirmed, preparing, dispatched, delivered, cancelled
	Notes        string     `json:"notes"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
