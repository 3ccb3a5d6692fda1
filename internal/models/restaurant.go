package models

import (
	"time"
)

type Restaurant struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Table identifies a physical seat group. TableCode is generated once at
// creation and never changes; it is what the printed QR code resolves to.
type Table struct {
	ID           int64     `json:"id" db:"id"`
	RestaurantID int64     `json:"restaurantId" db:"restaurant_id"`
	TableNumber  string    `json:"tableNumber" db:"table_number"`
	TableCode    string    `json:"tableCode" db:"table_code"`
	Capacity     int       `json:"capacity" db:"capacity"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateTableRequest is the staff payload for adding a table
type CreateTableRequest struct {
	TableNumber string `json:"tableNumber" validate:"required,max=20"`
	Capacity    int    `json:"capacity" validate:"required,min=1,max=50"`
}
