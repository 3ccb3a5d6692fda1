package models

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusReceived  OrderStatus = "Received"
	OrderStatusPreparing OrderStatus = "Preparing"
	OrderStatusReady     OrderStatus = "Ready"
	OrderStatusServed    OrderStatus = "Served"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// AllOrderStatuses lists the statuses in lifecycle order
var AllOrderStatuses = []OrderStatus{
	OrderStatusReceived,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusServed,
	OrderStatusCancelled,
}

// ActiveOrderStatuses are the non-terminal statuses shown on the kitchen display
var ActiveOrderStatuses = []OrderStatus{
	OrderStatusReceived,
	OrderStatusPreparing,
	OrderStatusReady,
}

// ParseOrderStatus accepts only the five exact enum values
func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range AllOrderStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

func (s OrderStatus) IsActive() bool {
	for _, st := range ActiveOrderStatuses {
		if st == s {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusServed || s == OrderStatusCancelled
}

// Order is owned by a table. TotalAmount is always computed server side as
// the sum of its items' unit price times quantity.
type Order struct {
	ID           int64        `json:"id" db:"id"`
	TableID      int64        `json:"tableId" db:"table_id"`
	RestaurantID int64        `json:"restaurantId" db:"restaurant_id"`
	TableNumber  string       `json:"tableNumber" db:"table_number"`
	Status       OrderStatus  `json:"status" db:"status"`
	TotalAmount  Money        `json:"totalAmount" db:"total_amount"`
	Notes        *string      `json:"notes" db:"notes"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`
	OrderItems   []*OrderItem `json:"orderItems" db:"-"`
}

// CreateOrderRequest is the customer cart submission. Prices are never read
// from the request.
type CreateOrderRequest struct {
	TableID    int64                    `json:"tableId" validate:"required,gt=0"`
	Notes      *string                  `json:"notes" validate:"omitempty,max=500"`
	OrderItems []CreateOrderItemRequest `json:"orderItems" validate:"required,min=1,dive"`
}

type CreateOrderItemRequest struct {
	MenuItemID          int64   `json:"menuItemId" validate:"required,gt=0"`
	Quantity            int     `json:"quantity" validate:"required,min=1,max=100"`
	SpecialInstructions *string `json:"specialInstructions" validate:"omitempty,max=250"`
	AddOnIDs            []int64 `json:"addOnIds" validate:"omitempty,dive,gt=0"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Received Preparing Ready Served Cancelled"`
}

// KitchenBacklog summarises the not-yet-served queue of one restaurant
type KitchenBacklog struct {
	RestaurantID int64     `json:"restaurantId"`
	ActiveOrders int       `json:"activeOrders"`
	OldestAt     time.Time `json:"oldestAt"`
}
