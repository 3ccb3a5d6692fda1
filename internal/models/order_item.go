package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a line within an order. UnitPrice is a snapshot taken when the
// order was created and is never rewritten afterwards.
type OrderItem struct {
	ID                  int64             `json:"id" db:"id"`
	OrderID             int64             `json:"orderId" db:"order_id"`
	MenuItemID          int64             `json:"menuItemId" db:"menu_item_id"`
	MenuItemName        string            `json:"menuItemName" db:"menu_item_name"`
	Quantity            int               `json:"quantity" db:"quantity"`
	UnitPrice           Money             `json:"unitPrice" db:"unit_price"`
	SpecialInstructions *string           `json:"specialInstructions,omitempty" db:"special_instructions"`
	CreatedAt           time.Time         `json:"createdAt" db:"created_at"`
	AddOns              []*OrderItemAddOn `json:"addOns,omitempty" db:"-"`
}

// LineTotal is unit price times quantity
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderItemAddOn records an add-on chosen for an order line, with its name
// and price as they were at order time.
type OrderItemAddOn struct {
	ID          int64  `json:"id" db:"id"`
	OrderItemID int64  `json:"orderItemId" db:"order_item_id"`
	AddOnID     int64  `json:"addOnId" db:"add_on_id"`
	Name        string `json:"name" db:"name"`
	Price       Money  `json:"price" db:"price"`
}
