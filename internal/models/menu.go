package models

import (
	"time"
)

// MenuCategory belongs to a restaurant. DisplayOrder is only comparable
// between categories of the same restaurant.
type MenuCategory struct {
	ID           int64     `json:"id" db:"id"`
	RestaurantID int64     `json:"restaurantId" db:"restaurant_id"`
	Name         string    `json:"name" db:"name"`
	Description  *string   `json:"description,omitempty" db:"description"`
	DisplayOrder int       `json:"displayOrder" db:"display_order"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// MenuItem belongs to a category; DisplayOrder is scoped to that category.
type MenuItem struct {
	ID           int64            `json:"id" db:"id"`
	CategoryID   int64            `json:"categoryId" db:"category_id"`
	RestaurantID int64            `json:"restaurantId" db:"restaurant_id"`
	Name         string           `json:"name" db:"name"`
	Description  *string          `json:"description,omitempty" db:"description"`
	Price        Money            `json:"price" db:"price"`
	ImageURL     *string          `json:"imageUrl,omitempty" db:"image_url"`
	IsAvailable  bool             `json:"isAvailable" db:"is_available"`
	DisplayOrder int              `json:"displayOrder" db:"display_order"`
	CreatedAt    time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time        `json:"updatedAt" db:"updated_at"`
	AddOns       []*MenuItemAddOn `json:"addOns,omitempty" db:"-"`
}

// MenuItemAddOn is an optional paid modifier of a menu item
type MenuItemAddOn struct {
	ID           int64  `json:"id" db:"id"`
	MenuItemID   int64  `json:"menuItemId" db:"menu_item_id"`
	Name         string `json:"name" db:"name"`
	Price        Money  `json:"price" db:"price"`
	IsAvailable  bool   `json:"isAvailable" db:"is_available"`
	DisplayOrder int    `json:"displayOrder" db:"display_order"`
}

// MenuCategoryWithItems is the customer-facing menu section
type MenuCategoryWithItems struct {
	MenuCategory
	Items []*MenuItem `json:"items"`
}

// ReorderCategoriesRequest carries the full permutation of a restaurant's category ids
type ReorderCategoriesRequest struct {
	CategoryIDs []int64 `json:"categoryIds" validate:"required,min=1"`
}

// ReorderMenuItemsRequest carries the full permutation of a category's item ids
type ReorderMenuItemsRequest struct {
	MenuItemIDs []int64 `json:"menuItemIds" validate:"required,min=1"`
}
