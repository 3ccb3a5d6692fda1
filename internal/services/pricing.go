package services

import (
	"context"
	"errors"

	"qrdine/internal/common"
	"qrdine/internal/models"
	"qrdine/internal/repositories"

	"github.com/shopspring/decimal"
)

const (
	minLineQuantity = 1
	maxLineQuantity = 100
)

// CartLine is one customer line before pricing. Any price the client sent is
// not part of it.
type CartLine struct {
	MenuItemID          int64
	Quantity            int
	SpecialInstructions *string
	AddOnIDs            []int64
}

// PricedLine is a cart line resolved against the live catalog
type PricedLine struct {
	MenuItemID          int64
	MenuItemName        string
	Quantity            int
	UnitPrice           decimal.Decimal
	SpecialInstructions *string
	AddOns              []*models.MenuItemAddOn
}

// LineTotal is UnitPrice x Quantity
func (l PricedLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// PricingSnapshotter resolves a cart to immutable unit prices. It has no side
// effects and reads only through the repositories it is given, so calling it
// with a transaction-bound store keeps validation and the write consistent.
type PricingSnapshotter struct{}

func NewPricingSnapshotter() *PricingSnapshotter {
	return &PricingSnapshotter{}
}

// Snapshot validates the table and every line, failing on the first bad one
func (p *PricingSnapshotter) Snapshot(ctx context.Context, store repositories.Store, tableID int64, lines []CartLine) (*models.Table, []PricedLine, error) {
	if len(lines) == 0 {
		return nil, nil, common.ErrEmptyCart
	}
	for i, line := range lines {
		if line.Quantity < minLineQuantity || line.Quantity > maxLineQuantity {
			return nil, nil, &common.LineError{Line: i, ID: line.MenuItemID, Err: common.ErrInvalidQuantity}
		}
	}

	table, err := store.Tables().GetByID(ctx, tableID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, nil, common.ErrTableNotFound
		}
		return nil, nil, common.SecureErrorMessage("load table", err)
	}
	if !table.IsActive {
		return nil, nil, common.ErrTableNotFound
	}

	priced := make([]PricedLine, 0, len(lines))
	for i, line := range lines {
		item, err := store.MenuItems().GetByID(ctx, line.MenuItemID)
		if err != nil {
			if common.IsNotFound(err) {
				return nil, nil, &common.LineError{Line: i, ID: line.MenuItemID, Err: common.ErrMenuItemNotFound}
			}
			return nil, nil, common.SecureErrorMessage("load menu item", err)
		}
		// an item from another restaurant is as unknown as a missing one
		if !item.IsAvailable || item.RestaurantID != table.RestaurantID {
			return nil, nil, &common.LineError{Line: i, ID: line.MenuItemID, Err: common.ErrMenuItemNotFound}
		}

		addOns, err := p.resolveAddOns(ctx, store, item, line.AddOnIDs)
		if err != nil {
			var le *common.LineError
			if errors.As(err, &le) {
				le.Line = i
				return nil, nil, le
			}
			return nil, nil, err
		}

		unitPrice := item.Price.Decimal
		for _, a := range addOns {
			unitPrice = unitPrice.Add(a.Price.Decimal)
		}

		priced = append(priced, PricedLine{
			MenuItemID:          item.ID,
			MenuItemName:        item.Name,
			Quantity:            line.Quantity,
			UnitPrice:           unitPrice.Round(2),
			SpecialInstructions: line.SpecialInstructions,
			AddOns:              addOns,
		})
	}
	return table, priced, nil
}

func (p *PricingSnapshotter) resolveAddOns(ctx context.Context, store repositories.Store, item *models.MenuItem, ids []int64) ([]*models.MenuItemAddOn, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	available, err := store.MenuItems().ListAddOns(ctx, []int64{item.ID}, true)
	if err != nil {
		return nil, common.SecureErrorMessage("load add-ons", err)
	}
	byID := make(map[int64]*models.MenuItemAddOn, len(available))
	for _, a := range available {
		if a.MenuItemID == item.ID {
			byID[a.ID] = a
		}
	}

	seen := make(map[int64]bool, len(ids))
	selected := make([]*models.MenuItemAddOn, 0, len(ids))
	for _, id := range ids {
		a, ok := byID[id]
		if !ok || seen[id] {
			return nil, &common.LineError{ID: id, Err: common.ErrAddOnNotFound}
		}
		seen[id] = true
		selected = append(selected, a)
	}
	return selected, nil
}

// OrderTotal sums the line totals with two-decimal currency semantics
func OrderTotal(lines []PricedLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}
	return total.Round(2)
}
