package repositories

import (
	"context"

	"qrdine/internal/models"
)

func (r *orderRepo) CreateItem(ctx context.Context, item *models.OrderItem) error {
	query := `
		INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price, special_instructions, created_at)
		VALUES ($1, $2, $3, $4::numeric, $5, NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, item.OrderID, item.MenuItemID, item.Quantity, item.UnitPrice.StringFixed(2), item.SpecialInstructions).
		Scan(&item.ID, &item.CreatedAt)
}

func (r *orderRepo) CreateItemAddOn(ctx context.Context, addOn *models.OrderItemAddOn) error {
	query := `
		INSERT INTO order_item_add_ons (order_item_id, add_on_id, name, price)
		VALUES ($1, $2, $3, $4::numeric)
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, addOn.OrderItemID, addOn.AddOnID, addOn.Name, addOn.Price.StringFixed(2)).
		Scan(&addOn.ID)
}

// LoadItems attaches items (with menu item names) and their add-ons to the
// given orders using two queries regardless of how many orders are passed.
func (r *orderRepo) LoadItems(ctx context.Context, orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byOrder := make(map[int64]*models.Order, len(orders))
	orderIDs := make([]int64, 0, len(orders))
	for _, o := range orders {
		o.OrderItems = []*models.OrderItem{}
		byOrder[o.ID] = o
		orderIDs = append(orderIDs, o.ID)
	}

	query := `
		SELECT oi.id, oi.order_id, oi.menu_item_id, m.name, oi.quantity, oi.unit_price::text, oi.special_instructions, oi.created_at
		FROM order_items oi
		JOIN menu_items m ON m.id = oi.menu_item_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.id
	`
	rows, err := r.db.Query(ctx, query, orderIDs)
	if err != nil {
		return err
	}
	defer rows.Close()

	byItem := make(map[int64]*models.OrderItem)
	itemIDs := []int64{}
	for rows.Next() {
		item := &models.OrderItem{}
		var price string
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.MenuItemName, &item.Quantity, &price, &item.SpecialInstructions, &item.CreatedAt); err != nil {
			return err
		}
		if item.UnitPrice, err = parseMoney(price); err != nil {
			return err
		}
		if o, ok := byOrder[item.OrderID]; ok {
			o.OrderItems = append(o.OrderItems, item)
		}
		byItem[item.ID] = item
		itemIDs = append(itemIDs, item.ID)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	if len(itemIDs) == 0 {
		return nil
	}
	return r.loadItemAddOns(ctx, itemIDs, byItem)
}

func (r *orderRepo) loadItemAddOns(ctx context.Context, itemIDs []int64, byItem map[int64]*models.OrderItem) error {
	query := `
		SELECT id, order_item_id, add_on_id, name, price::text
		FROM order_item_add_ons
		WHERE order_item_id = ANY($1)
		ORDER BY order_item_id, id
	`
	rows, err := r.db.Query(ctx, query, itemIDs)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		a := &models.OrderItemAddOn{}
		var price string
		if err := rows.Scan(&a.ID, &a.OrderItemID, &a.AddOnID, &a.Name, &price); err != nil {
			return err
		}
		if a.Price, err = parseMoney(price); err != nil {
			return err
		}
		if item, ok := byItem[a.OrderItemID]; ok {
			item.AddOns = append(item.AddOns, a)
		}
	}
	return rows.Err()
}
