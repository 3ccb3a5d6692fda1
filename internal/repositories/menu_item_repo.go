package repositories

import (
	"context"
	"errors"

	"qrdine/internal/common"
	"qrdine/internal/models"

	"github.com/jackc/pgx/v5"
)

type MenuItemRepository interface {
	GetByID(ctx context.Context, id int64) (*models.MenuItem, error)
	ListByCategory(ctx context.Context, categoryID int64, availableOnly bool) ([]*models.MenuItem, error)
	MemberIDs(ctx context.Context, categoryID int64) ([]int64, error)
	ApplyOrder(ctx context.Context, categoryID int64, ids []int64) (int64, error)
	ListAddOns(ctx context.Context, menuItemIDs []int64, availableOnly bool) ([]*models.MenuItemAddOn, error)
}

type menuItemRepo struct {
	db Database
}

func NewMenuItemRepo(db Database) MenuItemRepository {
	return &menuItemRepo{db: db}
}

const menuItemColumns = `m.id, m.category_id, c.restaurant_id, m.name, m.description, m.price::text, m.image_url, m.is_available, m.display_order, m.created_at, m.updated_at`

func scanMenuItem(row pgx.Row) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	var price string
	err := row.Scan(&item.ID, &item.CategoryID, &item.RestaurantID, &item.Name, &item.Description, &price,
		&item.ImageURL, &item.IsAvailable, &item.DisplayOrder, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if item.Price, err = parseMoney(price); err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID reads the live row, including price and availability, so callers
// always see the catalog as it is now.
func (r *menuItemRepo) GetByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	query := `
		SELECT ` + menuItemColumns + `
		FROM menu_items m
		JOIN menu_categories c ON c.id = m.category_id
		WHERE m.id = $1
	`
	item, err := scanMenuItem(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrMenuItemNotFound
	}
	return item, err
}

func (r *menuItemRepo) ListByCategory(ctx context.Context, categoryID int64, availableOnly bool) ([]*models.MenuItem, error) {
	query := `
		SELECT ` + menuItemColumns + `
		FROM menu_items m
		JOIN menu_categories c ON c.id = m.category_id
		WHERE m.category_id = $1 AND (m.is_available OR NOT $2)
		ORDER BY m.display_order, m.id
	`
	rows, err := r.db.Query(ctx, query, categoryID, availableOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*models.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *menuItemRepo) MemberIDs(ctx context.Context, categoryID int64) ([]int64, error) {
	return queryIDs(ctx, r.db, `SELECT id FROM menu_items WHERE category_id = $1`, categoryID)
}

func (r *menuItemRepo) ApplyOrder(ctx context.Context, categoryID int64, ids []int64) (int64, error) {
	query := `
		UPDATE menu_items AS m
		SET display_order = u.pos - 1, updated_at = NOW()
		FROM unnest($1::bigint[]) WITH ORDINALITY AS u(id, pos)
		WHERE m.id = u.id AND m.category_id = $2
	`
	tag, err := r.db.Exec(ctx, query, ids, categoryID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListAddOns returns the add-ons of the given menu items ordered per item
func (r *menuItemRepo) ListAddOns(ctx context.Context, menuItemIDs []int64, availableOnly bool) ([]*models.MenuItemAddOn, error) {
	if len(menuItemIDs) == 0 {
		return []*models.MenuItemAddOn{}, nil
	}
	query := `
		SELECT id, menu_item_id, name, price::text, is_available, display_order
		FROM menu_item_add_ons
		WHERE menu_item_id = ANY($1) AND (is_available OR NOT $2)
		ORDER BY menu_item_id, display_order, id
	`
	rows, err := r.db.Query(ctx, query, menuItemIDs, availableOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	addOns := []*models.MenuItemAddOn{}
	for rows.Next() {
		a := &models.MenuItemAddOn{}
		var price string
		if err := rows.Scan(&a.ID, &a.MenuItemID, &a.Name, &price, &a.IsAvailable, &a.DisplayOrder); err != nil {
			return nil, err
		}
		if a.Price, err = parseMoney(price); err != nil {
			return nil, err
		}
		addOns = append(addOns, a)
	}
	return addOns, rows.Err()
}
