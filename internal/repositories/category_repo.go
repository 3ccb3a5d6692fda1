package repositories

import (
	"context"
	"errors"

	"qrdine/internal/common"
	"qrdine/internal/models"

	"github.com/jackc/pgx/v5"
)

type CategoryRepository interface {
	GetByID(ctx context.Context, restaurantID, id int64) (*models.MenuCategory, error)
	ListByRestaurant(ctx context.Context, restaurantID int64, activeOnly bool) ([]*models.MenuCategory, error)
	MemberIDs(ctx context.Context, restaurantID int64) ([]int64, error)
	ApplyOrder(ctx context.Context, restaurantID int64, ids []int64) (int64, error)
}

type categoryRepo struct {
	db Database
}

func NewCategoryRepo(db Database) CategoryRepository {
	return &categoryRepo{db: db}
}

const categoryColumns = `id, restaurant_id, name, description, display_order, is_active, created_at, updated_at`

func scanCategory(row pgx.Row) (*models.MenuCategory, error) {
	c := &models.MenuCategory{}
	if err := row.Scan(&c.ID, &c.RestaurantID, &c.Name, &c.Description, &c.DisplayOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *categoryRepo) GetByID(ctx context.Context, restaurantID, id int64) (*models.MenuCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM menu_categories WHERE restaurant_id = $1 AND id = $2`
	c, err := scanCategory(r.db.QueryRow(ctx, query, restaurantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrCategoryNotFound
	}
	return c, err
}

func (r *categoryRepo) ListByRestaurant(ctx context.Context, restaurantID int64, activeOnly bool) ([]*models.MenuCategory, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM menu_categories
		WHERE restaurant_id = $1 AND (is_active OR NOT $2)
		ORDER BY display_order, id
	`
	rows, err := r.db.Query(ctx, query, restaurantID, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*models.MenuCategory{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// MemberIDs returns every category of the restaurant, active or not
func (r *categoryRepo) MemberIDs(ctx context.Context, restaurantID int64) ([]int64, error) {
	return queryIDs(ctx, r.db, `SELECT id FROM menu_categories WHERE restaurant_id = $1`, restaurantID)
}

// ApplyOrder sets display_order to each id's 0-based position in ids
func (r *categoryRepo) ApplyOrder(ctx context.Context, restaurantID int64, ids []int64) (int64, error) {
	query := `
		UPDATE menu_categories AS c
		SET display_order = u.pos - 1, updated_at = NOW()
		FROM unnest($1::bigint[]) WITH ORDINALITY AS u(id, pos)
		WHERE c.id = u.id AND c.restaurant_id = $2
	`
	tag, err := r.db.Exec(ctx, query, ids, restaurantID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func queryIDs(ctx context.Context, db Database, query string, args ...any) ([]int64, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
