package repositories

import (
	"context"
	"errors"

	"qrdine/internal/common"
	"qrdine/internal/models"

	"github.com/jackc/pgx/v5"
)

// ErrTableCodeTaken signals a table_code collision; callers regenerate and retry
var ErrTableCodeTaken = errors.New("table code already in use")

type TableRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Table, error)
	GetByCode(ctx context.Context, code string) (*models.Table, error)
	Create(ctx context.Context, table *models.Table) error
	HasOrders(ctx context.Context, id int64) (bool, error)
	Deactivate(ctx context.Context, restaurantID, id int64) (bool, error)
	Delete(ctx context.Context, restaurantID, id int64) (bool, error)
}

type tableRepo struct {
	db Database
}

func NewTableRepo(db Database) TableRepository {
	return &tableRepo{db: db}
}

const tableColumns = `id, restaurant_id, table_number, table_code, capacity, is_active, created_at, updated_at`

func scanTable(row pgx.Row) (*models.Table, error) {
	t := &models.Table{}
	err := row.Scan(&t.ID, &t.RestaurantID, &t.TableNumber, &t.TableCode, &t.Capacity, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrTableNotFound
		}
		return nil, err
	}
	return t, nil
}

// GetByID returns the table regardless of its active flag
func (r *tableRepo) GetByID(ctx context.Context, id int64) (*models.Table, error) {
	query := `SELECT ` + tableColumns + ` FROM tables WHERE id = $1`
	return scanTable(r.db.QueryRow(ctx, query, id))
}

func (r *tableRepo) GetByCode(ctx context.Context, code string) (*models.Table, error) {
	query := `SELECT ` + tableColumns + ` FROM tables WHERE table_code = $1`
	return scanTable(r.db.QueryRow(ctx, query, code))
}

func (r *tableRepo) Create(ctx context.Context, table *models.Table) error {
	query := `
		INSERT INTO tables (restaurant_id, table_number, table_code, capacity, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, NOW(), NOW())
		RETURNING id, is_active, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, table.RestaurantID, table.TableNumber, table.TableCode, table.Capacity).
		Scan(&table.ID, &table.IsActive, &table.CreatedAt, &table.UpdatedAt)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err, "tables_table_code_key"):
		return ErrTableCodeTaken
	case isUniqueViolation(err, "tables_restaurant_id_table_number_key"):
		return common.ErrTableNumberTaken
	default:
		return err
	}
}

func (r *tableRepo) HasOrders(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE table_id = $1)`, id).Scan(&exists)
	return exists, err
}

// Deactivate soft deletes the table; the returned flag is false when no row matched
func (r *tableRepo) Deactivate(ctx context.Context, restaurantID, id int64) (bool, error) {
	query := `UPDATE tables SET is_active = FALSE, updated_at = NOW() WHERE restaurant_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query, restaurantID, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *tableRepo) Delete(ctx context.Context, restaurantID, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM tables WHERE restaurant_id = $1 AND id = $2`, restaurantID, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
