package repositories

import (
	"context"
	"errors"

	"qrdine/internal/common"
	"qrdine/internal/models"

	"github.com/jackc/pgx/v5"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	CreateItem(ctx context.Context, item *models.OrderItem) error
	CreateItemAddOn(ctx context.Context, addOn *models.OrderItemAddOn) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID int64) ([]*models.Order, error)
	ListByTable(ctx context.Context, restaurantID, tableID int64) ([]*models.Order, error)
	ListByStatus(ctx context.Context, restaurantID int64, statuses []models.OrderStatus) ([]*models.Order, error)
	LoadItems(ctx context.Context, orders []*models.Order) error
	UpdateStatus(ctx context.Context, id int64, from, to models.OrderStatus) (bool, error)
	Backlog(ctx context.Context) ([]*models.KitchenBacklog, error)
}

type orderRepo struct {
	db Database
}

func NewOrderRepo(db Database) OrderRepository {
	return &orderRepo{db: db}
}

const orderSelect = `
		SELECT o.id, o.table_id, t.restaurant_id, t.table_number, o.status, o.total_amount::text, o.notes, o.created_at, o.updated_at
		FROM orders o
		JOIN tables t ON t.id = o.table_id
`

func scanOrder(row pgx.Row) (*models.Order, error) {
	o := &models.Order{}
	var status, total string
	err := row.Scan(&o.ID, &o.TableID, &o.RestaurantID, &o.TableNumber, &status, &total, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Status = models.OrderStatus(status)
	if o.TotalAmount, err = parseMoney(total); err != nil {
		return nil, err
	}
	o.OrderItems = []*models.OrderItem{}
	return o, nil
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (table_id, status, total_amount, notes, created_at, updated_at)
		VALUES ($1, $2, $3::numeric, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, order.TableID, string(order.Status), order.TotalAmount.StringFixed(2), order.Notes).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

// GetByID returns the order header without items; see LoadItems
func (r *orderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrOrderNotFound
	}
	return o, err
}

func (r *orderRepo) ListByRestaurant(ctx context.Context, restaurantID int64) ([]*models.Order, error) {
	query := orderSelect + `
		WHERE t.restaurant_id = $1
		ORDER BY o.created_at DESC, o.id DESC
	`
	return r.list(ctx, query, restaurantID)
}

func (r *orderRepo) ListByTable(ctx context.Context, restaurantID, tableID int64) ([]*models.Order, error) {
	query := orderSelect + `
		WHERE t.restaurant_id = $1 AND o.table_id = $2
		ORDER BY o.created_at DESC, o.id DESC
	`
	return r.list(ctx, query, restaurantID, tableID)
}

// ListByStatus is oldest first so the kitchen works the queue in FIFO order
func (r *orderRepo) ListByStatus(ctx context.Context, restaurantID int64, statuses []models.OrderStatus) ([]*models.Order, error) {
	query := orderSelect + `
		WHERE t.restaurant_id = $1 AND o.status = ANY($2)
		ORDER BY o.created_at ASC, o.id ASC
	`
	return r.list(ctx, query, restaurantID, statusStrings(statuses))
}

func (r *orderRepo) list(ctx context.Context, query string, args ...any) ([]*models.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// UpdateStatus only writes when the row still holds the observed status.
// A false result means the order vanished or another writer got there first.
func (r *orderRepo) UpdateStatus(ctx context.Context, id int64, from, to models.OrderStatus) (bool, error) {
	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`
	tag, err := r.db.Exec(ctx, query, string(to), id, string(from))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *orderRepo) Backlog(ctx context.Context) ([]*models.KitchenBacklog, error) {
	query := `
		SELECT t.restaurant_id, COUNT(*), MIN(o.created_at)
		FROM orders o
		JOIN tables t ON t.id = o.table_id
		WHERE o.status = ANY($1)
		GROUP BY t.restaurant_id
		ORDER BY t.restaurant_id
	`
	rows, err := r.db.Query(ctx, query, statusStrings(models.ActiveOrderStatuses))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	backlog := []*models.KitchenBacklog{}
	for rows.Next() {
		b := &models.KitchenBacklog{}
		if err := rows.Scan(&b.RestaurantID, &b.ActiveOrders, &b.OldestAt); err != nil {
			return nil, err
		}
		backlog = append(backlog, b)
	}
	return backlog, rows.Err()
}

func statusStrings(statuses []models.OrderStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
