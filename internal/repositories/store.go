package repositories

import (
	"context"
	"errors"
	"fmt"

	"qrdine/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// Database is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock pools alike
type Database interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store groups the repositories so a service can run several of them inside
// one transaction.
type Store interface {
	Tables() TableRepository
	Categories() CategoryRepository
	MenuItems() MenuItemRepository
	Orders() OrderRepository
	// WithTx runs fn against a Store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(Store) error) error
}

type store struct {
	db         Database
	tables     TableRepository
	categories CategoryRepository
	menuItems  MenuItemRepository
	orders     OrderRepository
}

func NewStore(db Database) Store {
	return &store{
		db:         db,
		tables:     NewTableRepo(db),
		categories: NewCategoryRepo(db),
		menuItems:  NewMenuItemRepo(db),
		orders:     NewOrderRepo(db),
	}
}

func (s *store) Tables() TableRepository { return s.tables }
func (s *store) Categories() CategoryRepository { return s.categories }
func (s *store) MenuItems() MenuItemRepository { return s.menuItems }
func (s *store) Orders() OrderRepository { return s.orders }

func (s *store) WithTx(ctx context.Context, fn func(Store) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(NewStore(tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NUMERIC columns are selected as ::text and parsed here, which keeps
// decimal precision without registering a custom pgx codec.
func parseMoney(raw string) (models.Money, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return models.Money{}, fmt.Errorf("parse numeric %q: %w", raw, err)
	}
	return models.NewMoney(d), nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505" && (constraint == "" || pgErr.ConstraintName == constraint)
}
