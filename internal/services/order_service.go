package services

import (
	"context"
	"errors"
	"log/slog"

	"qrdine/internal/common"
	"qrdine/internal/logger"
	"qrdine/internal/models"
	"qrdine/internal/repositories"
)

const (
	maxNotesLength        = 1000
	maxInstructionsLength = 500
)

// OrderRateLimiter caps order submissions per table
type OrderRateLimiter interface {
	AllowOrder(ctx context.Context, tableID int64) (bool, error)
}

// OrderServiceInterface defines the order lifecycle operations
type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, orderID int64) (*models.Order, error)
	GetRestaurantOrder(ctx context.Context, restaurantID, orderID int64) (*models.Order, error)
	ListOrders(ctx context.Context, restaurantID int64) ([]*models.Order, error)
	ListOrdersByStatus(ctx context.Context, restaurantID int64, status string) ([]*models.Order, error)
	ListActiveOrders(ctx context.Context, restaurantID int64) ([]*models.Order, error)
	ListTableOrders(ctx context.Context, restaurantID, tableID int64) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, restaurantID, orderID int64, status string) (*models.Order, error)
}

type orderService struct {
	store   repositories.Store
	pricing *PricingSnapshotter
	limiter OrderRateLimiter
	log     *logger.Logger
}

// NewOrderService creates a new order service instance. limiter may be nil.
func NewOrderService(store repositories.Store, limiter OrderRateLimiter, log *logger.Logger) OrderServiceInterface {
	if log == nil {
		log = logger.Nop()
	}
	return &orderService{
		store:   store,
		pricing: NewPricingSnapshotter(),
		limiter: limiter,
		log:     log,
	}
}

// CreateOrder prices the cart against the live catalog and persists the order
// with its items in one transaction. Nothing is written if any line fails.
func (s *orderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	if req == nil || len(req.OrderItems) == 0 {
		return nil, common.ErrEmptyCart
	}
	if err := s.checkRateLimit(ctx, req.TableID); err != nil {
		return nil, err
	}

	// Sanitize input data to prevent XSS on staff screens
	if err := common.SanitizeHTMLField(req.Notes, "notes", maxNotesLength); err != nil {
		return nil, err
	}
	lines := make([]CartLine, len(req.OrderItems))
	for i, li := range req.OrderItems {
		if err := common.SanitizeHTMLField(li.SpecialInstructions, "special instructions", maxInstructionsLength); err != nil {
			return nil, &common.LineError{Line: i, ID: li.MenuItemID, Err: err}
		}
		lines[i] = CartLine{
			MenuItemID:          li.MenuItemID,
			Quantity:            li.Quantity,
			SpecialInstructions: li.SpecialInstructions,
			AddOnIDs:            li.AddOnIDs,
		}
	}

	var order *models.Order
	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		table, priced, err := s.pricing.Snapshot(ctx, tx, req.TableID, lines)
		if err != nil {
			return err
		}
		order, err = s.persist(ctx, tx, table, req.Notes, priced)
		return err
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, common.SecureErrorMessage("create order", err)
	}

	s.log.Info("order_created", common.GetRequestIDFromContext(ctx), "order received",
		slog.Int64("order_id", order.ID),
		slog.Int64("table_id", order.TableID),
		slog.String("total", order.TotalAmount.StringFixed(2)))
	return order, nil
}

func (s *orderService) persist(ctx context.Context, tx repositories.Store, table *models.Table, notes *string, priced []PricedLine) (*models.Order, error) {
	order := &models.Order{
		TableID:      table.ID,
		RestaurantID: table.RestaurantID,
		TableNumber:  table.TableNumber,
		Status:       models.OrderStatusReceived,
		TotalAmount:  models.NewMoney(OrderTotal(priced)),
		Notes:        notes,
		OrderItems:   make([]*models.OrderItem, 0, len(priced)),
	}
	if err := tx.Orders().Create(ctx, order); err != nil {
		return nil, err
	}

	for _, line := range priced {
		item := &models.OrderItem{
			OrderID:             order.ID,
			MenuItemID:          line.MenuItemID,
			MenuItemName:        line.MenuItemName,
			Quantity:            line.Quantity,
			UnitPrice:           models.NewMoney(line.UnitPrice),
			SpecialInstructions: line.SpecialInstructions,
		}
		if err := tx.Orders().CreateItem(ctx, item); err != nil {
			return nil, err
		}
		for _, a := range line.AddOns {
			addOn := &models.OrderItemAddOn{
				OrderItemID: item.ID,
				AddOnID:     a.ID,
				Name:        a.Name,
				Price:       a.Price,
			}
			if err := tx.Orders().CreateItemAddOn(ctx, addOn); err != nil {
				return nil, err
			}
			item.AddOns = append(item.AddOns, addOn)
		}
		order.OrderItems = append(order.OrderItems, item)
	}
	return order, nil
}

// checkRateLimit fails open: a broken limiter must not stop the kitchen
func (s *orderService) checkRateLimit(ctx context.Context, tableID int64) error {
	if s.limiter == nil {
		return nil
	}
	allowed, err := s.limiter.AllowOrder(ctx, tableID)
	if err != nil {
		s.log.Warn("rate_limit_unavailable", common.GetRequestIDFromContext(ctx), "order rate limiter failed, accepting order",
			slog.Int64("table_id", tableID), slog.String("error", err.Error()))
		return nil
	}
	if !allowed {
		return common.ErrRateLimited
	}
	return nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, common.ErrOrderNotFound) {
			return nil, err
		}
		return nil, common.SecureErrorMessage("get order", err)
	}
	if err := s.store.Orders().LoadItems(ctx, []*models.Order{order}); err != nil {
		return nil, common.SecureErrorMessage("load order items", err)
	}
	return order, nil
}

// GetRestaurantOrder hides orders of other restaurants behind not found
func (s *orderService) GetRestaurantOrder(ctx context.Context, restaurantID, orderID int64) (*models.Order, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.RestaurantID != restaurantID {
		return nil, common.ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, restaurantID int64) ([]*models.Order, error) {
	orders, err := s.store.Orders().ListByRestaurant(ctx, restaurantID)
	return s.hydrate(ctx, "list orders", orders, err)
}

func (s *orderService) ListOrdersByStatus(ctx context.Context, restaurantID int64, status string) ([]*models.Order, error) {
	st, ok := models.ParseOrderStatus(status)
	if !ok {
		return nil, common.ErrInvalidStatus
	}
	orders, err := s.store.Orders().ListByStatus(ctx, restaurantID, []models.OrderStatus{st})
	return s.hydrate(ctx, "list orders by status", orders, err)
}

func (s *orderService) ListActiveOrders(ctx context.Context, restaurantID int64) ([]*models.Order, error) {
	orders, err := s.store.Orders().ListByStatus(ctx, restaurantID, models.ActiveOrderStatuses)
	return s.hydrate(ctx, "list active orders", orders, err)
}

func (s *orderService) ListTableOrders(ctx context.Context, restaurantID, tableID int64) ([]*models.Order, error) {
	orders, err := s.store.Orders().ListByTable(ctx, restaurantID, tableID)
	return s.hydrate(ctx, "list table orders", orders, err)
}

func (s *orderService) hydrate(ctx context.Context, op string, orders []*models.Order, err error) ([]*models.Order, error) {
	if err != nil {
		return nil, common.SecureErrorMessage(op, err)
	}
	if err := s.store.Orders().LoadItems(ctx, orders); err != nil {
		return nil, common.SecureErrorMessage(op, err)
	}
	return orders, nil
}

// UpdateStatus applies one move of the order state machine. The write is
// guarded by the status we read, so a concurrent change is reported as a
// conflict instead of being overwritten.
func (s *orderService) UpdateStatus(ctx context.Context, restaurantID, orderID int64, status string) (*models.Order, error) {
	target, ok := models.ParseOrderStatus(status)
	if !ok {
		return nil, common.ErrInvalidStatus
	}

	order, err := s.GetRestaurantOrder(ctx, restaurantID, orderID)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(order.Status, target); err != nil {
		return nil, err
	}

	updated, err := s.store.Orders().UpdateStatus(ctx, orderID, order.Status, target)
	if err != nil {
		return nil, common.SecureErrorMessage("update order status", err)
	}
	if !updated {
		return nil, common.ErrStatusConflict
	}

	s.log.Info("order_status_changed", common.GetRequestIDFromContext(ctx), "order status updated",
		slog.Int64("order_id", orderID),
		slog.String("from", string(order.Status)),
		slog.String("to", string(target)))

	return s.GetOrder(ctx, orderID)
}

func isDomainError(err error) bool {
	return common.IsNotFound(err) ||
		common.IsValidation(err) ||
		errors.Is(err, common.ErrIllegalTransition) ||
		errors.Is(err, common.ErrStatusConflict) ||
		errors.Is(err, common.ErrRateLimited) ||
		errors.Is(err, common.ErrInternal)
}
