package handlers

import (
	"net/http"
	"strings"

	"qrdine/internal/common"
	"qrdine/internal/logger"
	"qrdine/internal/models"
	"qrdine/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles HTTP requests for orders
type OrderHandlers struct {
	orderService services.OrderServiceInterface
	tableService services.TableService
	log          *logger.Logger
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(orderService services.OrderServiceInterface, tableService services.TableService, log *logger.Logger) *OrderHandlers {
	return &OrderHandlers{
		orderService: orderService,
		tableService: tableService,
		log:          log,
	}
}

// CreateOrder handles POST /orders. A missing table or menu item is the
// customer's input being wrong, so it is reported as 400 rather than 404.
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	var req models.CreateOrderRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	order, err := h.orderService.CreateOrder(c.Request().Context(), &req)
	if err != nil {
		if common.IsNotFound(err) {
			return common.SendClientError(c, err.Error())
		}
		return sendError(c, h.log, "create_order", err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Order created successfully",
		"order":   order,
	})
}

// GetTableOrder handles GET /tables/:code/orders/:id for customer
// confirmation polling. Only orders placed at the scanned table are visible;
// any other id answers exactly like a missing order.
func (h *OrderHandlers) GetTableOrder(c echo.Context) error {
	orderID, err := common.ParseIDParam(c, "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	ctx := c.Request().Context()
	table, err := h.tableService.ResolveByCode(ctx, c.Param("code"))
	if err != nil {
		return sendError(c, h.log, "get_table_order", err)
	}

	order, err := h.orderService.GetOrder(ctx, orderID)
	if err != nil {
		return sendError(c, h.log, "get_table_order", err)
	}
	if order.TableID != table.ID {
		return common.SendNotFoundError(c, "order")
	}
	return c.JSON(http.StatusOK, order)
}

// ListOrders handles GET /restaurants/:rid/orders with an optional ?status= filter
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	restaurantID, err := restaurantParam(c)
	if err != nil {
		return common.SendValidationError(c, "rid", err.Error())
	}

	ctx := c.Request().Context()
	var orders []*models.Order
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		orders, err = h.orderService.ListOrdersByStatus(ctx, restaurantID, status)
	} else {
		orders, err = h.orderService.ListOrders(ctx, restaurantID)
	}
	if err != nil {
		return sendError(c, h.log, "list_orders", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
		"count":  len(orders),
	})
}

// ListActiveOrders handles GET /restaurants/:rid/orders/active for the kitchen display
func (h *OrderHandlers) ListActiveOrders(c echo.Context) error {
	restaurantID, err := restaurantParam(c)
	if err != nil {
		return common.SendValidationError(c, "rid", err.Error())
	}

	orders, err := h.orderService.ListActiveOrders(c.Request().Context(), restaurantID)
	if err != nil {
		return sendError(c, h.log, "list_active_orders", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
		"count":  len(orders),
	})
}

func (h *OrderHandlers) ListTableOrders(c echo.Context) error {
	restaurantID, err := restaurantParam(c)
	if err != nil {
		return common.SendValidationError(c, "rid", err.Error())
	}
	tableID, err := common.ParseIDParam(c, "tid")
	if err != nil {
		return common.SendValidationError(c, "tid", err.Error())
	}

	orders, err := h.orderService.ListTableOrders(c.Request().Context(), restaurantID, tableID)
	if err != nil {
		return sendError(c, h.log, "list_table_orders", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
		"count":  len(orders),
	})
}

// UpdateOrderStatus handles PUT /restaurants/:rid/orders/:id/status
func (h *OrderHandlers) UpdateOrderStatus(c echo.Context) error {
	restaurantID, err := restaurantParam(c)
	if err != nil {
		return common.SendValidationError(c, "rid", err.Error())
	}
	orderID, err := common.ParseIDParam(c, "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req models.UpdateOrderStatusRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	order, err := h.orderService.UpdateStatus(c.Request().Context(), restaurantID, orderID, req.Status)
	if err != nil {
		return sendError(c, h.log, "update_order_status", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Order status updated",
		"success": true,
		"order":   order,
	})
}
