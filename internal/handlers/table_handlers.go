package handlers

import (
	"net/http"
	"strconv"

	"qrdine/internal/common"
	"qrdine/internal/logger"
	"qrdine/internal/models"
	"qrdine/internal/services"

	"github.com/labstack/echo/v4"
)

// TableHandlers serves the QR entry points and staff table management
type TableHandlers struct {
	tableService services.TableService
	menuService  services.MenuService
	log          *logger.Logger
}

func NewTableHandlers(tableService services.TableService, menuService services.MenuService, log *logger.Logger) *TableHandlers {
	return &TableHandlers{
		tableService: tableService,
		menuService:  menuService,
		log:          log,
	}
}

// ResolveTable handles GET /tables/:code
func (h *TableHandlers) ResolveTable(c echo.Context) error {
	table, err := h.tableService.ResolveByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return sendError(c, h.log, "resolve_table", err)
	}
	return c.JSON(http.StatusOK, table)
}

// TableMenu handles GET /tables/:code/menu, the customer's view of the catalog
func (h *TableHandlers) TableMenu(c echo.Context) error {
	ctx := c.Request().Context()
	table, err := h.tableService.ResolveByCode(ctx, c.Param("code"))
	if err != nil {
		return sendError(c, h.log, "table_menu", err)
	}

	categories, err := h.menuService.CustomerMenu(ctx, table.RestaurantID)
	if err != nil {
		return sendError(c, h.log, "table_menu", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"table":      table,
		"categories": categories,
	})
}

// TableQRCode handles GET /tables/:code/qr.png?size=
func (h *TableHandlers) TableQRCode(c echo.Context) error {
	size := 0
	if raw := c.QueryParam("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return common.SendValidationError(c, "size", "size must be an integer")
		}
		size = n
	}

	png, err := h.tableService.QRCode(c.Request().Context(), c.Param("code"), size)
	if err != nil {
		return sendError(c, h.log, "table_qr_code", err)
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Blob(http.StatusOK, "image/png", png)
}

// CreateTable handles POST /restaurants/:rid/tables
func (h *TableHandlers) CreateTable(c echo.Context) error {
	restaurantID, err := restaurantParam(c)
	if err != nil {
		return common.SendValidationError(c, "rid", err.Error())
	}

	var req models.CreateTableRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	table, err := h.tableService.CreateTable(c.Request().Context(), restaurantID, &req)
	if err != nil {
		return sendError(c, h.log, "create_table", err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Table created successfully",
		"table":   table,
	})
}

// DeleteTable handles DELETE /restaurants/:rid/tables/:tid. Tables with order
// history are only deactivated.
func (h *TableHandlers) DeleteTable(c echo.Context) error {
	restaurantID, err := restaurantParam(c)
	if err != nil {
		return common.SendValidationError(c, "rid", err.Error())
	}
	tableID, err := common.ParseIDParam(c, "tid")
	if err != nil {
		return common.SendValidationError(c, "tid", err.Error())
	}

	deactivated, err := h.tableService.DeleteTable(c.Request().Context(), restaurantID, tableID)
	if err != nil {
		return sendError(c, h.log, "delete_table", err)
	}

	message := "Table deleted"
	if deactivated {
		message = "Table deactivated"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     message,
		"deactivated": deactivated,
	})
}
