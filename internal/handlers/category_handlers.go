package handlers

import (
	"net/http"

	"qrdine/internal/common"
	"qrdine/internal/logger"
	"qrdine/internal/models"
	"qrdine/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandlers serves the staff menu views and the reorder endpoints
type CategoryHandlers struct {
	menuService    services.MenuService
	reorderService services.ReorderService
	log            *logger.Logger
}

// NewCategoryHandlers creates a new category handlers instance
func NewCategoryHandlers(menuService services.MenuService, reorderService services.ReorderService, log *logger.Logger) *CategoryHandlers {
	return &CategoryHandlers{
		menuService:    menuService,
		reorderService: reorderService,
		log:            log,
	}
}

// ListCategories handles GET /restaurants/:rid/categories, inactive ones included
func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	restaurantID, err := restaurantParam(c)
	if err != nil {
		return common.SendValidationError(c, "rid", err.Error())
	}

	categories, err := h.menuService.ListCategories(c.Request().Context(), restaurantID)
	if err != nil {
		return sendError(c, h.log, "list_categories", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": categories,
	})
}

// ReorderCategories handles PUT /restaurants/:rid/categories/reorder
func (h *CategoryHandlers) ReorderCategories(c echo.Context) error {
	restaurantID, err := restaurantParam(c)
	if err != nil {
		return common.SendValidationError(c, "rid", err.Error())
	}

	var req models.ReorderCategoriesRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	if err := h.reorderService.ReorderCategories(c.Request().Context(), restaurantID, req.CategoryIDs); err != nil {
		return sendError(c, h.log, "reorder_categories", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Categories reordered",
	})
}

// ListMenuItems handles GET /restaurants/:rid/categories/:cid/items
func (h *CategoryHandlers) ListMenuItems(c echo.Context) error {
	restaurantID, err := restaurantParam(c)
	if err != nil {
		return common.SendValidationError(c, "rid", err.Error())
	}
	categoryID, err := common.ParseIDParam(c, "cid")
	if err != nil {
		return common.SendValidationError(c, "cid", err.Error())
	}

	items, err := h.menuService.ListMenuItems(c.Request().Context(), restaurantID, categoryID)
	if err != nil {
		return sendError(c, h.log, "list_menu_items", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"menuItems": items,
	})
}

// ReorderMenuItems handles PUT /restaurants/:rid/categories/:cid/items/reorder
func (h *CategoryHandlers) ReorderMenuItems(c echo.Context) error {
	restaurantID, err := restaurantParam(c)
	if err != nil {
		return common.SendValidationError(c, "rid", err.Error())
	}
	categoryID, err := common.ParseIDParam(c, "cid")
	if err != nil {
		return common.SendValidationError(c, "cid", err.Error())
	}

	var req models.ReorderMenuItemsRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	if err := h.reorderService.ReorderMenuItems(c.Request().Context(), restaurantID, categoryID, req.MenuItemIDs); err != nil {
		return sendError(c, h.log, "reorder_menu_items", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Menu items reordered",
	})
}
