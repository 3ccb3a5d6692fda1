package handlers

import (
	"qrdine/internal/middleware"
	"qrdine/internal/models"

	"github.com/labstack/echo/v4"
)

// Router groups the handlers and middleware the HTTP surface is built from
type Router struct {
	Health     *HealthHandlers
	Orders     *OrderHandlers
	Categories *CategoryHandlers
	Tables     *TableHandlers
	Images     *ImageHandlers
	Auth       echo.MiddlewareFunc
	RBAC       *middleware.RBACMiddleware
	Version    *middleware.VersionMiddleware
}

// Register mounts every route on e
func (r *Router) Register(e *echo.Echo) {
	// Health endpoints (no auth required)
	e.GET("/health", r.Health.HealthCheck)
	e.GET("/health/ready", r.Health.ReadinessCheck)

	v1 := r.Version.VersionRoute(e, "v1")

	// Public customer routes, reached through the table QR code
	v1.GET("/tables/:code", r.Tables.ResolveTable)
	v1.GET("/tables/:code/menu", r.Tables.TableMenu)
	v1.GET("/tables/:code/qr.png", r.Tables.TableQRCode)
	v1.GET("/tables/:code/orders/:id", r.Orders.GetTableOrder)
	v1.POST("/orders", r.Orders.CreateOrder)

	// Staff routes, scoped to the token's restaurant
	staff := v1.Group("/restaurants/:rid", r.Auth, r.RBAC.RequireRestaurant("rid"))

	orders := r.RBAC.RequirePermission(models.PermissionOrdersManage)
	staff.GET("/orders", r.Orders.ListOrders, orders)
	staff.GET("/orders/active", r.Orders.ListActiveOrders, orders)
	staff.GET("/tables/:tid/orders", r.Orders.ListTableOrders, orders)
	staff.PUT("/orders/:id/status", r.Orders.UpdateOrderStatus, orders)

	menu := r.RBAC.RequirePermission(models.PermissionMenuManage)
	staff.GET("/categories", r.Categories.ListCategories, menu)
	staff.PUT("/categories/reorder", r.Categories.ReorderCategories, menu)
	staff.GET("/categories/:cid/items", r.Categories.ListMenuItems, menu)
	staff.PUT("/categories/:cid/items/reorder", r.Categories.ReorderMenuItems, menu)
	staff.POST("/images", r.Images.UploadImage, menu)

	tables := r.RBAC.RequirePermission(models.PermissionTablesManage)
	staff.POST("/tables", r.Tables.CreateTable, tables)
	staff.DELETE("/tables/:tid", r.Tables.DeleteTable, tables)
}
