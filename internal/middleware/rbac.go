package middleware

import (
	"log/slog"
	"net/http"

	"qrdine/internal/common"
	"qrdine/internal/logger"

	"github.com/labstack/echo/v4"
)

// RBACMiddleware enforces the permission flags and restaurant scope carried in
// staff tokens. It must run after JWTAuth.
type RBACMiddleware struct {
	log *logger.Logger
}

func NewRBACMiddleware(log *logger.Logger) *RBACMiddleware {
	if log == nil {
		log = logger.Nop()
	}
	return &RBACMiddleware{log: log}
}

func (m *RBACMiddleware) RequirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			staff, ok := common.GetStaffFromContext(ctx)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if !staff.HasPermission(permission) {
				m.log.Warn("permission_denied", common.GetRequestIDFromContext(ctx), "missing permission",
					slog.String("user_id", staff.UserID),
					slog.String("permission", permission))
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}

// RequireRestaurant rejects requests whose path restaurant differs from the
// token's restaurant.
func (m *RBACMiddleware) RequireRestaurant(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			staff, ok := common.GetStaffFromContext(ctx)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			restaurantID, err := common.ParseIDParam(c, param)
			if err != nil {
				return common.SendValidationError(c, param, err.Error())
			}
			if restaurantID != staff.RestaurantID {
				m.log.Warn("restaurant_mismatch", common.GetRequestIDFromContext(ctx), "token restaurant does not match path",
					slog.String("user_id", staff.UserID),
					slog.Int64("token_restaurant_id", staff.RestaurantID),
					slog.Int64("path_restaurant_id", restaurantID))
				return echo.NewHTTPError(http.StatusForbidden, "Access to this restaurant is not allowed")
			}
			return next(c)
		}
	}
}
