package handlers

import (
	"log/slog"
	"net/http"

	"qrdine/internal/common"
	"qrdine/internal/logger"
	"qrdine/internal/middleware"

	"github.com/labstack/echo/v4"
)

// bindRequest decodes the body into req and runs its validate tags. The
// returned error is ready to hand back to echo.
func bindRequest(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest,
			common.CreateErrorResponse("CLIENT_ERROR", "Invalid request format", nil))
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest,
			common.CreateErrorResponse("VALIDATION_ERROR", "Validation failed", middleware.FieldErrors(err)))
	}
	return nil
}

// sendError logs internal failures with their cause and writes the mapped
// response. Domain errors are not logged.
func sendError(c echo.Context, log *logger.Logger, action string, err error) error {
	if common.HTTPStatusFor(err) == http.StatusInternalServerError {
		log.Error(action, common.GetRequestIDFromContext(c.Request().Context()), "request failed",
			common.InternalCause(err), slog.String("path", c.Path()))
	}
	return common.SendDomainError(c, err)
}

// restaurantParam reads :rid, which RequireRestaurant has already matched
// against the token.
func restaurantParam(c echo.Context) (int64, error) {
	return common.ParseIDParam(c, "rid")
}
