package common

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strconv"
	"strings"

	"qrdine/internal/models"

	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	StaffIdentityKey contextKey = "staff_identity"
	RequestIDKey     contextKey = "request_id"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{
		field: message,
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// SendServerError sends a server error response
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendNotFoundError sends a not found error response
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", fmt.Sprintf("%s not found", resource), nil))
}

// SendConflictError sends a conflict error response
func SendConflictError(c echo.Context, message string) error {
	return c.JSON(http.StatusConflict, CreateErrorResponse("CONFLICT", message, nil))
}

// SendUnauthorizedError sends an unauthorized error response
func SendUnauthorizedError(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, CreateErrorResponse("UNAUTHORIZED", "Unauthorized access", nil))
}

// SendDomainError maps a service error onto the response envelope
func SendDomainError(c echo.Context, err error) error {
	status := HTTPStatusFor(err)
	switch status {
	case http.StatusNotFound:
		return c.JSON(status, CreateErrorResponse("NOT_FOUND", err.Error(), nil))
	case http.StatusBadRequest:
		return SendClientError(c, err.Error())
	case http.StatusConflict:
		return SendConflictError(c, err.Error())
	case http.StatusTooManyRequests:
		return c.JSON(status, CreateErrorResponse("RATE_LIMITED", err.Error(), nil))
	default:
		return SendServerError(c, "Internal server error")
	}
}

// ParseIDParam parses a positive integer path parameter
func ParseIDParam(c echo.Context, name string) (int64, error) {
	raw := strings.TrimSpace(c.Param(name))
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

// GetStaffFromContext extracts the authenticated staff identity from the request context
func GetStaffFromContext(ctx context.Context) (*models.StaffIdentity, bool) {
	staff, ok := ctx.Value(StaffIdentityKey).(*models.StaffIdentity)
	return staff, ok && staff != nil
}

// WithStaff stores the staff identity on the context
func WithStaff(ctx context.Context, staff *models.StaffIdentity) context.Context {
	return context.WithValue(ctx, StaffIdentityKey, staff)
}

// GetRequestIDFromContext returns the request id or an empty string
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// SanitizeHTMLField sanitizes string pointer fields for HTML display
func SanitizeHTMLField(field *string, fieldName string, maxLength int) error {
	if field != nil && *field != "" {
		sanitized := html.EscapeString(strings.TrimSpace(*field))

		if len(sanitized) > maxLength {
			return fmt.Errorf("%s: %w", fieldName, ErrTextTooLong)
		}

		*field = sanitized
	}
	return nil
}
