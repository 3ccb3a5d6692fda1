package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Not found: the referenced row does not exist, or for tables and menu items
// exists but is inactive or unavailable.
var (
	ErrTableNotFound    = errors.New("table not found")
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrAddOnNotFound    = errors.New("add-on not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// Validation: malformed input, rejected before anything is written.
var (
	ErrEmptyCart        = errors.New("order must contain at least one item")
	ErrInvalidQuantity  = errors.New("quantity must be between 1 and 100")
	ErrInvalidStatus    = errors.New("status must be one of: Received, Preparing, Ready, Served, Cancelled")
	ErrReorderMismatch  = errors.New("submitted ids must be exactly the current members of the scope")
	ErrInvalidTableCode = errors.New("invalid table code")
	ErrTextTooLong      = errors.New("text exceeds maximum allowed length")
	ErrInvalidImage     = errors.New("invalid image")
)

// State machine and concurrency outcomes.
var (
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrStatusConflict    = errors.New("order status was changed concurrently")
	ErrRateLimited       = errors.New("too many orders for this table, try again shortly")
	ErrTableNumberTaken  = errors.New("table number already exists in this restaurant")
)

// ErrInternal hides persistence detail from callers
var ErrInternal = errors.New("internal error")

// secureError keeps the operation name for logs while only exposing ErrInternal
type secureError struct {
	operation string
	cause     error
}

func (e *secureError) Error() string {
	return fmt.Sprintf("failed to %s: operation could not be completed", e.operation)
}

func (e *secureError) Is(target error) bool {
	return target == ErrInternal
}

// Cause returns the wrapped error for internal logging
func (e *secureError) Cause() error {
	return e.cause
}

// SecureErrorMessage creates standardized error messages to prevent information leakage
func SecureErrorMessage(operation string, err error) error {
	if err == nil {
		return nil
	}
	return &secureError{operation: operation, cause: err}
}

// InternalCause digs out the underlying error of a SecureErrorMessage, if any
func InternalCause(err error) error {
	var se *secureError
	if errors.As(err, &se) {
		return se.cause
	}
	return err
}

// IllegalTransitionError reports a status move the state machine does not allow
type IllegalTransitionError struct {
	From string
	To   string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from %s to %s", e.From, e.To)
}

func (e *IllegalTransitionError) Is(target error) bool {
	return target == ErrIllegalTransition
}

// LineError ties a cart validation failure to its position in the request
type LineError struct {
	Line int
	ID   int64
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("order item %d: %v (id %d)", e.Line+1, e.Err, e.ID)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err belongs to the not-found class
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTableNotFound) ||
		errors.Is(err, ErrMenuItemNotFound) ||
		errors.Is(err, ErrAddOnNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrCategoryNotFound)
}

// IsValidation reports whether err belongs to the validation class
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrReorderMismatch) ||
		errors.Is(err, ErrInvalidTableCode) ||
		errors.Is(err, ErrTextTooLong) ||
		errors.Is(err, ErrInvalidImage)
}

// HTTPStatusFor maps the error taxonomy onto HTTP status codes
func HTTPStatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, ErrIllegalTransition), errors.Is(err, ErrStatusConflict), errors.Is(err, ErrTableNumberTaken):
		return http.StatusConflict
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
