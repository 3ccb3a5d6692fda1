package middleware

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// RequestValidator plugs go-playground/validator into echo's Context.Validate
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// FieldErrors flattens validator errors into field -> rule pairs for the
// error envelope. Other errors yield nil.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fe.Tag()
	}
	return details
}
