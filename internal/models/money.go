package models

import (
	"github.com/shopspring/decimal"
)

// Money is a currency amount. It marshals as a JSON number with exactly two
// decimal places, so 25 goes out as 25.00 and never as the string "25".
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// RequireMoney parses s and panics on malformed input. Use it for constants.
func RequireMoney(s string) Money {
	return Money{Decimal: decimal.RequireFromString(s)}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}

// UnmarshalJSON accepts both numbers and quoted strings
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}
