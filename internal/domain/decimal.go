package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimal constructs a decimal from user input. All decimal
// construction in the engine goes through here so malformed input is
// handled in exactly one place.
func ParseDecimal(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, &ParseError{Field: field, Value: raw}
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, &ParseError{Field: field, Value: raw}
	}

	return d, nil
}

// ParsePositiveDecimal is ParseDecimal with a strictly-positive check,
// used for prices, weights and the exchange rate.
func ParsePositiveDecimal(field, raw string) (decimal.Decimal, error) {
	d, err := ParseDecimal(field, raw)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if d.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, &ParseError{Field: field, Value: raw}
	}

	return d, nil
}

// ParseQuantity parses a strictly-positive integer quantity.
func ParseQuantity(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)

	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, &ParseError{Field: field, Value: raw}
	}

	return n, nil
}

// DisplayValue converts a decimal to the 2-place numeric form used for
// display and for archived snapshot totals. Live totals never pass
// through this.
func DisplayValue(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
