package domain

import (
	"github.com/shopspring/decimal"
)

// Currency identifies which of the two tracked currencies a value is
// denominated in.
type Currency string

const (
	CurrencyVES Currency = "VES"
	CurrencyUSD Currency = "USD"
)

// ConversionPrecision is the number of fractional digits kept when a
// division does not terminate (e.g. 10 / 36.50). Terminating quotients
// are unaffected. 20 digits matches the Big.js default the product's
// stored data was produced with, so rehydrated carts keep converting
// to the same values.
const ConversionPrecision = 20

// PricePair is a VES/USD amount pair kept mutually consistent under a
// single exchange rate: usd = ves / rate, ves = usd * rate.
type PricePair struct {
	VES decimal.Decimal
	USD decimal.Decimal
}

// ValidateRate ensures a rate can be used for conversion.
func ValidateRate(rate decimal.Decimal) error {
	if rate.IsZero() {
		return &DivisionByZeroError{Op: "currency conversion"}
	}
	if rate.IsNegative() {
		return &PreconditionError{Reason: "exchange rate must be positive"}
	}
	return nil
}

// DerivePrices takes the user-supplied anchor amount in one currency
// and derives the other via the exchange rate. The anchor currency is
// stored as given; only the derived side is computed.
func DerivePrices(anchor decimal.Decimal, anchorCurrency Currency, rate decimal.Decimal) (PricePair, error) {
	if err := ValidateRate(rate); err != nil {
		return PricePair{}, err
	}

	if anchor.LessThanOrEqual(decimal.Zero) {
		return PricePair{}, &PreconditionError{Reason: "amount must be positive"}
	}

	switch anchorCurrency {
	case CurrencyVES:
		return PricePair{VES: anchor, USD: anchor.DivRound(rate, ConversionPrecision)}, nil
	case CurrencyUSD:
		return PricePair{VES: anchor.Mul(rate), USD: anchor}, nil
	default:
		return PricePair{}, &PreconditionError{Reason: "unknown currency " + string(anchorCurrency)}
	}
}

// ResolveAnchor inspects the raw VES and USD inputs and picks the
// anchor: the VES amount when positive, otherwise the USD amount.
// Unparsable input is treated the same as absent input; if neither
// field yields a positive amount the whole entry is rejected.
func ResolveAnchor(vesRaw, usdRaw string) (decimal.Decimal, Currency, error) {
	if ves, err := ParseDecimal("ves amount", vesRaw); err == nil && ves.GreaterThan(decimal.Zero) {
		return ves, CurrencyVES, nil
	}

	if usd, err := ParseDecimal("usd amount", usdRaw); err == nil && usd.GreaterThan(decimal.Zero) {
		return usd, CurrencyUSD, nil
	}

	return decimal.Decimal{}, "", &PreconditionError{Reason: "a positive amount in VES or USD is required"}
}
