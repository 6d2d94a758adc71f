package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricingMode selects which payload of a LineItem is populated.
type PricingMode string

const (
	PricingModeUnit   PricingMode = "unit"
	PricingModeWeight PricingMode = "weight"
)

// DefaultDescription is used when the user leaves the description empty.
const DefaultDescription = "Sin descripción"

// LineItem is one priced cart entry. Exactly one of the two payloads is
// populated, selected by Mode:
//   - unit: Quantity, UnitVES, UnitUSD
//   - weight: Weight, PricePerKgVES, PricePerKgUSD
//
// VES and USD are line totals derived from the payload; they are always
// recomputed together and never edited independently.
type LineItem struct {
	ID          uuid.UUID
	Description string
	Mode        PricingMode

	Quantity int
	UnitVES  decimal.Decimal
	UnitUSD  decimal.Decimal

	Weight        decimal.Decimal
	PricePerKgVES decimal.Decimal
	PricePerKgUSD decimal.Decimal

	VES decimal.Decimal
	USD decimal.Decimal
}

// ItemEdit carries one atomic edit submission: the price, its currency
// and the quantity-or-weight are read together, so a currency change
// can never interleave with a stale value.
type ItemEdit struct {
	Description   string
	Quantity      int             // unit mode only
	Weight        decimal.Decimal // weight mode only
	Price         decimal.Decimal
	PriceCurrency Currency
}

// NewUnitItem builds a unit-priced item: the missing unit price is
// derived from the anchor via the exchange rate, then both line totals
// are computed from the unit prices.
func NewUnitItem(description string, anchor decimal.Decimal, anchorCurrency Currency, quantity int, rate decimal.Decimal) (LineItem, error) {
	if quantity <= 0 {
		return LineItem{}, &PreconditionError{Reason: "quantity must be positive"}
	}

	prices, err := DerivePrices(anchor, anchorCurrency, rate)
	if err != nil {
		return LineItem{}, err
	}

	qty := decimal.NewFromInt(int64(quantity))

	return LineItem{
		ID:          uuid.New(),
		Description: orDefault(description),
		Mode:        PricingModeUnit,
		Quantity:    quantity,
		UnitVES:     prices.VES,
		UnitUSD:     prices.USD,
		VES:         prices.VES.Mul(qty),
		USD:         prices.USD.Mul(qty),
	}, nil
}

// NewWeightItem builds a weight-priced item from a price per kilogram
// and a weight in kilograms.
func NewWeightItem(description string, anchor decimal.Decimal, anchorCurrency Currency, weight decimal.Decimal, rate decimal.Decimal) (LineItem, error) {
	if weight.LessThanOrEqual(decimal.Zero) {
		return LineItem{}, &PreconditionError{Reason: "weight must be positive"}
	}

	prices, err := DerivePrices(anchor, anchorCurrency, rate)
	if err != nil {
		return LineItem{}, err
	}

	return LineItem{
		ID:            uuid.New(),
		Description:   orDefault(description),
		Mode:          PricingModeWeight,
		Weight:        weight,
		PricePerKgVES: prices.VES,
		PricePerKgUSD: prices.USD,
		VES:           weight.Mul(prices.VES),
		USD:           weight.Mul(prices.USD),
	}, nil
}

// Update applies an edit in place. ID and Mode never change. Everything
// is validated and computed before the first assignment, so a failed
// edit leaves the item exactly as it was.
func (i *LineItem) Update(edit ItemEdit, rate decimal.Decimal) error {
	prices, err := DerivePrices(edit.Price, edit.PriceCurrency, rate)
	if err != nil {
		return err
	}

	switch i.Mode {
	case PricingModeUnit:
		if edit.Quantity <= 0 {
			return &PreconditionError{Reason: "quantity must be positive"}
		}

		qty := decimal.NewFromInt(int64(edit.Quantity))
		i.Description = edit.Description
		i.Quantity = edit.Quantity
		i.UnitVES = prices.VES
		i.UnitUSD = prices.USD
		i.VES = prices.VES.Mul(qty)
		i.USD = prices.USD.Mul(qty)
		return nil

	case PricingModeWeight:
		if edit.Weight.LessThanOrEqual(decimal.Zero) {
			return &PreconditionError{Reason: "weight must be positive"}
		}

		i.Description = edit.Description
		i.Weight = edit.Weight
		i.PricePerKgVES = prices.VES
		i.PricePerKgUSD = prices.USD
		i.VES = edit.Weight.Mul(prices.VES)
		i.USD = edit.Weight.Mul(prices.USD)
		return nil

	default:
		return &PreconditionError{Reason: "unknown pricing mode " + string(i.Mode)}
	}
}

func orDefault(description string) string {
	if description == "" {
		return DefaultDescription
	}
	return description
}
