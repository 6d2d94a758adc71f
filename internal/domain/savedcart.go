package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartType tags a saved snapshot as a planned budget or a completed
// purchase.
type CartType string

const (
	CartTypeBudget   CartType = "budget"
	CartTypePurchase CartType = "purchase"
)

// Valid reports whether the type is one of the two known tags.
func (t CartType) Valid() bool {
	return t == CartTypeBudget || t == CartTypePurchase
}

// SavedCart is an immutable snapshot of a cart at save time. Totals and
// the rate are stored as rounded numbers: this is a historical record,
// not an input to further arithmetic. The items keep full precision.
type SavedCart struct {
	ID           uuid.UUID
	Name         string
	Type         CartType
	CreatedAt    time.Time
	Items        []LineItem
	TotalVES     float64
	TotalUSD     float64
	ExchangeRate float64
}

// NewSavedCart snapshots the cart under the given name and type. The
// cart must be non-empty and the rate set. The item slice is copied, so
// later mutation of the live cart never alters the snapshot.
func NewSavedCart(name string, cartType CartType, cart *Cart, rate decimal.Decimal) (SavedCart, error) {
	if !cartType.Valid() {
		return SavedCart{}, &PreconditionError{Reason: "cart type must be budget or purchase"}
	}
	if cart == nil || cart.IsEmpty() {
		return SavedCart{}, &PreconditionError{Reason: "cannot save an empty cart"}
	}
	if err := ValidateRate(rate); err != nil {
		return SavedCart{}, err
	}

	items := make([]LineItem, len(cart.Items))
	copy(items, cart.Items)

	return SavedCart{
		ID:           uuid.New(),
		Name:         name,
		Type:         cartType,
		CreatedAt:    time.Now(),
		Items:        items,
		TotalVES:     DisplayValue(cart.TotalVES),
		TotalUSD:     DisplayValue(cart.TotalUSD),
		ExchangeRate: DisplayValue(rate),
	}, nil
}
