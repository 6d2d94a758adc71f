package kv

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mimercadove/cart-calculator/internal/domain"
)

// Storage keys. The layout matches the product's original local-storage
// contract, so existing persisted data remains readable.
const (
	KeyExchangeRate = "exchangeRate"
	KeyTransactions = "transactionsList"
	KeySavedCarts   = "savedCarts"
)

// itemRecord is the stored form of a line item. Every decimal travels
// as its canonical string, never a rounded number; fields irrelevant to
// the item's pricing mode are omitted entirely.
type itemRecord struct {
	ID          string `json:"id"`
	Description string `json:"description"`

	IsWeightBased bool   `json:"isWeightBased"`
	Quantity      int    `json:"quantity,omitempty"`
	UnitVES       string `json:"unitVes,omitempty"`
	UnitUSD       string `json:"unitUsd,omitempty"`
	Weight        string `json:"weight,omitempty"`
	PricePerKgVES string `json:"pricePerKgVes,omitempty"`
	PricePerKgUSD string `json:"pricePerKgUsd,omitempty"`

	VES string `json:"ves"`
	USD string `json:"usd"`
}

// savedCartRecord is the stored form of an archive snapshot. Snapshot
// totals and rate are plain numbers: a lossy summary is acceptable for
// this historical record only.
type savedCartRecord struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Type         string       `json:"type"`
	CreatedAt    time.Time    `json:"createdAt"`
	Transactions []itemRecord `json:"transactions"`
	TotalVES     float64      `json:"totalVES"`
	TotalUSD     float64      `json:"totalUSD"`
	ExchangeRate float64      `json:"exchangeRate"`
}

func encodeItem(item domain.LineItem) itemRecord {
	rec := itemRecord{
		ID:          item.ID.String(),
		Description: item.Description,
		VES:         item.VES.String(),
		USD:         item.USD.String(),
	}

	switch item.Mode {
	case domain.PricingModeWeight:
		rec.IsWeightBased = true
		rec.Weight = item.Weight.String()
		rec.PricePerKgVES = item.PricePerKgVES.String()
		rec.PricePerKgUSD = item.PricePerKgUSD.String()
	default:
		rec.Quantity = item.Quantity
		rec.UnitVES = item.UnitVES.String()
		rec.UnitUSD = item.UnitUSD.String()
	}

	return rec
}

func decodeItem(rec itemRecord) (domain.LineItem, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return domain.LineItem{}, &domain.ParseError{Field: "id", Value: rec.ID}
	}

	item := domain.LineItem{
		ID:          id,
		Description: rec.Description,
	}

	if item.VES, err = domain.ParseDecimal("ves", rec.VES); err != nil {
		return domain.LineItem{}, err
	}
	if item.USD, err = domain.ParseDecimal("usd", rec.USD); err != nil {
		return domain.LineItem{}, err
	}

	// Fields absent from the record stay unset on the item rather than
	// defaulting to zero; only the fields of the item's own pricing
	// mode are reconstructed.
	if rec.IsWeightBased {
		item.Mode = domain.PricingModeWeight
		if item.Weight, err = parseOptional("weight", rec.Weight); err != nil {
			return domain.LineItem{}, err
		}
		if item.PricePerKgVES, err = parseOptional("pricePerKgVes", rec.PricePerKgVES); err != nil {
			return domain.LineItem{}, err
		}
		if item.PricePerKgUSD, err = parseOptional("pricePerKgUsd", rec.PricePerKgUSD); err != nil {
			return domain.LineItem{}, err
		}
	} else {
		item.Mode = domain.PricingModeUnit
		item.Quantity = rec.Quantity
		if item.UnitVES, err = parseOptional("unitVes", rec.UnitVES); err != nil {
			return domain.LineItem{}, err
		}
		if item.UnitUSD, err = parseOptional("unitUsd", rec.UnitUSD); err != nil {
			return domain.LineItem{}, err
		}
	}

	return item, nil
}

// parseOptional reconstructs a decimal field that may legitimately be
// absent from the stored record. Empty stays unset; present but
// malformed is an error.
func parseOptional(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Decimal{}, nil
	}
	return domain.ParseDecimal(field, raw)
}

func encodeSavedCart(cart domain.SavedCart) savedCartRecord {
	transactions := make([]itemRecord, len(cart.Items))
	for i, item := range cart.Items {
		transactions[i] = encodeItem(item)
	}

	return savedCartRecord{
		ID:           cart.ID.String(),
		Name:         cart.Name,
		Type:         string(cart.Type),
		CreatedAt:    cart.CreatedAt,
		Transactions: transactions,
		TotalVES:     cart.TotalVES,
		TotalUSD:     cart.TotalUSD,
		ExchangeRate: cart.ExchangeRate,
	}
}

func decodeSavedCart(rec savedCartRecord) (domain.SavedCart, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return domain.SavedCart{}, &domain.ParseError{Field: "id", Value: rec.ID}
	}

	items := make([]domain.LineItem, len(rec.Transactions))
	for i, itemRec := range rec.Transactions {
		if items[i], err = decodeItem(itemRec); err != nil {
			return domain.SavedCart{}, err
		}
	}

	return domain.SavedCart{
		ID:           id,
		Name:         rec.Name,
		Type:         domain.CartType(rec.Type),
		CreatedAt:    rec.CreatedAt,
		Items:        items,
		TotalVES:     rec.TotalVES,
		TotalUSD:     rec.TotalUSD,
		ExchangeRate: rec.ExchangeRate,
	}, nil
}
