package kv

import (
	"github.com/shopspring/decimal"

	"github.com/mimercadove/cart-calculator/internal/domain"
)

// rateRepository implements domain.RateRepository over a KVStore. The
// stored value is the canonical decimal string itself.
type rateRepository struct {
	store domain.KVStore
}

// NewRateRepository creates a new rate repository.
func NewRateRepository(store domain.KVStore) domain.RateRepository {
	return &rateRepository{store: store}
}

func (r *rateRepository) Load() (decimal.Decimal, bool, error) {
	raw, ok, err := r.store.Get(KeyExchangeRate)
	if err != nil {
		return decimal.Decimal{}, false, &domain.StorageError{Op: "load rate", Err: err}
	}
	if !ok || raw == "" {
		return decimal.Decimal{}, false, nil
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false, &domain.StorageError{Op: "load rate", Err: err}
	}

	return rate, true, nil
}

func (r *rateRepository) Save(rate decimal.Decimal) error {
	if err := r.store.Set(KeyExchangeRate, rate.String()); err != nil {
		return &domain.StorageError{Op: "save rate", Err: err}
	}
	return nil
}
