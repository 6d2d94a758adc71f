package kv

import (
	"encoding/json"

	"github.com/mimercadove/cart-calculator/internal/domain"
)

// cartRepository implements domain.CartRepository over a KVStore,
// storing the item sequence as a JSON array under KeyTransactions.
type cartRepository struct {
	store domain.KVStore
}

// NewCartRepository creates a new cart repository.
func NewCartRepository(store domain.KVStore) domain.CartRepository {
	return &cartRepository{store: store}
}

func (r *cartRepository) Load() ([]domain.LineItem, error) {
	raw, ok, err := r.store.Get(KeyTransactions)
	if err != nil {
		return nil, &domain.StorageError{Op: "load cart", Err: err}
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var records []itemRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, &domain.StorageError{Op: "load cart", Err: err}
	}

	items := make([]domain.LineItem, len(records))
	for i, rec := range records {
		if items[i], err = decodeItem(rec); err != nil {
			return nil, &domain.StorageError{Op: "load cart", Err: err}
		}
	}

	return items, nil
}

func (r *cartRepository) Save(items []domain.LineItem) error {
	records := make([]itemRecord, len(items))
	for i, item := range items {
		records[i] = encodeItem(item)
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return &domain.StorageError{Op: "save cart", Err: err}
	}

	if err := r.store.Set(KeyTransactions, string(raw)); err != nil {
		return &domain.StorageError{Op: "save cart", Err: err}
	}

	return nil
}

func (r *cartRepository) Clear() error {
	if err := r.store.Delete(KeyTransactions); err != nil {
		return &domain.StorageError{Op: "clear cart", Err: err}
	}
	return nil
}
