package kv

import (
	"encoding/json"

	"github.com/mimercadove/cart-calculator/internal/domain"
)

// archiveRepository implements domain.ArchiveRepository over a KVStore,
// storing the whole archive as a JSON array under KeySavedCarts.
type archiveRepository struct {
	store domain.KVStore
}

// NewArchiveRepository creates a new archive repository.
func NewArchiveRepository(store domain.KVStore) domain.ArchiveRepository {
	return &archiveRepository{store: store}
}

func (r *archiveRepository) Load() ([]domain.SavedCart, error) {
	raw, ok, err := r.store.Get(KeySavedCarts)
	if err != nil {
		return nil, &domain.StorageError{Op: "load archive", Err: err}
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var records []savedCartRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, &domain.StorageError{Op: "load archive", Err: err}
	}

	carts := make([]domain.SavedCart, len(records))
	for i, rec := range records {
		if carts[i], err = decodeSavedCart(rec); err != nil {
			return nil, &domain.StorageError{Op: "load archive", Err: err}
		}
	}

	return carts, nil
}

func (r *archiveRepository) Save(carts []domain.SavedCart) error {
	records := make([]savedCartRecord, len(carts))
	for i, cart := range carts {
		records[i] = encodeSavedCart(cart)
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return &domain.StorageError{Op: "save archive", Err: err}
	}

	if err := r.store.Set(KeySavedCarts, string(raw)); err != nil {
		return &domain.StorageError{Op: "save archive", Err: err}
	}

	return nil
}
