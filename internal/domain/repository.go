package domain

import (
	"github.com/shopspring/decimal"
)

// KVStore is the string-keyed storage medium the engine persists into.
// It is injected so the engine never touches a concrete backend (or any
// global) directly.
type KVStore interface {
	// Get returns the value for key and whether the key was present.
	Get(key string) (string, bool, error)

	// Set writes the value for key, overwriting any previous value.
	Set(key, value string) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
}

// RateRepository persists the exchange rate independently of the cart.
type RateRepository interface {
	// Load returns the persisted rate and whether one was stored.
	Load() (decimal.Decimal, bool, error)

	// Save persists the rate in canonical string form.
	Save(rate decimal.Decimal) error
}

// CartRepository mirrors the live cart's item sequence to storage.
// Totals are not persisted; they are recomputed on load.
type CartRepository interface {
	// Load returns the persisted items, or nil when nothing is stored.
	Load() ([]LineItem, error)

	// Save persists the full item sequence.
	Save(items []LineItem) error

	// Clear erases the persisted cart entry.
	Clear() error
}

// ArchiveRepository persists the saved-cart archive as a whole.
type ArchiveRepository interface {
	// Load returns all persisted snapshots, or nil when none are stored.
	Load() ([]SavedCart, error)

	// Save persists the full archive.
	Save(carts []SavedCart) error
}
