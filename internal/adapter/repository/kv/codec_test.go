package kv

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mimercadove/cart-calculator/internal/adapter/storage"
	"github.com/mimercadove/cart-calculator/internal/domain"
)

var testRate = decimal.RequireFromString("36.50")

func testItems(t *testing.T) []domain.LineItem {
	t.Helper()

	unit, err := domain.NewUnitItem("Harina", decimal.RequireFromString("10.00"), domain.CurrencyVES, 3, testRate)
	assert.NoError(t, err)

	weight, err := domain.NewWeightItem("Queso", decimal.RequireFromString("4.00"), domain.CurrencyUSD,
		decimal.RequireFromString("2.5"), testRate)
	assert.NoError(t, err)

	return []domain.LineItem{weight, unit}
}

func TestCartRepository_RoundTrip(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := NewCartRepository(store)

	items := testItems(t)
	assert.NoError(t, repo.Save(items))

	loaded, err := repo.Load()
	assert.NoError(t, err)
	assert.Len(t, loaded, len(items))

	// String-for-string equality on every decimal field.
	for i := range items {
		assert.Equal(t, items[i].ID, loaded[i].ID)
		assert.Equal(t, items[i].Description, loaded[i].Description)
		assert.Equal(t, items[i].Mode, loaded[i].Mode)
		assert.Equal(t, items[i].VES.String(), loaded[i].VES.String())
		assert.Equal(t, items[i].USD.String(), loaded[i].USD.String())
		assert.Equal(t, items[i].Quantity, loaded[i].Quantity)
		assert.Equal(t, items[i].UnitVES.String(), loaded[i].UnitVES.String())
		assert.Equal(t, items[i].UnitUSD.String(), loaded[i].UnitUSD.String())
		assert.Equal(t, items[i].Weight.String(), loaded[i].Weight.String())
		assert.Equal(t, items[i].PricePerKgVES.String(), loaded[i].PricePerKgVES.String())
		assert.Equal(t, items[i].PricePerKgUSD.String(), loaded[i].PricePerKgUSD.String())
	}

	// Totals recomputed from the reloaded items match exactly.
	cart := domain.NewCart()
	cart.Items = loaded
	cart.Recompute()
	assert.True(t, cart.TotalVES.Equal(decimal.NewFromInt(395)))
}

func TestCartRepository_DecimalsStoredAsStrings(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := NewCartRepository(store)

	assert.NoError(t, repo.Save(testItems(t)))

	raw, ok, err := store.Get(KeyTransactions)
	assert.NoError(t, err)
	assert.True(t, ok)

	var generic []map[string]any
	assert.NoError(t, json.Unmarshal([]byte(raw), &generic))

	// First stored record is the weight item.
	weightRec := generic[0]
	assert.Equal(t, "365", weightRec["ves"])
	assert.Equal(t, "10", weightRec["usd"])
	assert.Equal(t, "2.5", weightRec["weight"])
	assert.Equal(t, true, weightRec["isWeightBased"])

	// Mode-irrelevant fields are absent, not zeroed.
	_, hasUnitVes := weightRec["unitVes"]
	assert.False(t, hasUnitVes)
	_, hasQuantity := weightRec["quantity"]
	assert.False(t, hasQuantity)

	unitRec := generic[1]
	assert.Equal(t, float64(3), unitRec["quantity"])
	assert.Equal(t, "10", unitRec["unitVes"])
	_, hasWeight := unitRec["weight"]
	assert.False(t, hasWeight)
}

func TestCartRepository_LoadAbsentReturnsNil(t *testing.T) {
	repo := NewCartRepository(storage.NewMemoryStore())

	items, err := repo.Load()
	assert.NoError(t, err)
	assert.Nil(t, items)
}

func TestCartRepository_LoadMalformedData(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "{{{"},
		{name: "wrong shape", raw: `{"a":1}`},
		{name: "malformed decimal", raw: `[{"id":"a6f1f6f0-0000-0000-0000-000000000000","ves":"abc","usd":"1"}]`},
		{name: "malformed id", raw: `[{"id":"nope","ves":"1","usd":"1"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			assert.NoError(t, store.Set(KeyTransactions, tt.raw))

			repo := NewCartRepository(store)
			_, err := repo.Load()

			var storageErr *domain.StorageError
			assert.ErrorAs(t, err, &storageErr)
		})
	}
}

func TestCartRepository_Clear(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := NewCartRepository(store)

	assert.NoError(t, repo.Save(testItems(t)))
	assert.NoError(t, repo.Clear())

	_, ok, err := store.Get(KeyTransactions)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRateRepository_RoundTrip(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := NewRateRepository(store)

	assert.NoError(t, repo.Save(testRate))

	// Stored as the canonical string itself.
	raw, ok, err := store.Get(KeyExchangeRate)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "36.5", raw)

	rate, ok, err := repo.Load()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, rate.Equal(testRate))
}

func TestRateRepository_LoadAbsent(t *testing.T) {
	repo := NewRateRepository(storage.NewMemoryStore())

	_, ok, err := repo.Load()
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRateRepository_LoadMalformed(t *testing.T) {
	store := storage.NewMemoryStore()
	assert.NoError(t, store.Set(KeyExchangeRate, "not-a-number"))

	repo := NewRateRepository(store)
	_, _, err := repo.Load()

	var storageErr *domain.StorageError
	assert.ErrorAs(t, err, &storageErr)
}

func TestArchiveRepository_RoundTrip(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := NewArchiveRepository(store)

	cart := domain.NewCart()
	for _, item := range testItems(t) {
		cart.Add(item)
	}

	snapshot, err := domain.NewSavedCart("Test", domain.CartTypePurchase, cart, testRate)
	assert.NoError(t, err)

	assert.NoError(t, repo.Save([]domain.SavedCart{snapshot}))

	loaded, err := repo.Load()
	assert.NoError(t, err)
	assert.Len(t, loaded, 1)

	got := loaded[0]
	assert.Equal(t, snapshot.ID, got.ID)
	assert.Equal(t, snapshot.Name, got.Name)
	assert.Equal(t, snapshot.Type, got.Type)
	assert.Equal(t, snapshot.TotalVES, got.TotalVES)
	assert.Equal(t, snapshot.TotalUSD, got.TotalUSD)
	assert.Equal(t, snapshot.ExchangeRate, got.ExchangeRate)
	assert.True(t, snapshot.CreatedAt.Equal(got.CreatedAt))
	assert.Len(t, got.Items, len(snapshot.Items))
	for i := range snapshot.Items {
		assert.Equal(t, snapshot.Items[i].VES.String(), got.Items[i].VES.String())
		assert.Equal(t, snapshot.Items[i].USD.String(), got.Items[i].USD.String())
	}
}

func TestArchiveRepository_TotalsStoredAsNumbers(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := NewArchiveRepository(store)

	cart := domain.NewCart()
	for _, item := range testItems(t) {
		cart.Add(item)
	}

	snapshot, err := domain.NewSavedCart("Test", domain.CartTypeBudget, cart, testRate)
	assert.NoError(t, err)
	assert.NoError(t, repo.Save([]domain.SavedCart{snapshot}))

	raw, _, err := store.Get(KeySavedCarts)
	assert.NoError(t, err)

	var generic []map[string]any
	assert.NoError(t, json.Unmarshal([]byte(raw), &generic))

	// Archive totals are plain numbers, unlike item decimals.
	assert.Equal(t, 395.0, generic[0]["totalVES"])
	assert.Equal(t, 36.5, generic[0]["exchangeRate"])
	assert.Equal(t, "budget", generic[0]["type"])
}

func TestArchiveRepository_LoadMalformed(t *testing.T) {
	store := storage.NewMemoryStore()
	assert.NoError(t, store.Set(KeySavedCarts, "[{"))

	repo := NewArchiveRepository(store)
	_, err := repo.Load()

	var storageErr *domain.StorageError
	assert.ErrorAs(t, err, &storageErr)
}
