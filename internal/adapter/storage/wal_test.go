package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testConfig(dir string) WalConfig {
	return WalConfig{
		Dir:              dir,
		SegmentThreshold: 1000,
		MaxSegments:      10,
		SyncOnWrite:      true,
	}
}

func TestWalStore_SetGetDelete(t *testing.T) {
	store, err := NewWalStore(testConfig(t.TempDir()), zap.NewNop())
	assert.NoError(t, err)
	defer store.Close()

	_, ok, err := store.Get("exchangeRate")
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, store.Set("exchangeRate", "36.5"))

	value, ok, err := store.Get("exchangeRate")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "36.5", value)

	// Overwrite wins.
	assert.NoError(t, store.Set("exchangeRate", "40"))
	value, _, _ = store.Get("exchangeRate")
	assert.Equal(t, "40", value)

	assert.NoError(t, store.Delete("exchangeRate"))
	_, ok, _ = store.Get("exchangeRate")
	assert.False(t, ok)

	// Deleting an absent key is a no-op.
	assert.NoError(t, store.Delete("missing"))
}

func TestWalStore_RarelyWrittenKeySurvivesRotation(t *testing.T) {
	dir := t.TempDir()

	// Tiny segments so the log rotates many times over the test.
	cfg := WalConfig{
		Dir:              dir,
		SegmentThreshold: 10,
		MaxSegments:      3,
		SyncOnWrite:      false,
	}

	store, err := NewWalStore(cfg, zap.NewNop())
	assert.NoError(t, err)

	// The rate is written once; the cart is rewritten on every
	// mutation, pushing the log far past SegmentThreshold×MaxSegments.
	assert.NoError(t, store.Set("exchangeRate", "36.50"))
	for i := 0; i < 200; i++ {
		assert.NoError(t, store.Set("transactionsList", `[{"seq":"`+string(rune('a'+i%26))+`"}]`))
	}
	assert.NoError(t, store.Close())

	reopened, err := NewWalStore(cfg, zap.NewNop())
	assert.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get("exchangeRate")
	assert.NoError(t, err)
	assert.True(t, ok, "rarely-written key lost after segment rotation")
	assert.Equal(t, "36.50", value)

	_, ok, _ = reopened.Get("transactionsList")
	assert.True(t, ok)
}

func TestWalStore_DeleteSurvivesRotation(t *testing.T) {
	dir := t.TempDir()
	cfg := WalConfig{Dir: dir, SegmentThreshold: 10, MaxSegments: 3, SyncOnWrite: false}

	store, err := NewWalStore(cfg, zap.NewNop())
	assert.NoError(t, err)

	assert.NoError(t, store.Set("exchangeRate", "36.50"))
	assert.NoError(t, store.Set("savedCarts", "[]"))
	assert.NoError(t, store.Delete("savedCarts"))
	for i := 0; i < 200; i++ {
		assert.NoError(t, store.Set("transactionsList", "[]"))
	}
	assert.NoError(t, store.Close())

	reopened, err := NewWalStore(cfg, zap.NewNop())
	assert.NoError(t, err)
	defer reopened.Close()

	_, ok, _ := reopened.Get("savedCarts")
	assert.False(t, ok, "deleted key resurrected after rotation")

	value, ok, _ := reopened.Get("exchangeRate")
	assert.True(t, ok)
	assert.Equal(t, "36.50", value)
}

func TestWalStore_ReplayAfterReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewWalStore(testConfig(dir), zap.NewNop())
	assert.NoError(t, err)

	assert.NoError(t, store.Set("exchangeRate", "36.5"))
	assert.NoError(t, store.Set("transactionsList", `[{"id":"1"}]`))
	assert.NoError(t, store.Set("exchangeRate", "37"))
	assert.NoError(t, store.Set("savedCarts", "[]"))
	assert.NoError(t, store.Delete("savedCarts"))
	assert.NoError(t, store.Close())

	reopened, err := NewWalStore(testConfig(dir), zap.NewNop())
	assert.NoError(t, err)
	defer reopened.Close()

	// Last write wins on replay.
	value, ok, err := reopened.Get("exchangeRate")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "37", value)

	value, ok, _ = reopened.Get("transactionsList")
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, value)

	// Tombstones survive replay too.
	_, ok, _ = reopened.Get("savedCarts")
	assert.False(t, ok)
}
