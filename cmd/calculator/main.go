package main

import (
	"go.uber.org/zap"

	"github.com/mimercadove/cart-calculator/config"
	"github.com/mimercadove/cart-calculator/internal/adapter/repository/kv"
	"github.com/mimercadove/cart-calculator/internal/adapter/storage"
	"github.com/mimercadove/cart-calculator/internal/domain"
	"github.com/mimercadove/cart-calculator/internal/setup"
	"github.com/mimercadove/cart-calculator/internal/usecase/archive"
	"github.com/mimercadove/cart-calculator/internal/usecase/cart"
	"github.com/mimercadove/cart-calculator/internal/usecase/rate"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	cfg, err := config.Get()
	if err != nil {
		logger.Fatal("failed to get configuration", zap.Error(err))
	}

	// 1. Setup storage
	var store domain.KVStore
	if cfg.Ephemeral {
		store = storage.NewMemoryStore()
	} else {
		walStore, err := storage.NewWalStore(storage.WalConfig{
			Dir:              cfg.StorageDir,
			SegmentThreshold: cfg.SegmentThreshold,
			MaxSegments:      cfg.MaxSegments,
			SyncOnWrite:      cfg.SyncOnWrite,
		}, logger)
		if err != nil {
			logger.Fatal("failed to open storage", zap.Error(err))
		}
		defer walStore.Close()
		store = walStore
	}

	// 2. Initialize repositories
	rateRepo := kv.NewRateRepository(store)
	cartRepo := kv.NewCartRepository(store)
	archiveRepo := kv.NewArchiveRepository(store)

	// 3. Initialize services
	rateService := rate.NewService(rateRepo)
	cartService := cart.NewService(rateService, cartRepo)
	archiveService := archive.NewService(archiveRepo)

	// 4. Rehydrate persisted state. Malformed stored data is a
	// recoverable load failure: warn and start empty.
	if err := rateService.Load(); err != nil {
		logger.Warn("could not load exchange rate, starting unset", zap.Error(err))
	}
	if err := cartService.Load(); err != nil {
		logger.Warn("could not load cart, starting empty", zap.Error(err))
	}
	if err := archiveService.Load(); err != nil {
		logger.Warn("could not load saved carts, starting empty", zap.Error(err))
	}

	app := &setup.App{
		Rates:   rateService,
		Cart:    cartService,
		Archive: archiveService,
		Logger:  logger,
	}

	if err := app.Run(); err != nil {
		logger.Fatal("calculator exited with error", zap.Error(err))
	}
}
