package app

import (
	"context"
	"log/slog"

	"odinary_go/internal/domain"
	"odinary_go/internal/feed"
	"odinary_go/internal/infra"
	"odinary_go/internal/infra/storage"
	"odinary_go/internal/render"
	"odinary_go/internal/service"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config   *infra.Config
	Storage  *storage.Storage
	Notifier *feed.Notifier
	Feed     *feed.Controller
	Comments *service.CommentService
	Price    *infra.PriceClient
	Share    *infra.ShareService
	Studio   *Studio
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (config, DB, services).
func (b *Bootstrap) Initialize(ctx context.Context) error {
	slog.Info("🚀 Bootstrapping ODINARY...")

	// 1. Load Config
	cfg, err := infra.LoadConfig("configs/config.yaml")
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Initialize Storage (DB)
	var store *storage.Storage
	if cfg.Storage.Path != "" {
		store, err = storage.NewStorageAt(cfg.Storage.Path)
	} else {
		store, err = storage.NewStorage()
	}
	if err != nil {
		return err
	}
	b.Storage = store
	slog.Info("✅ Database initialized")

	// 4. Restore the meme collection, seeding on first run
	memes, found, err := store.LoadMemes()
	if err != nil {
		slog.Warn("Failed to load meme collection, starting from seeds", slog.Any("error", err))
	}
	if !found || len(memes) == 0 {
		memes = domain.SeedMemes()
		slog.Info("🌱 Seeded initial meme collection", slog.Int("count", len(memes)))
	} else {
		slog.Info("📦 Restored meme collection", slog.Int("count", len(memes)))
	}

	// 5. Feed state and notifications
	b.Notifier = feed.NewNotifier(feed.DefaultNoticeTTL)
	b.Feed = feed.NewController(memes, store, b.Notifier.Show, infra.GlobalMetrics)

	// 6. Comments
	b.Comments = service.NewCommentService(store)

	// 7. Price ticker
	b.Price = infra.NewPriceClientWithConfig(nil,
		cfg.API.Price.URL, cfg.API.Price.APIKey, cfg.API.Price.PollIntervalSec)

	// 8. Share intents
	b.Share = infra.NewShareService(infra.BrowserOpener{}, infra.GlobalMetrics)

	// 9. Meme studio
	composer, err := render.NewComposer()
	if err != nil {
		return err
	}
	b.Studio = NewStudio(composer, render.NewTemplateLoader(), store, b.Feed,
		cfg.Studio.Width, cfg.Studio.Height, cfg.Studio.OutputDir)
	b.Studio.RestoreSettings(ctx)
	slog.Info("✅ Studio ready")

	return nil
}
