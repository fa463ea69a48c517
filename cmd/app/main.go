package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"odinary_go/internal/app"
	"odinary_go/internal/feed"

	"github.com/joho/godotenv"
)

func main() {
	// Local overrides (API keys, storage path) before config load
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded environment overrides from .env")
	}

	// Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(ctx); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}

	// Price ticker
	if err := bootstrap.Price.Start(ctx); err != nil {
		slog.Error("Failed to start price ticker", slog.Any("error", err))
	}
	defer bootstrap.Price.Stop()

	// Coalesced preview rendering while the studio state changes
	go bootstrap.Studio.RunPreviewLoop(ctx, 150*time.Millisecond, func(png []byte) {
		slog.Debug("Preview rendered", slog.Int("bytes", len(png)))
	})

	quote := bootstrap.Price.Quote()
	slog.InfoContext(ctx, "📈 $NARY quote",
		slog.String("usd", quote.USD.String()),
		slog.String("change_24h", quote.USD24hChange.String()))

	page := bootstrap.Feed.View(feed.FilterAll, feed.SortNewest, 1, bootstrap.Config.Feed.PageSize)
	slog.InfoContext(ctx, "🖼️ Feed loaded",
		slog.Int("total", page.TotalCount),
		slog.Int("page_items", len(page.Items)))

	slog.InfoContext(ctx, "✨ ODINARY fully operational. Press Ctrl+C to exit.")

	// Wait for shutdown signal
	<-ctx.Done()

	slog.InfoContext(ctx, "👋 Shutting down gracefully...")
}
