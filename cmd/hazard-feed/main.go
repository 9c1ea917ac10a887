package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/mr1hm/go-coastal-alerts/internal/config"
	"github.com/mr1hm/go-coastal-alerts/internal/feed"
	"github.com/mr1hm/go-coastal-alerts/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	client := feed.NewClient(cfg.Feed.URL, cfg.Feed.Timeout)

	p, err := client.Fetch(context.Background())
	if err != nil {
		// the card stays in its loading state
		slog.Error("error fetching feed", "url", cfg.Feed.URL, "error", err)
	}

	fmt.Println(feed.Render(p))
}
