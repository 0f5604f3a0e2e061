// Command campaign runs one engagement pass; cron drives the schedule.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"moltmemory/api/internal/campaign"
	"moltmemory/api/internal/compose"
	"moltmemory/api/internal/compose/gemini"
	"moltmemory/api/internal/compose/openai"
	"moltmemory/api/internal/config"
	"moltmemory/api/internal/moltbook"
	"moltmemory/api/internal/notify"
	"moltmemory/api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap: %v", err)
	}
	defer logger.Sync()

	db, err := store.Open(cfg.DSN())
	if err != nil {
		logger.Fatal("store open", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := store.EnsureSchema(ctx, db); err != nil {
		logger.Fatal("ensure schema", zap.Error(err))
	}

	spread, err := loadSpread(cfg.SpreadFile)
	if err != nil {
		logger.Fatal("spread config", zap.Error(err))
	}

	runner := &campaign.Runner{
		API:        moltbook.New(cfg.MoltbookAPIBase, cfg.MoltbookAPIKey, logger),
		Threads:    store.NewThreadRepo(db),
		Marks:      store.NewMarkRepo(db),
		Composer:   composer(cfg),
		Log:        logger,
		Self:       cfg.AgentName,
		WatchPosts: cfg.WatchPosts,
		Submolts:   cfg.Submolts,
		Spread:     spread,
		Cooldown:   cfg.PostCooldown,
	}

	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		n, err := notify.New(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			logger.Fatal("telegram", zap.Error(err))
		}
		runner.Notify = n
	}

	report, err := runner.Run(ctx)
	if err != nil {
		logger.Fatal("campaign run", zap.Error(err))
	}
	logger.Info("campaign complete",
		zap.Bool("needs_attention", report.NeedsAttention),
		zap.Int("items", len(report.Items)))
}

func composer(cfg *config.Config) compose.Engine {
	switch cfg.ComposeEngine {
	case "gemini":
		return gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)
	case "gpt":
		return openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	case "":
		return nil
	default:
		log.Fatalf("unknown COMPOSE_ENGINE %q", cfg.ComposeEngine)
		return nil
	}
}

// loadSpread reads the spread posts from a JSON file; no file means no
// spreading this run.
func loadSpread(path string) ([]campaign.SpreadPost, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var posts []campaign.SpreadPost
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return posts, nil
}
