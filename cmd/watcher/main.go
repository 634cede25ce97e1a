package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/gradewatch/watcher/config"
	"github.com/gradewatch/watcher/internal/domain"
	"github.com/gradewatch/watcher/internal/infrastructure/discord"
	"github.com/gradewatch/watcher/internal/infrastructure/listing"
	"github.com/gradewatch/watcher/internal/infrastructure/telegram"
	"github.com/gradewatch/watcher/internal/usecase"
)

// Exit codes: one per failure class so cron-side alerting can tell a broken
// config from a broken page.
const (
	exitOK         = 0
	exitFailure    = 1
	exitConfig     = 2
	exitFetch      = 3
	exitExtraction = 4
	exitSchema     = 5
)

func main() {
	// Load configuration; a missing required setting aborts before any
	// network call is made
	cfg, err := config.Load()
	if err != nil {
		log.Printf("[config] %v", err)
		os.Exit(exitConfig)
	}

	log.Printf("Starting gradewatch v1.0.0")
	log.Printf("Product URL: %s", cfg.Source.ProductURL)
	log.Printf("Criteria: grade=%s availability=%s", cfg.Filter.Grade, cfg.Filter.Availability)
	if cfg.Filter.TargetPrice != "" {
		log.Printf("Target price: %s (mention %s)", cfg.Filter.TargetPrice, cfg.Filter.MentionHandle)
	}

	// Initialize infrastructure dependencies
	source := listing.NewClient(cfg.Source.Timeout, cfg.Source.UserAgent)

	chat := telegram.NewClient(telegram.Config{
		BaseURL:    cfg.Telegram.APIBaseURL,
		BotToken:   cfg.Telegram.BotToken,
		ChatID:     cfg.Telegram.ChatID,
		SendPhotos: cfg.Telegram.SendPhotos,
		PerSecond:  cfg.RateLimit.Telegram,
	})

	card := discord.NewClient(discord.Config{
		WebhookURL:   cfg.Discord.WebhookURL,
		UseThumbnail: cfg.Discord.UseThumbnail,
		EmbedColor:   cfg.Discord.EmbedColor,
		FooterText:   cfg.Discord.FooterText,
		PerSecond:    cfg.RateLimit.Discord,
	})

	// Initialize usecase layer
	filter := usecase.NewFilterService(usecase.FilterCriteria{
		Grade:        domain.Grade(cfg.Filter.Grade),
		Availability: domain.Availability(cfg.Filter.Availability),
		TargetPrice:  cfg.Filter.TargetPrice,
	})
	notifier := usecase.NewNotifyService(
		[]domain.NotificationAdapter{chat, card},
		cfg.Filter.MentionHandle,
	)
	watch := usecase.NewWatchService(source, filter, notifier, cfg.Source.ProductURL)

	// One pass, then exit
	results, err := watch.Run(context.Background())
	if err != nil {
		os.Exit(runExitCode(err))
	}

	// Dispatch failures are recoverable: report them, but the run succeeded
	for _, r := range results {
		if r.Err != nil {
			log.Printf("[notify] %s %s dispatch failed: %v", r.Adapter, r.Kind, r.Err)
		}
	}

	log.Printf("Program ran successfully")
	os.Exit(exitOK)
}

// runExitCode maps a fatal run error to its failure class
func runExitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrFetch):
		return exitFetch
	case errors.Is(err, domain.ErrExtraction):
		return exitExtraction
	case errors.Is(err, domain.ErrSchema):
		return exitSchema
	default:
		return exitFailure
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
