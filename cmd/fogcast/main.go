package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"fogcast/internal/config"
	"fogcast/internal/output"
	"fogcast/internal/pipeline"
	"fogcast/internal/prompt"
	"fogcast/internal/report"
	"fogcast/internal/weather/noaa"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Runs are triggered externally; the run ID ties one invocation's log
	// lines together.
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	tz, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatal("invalid timezone", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	fetcher := noaa.NewClient(logger, noaa.BaseURL, httpClient)

	composer := prompt.NewComposer()
	if cfg.StylePath != "" {
		style, err := os.ReadFile(cfg.StylePath)
		if err != nil {
			logger.Fatal("failed to read style file", zap.String("path", cfg.StylePath), zap.Error(err))
		}
		composer = prompt.NewComposerWithStyle(string(style))
	}

	gen := report.NewGenerator(logger, openai.NewClient(cfg.OpenAIAPIKey), cfg.Model)
	writer := output.NewWriter(logger, cfg.OutputPath)

	p := pipeline.New(logger, pipeline.Config{
		Latitude:  cfg.Latitude,
		Longitude: cfg.Longitude,
		ImageURLs: cfg.ImageURLs,
		TimeZone:  tz,
	}, fetcher, composer, gen, writer)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := p.Run(ctx); err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}
}
