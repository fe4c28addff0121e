// Package pipeline runs the single pass a process invocation performs:
// fetch weather, compose the prompt, generate the report, extract the
// color code, persist the record. Any failure aborts the run before
// anything is written.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"fogcast/internal/output"
	"fogcast/internal/prompt"
	"fogcast/internal/report"
	"fogcast/internal/weather"
)

// TimestampLayout is the local-time format used in both the prompt and the
// persisted record.
const TimestampLayout = "2006-01-02 15:04:05"

// Fetcher retrieves a weather snapshot for a coordinate pair.
type Fetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (weather.Snapshot, error)
}

// Generator produces raw report text from a prompt and image URLs.
type Generator interface {
	Generate(ctx context.Context, prompt string, imageURLs []string) (string, error)
}

// Writer persists a finished record.
type Writer interface {
	Write(rec output.Record) error
}

// Config holds the fixed per-deployment inputs of a run.
type Config struct {
	Latitude  float64
	Longitude float64
	ImageURLs []string
	TimeZone  *time.Location
}

// Pipeline wires the stages together. Each stage is injected so failures
// can be simulated in tests.
type Pipeline struct {
	logger   *zap.Logger
	cfg      Config
	fetcher  Fetcher
	composer *prompt.Composer
	gen      Generator
	writer   Writer

	now func() time.Time
}

// New creates a Pipeline.
func New(logger *zap.Logger, cfg Config, fetcher Fetcher, composer *prompt.Composer, gen Generator, writer Writer) *Pipeline {
	return &Pipeline{
		logger:   logger,
		cfg:      cfg,
		fetcher:  fetcher,
		composer: composer,
		gen:      gen,
		writer:   writer,
		now:      time.Now,
	}
}

// Run executes one complete pass. On any stage failure it returns without
// writing; the output file from the previous run stays untouched. The same
// clock reading feeds the prompt and the persisted timestamp.
func (p *Pipeline) Run(ctx context.Context) error {
	snap, err := p.fetcher.Fetch(ctx, p.cfg.Latitude, p.cfg.Longitude)
	if err != nil {
		return fmt.Errorf("fetch weather: %w", err)
	}

	localTime := p.now().In(p.cfg.TimeZone).Format(TimestampLayout)
	promptText := p.composer.Compose(snap, localTime)

	raw, err := p.gen.Generate(ctx, promptText, p.cfg.ImageURLs)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	cleaned, code, ok := report.ExtractColor(raw)
	if !ok {
		p.logger.Warn("generated report contained no color code")
	}

	rec := output.Record{
		ForecastData:  snap,
		WeatherReport: cleaned,
		Timestamp:     localTime,
	}
	if ok {
		rec.ColorCode = &code
	}

	if err := p.writer.Write(rec); err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	p.logger.Info("run complete",
		zap.Bool("has_color_code", ok),
		zap.Int("report_chars", len(cleaned)),
	)
	return nil
}
