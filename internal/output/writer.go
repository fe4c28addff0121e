// Package output persists the combined run result as a single JSON file.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"fogcast/internal/weather"
)

// ErrWrite covers serialization and filesystem failures while persisting a
// record.
var ErrWrite = errors.New("output: write failed")

// Record is the complete result of one run. It is written whole; there are
// no partial writes and each run replaces the previous file. ColorCode is
// nil when the generated text contained no color code.
type Record struct {
	ForecastData  weather.Snapshot `json:"forecast_data"`
	WeatherReport string           `json:"weather_report"`
	ColorCode     *string          `json:"color_code"`
	Timestamp     string           `json:"timestamp"`
}

// Writer serializes records to a fixed path.
type Writer struct {
	logger *zap.Logger
	path   string
}

// NewWriter creates a Writer targeting path.
func NewWriter(logger *zap.Logger, path string) *Writer {
	return &Writer{logger: logger, path: path}
}

// Write serializes rec with human-readable indentation and replaces the
// file at the target path. The record lands via a temp file and rename in
// the same directory, so a crashed run never leaves a truncated file at
// the target path.
func (w *Writer) Write(rec Record) error {
	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	w.logger.Info("wrote report", zap.String("path", w.path), zap.Int("bytes", len(data)))
	return nil
}
