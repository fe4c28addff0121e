package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Blue Hill Observatory, the deployment this was built for.
const (
	defaultLatitude   = 42.287
	defaultLongitude  = -71.133
	defaultOutputPath = "weather_report.json"
	defaultTimezone   = "America/New_York"
	defaultModel      = "gpt-4o-mini"
	defaultTimeout    = "60s"
)

var defaultImageURLs = []string{
	"https://hazecam.net/images/main/bluehill_left.jpg",
	"https://hazecam.net/images/main/bluehill_right.jpg",
}

var validate = validator.New()

// AppConfig is the full configuration surface. Compiled-in defaults cover
// everything except the API key; an optional YAML file pointed at by
// FOGCAST_CONFIG overrides individual fields.
type AppConfig struct {
	Latitude  float64  `yaml:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64  `yaml:"longitude" validate:"gte=-180,lte=180"`
	ImageURLs []string `yaml:"image_urls" validate:"len=2,dive,url"`

	OutputPath string `yaml:"output_path" validate:"required"`
	Timezone   string `yaml:"timezone" validate:"required"`
	Model      string `yaml:"model" validate:"required"`

	// StylePath optionally replaces the embedded style-instruction block.
	StylePath string `yaml:"style_path"`

	// RequestTimeout is a duration string ("60s"); Timeout holds the
	// parsed value.
	RequestTimeout string        `yaml:"request_timeout"`
	Timeout        time.Duration `yaml:"-" validate:"gt=0"`

	OpenAIAPIKey string `yaml:"-" validate:"required"`
}

// Load builds the configuration from defaults, the optional YAML file, and
// the environment.
func Load(logger *zap.Logger) (*AppConfig, error) {
	// Secrets come from the environment; a .env file is a convenience.
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file loaded", zap.Error(err))
	}

	cfg := &AppConfig{
		Latitude:       defaultLatitude,
		Longitude:      defaultLongitude,
		ImageURLs:      defaultImageURLs,
		OutputPath:     defaultOutputPath,
		Timezone:       defaultTimezone,
		Model:          defaultModel,
		RequestTimeout: defaultTimeout,
	}

	if path := os.Getenv("FOGCAST_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	timeout, err := time.ParseDuration(cfg.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid request_timeout: %w", err)
	}
	cfg.Timeout = timeout

	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
