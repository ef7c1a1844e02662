package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for one plotting run
type Config struct {
	// Remote staging configuration
	StagingMode    string `env:"STAGING_MODE,default=scp"`
	SourceHost     string `env:"SOURCE_HOST,default=localhost"`
	OrderDirectory string `env:"ORDER_DIRECTORY"`
	GCSBucket      string `env:"GCS_BUCKET"`

	// Local working area
	WorkDirectory string `env:"WORK_DIRECTORY,default=lpcs_statistics"`
	Keep          bool   `env:"KEEP_WORK_DIRECTORY,default=false"`

	// Plot appearance
	TerraColor      string  `env:"TERRA_COLOR,default=#664400"`
	AquaColor       string  `env:"AQUA_COLOR,default=#00cccc"`
	LT4Color        string  `env:"LT4_COLOR,default=#cc3333"`
	LT5Color        string  `env:"LT5_COLOR,default=#0066cc"`
	LE7Color        string  `env:"LE7_COLOR,default=#00cc33"`
	BackgroundColor string  `env:"BG_COLOR,default=#f3f3f3"`
	MarkerSize      float64 `env:"MARKER_SIZE,default=5"`
	MarkerShape     string  `env:"MARKER_SHAPE,default=triangle"`

	// Chart output format: png (go-chart) or html (go-echarts)
	ChartFormat string `env:"CHART_FORMAT,default=png"`

	// Optional completion webhook
	WebhookURL string `env:"WEBHOOK_URL"`

	// Service configuration
	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.StagingMode {
	case "scp":
		if c.OrderDirectory == "" {
			return fmt.Errorf("ORDER_DIRECTORY is required for scp staging")
		}
	case "gcs":
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required for gcs staging")
		}
		if c.OrderDirectory == "" {
			return fmt.Errorf("ORDER_DIRECTORY is required for gcs staging")
		}
	default:
		return fmt.Errorf("unsupported staging mode: %s", c.StagingMode)
	}

	if c.ChartFormat != "png" && c.ChartFormat != "html" {
		return fmt.Errorf("unsupported chart format: %s", c.ChartFormat)
	}

	if !markerShapes[c.MarkerShape] {
		return fmt.Errorf("unsupported marker shape: %s", c.MarkerShape)
	}
	return nil
}

// markerShapes are the marker symbols the chart backends understand.
var markerShapes = map[string]bool{
	"circle":   true,
	"rect":     true,
	"triangle": true,
	"diamond":  true,
	"pin":      true,
	"arrow":    true,
}
