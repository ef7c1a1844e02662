// Package cmd wires the command line surface to a plotting run.
package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/najamsyed/ESPA/internal/config"
	"github.com/najamsyed/ESPA/internal/logger"
	"github.com/najamsyed/ESPA/internal/notify"
	"github.com/najamsyed/ESPA/internal/pipeline"
	"github.com/najamsyed/ESPA/internal/plot"
	"github.com/najamsyed/ESPA/internal/render"
	"github.com/najamsyed/ESPA/internal/reports"
	"github.com/najamsyed/ESPA/internal/scene"
	"github.com/najamsyed/ESPA/internal/staging"
)

var flags struct {
	debug          bool
	sourceHost     string
	orderDirectory string
	stagingMode    string
	gcsBucket      string
	workDirectory  string
	keep           bool

	terraColor  string
	aquaColor   string
	lt4Color    string
	lt5Color    string
	le7Color    string
	bgColor     string
	markerSize  float64
	markerShape string

	chartFormat string
	webhookURL  string
}

var rootCmd = &cobra.Command{
	Use:   "espa-plot",
	Short: "Generate plots of the per-scene band statistics for an order",
	Long: `espa-plot retrieves an order's statistics directory, merges the
per-scene statistic files into per-sensor CSV time-series tables, renders
normalized trend charts for every tracked band type, and publishes the
results back to the order location.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	f := rootCmd.Flags()
	f.BoolVar(&flags.debug, "debug", false, "turn debug logging on")
	f.StringVar(&flags.sourceHost, "source-host", "", "hostname where the order resides")
	f.StringVar(&flags.orderDirectory, "order-directory", "", "directory on the source host where the order resides")
	f.StringVar(&flags.stagingMode, "staging-mode", "", "staging backend: scp or gcs")
	f.StringVar(&flags.gcsBucket, "gcs-bucket", "", "bucket holding the order (gcs staging)")
	f.StringVar(&flags.workDirectory, "work-directory", "", "local working directory for the statistics")
	f.BoolVar(&flags.keep, "keep", false, "keep the working directory")

	f.StringVar(&flags.terraColor, "terra-color", "", "color specification for Terra data")
	f.StringVar(&flags.aquaColor, "aqua-color", "", "color specification for Aqua data")
	f.StringVar(&flags.lt4Color, "lt4-color", "", "color specification for LT4 data")
	f.StringVar(&flags.lt5Color, "lt5-color", "", "color specification for LT5 data")
	f.StringVar(&flags.le7Color, "le7-color", "", "color specification for LE7 data")
	f.StringVar(&flags.bgColor, "bg-color", "", "color specification for plot and legend background")
	f.Float64Var(&flags.markerSize, "marker-size", 0, "marker size for plotted points")
	f.StringVar(&flags.markerShape, "marker", "", "marker shape for plotted points")

	f.StringVar(&flags.chartFormat, "chart-format", "", "chart output format: png or html")
	f.StringVar(&flags.webhookURL, "webhook-url", "", "completion webhook URL")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	started := time.Now()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := logger.ParseLevel(cfg.LogLevel)
	if flags.debug {
		level = logger.DEBUG
	}
	format := logger.TextFormat
	if cfg.LogFormat == "json" {
		format = logger.JSONFormat
	}
	log := logger.New(logger.Config{Level: level, Format: format})

	result, err := runPlots(ctx, cfg, log, started)

	notifier := notify.New(cfg.WebhookURL, log)
	summary := notify.RunSummary{
		Status:     "success",
		OrderDir:   cfg.OrderDirectory,
		DurationMS: time.Since(started).Milliseconds(),
	}
	if err != nil {
		summary.Status = "failed"
		summary.Error = err.Error()
	} else if result != nil {
		summary.BandTypes = len(result.BandTypes)
		summary.ArtifactCount = len(result.Artifacts())
	}
	if notifyErr := notifier.Send(ctx, summary); notifyErr != nil {
		log.Warn("Completion webhook delivery failed", logger.Fields{"error": notifyErr.Error()})
	}

	return err
}

func runPlots(ctx context.Context, cfg *config.Config, log *logger.Logger, started time.Time) (*pipeline.Result, error) {
	renderer, err := render.New(cfg.ChartFormat)
	if err != nil {
		return nil, err
	}

	stager, err := staging.NewStager(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	defer stager.Close()

	// The working directory holds intermediate state only; remove it on the
	// way out unless the operator asked to keep it.
	if !cfg.Keep {
		defer os.RemoveAll(cfg.WorkDirectory)
	}

	if err := stager.Fetch(ctx, cfg.WorkDirectory); err != nil {
		return nil, err
	}

	pipe := pipeline.New(cfg.WorkDirectory, renderer, plotConfig(cfg), log)
	result, err := pipe.ProcessAll()
	if err != nil {
		return nil, err
	}

	if _, err := reports.NewSummaryBuilder().WriteIndex(result, cfg.WorkDirectory); err != nil {
		return nil, err
	}

	if err := stager.Push(ctx, cfg.WorkDirectory); err != nil {
		return nil, err
	}

	log.Info("Plot processing complete", logger.Fields{
		"band_types": len(result.BandTypes),
		"artifacts":  len(result.Artifacts()),
		"duration":   time.Since(started).Round(time.Millisecond).String(),
	})
	return result, nil
}

// plotConfig freezes the display configuration for the run.
func plotConfig(cfg *config.Config) plot.Config {
	return plot.Config{
		SensorColors: map[scene.Sensor]string{
			scene.Terra: cfg.TerraColor,
			scene.Aqua:  cfg.AquaColor,
			scene.LT4:   cfg.LT4Color,
			scene.LT5:   cfg.LT5Color,
			scene.LE7:   cfg.LE7Color,
		},
		Background:  cfg.BackgroundColor,
		MarkerSize:  cfg.MarkerSize,
		MarkerShape: cfg.MarkerShape,
	}
}

// applyFlagOverrides lets explicit command line flags win over environment
// configuration.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	set("source-host", func() { cfg.SourceHost = flags.sourceHost })
	set("order-directory", func() { cfg.OrderDirectory = flags.orderDirectory })
	set("staging-mode", func() { cfg.StagingMode = flags.stagingMode })
	set("gcs-bucket", func() { cfg.GCSBucket = flags.gcsBucket })
	set("work-directory", func() { cfg.WorkDirectory = flags.workDirectory })
	set("keep", func() { cfg.Keep = flags.keep })
	set("terra-color", func() { cfg.TerraColor = flags.terraColor })
	set("aqua-color", func() { cfg.AquaColor = flags.aquaColor })
	set("lt4-color", func() { cfg.LT4Color = flags.lt4Color })
	set("lt5-color", func() { cfg.LT5Color = flags.lt5Color })
	set("le7-color", func() { cfg.LE7Color = flags.le7Color })
	set("bg-color", func() { cfg.BackgroundColor = flags.bgColor })
	set("marker-size", func() { cfg.MarkerSize = flags.markerSize })
	set("marker", func() { cfg.MarkerShape = flags.markerShape })
	set("chart-format", func() { cfg.ChartFormat = flags.chartFormat })
	set("webhook-url", func() { cfg.WebhookURL = flags.webhookURL })
}
