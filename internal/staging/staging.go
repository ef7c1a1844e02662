// Package staging moves the working set between the remote order location
// and the local working directory: fetch the order's stats directory before
// processing, push the produced artifacts back afterward, and verify every
// pushed file with a checksum comparison.
package staging

import (
	"context"
	"fmt"

	"github.com/najamsyed/ESPA/internal/config"
	"github.com/najamsyed/ESPA/internal/logger"
)

// Stager stages files between the order location and the local work area.
type Stager interface {
	// Fetch copies the order's stats directory into localDir.
	Fetch(ctx context.Context, localDir string) error

	// Push copies every file in localDir back to the order location and
	// verifies each transfer with a checksum comparison.
	Push(ctx context.Context, localDir string) error

	// Close releases any client resources.
	Close() error
}

// Mode selects the staging backend.
type Mode string

const (
	ModeSCP Mode = "scp"
	ModeGCS Mode = "gcs"
)

// NewStager creates a stager for the configured mode.
func NewStager(ctx context.Context, cfg *config.Config, log *logger.Logger) (Stager, error) {
	switch Mode(cfg.StagingMode) {
	case ModeSCP:
		return NewSCPStager(cfg.SourceHost, cfg.OrderDirectory, NewShellExecutor(), log), nil
	case ModeGCS:
		stager, err := NewGCSStager(ctx, cfg.GCSBucket, cfg.OrderDirectory, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gcs stager: %w", err)
		}
		return stager, nil
	default:
		return nil, fmt.Errorf("unsupported staging mode: %s", cfg.StagingMode)
	}
}
