// Package notify posts a run summary to an optional completion webhook.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/najamsyed/ESPA/internal/logger"
)

// RunSummary is the payload posted when a run finishes.
type RunSummary struct {
	Status        string `json:"status"`
	OrderDir      string `json:"order_directory"`
	BandTypes     int    `json:"band_types_processed"`
	ArtifactCount int    `json:"artifact_count"`
	DurationMS    int64  `json:"duration_ms"`
	Error         string `json:"error,omitempty"`
}

// Notifier delivers run summaries over HTTP.
type Notifier struct {
	client *resty.Client
	url    string
	log    *logger.Logger
}

// New creates a notifier for the given webhook URL. An empty URL disables
// delivery.
func New(url string, log *logger.Logger) *Notifier {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(2 * time.Second)

	return &Notifier{
		client: client,
		url:    url,
		log:    log.WithComponent("notify"),
	}
}

// Send posts the summary. Delivery failure is reported but treated by the
// caller as non-fatal; the artifacts are already published by this point.
func (n *Notifier) Send(ctx context.Context, summary RunSummary) error {
	if n.url == "" {
		return nil
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(summary).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("failed to post run summary: %w", err)
	}
	if resp.StatusCode() >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode())
	}

	n.log.Info("Run summary delivered", logger.Fields{"status": summary.Status})
	return nil
}
