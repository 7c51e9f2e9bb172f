package tasks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// newKeepaliveTask pings the public healthcheck so free hosting tiers do not
// put the webhook listener to sleep. It is a no-op in polling mode.
func newKeepaliveTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "keepalive")
	client := deps.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	return func(ctx context.Context) error {
		url := deps.Config.HealthcheckURL()
		if url == "" {
			log.DebugContext(ctx, "No public host configured, skipping keepalive")
			return nil
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to build keepalive request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("keepalive request failed: %w", err)
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("keepalive got status %d", resp.StatusCode)
		}
		log.DebugContext(ctx, "Keepalive succeeded", "url", url)
		return nil
	}
}
