package tasks

import (
	"context"
	"fmt"
	"time"
)

// newSheetsProbeTask reads the message catalog to verify that the
// spreadsheet is reachable with the configured credentials.
func newSheetsProbeTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "sheets_probe")

	return func(ctx context.Context) error {
		startTime := time.Now()
		rows, err := deps.Store.ReadRange(ctx, deps.Config.Sheets.Ranges.Messages)
		duration := time.Since(startTime)
		if err != nil {
			log.ErrorContext(ctx, "Spreadsheet probe failed", "error", err, "duration", duration)
			return fmt.Errorf("sheets probe failed: %w", err)
		}

		log.InfoContext(ctx, "Spreadsheet probe succeeded", "rows", len(rows), "duration", duration)
		return nil
	}
}
