package tasks

import (
	"context"
	"fmt"
	"time"
)

// newLogRetentionTask creates the scheduled task function that purges
// interaction log entries older than the configured retention window.
func newLogRetentionTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "log_retention")
	retention := time.Duration(deps.Config.Database.RetentionDays) * 24 * time.Hour

	return func(ctx context.Context) error {
		cutoff := time.Now().Add(-retention)
		log.InfoContext(ctx, "Starting scheduled log retention task...", "cutoff", cutoff)

		removed, err := deps.Store.PurgeBefore(ctx, cutoff)
		if err != nil {
			log.ErrorContext(ctx, "Log retention task failed", "error", err)
			return fmt.Errorf("log retention failed: %w", err)
		}

		log.InfoContext(ctx, "Scheduled log retention task completed successfully", "removed", removed)
		return nil
	}
}
