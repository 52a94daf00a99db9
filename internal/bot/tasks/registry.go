package tasks

import (
	"context"
)

// ScheduledTaskFunc defines the standard signature for all scheduled tasks.
// The context provided by the scheduler should be respected for
// cancellation; a returned error is logged by the scheduler.
type ScheduledTaskFunc func(ctx context.Context) error

// RegisterAllTasks initializes and returns a map of all registered
// scheduled tasks. The keys match the task names used in the scheduler
// configuration.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	registered := make(map[string]ScheduledTaskFunc)

	registered["sql_maintenance"] = newSQLMaintenanceTask(deps)
	registered["log_retention"] = newLogRetentionTask(deps)

	deps.Logger.Info("Initialized scheduled tasks", "count", len(registered))
	return registered
}
