// Package tasks implements scheduled maintenance tasks for the bot.
package tasks

import (
	"log/slog"

	"github.com/edgard/historybot/internal/config"
	"github.com/edgard/historybot/internal/database"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  database.Store
	Config *config.Config
}
