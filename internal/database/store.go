package database

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for interaction log operations. Methods
// accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// SaveInteraction inserts a new interaction record.
	SaveInteraction(ctx context.Context, interaction *Interaction) error

	// UsageSince aggregates request and token counts recorded after 'since'.
	UsageSince(ctx context.Context, since time.Time) (*UsageTotals, error)

	// PurgeBefore deletes interactions older than 'cutoff' and reports how
	// many rows were removed.
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx. It requires
// a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// SaveInteraction inserts a new interaction record.
func (s *sqlxStore) SaveInteraction(ctx context.Context, interaction *Interaction) error {
	if interaction == nil {
		return fmt.Errorf("cannot save nil interaction")
	}
	if interaction.ChatID == 0 {
		return fmt.Errorf("interaction must have a non-zero chat_id")
	}
	if interaction.UserID == 0 {
		return fmt.Errorf("interaction must have a non-zero user_id")
	}
	if interaction.Kind == "" {
		return fmt.Errorf("interaction must have a kind")
	}

	if interaction.CreatedAt.IsZero() {
		interaction.CreatedAt = time.Now().UTC()
	}

	const query = `
		INSERT INTO interactions
			(chat_id, user_id, kind, prompt, reply,
			 prompt_tokens, completion_tokens, total_tokens, duration_ms, created_at)
		VALUES
			(:chat_id, :user_id, :kind, :prompt, :reply,
			 :prompt_tokens, :completion_tokens, :total_tokens, :duration_ms, :created_at)`

	if _, err := s.db.NamedExecContext(ctx, query, interaction); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save interaction",
			"chat_id", interaction.ChatID, "user_id", interaction.UserID, "error", err)
		return fmt.Errorf("failed to save interaction: %w", err)
	}

	return nil
}

// UsageSince aggregates request and token counts recorded after 'since'.
func (s *sqlxStore) UsageSince(ctx context.Context, since time.Time) (*UsageTotals, error) {
	const query = `
		SELECT COUNT(*) AS requests, COALESCE(SUM(total_tokens), 0) AS total_tokens
		FROM interactions
		WHERE created_at >= ?`

	totals := &UsageTotals{}
	if err := s.db.GetContext(ctx, totals, query, since.UTC()); err != nil {
		return nil, fmt.Errorf("failed to aggregate usage: %w", err)
	}
	return totals, nil
}

// PurgeBefore deletes interactions older than 'cutoff'.
func (s *sqlxStore) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM interactions WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge interactions: %w", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged interactions: %w", err)
	}

	s.logger.InfoContext(ctx, "Purged old interactions", "cutoff", cutoff, "removed", removed)
	return removed, nil
}

// RunSQLMaintenance performs ANALYZE and VACUUM on the database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "ANALYZE"); err != nil {
		return fmt.Errorf("failed to run ANALYZE: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
		return fmt.Errorf("failed to run VACUUM: %w", err)
	}

	s.logger.InfoContext(ctx, "SQL maintenance completed")
	return nil
}
