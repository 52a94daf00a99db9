package database

import "time"

// Interaction kinds recorded in the log.
const (
	KindText     = "text"
	KindLocation = "location"
)

// Interaction records one served request for diagnostics: who asked, what
// was sent to the generator, token usage and latency. Entries are never
// read back into prompts.
type Interaction struct {
	ID               int64     `db:"id"`
	ChatID           int64     `db:"chat_id"`
	UserID           int64     `db:"user_id"`
	Kind             string    `db:"kind"`
	Prompt           string    `db:"prompt"`
	Reply            string    `db:"reply"`
	PromptTokens     int       `db:"prompt_tokens"`
	CompletionTokens int       `db:"completion_tokens"`
	TotalTokens      int       `db:"total_tokens"`
	DurationMS       int64     `db:"duration_ms"`
	CreatedAt        time.Time `db:"created_at"`
}

// UsageTotals aggregates the interaction log for diagnostics.
type UsageTotals struct {
	Requests    int64 `db:"requests"`
	TotalTokens int64 `db:"total_tokens"`
}
