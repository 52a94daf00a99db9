package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) Store {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { CloseDB(db) })

	return NewStore(db, nil)
}

func sampleInteraction(createdAt time.Time) *Interaction {
	return &Interaction{
		ChatID:           10,
		UserID:           20,
		Kind:             KindText,
		Prompt:           "Tell me about Rome",
		Reply:            "Rome was founded in 753 BC.",
		PromptTokens:     12,
		CompletionTokens: 8,
		TotalTokens:      20,
		DurationMS:       350,
		CreatedAt:        createdAt,
	}
}

func TestSaveInteractionValidation(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		interaction *Interaction
	}{
		{name: "nil interaction", interaction: nil},
		{name: "missing chat id", interaction: &Interaction{UserID: 1, Kind: KindText}},
		{name: "missing user id", interaction: &Interaction{ChatID: 1, Kind: KindText}},
		{name: "missing kind", interaction: &Interaction{ChatID: 1, UserID: 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, store.SaveInteraction(ctx, tc.interaction))
		})
	}
}

func TestSaveAndAggregateUsage(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.SaveInteraction(ctx, sampleInteraction(now)))
	require.NoError(t, store.SaveInteraction(ctx, sampleInteraction(now.Add(-time.Hour))))
	require.NoError(t, store.SaveInteraction(ctx, sampleInteraction(now.Add(-48*time.Hour))))

	totals, err := store.UsageSince(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), totals.Requests)
	assert.Equal(t, int64(40), totals.TotalTokens)

	all, err := store.UsageSince(ctx, now.Add(-72*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Requests)
}

func TestUsageSinceEmptyTable(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	totals, err := store.UsageSince(context.Background(), time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, totals.Requests)
	assert.Zero(t, totals.TotalTokens)
}

func TestPurgeBefore(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.SaveInteraction(ctx, sampleInteraction(now)))
	require.NoError(t, store.SaveInteraction(ctx, sampleInteraction(now.Add(-100*24*time.Hour))))

	removed, err := store.PurgeBefore(ctx, now.Add(-90*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	totals, err := store.UsageSince(ctx, now.Add(-365*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), totals.Requests)
}

func TestRunSQLMaintenance(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.RunSQLMaintenance(context.Background()))
	require.NoError(t, store.Ping(context.Background()))
}

func TestExtractDBNameFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{input: "storage.db", expected: "storage.db"},
		{input: "file:storage.db", expected: "storage.db"},
		{input: "file:storage.db?cache=shared", expected: "storage.db"},
		{input: "file:my%20data.db", expected: "my data.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, ExtractDBNameFromPath(tc.input))
		})
	}
}
