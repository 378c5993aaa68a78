package journal

import (
	"context"
	"path/filepath"
	"testing"

	"docmerge/internal/writer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal_RecordAndRecent(t *testing.T) {
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer j.Close()

	ctx := context.Background()
	require.NoError(t, j.Record(ctx, writer.WriteResult{
		Success:      true,
		FilePath:     "docs/a.md",
		BytesWritten: 42,
		Warnings:     []string{"link target not found: ./x.md"},
	}))
	require.NoError(t, j.Record(ctx, writer.WriteResult{
		FilePath: "docs/b.md",
		Errors:   []string{"failed to replace docs/b.md: permission denied"},
	}))

	entries, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Most recent first.
	assert.Equal(t, "docs/b.md", entries[0].FilePath)
	assert.False(t, entries[0].Success)
	require.Len(t, entries[0].Errors, 1)
	assert.Contains(t, entries[0].Errors[0], "permission denied")

	assert.Equal(t, "docs/a.md", entries[1].FilePath)
	assert.True(t, entries[1].Success)
	assert.Equal(t, 42, entries[1].BytesWritten)
	require.Len(t, entries[1].Warnings, 1)
	assert.False(t, entries[1].CreatedAt.IsZero())
}

func TestJournal_RecentLimit(t *testing.T) {
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer j.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, j.Record(ctx, writer.WriteResult{Success: true, FilePath: "docs/a.md"}))
	}

	entries, err := j.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
