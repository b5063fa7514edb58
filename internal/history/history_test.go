package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/jellyctl/internal/domain"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	journal, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { journal.Close() })
	return journal
}

func report(started time.Time, status domain.Status) *domain.RunReport {
	return &domain.RunReport{
		Started: started,
		Results: []domain.OperationResult{
			{Kind: domain.UnitLibrary, Unit: "Movies", Status: status},
		},
	}
}

func TestAppendAndRecent(t *testing.T) {
	journal := openTestJournal(t)

	base := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	require.NoError(t, journal.Append(report(base, domain.StatusApplied)))
	require.NoError(t, journal.Append(report(base.Add(time.Hour), domain.StatusFailed)))

	entries, err := journal.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first
	assert.True(t, entries[0].Started.After(entries[1].Started))
	assert.True(t, entries[0].Failed)
	assert.False(t, entries[1].Failed)
	require.Len(t, entries[1].Results, 1)
	assert.Equal(t, "Movies", entries[1].Results[0].Unit)
}

func TestRecentHonorsLimit(t *testing.T) {
	journal := openTestJournal(t)

	base := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, journal.Append(report(base.Add(time.Duration(i)*time.Minute), domain.StatusApplied)))
	}

	entries, err := journal.Recent(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestRecentOnEmptyJournal(t *testing.T) {
	journal := openTestJournal(t)

	entries, err := journal.Recent(5)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
