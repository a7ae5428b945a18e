// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funkybooboo/library/pkg/types"
)

func init() {
	// Pin the clock so date defaults are assertable.
	now = func() time.Time {
		return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	}
}

func testRecords() []types.Record {
	return []types.Record{
		{Title: "A", Link: "u1", Topics: []string{"T1"}, Related: []types.Record{
			{Title: "B", Link: "u2"},
		}},
		{Title: "C", Link: "u3", Topics: []string{"T2"}},
	}
}

func openSeeded(t *testing.T) *Store {
	t.Helper()
	store, err := Open(types.ProgressConfig{ProgressDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	n, err := store.Init(testRecords())
	require.NoError(t, err)
	require.Equal(t, 3, n)
	return store
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"not started", StatusNotStarted, false},
		{"in progress", StatusInProgress, false},
		{"read", StatusRead, false},
		{"ns", StatusNotStarted, false},
		{"ip", StatusInProgress, false},
		{"d", StatusRead, false},
		{"IP", StatusInProgress, false},
		{" Read ", StatusRead, false},
		{"done", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestInitAssignsIDsInCatalogOrder(t *testing.T) {
	store := openSeeded(t)

	entries, err := store.List("")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, 1, entries[0].ID)
	assert.Equal(t, "A", entries[0].Title)
	assert.Empty(t, entries[0].ParentTitle)

	assert.Equal(t, 2, entries[1].ID)
	assert.Equal(t, "B", entries[1].Title)
	assert.Equal(t, "A", entries[1].ParentTitle)
	assert.Equal(t, "T1", entries[1].Topic)

	assert.Equal(t, 3, entries[2].ID)
	assert.Equal(t, "C", entries[2].Title)

	for _, e := range entries {
		assert.Equal(t, StatusNotStarted, e.Status)
		assert.Empty(t, e.StartDate)
		assert.Empty(t, e.FinishedDate)
	}
}

func TestInitRefusesSecondSeed(t *testing.T) {
	store := openSeeded(t)
	_, err := store.Init(testRecords())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already initialized")
}

func TestInitSkipsUntitledRecords(t *testing.T) {
	store, err := Open(types.ProgressConfig{ProgressDir: t.TempDir()})
	require.NoError(t, err)
	defer store.Close()

	n, err := store.Init([]types.Record{
		{Title: "", Link: "u1", Topics: []string{"T"}},
		{Title: "Real", Link: "u2", Topics: []string{"T"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSetInProgressRecordsStartDate(t *testing.T) {
	store := openSeeded(t)

	require.NoError(t, store.Set(1, StatusInProgress, "", ""))

	entries, err := store.List(StatusInProgress)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2026-03-14", entries[0].StartDate)
	assert.Empty(t, entries[0].FinishedDate)
}

func TestSetReadBackfillsStartDate(t *testing.T) {
	store := openSeeded(t)

	require.NoError(t, store.Set(2, StatusRead, "", ""))

	entries, err := store.List(StatusRead)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2026-03-14", entries[0].StartDate)
	assert.Equal(t, "2026-03-14", entries[0].FinishedDate)
}

func TestSetReadKeepsExistingStartDate(t *testing.T) {
	store := openSeeded(t)

	require.NoError(t, store.Set(1, StatusInProgress, "2026-01-01", ""))
	require.NoError(t, store.Set(1, StatusRead, "", ""))

	entries, err := store.List(StatusRead)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2026-01-01", entries[0].StartDate)
	assert.Equal(t, "2026-03-14", entries[0].FinishedDate)
}

func TestSetNotStartedClearsDates(t *testing.T) {
	store := openSeeded(t)

	require.NoError(t, store.Set(1, StatusRead, "", ""))
	require.NoError(t, store.Set(1, StatusNotStarted, "", ""))

	entries, err := store.List("")
	require.NoError(t, err)
	assert.Equal(t, StatusNotStarted, entries[0].Status)
	assert.Empty(t, entries[0].StartDate)
	assert.Empty(t, entries[0].FinishedDate)
}

func TestSetUnknownID(t *testing.T) {
	store := openSeeded(t)
	err := store.Set(99, StatusRead, "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReset(t *testing.T) {
	store := openSeeded(t)

	require.NoError(t, store.Set(1, StatusRead, "", ""))
	require.NoError(t, store.Set(2, StatusInProgress, "", ""))
	require.NoError(t, store.Reset())

	entries, err := store.List("")
	require.NoError(t, err)
	for _, e := range entries {
		assert.Equal(t, StatusNotStarted, e.Status)
		assert.Empty(t, e.StartDate)
		assert.Empty(t, e.FinishedDate)
	}
}

func TestListFilter(t *testing.T) {
	store := openSeeded(t)

	require.NoError(t, store.Set(1, StatusRead, "", ""))

	read, err := store.List(StatusRead)
	require.NoError(t, err)
	assert.Len(t, read, 1)

	notStarted, err := store.List(StatusNotStarted)
	require.NoError(t, err)
	assert.Len(t, notStarted, 2)

	all, err := store.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestProgressSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	cfg := types.ProgressConfig{ProgressDir: dir}

	store, err := Open(cfg)
	require.NoError(t, err)
	_, err = store.Init(testRecords())
	require.NoError(t, err)
	require.NoError(t, store.Set(3, StatusInProgress, "", ""))
	require.NoError(t, store.Close())

	reopened, err := Open(cfg)
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.List(StatusInProgress)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "C", entries[0].Title)
}
