package store

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brianndofor/diffhtml/internal/diff"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "reports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestReportID(t *testing.T) {
	id := ReportID("diff --git a/x b/x\n", "")
	assert.Len(t, id, 12)
	assert.Equal(t, id, ReportID("diff --git a/x b/x\n", ""))
	assert.NotEqual(t, id, ReportID("diff --git a/x b/x\n", "trunk/"))
}

func TestSaveAndGetReport(t *testing.T) {
	st := openTestStore(t)
	created := time.UnixMilli(1_700_000_000_000)
	want := Report{
		ID:         "abc123def456",
		Source:     "changes.diff",
		VCS:        "git",
		FilePrefix: "repo/",
		CreatedAt:  created,
		Added:      3,
		Removed:    1,
		Files: []diff.FileReport{
			{Name: "repo/main.go", Path: "main.go", Language: "Go", Status: diff.StatusOK, Hunks: 1, Added: 3, Removed: 1},
		},
		HTML: "<ul></ul>",
	}
	require.NoError(t, st.SaveReport(want))

	got, err := st.GetReport(want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Files, got.Files)
	assert.Equal(t, want.HTML, got.HTML)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.Equal(t, 3, got.Added)
	assert.Equal(t, 1, got.Removed)
}

func TestSaveReportReplacesSameID(t *testing.T) {
	st := openTestStore(t)
	require.NoError(t, st.SaveReport(Report{ID: "same", HTML: "first"}))
	require.NoError(t, st.SaveReport(Report{ID: "same", HTML: "second"}))

	got, err := st.GetReport("same")
	require.NoError(t, err)
	assert.Equal(t, "second", got.HTML)
	assert.Empty(t, got.Files)

	all, err := st.ListReports()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestListReportsNewestFirst(t *testing.T) {
	st := openTestStore(t)
	base := time.UnixMilli(1_700_000_000_000)
	require.NoError(t, st.SaveReport(Report{ID: "old", CreatedAt: base, HTML: "x"}))
	require.NoError(t, st.SaveReport(Report{ID: "new", CreatedAt: base.Add(time.Hour), HTML: "y"}))

	all, err := st.ListReports()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "new", all[0].ID)
	assert.Equal(t, "old", all[1].ID)
	assert.Empty(t, all[0].HTML)
}

func TestDeleteReport(t *testing.T) {
	st := openTestStore(t)
	require.NoError(t, st.SaveReport(Report{ID: "gone"}))
	require.NoError(t, st.DeleteReport("gone"))

	_, err := st.GetReport("gone")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	err = st.DeleteReport("gone")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPing(t *testing.T) {
	assert.NoError(t, openTestStore(t).Ping())
}
