package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/stockdash/pkg/id"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='fetches'`).Scan(&name)
	assert.NoError(t, err)
	assert.Equal(t, "fetches", name)
}

func TestSQLiteRecordFetch(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	rec := FetchRecord{
		ID:        id.New(),
		Symbol:    "AAPL",
		Start:     time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		End:       time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC),
		Bars:      124,
		Source:    "yahoo",
		Duration:  342 * time.Millisecond,
		FetchedAt: time.Date(2024, 6, 29, 9, 30, 0, 0, time.UTC),
	}
	require.NoError(t, j.RecordFetch(rec))

	recs, err := j.RecentFetches(10)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	got := recs[0]
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "AAPL", got.Symbol)
	assert.True(t, got.Start.Equal(rec.Start))
	assert.True(t, got.End.Equal(rec.End))
	assert.Equal(t, 124, got.Bars)
	assert.Equal(t, "yahoo", got.Source)
	assert.Equal(t, rec.Duration, got.Duration)
	assert.True(t, got.FetchedAt.Equal(rec.FetchedAt))
}

func TestSQLiteRecentFetchesOrder(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	// ULIDs generated in sequence sort by creation time, newest last.
	var last string
	for i := 0; i < 5; i++ {
		last = id.New()
		require.NoError(t, j.RecordFetch(FetchRecord{
			ID: last, Symbol: "AAPL", Bars: i,
			Start: time.Now(), End: time.Now(), FetchedAt: time.Now(),
			Source: "mock",
		}))
	}

	recs, err := j.RecentFetches(3)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, last, recs[0].ID)
	assert.Equal(t, 4, recs[0].Bars)
}

func TestNoop(t *testing.T) {
	t.Parallel()

	var j Journal = Noop{}
	assert.NoError(t, j.RecordFetch(FetchRecord{}))

	recs, err := j.RecentFetches(10)
	assert.NoError(t, err)
	assert.Empty(t, recs)
	assert.NoError(t, j.Close())
}
