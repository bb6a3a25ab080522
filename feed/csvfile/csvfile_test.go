package csvfile

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"

	"github.com/rustyeddy/stockdash/feed"
)

const sampleCSV = `Date,Open,High,Low,Close,Adj Close,Volume
2024-01-02,100,101,99,100.5,100.5,1000
2024-01-03,100.5,102,100,101.5,101.5,1100
2024-01-04,101.5,101.5,98,null,null,0
2024-01-05,101,103,101,102.25,102.25,900
`

func writeSample(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadPlainCSV(t *testing.T) {
	path := writeSample(t, "AAPL.csv", sampleCSV)

	candles, err := Load(path)
	require.NoError(t, err)
	require.Len(t, candles, 3) // null close row skipped

	assert.Equal(t, "2024-01-02", candles[0].Date())
	assert.Equal(t, 100.5, candles[0].Close)
	assert.Equal(t, 1000.0, candles[0].Volume)
	assert.Equal(t, 102.25, candles[2].Close)
}

func TestLoadUnsortedCSV(t *testing.T) {
	path := writeSample(t, "AAPL.csv", `Date,Close
2024-01-05,3
2024-01-02,1
2024-01-03,2
`)

	candles, err := Load(path)
	require.NoError(t, err)
	require.Len(t, candles, 3)
	assert.Equal(t, 1.0, candles[0].Close)
	assert.Equal(t, 3.0, candles[2].Close)
}

func TestLoadXZ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "AAPL.csv.xz")

	f, err := os.Create(path)
	require.NoError(t, err)
	w, err := xz.NewWriter(f)
	require.NoError(t, err)
	_, err = w.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	candles, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, candles, 3)
}

func TestLoadZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.zip")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	entry, err := zw.Create("AAPL.csv")
	require.NoError(t, err)
	_, err = entry.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	candles, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, candles, 3)
}

func TestLoadMissingColumns(t *testing.T) {
	path := writeSample(t, "bad.csv", "Open,High\n1,2\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestProviderHistory(t *testing.T) {
	path := writeSample(t, "AAPL.csv", sampleCSV)

	p, err := Open("aapl", path)
	require.NoError(t, err)
	assert.Equal(t, "csv", p.Name())

	start := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	candles, err := p.History(context.Background(), "AAPL", start, end)
	require.NoError(t, err)
	assert.Len(t, candles, 2)

	// Unknown symbols and empty ranges surface as no data.
	_, err = p.History(context.Background(), "MSFT", start, end)
	assert.ErrorIs(t, err, feed.ErrNoData)

	_, err = p.History(context.Background(), "AAPL", end.AddDate(1, 0, 0), end.AddDate(1, 0, 1))
	assert.ErrorIs(t, err, feed.ErrNoData)
}
