package scheds

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/race-positions-etl/internal/domain"
)

var testStamp = domain.RunStamp{Time: time.Date(2020, 11, 14, 16, 0, 0, 0, time.UTC)}

func testSet() domain.RecordSet {
	return domain.RecordSet{
		{DisplayName: "PRB", BoatID: 5, Rank: "1", Latitude: 48.3867, Longitude: -4.7883, ReportTime: testStamp.Time},
		{DisplayName: "CHARAL", BoatID: 33, Rank: "2", Latitude: -12.5, Longitude: 30, ReportTime: testStamp.Time},
	}
}

func TestWriter_Export(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "")

	path, err := w.Export(context.Background(), testSet(), testStamp)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Scheds_2011141600.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"EXPEDITION\n"+
			"5,48.3867,-4.7883,2020-11-14 16:00:00\n"+
			"33,-12.5,30,2020-11-14 16:00:00\n",
		string(data))
}

func TestWriter_Export_EmptySet(t *testing.T) {
	w := NewWriter(t.TempDir(), "")

	path, err := w.Export(context.Background(), domain.RecordSet{}, testStamp)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "EXPEDITION\n", string(data))
}

func TestWriter_Export_CustomHeader(t *testing.T) {
	w := NewWriter(t.TempDir(), "SCHEDS")

	path, err := w.Export(context.Background(), testSet()[:1], testStamp)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SCHEDS\n5,48.3867,-4.7883,2020-11-14 16:00:00\n", string(data))
}

func TestWriter_Export_Idempotent(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "")

	path, err := w.Export(context.Background(), testSet(), testStamp)
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = w.Export(context.Background(), testSet(), testStamp)
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWriter_Export_MissingDir(t *testing.T) {
	w := NewWriter(filepath.Join(t.TempDir(), "does", "not", "exist"), "")

	_, err := w.Export(context.Background(), testSet(), testStamp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create scheds file")
}

func TestWriter_Export_RejectsNonASCIIHeader(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "EXPÉDITION")

	_, err := w.Export(context.Background(), testSet(), testStamp)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
