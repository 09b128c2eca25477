package gpx

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gpxgo "github.com/tkrajina/gpxgo/gpx"

	"github.com/couchcryptid/race-positions-etl/internal/domain"
)

var testStamp = domain.RunStamp{Time: time.Date(2020, 11, 14, 16, 0, 0, 0, time.UTC)}

type mapNames map[int]string

func (m mapNames) Name(id int) (string, error) {
	name, ok := m[id]
	if !ok {
		return "", &domain.LookupError{ID: id}
	}
	return name, nil
}

var names = mapNames{3: "OMIA", 5: "PRB", 8: "Maitre CoQ IV"}

func record(id int, lat, lon float64) domain.RaceRecord {
	return domain.RaceRecord{BoatID: id, Latitude: lat, Longitude: lon, ReportTime: testStamp.Time}
}

func TestWriter_Export(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, names, Options{WaypointTime: true})
	set := domain.RecordSet{record(5, 48.3867, -4.7883), record(3, -12.5, 30.25)}

	path, err := w.Export(context.Background(), set, testStamp)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Vendee_2011141600.gpx"), path)

	doc, err := gpxgo.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Vendee", doc.Name)
	assert.Equal(t, "2020-11-14 16:00:00", doc.Description)
	require.Len(t, doc.Waypoints, 2)

	assert.Equal(t, "PRB", doc.Waypoints[0].Name)
	assert.Equal(t, "Black", doc.Waypoints[0].Symbol)
	assert.Equal(t, 48.3867, doc.Waypoints[0].Latitude)
	assert.Equal(t, -4.7883, doc.Waypoints[0].Longitude)
	assert.True(t, testStamp.Time.Equal(doc.Waypoints[0].Timestamp))

	assert.Equal(t, "OMIA", doc.Waypoints[1].Name)
	assert.Equal(t, "Blue", doc.Waypoints[1].Symbol)
}

func TestWriter_Build_PaletteCycles(t *testing.T) {
	w := NewWriter(t.TempDir(), names, Options{SymbolPrefix: "Symbol-Pin-"})
	set := make(domain.RecordSet, 10)
	for i := range set {
		set[i] = record(8, float64(i), float64(-i))
	}

	doc, err := w.Build(set, testStamp)
	require.NoError(t, err)
	require.Len(t, doc.Waypoints, 10)

	assert.Equal(t, "Symbol-Pin-Black", doc.Waypoints[0].Symbol)
	assert.Equal(t, "Symbol-Pin-Yellow", doc.Waypoints[7].Symbol)
	assert.Equal(t, "Symbol-Pin-Black", doc.Waypoints[8].Symbol)
	assert.Equal(t, "Symbol-Pin-Blue", doc.Waypoints[9].Symbol)
	for i, wp := range doc.Waypoints {
		assert.Equal(t, float64(i), wp.Latitude)
		assert.True(t, wp.Timestamp.IsZero(), "waypoint time is off")
	}
}

func TestWriter_Build_UnknownID(t *testing.T) {
	w := NewWriter(t.TempDir(), names, Options{})

	_, err := w.Build(domain.RecordSet{record(5, 1, 1), record(99, 2, 2)}, testStamp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "waypoint 1")
}

func TestWriter_Export_EmptySet(t *testing.T) {
	w := NewWriter(t.TempDir(), names, Options{DocumentName: "Race"})

	path, err := w.Export(context.Background(), domain.RecordSet{}, testStamp)
	require.NoError(t, err)
	assert.Equal(t, "Race_2011141600.gpx", filepath.Base(path))

	doc, err := gpxgo.ParseFile(path)
	require.NoError(t, err)
	assert.Empty(t, doc.Waypoints)
}

func TestWriter_Export_Idempotent(t *testing.T) {
	w := NewWriter(t.TempDir(), names, Options{WaypointTime: true})
	set := domain.RecordSet{record(5, 48.3867, -4.7883), record(8, 1, 2)}

	path, err := w.Export(context.Background(), set, testStamp)
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = w.Export(context.Background(), set, testStamp)
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
