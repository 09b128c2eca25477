// Package gpx writes race positions as a GPX 1.1 waypoint list.
package gpx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	gpxgo "github.com/tkrajina/gpxgo/gpx"

	"github.com/couchcryptid/race-positions-etl/internal/domain"
)

const (
	// DefaultDocumentName is the document name and file prefix.
	DefaultDocumentName = "Vendee"
	creator             = "race-positions-etl"
)

// Palette is the marker colour cycle, indexed by record position modulo 8.
var Palette = [8]string{"Black", "Blue", "Green", "Magenta", "Orange", "Red", "White", "Yellow"}

// NameResolver recovers a display name from a boat id.
type NameResolver interface {
	Name(id int) (string, error)
}

// Options tune the document.
type Options struct {
	// DocumentName defaults to DefaultDocumentName.
	DocumentName string
	// WaypointTime copies each record's report time onto its waypoint.
	WaypointTime bool
	// SymbolPrefix is prepended to the palette colour, e.g. "Symbol-Pin-".
	SymbolPrefix string
}

// Writer implements pipeline.Exporter for GPX waypoint files.
type Writer struct {
	dir   string
	names NameResolver
	opts  Options
}

// NewWriter creates a GPX writer. names is normally the ASCII roster table.
func NewWriter(dir string, names NameResolver, opts Options) *Writer {
	if opts.DocumentName == "" {
		opts.DocumentName = DefaultDocumentName
	}
	return &Writer{dir: dir, names: names, opts: opts}
}

// Name identifies the exporter in logs and metrics.
func (w *Writer) Name() string { return "gpx" }

// FileName returns the waypoint file name for a run.
func (w *Writer) FileName(stamp domain.RunStamp) string {
	return w.opts.DocumentName + "_" + stamp.Compact() + ".gpx"
}

// Build assembles the GPX document for a record set.
func (w *Writer) Build(set domain.RecordSet, stamp domain.RunStamp) (*gpxgo.GPX, error) {
	doc := &gpxgo.GPX{
		Version:     "1.1",
		Creator:     creator,
		Name:        w.opts.DocumentName,
		Description: stamp.Canonical(),
	}

	for i, rec := range set {
		name, err := w.names.Name(rec.BoatID)
		if err != nil {
			return nil, fmt.Errorf("waypoint %d: %w", i, err)
		}
		wp := gpxgo.GPXPoint{
			Point: gpxgo.Point{
				Latitude:  rec.Latitude,
				Longitude: rec.Longitude,
			},
			Name:   name,
			Symbol: w.opts.SymbolPrefix + Palette[i%len(Palette)],
		}
		if w.opts.WaypointTime {
			wp.Timestamp = rec.ReportTime.UTC()
		}
		doc.Waypoints = append(doc.Waypoints, wp)
	}
	return doc, nil
}

// Export renders the document and writes it, replacing any previous file.
func (w *Writer) Export(_ context.Context, set domain.RecordSet, stamp domain.RunStamp) (string, error) {
	doc, err := w.Build(set, stamp)
	if err != nil {
		return "", fmt.Errorf("build gpx: %w", err)
	}
	data, err := doc.ToXml(gpxgo.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return "", fmt.Errorf("render gpx: %w", err)
	}

	path := filepath.Join(w.dir, w.FileName(stamp))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write gpx file: %w", err)
	}
	return path, nil
}
