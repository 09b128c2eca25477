// Package scheds writes the Expedition "scheds" race-tracking feed.
package scheds

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/race-positions-etl/internal/domain"
)

// DefaultHeader is the sentinel line Expedition expects first.
const DefaultHeader = "EXPEDITION"

// Writer implements pipeline.Exporter for the scheds CSV.
type Writer struct {
	dir    string
	header string
}

// NewWriter creates a scheds writer targeting dir. An empty header falls
// back to DefaultHeader.
func NewWriter(dir, header string) *Writer {
	if header == "" {
		header = DefaultHeader
	}
	return &Writer{dir: dir, header: header}
}

// Name identifies the exporter in logs and metrics.
func (w *Writer) Name() string { return "scheds" }

// FileName returns the scheds file name for a run.
func FileName(stamp domain.RunStamp) string {
	return "Scheds_" + stamp.Compact() + ".csv"
}

// Export writes the sentinel header then one `id,lat,lon,time` row per
// record. Rows are built before the file is opened so bad input never
// leaves a file behind; a failed write can still leave a truncated one.
func (w *Writer) Export(_ context.Context, set domain.RecordSet, stamp domain.RunStamp) (string, error) {
	if !isASCII(w.header) {
		return "", fmt.Errorf("scheds header %q is not ASCII", w.header)
	}
	rows := make([][]string, 0, len(set)+1)
	rows = append(rows, []string{w.header})
	for i, rec := range set {
		row := FormatRow(rec)
		for _, field := range row {
			if !isASCII(field) {
				return "", fmt.Errorf("scheds row %d: non-ASCII field %q", i, field)
			}
		}
		rows = append(rows, row)
	}

	path := filepath.Join(w.dir, FileName(stamp))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create scheds file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(rows); err != nil {
		return "", fmt.Errorf("write scheds file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close scheds file: %w", err)
	}
	return path, nil
}

// FormatRow renders a record as scheds fields.
func FormatRow(rec domain.RaceRecord) []string {
	return []string{
		strconv.Itoa(rec.BoatID),
		strconv.FormatFloat(rec.Latitude, 'f', -1, 64),
		strconv.FormatFloat(rec.Longitude, 'f', -1, 64),
		rec.ReportTime.UTC().Format(domain.CanonicalLayout),
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return false
		}
	}
	return true
}
