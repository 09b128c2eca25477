// Command validate cross-checks a Scheds CSV and GPX waypoint file written
// by the same scrape run. It verifies the sentinel header, row and waypoint
// counts, boat ids against the roster, display names, coordinates, the
// marker palette cycle, and the shared report time.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -scheds out/Scheds_2011141600.csv \
//	  -gpx out/Vendee_2011141600.gpx \
//	  -roster internal/roster/vendee2020.yaml
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	gpxgo "github.com/tkrajina/gpxgo/gpx"

	"github.com/couchcryptid/race-positions-etl/internal/adapter/gpx"
	"github.com/couchcryptid/race-positions-etl/internal/adapter/scheds"
	"github.com/couchcryptid/race-positions-etl/internal/domain"
	"github.com/couchcryptid/race-positions-etl/internal/roster"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// options carry the exporter settings the pair was written with.
type options struct {
	header       string
	symbolPrefix string
}

func main() {
	schedsPath := flag.String("scheds", "", "path to a Scheds_<stamp>.csv file")
	gpxPath := flag.String("gpx", "", "path to the matching GPX file")
	rosterPath := flag.String("roster", "", "roster YAML (default: embedded roster)")
	header := flag.String("header", scheds.DefaultHeader, "expected sentinel header line")
	prefix := flag.String("symbol-prefix", "", "expected waypoint symbol prefix")
	flag.Parse()

	if *schedsPath == "" || *gpxPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*schedsPath, *gpxPath, *rosterPath, options{header: *header, symbolPrefix: *prefix}); code != 0 {
		os.Exit(code)
	}
}

func run(schedsPath, gpxPath, rosterPath string, opts options) int {
	fmt.Println("=== Race Position Export Validation ===")
	fmt.Println()

	boats, err := roster.Load(rosterPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load roster: %v\n", err)
		return 1
	}

	lines, err := loadScheds(schedsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load scheds: %v\n", err)
		return 1
	}

	doc, err := gpxgo.ParseFile(gpxPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load gpx: %v\n", err)
		return 1
	}

	phases := validate(lines, doc, boats, opts, filepath.Base(schedsPath), filepath.Base(gpxPath))

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d scheds rows, %d waypoints\n", max(len(lines)-1, 0), len(doc.Waypoints))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Data loading ──

// schedsRow is a parsed data row of a scheds file.
type schedsRow struct {
	lineNum int
	id      int
	lat     float64
	lon     float64
	time    string
}

// loadScheds reads every line of a scheds file. The first line is the
// one-field sentinel, the rest are data rows, so field counts vary.
func loadScheds(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	lines, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}
	return lines, nil
}

func validate(lines [][]string, doc *gpxgo.GPX, boats *roster.Roster, opts options, schedsName, gpxName string) []*phase {
	format, rows := validateSchedsFormat(lines, opts.header)
	return []*phase{
		format,
		validateIdentity(rows, boats),
		validateGPXDocument(rows, doc, schedsName, gpxName),
		validateCrossSource(rows, doc, boats, opts.symbolPrefix),
	}
}

// ── Phase 1: Scheds Format ──
// Validates the sentinel header, column shape, and the shared report time.

func validateSchedsFormat(lines [][]string, header string) (*phase, []schedsRow) {
	p := &phase{name: "Phase 1: Scheds Format (CSV)"}

	if len(lines[0]) != 1 || lines[0][0] != header {
		p.errorf("line 1: expected sentinel %q, got %q", header, strings.Join(lines[0], ","))
	}

	rows := make([]schedsRow, 0, len(lines)-1)
	for i, fields := range lines[1:] {
		lineNum := i + 2
		if len(fields) != 4 {
			p.errorf("line %d: expected 4 fields, got %d", lineNum, len(fields))
			continue
		}
		row := schedsRow{lineNum: lineNum, time: fields[3]}
		var err error
		if row.id, err = strconv.Atoi(fields[0]); err != nil {
			p.errorf("line %d: boat id %q is not an integer", lineNum, fields[0])
			continue
		}
		if row.lat, err = strconv.ParseFloat(fields[1], 64); err != nil {
			p.errorf("line %d: latitude %q: %v", lineNum, fields[1], err)
			continue
		}
		if row.lon, err = strconv.ParseFloat(fields[2], 64); err != nil {
			p.errorf("line %d: longitude %q: %v", lineNum, fields[2], err)
			continue
		}
		if _, err := time.Parse(domain.CanonicalLayout, row.time); err != nil {
			p.errorf("line %d: report time %q is not canonical", lineNum, row.time)
			continue
		}
		if len(rows) > 0 && rows[0].time != row.time {
			p.errorf("line %d: report time %q differs from %q", lineNum, row.time, rows[0].time)
		}
		rows = append(rows, row)
	}
	return p, rows
}

// ── Phase 2: Identity ──
// Validates that every boat id is known to both roster tables.

func validateIdentity(rows []schedsRow, boats *roster.Roster) *phase {
	p := &phase{name: "Phase 2: Identity (roster ids)"}

	seen := map[int]int{}
	for _, row := range rows {
		if !boats.Source.HasID(row.id) {
			p.errorf("line %d: boat id %d not in roster", row.lineNum, row.id)
		}
		if !boats.ASCII.HasID(row.id) {
			p.errorf("line %d: boat id %d has no ASCII alias", row.lineNum, row.id)
		}
		if prev, ok := seen[row.id]; ok {
			p.errorf("line %d: boat id %d already listed on line %d", row.lineNum, row.id, prev)
		}
		seen[row.id] = row.lineNum
	}
	return p
}

// ── Phase 3: GPX Document ──
// Validates waypoint count, description, and the file stamp shared by both names.

func validateGPXDocument(rows []schedsRow, doc *gpxgo.GPX, schedsName, gpxName string) *phase {
	p := &phase{name: "Phase 3: GPX Document (metadata)"}

	if len(doc.Waypoints) != len(rows) {
		p.errorf("waypoint count: expected %d, got %d", len(rows), len(doc.Waypoints))
	}

	if len(rows) > 0 && doc.Description != rows[0].time {
		p.errorf("description: expected %q, got %q", rows[0].time, doc.Description)
	}

	schedsStamp := strings.TrimSuffix(strings.TrimPrefix(schedsName, "Scheds_"), ".csv")
	gpxStamp := strings.TrimSuffix(gpxName, ".gpx")
	if i := strings.LastIndex(gpxStamp, "_"); i >= 0 {
		gpxStamp = gpxStamp[i+1:]
	}
	if schedsStamp != gpxStamp {
		p.errorf("file stamps differ: %s vs %s", schedsName, gpxName)
	}
	if len(rows) > 0 {
		t, err := time.Parse(domain.CanonicalLayout, rows[0].time)
		if err == nil && (domain.RunStamp{Time: t}).Compact() != schedsStamp {
			p.errorf("file stamp %q does not match report time %q", schedsStamp, rows[0].time)
		}
	}
	return p
}

// ── Phase 4: Cross-Source ──
// Validates each waypoint against the scheds row at the same position.

func validateCrossSource(rows []schedsRow, doc *gpxgo.GPX, boats *roster.Roster, symbolPrefix string) *phase {
	p := &phase{name: "Phase 4: Cross-Source (CSV vs GPX)"}

	for i, row := range rows {
		if i >= len(doc.Waypoints) {
			break
		}
		wpt := doc.Waypoints[i]

		if name, err := boats.ASCII.Name(row.id); err == nil && wpt.Name != name {
			p.errorf("waypoint %d: name %q, roster alias for id %d is %q", i, wpt.Name, row.id, name)
		}
		if wpt.Latitude != row.lat || wpt.Longitude != row.lon {
			p.errorf("waypoint %d: position (%v, %v), scheds line %d has (%v, %v)",
				i, wpt.Latitude, wpt.Longitude, row.lineNum, row.lat, row.lon)
		}
		if want := symbolPrefix + gpx.Palette[i%len(gpx.Palette)]; wpt.Symbol != want {
			p.errorf("waypoint %d: symbol %q, expected %q", i, wpt.Symbol, want)
		}
		if !wpt.Timestamp.IsZero() && wpt.Timestamp.UTC().Format(domain.CanonicalLayout) != row.time {
			p.errorf("waypoint %d: time %s, scheds line %d has %s",
				i, wpt.Timestamp.UTC().Format(domain.CanonicalLayout), row.lineNum, row.time)
		}
	}
	return p
}
