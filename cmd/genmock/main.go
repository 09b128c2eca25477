// Command genmock writes a synthetic ranking page built from the roster, for
// offline runs (RACE_SOURCE_FILE) and parser fixtures. Positions are
// deterministic, so two runs with the same flags produce identical markup.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -out data/mock/ranking.html \
//	  -at "14/11/2020 16h00" \
//	  -retired 3,14
package main

import (
	"flag"
	"fmt"
	"html/template"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/race-positions-etl/internal/domain"
	"github.com/couchcryptid/race-positions-etl/internal/roster"
)

var page = template.Must(template.New("ranking").Parse(`<!doctype html>
<html><body>
<p class="rankings__subtitle">Ranking of {{.At}} (UTC)</p>
<table>
{{- range .Rows}}
<tr class="ranking-row rankings__item">
  <td class="row-number m--firstline">{{.Rank}}</td>
  <td class="row-skipper"><div>{{.Name}}</div></td>
  <td class="row-layout row-gps">{{if .Retired}}RET{{else}}{{.Lat}}<span>{{.Lon}}</span>{{end}}</td>
</tr>
{{- end}}
</table>
</body></html>
`))

type row struct {
	Rank    int
	Name    string
	Lat     string
	Lon     string
	Retired bool
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "ranking.html", "output HTML path")
	at := flag.String("at", "14/11/2020 16h00", "report time text")
	rosterPath := flag.String("roster", "", "roster YAML (default: embedded roster)")
	retired := flag.String("retired", "", "comma-separated boat ids rendered without a position")
	flag.Parse()

	if _, err := domain.ParseRunStamp(*at); err != nil {
		return fmt.Errorf("report time: %w", err)
	}

	boats, err := roster.Load(*rosterPath)
	if err != nil {
		return err
	}

	skip, err := parseIDs(*retired)
	if err != nil {
		return err
	}

	rows, err := buildRows(boats, skip)
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := page.Execute(f, struct {
		At   string
		Rows []row
	}{At: *at, Rows: rows}); err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	fmt.Printf("Wrote %d rows to %s\n", len(rows), *out)
	return nil
}

// buildRows places boat id at a fixed point along a south-westward track.
func buildRows(boats *roster.Roster, retired map[int]bool) ([]row, error) {
	rows := make([]row, 0, boats.Source.Len())
	for id := 1; len(rows) < boats.Source.Len(); id++ {
		name, err := boats.Source.Name(id)
		if err != nil {
			continue
		}
		lat := 46.5 - 1.75*float64(id)
		lon := -2.0 - 0.9*float64(id)
		rows = append(rows, row{
			Rank:    id,
			Name:    name,
			Lat:     formatDMS(lat, "N", "S"),
			Lon:     formatDMS(lon, "E", "W"),
			Retired: retired[id],
		})
	}
	return rows, nil
}

func formatDMS(v float64, pos, neg string) string {
	hemi := pos
	if v < 0 {
		hemi, v = neg, -v
	}
	total := int(math.Round(v * 3600))
	return fmt.Sprintf(`%02d°%02d'%02d" %s`, total/3600, total/60%60, total%60, hemi)
}

func parseIDs(s string) (map[int]bool, error) {
	ids := map[int]bool{}
	if s == "" {
		return ids, nil
	}
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("retired id %q: %w", part, err)
		}
		ids[id] = true
	}
	return ids, nil
}
