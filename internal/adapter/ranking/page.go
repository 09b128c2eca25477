// Package ranking parses the race organiser's ranking page into domain
// fragments. All knowledge of the page structure lives here.
package ranking

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/couchcryptid/race-positions-etl/internal/domain"
)

// Structural path to each field on the ranking page.
const (
	SelectReportTime = "p.rankings__subtitle"
	SelectRow        = "tr.ranking-row.rankings__item"
	SelectName       = "td.row-skipper div"
	SelectRank       = "td.row-number.m--firstline"
	SelectPosition   = "td.row-layout.row-gps"
	SelectLongitude  = "span"
)

// Parser implements pipeline.PageParser with goquery.
type Parser struct{}

// NewParser returns a ranking page parser.
func NewParser() *Parser { return &Parser{} }

// Parse locates the report-time subtitle and every competitor row. A page
// without a subtitle yields empty report-time text, which the run stamp
// parser rejects.
func (p *Parser) Parse(markup string) (domain.Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return domain.Page{}, fmt.Errorf("parse ranking page: %w", err)
	}

	page := domain.Page{
		ReportTimeText: doc.Find(SelectReportTime).First().Text(),
	}
	doc.Find(SelectRow).Each(func(_ int, row *goquery.Selection) {
		page.Fragments = append(page.Fragments, Row{sel: row})
	})
	return page, nil
}

// Row is one competitor row. It implements domain.Fragment.
type Row struct {
	sel *goquery.Selection
}

// Name returns the text of the first div in the skipper cell, untrimmed.
func (r Row) Name() (string, error) {
	name := r.sel.Find(SelectName).First()
	if name.Length() == 0 {
		return "", &domain.MissingFieldError{Field: "name"}
	}
	return name.Text(), nil
}

// Rank returns the trimmed text of the rank cell.
func (r Row) Rank() (string, error) {
	rank := r.sel.Find(SelectRank).First()
	if rank.Length() == 0 {
		return "", &domain.MissingFieldError{Field: "rank"}
	}
	return strings.TrimSpace(rank.Text()), nil
}

// Position returns the latitude text (the cell minus its first span) and the
// longitude text (that span).
func (r Row) Position() (string, string, error) {
	cell := r.sel.Find(SelectPosition).First()
	if cell.Length() == 0 {
		return "", "", &domain.MissingFieldError{Field: "position"}
	}
	lonSel := cell.Find(SelectLongitude).First()
	if lonSel.Length() == 0 {
		return "", "", &domain.MissingFieldError{Field: "longitude"}
	}
	lon := lonSel.Text()

	// Work on a copy so the document stays intact for repeated calls.
	latCell := cell.Clone()
	latCell.Find(SelectLongitude).First().Remove()
	return latCell.Text(), lon, nil
}
