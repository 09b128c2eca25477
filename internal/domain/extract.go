package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Fragment gives access to one competitor row of the ranking page. It hides
// the structural path to each field so markup changes stay in one adapter.
type Fragment interface {
	Name() (string, error)
	Rank() (string, error)
	Position() (lat, lon string, err error)
}

// TextFragment is a Fragment backed by plain strings. Pos holds latitude
// and longitude together and is split with SplitPosition.
type TextFragment struct {
	BoatName string
	RankText string
	Pos      string
}

func (f TextFragment) Name() (string, error) {
	if f.BoatName == "" {
		return "", errMissingField("name")
	}
	return f.BoatName, nil
}

func (f TextFragment) Rank() (string, error) {
	if f.RankText == "" {
		return "", errMissingField("rank")
	}
	return f.RankText, nil
}

func (f TextFragment) Position() (string, string, error) {
	return SplitPosition(f.Pos)
}

// Result is the outcome of extracting a single fragment.
type Result struct {
	Record RaceRecord
	Err    error
}

// ExtractFragment turns one fragment into a record stamped with the run time.
func ExtractFragment(f Fragment, stamp RunStamp) Result {
	name, err := f.Name()
	if err != nil {
		return Result{Err: err}
	}
	rank, err := f.Rank()
	if err != nil {
		return Result{Err: err}
	}
	latText, lonText, err := f.Position()
	if err != nil {
		return Result{Err: err}
	}
	lat, err := ParseAngle(latText)
	if err != nil {
		return Result{Err: fmt.Errorf("latitude: %w", err)}
	}
	lon, err := ParseAngle(lonText)
	if err != nil {
		return Result{Err: fmt.Errorf("longitude: %w", err)}
	}

	return Result{Record: RaceRecord{
		DisplayName: name,
		Rank:        strings.TrimSpace(rank),
		Latitude:    lat,
		Longitude:   lon,
		ReportTime:  stamp.Time,
	}}
}

// Extract runs every fragment through ExtractFragment and partitions the
// results. Successes keep document order; failures become diagnostics.
// An empty RecordSet is a valid outcome.
func Extract(fragments []Fragment, stamp RunStamp) (RecordSet, []Diagnostic) {
	results := make([]Result, len(fragments))
	for i, f := range fragments {
		results[i] = ExtractFragment(f, stamp)
	}
	return Fold(results)
}

// Fold partitions results into a RecordSet and diagnostics, keyed by the
// result's position.
func Fold(results []Result) (RecordSet, []Diagnostic) {
	set := make(RecordSet, 0, len(results))
	var diags []Diagnostic
	for i, r := range results {
		if r.Err != nil {
			diags = append(diags, Diagnostic{Index: i, Reason: diagnosticReason(r.Err), Err: r.Err})
			continue
		}
		set = append(set, r.Record)
	}
	return set, diags
}

// diagnosticReason buckets an error into a short label for logs and metrics.
func diagnosticReason(err error) string {
	var pe *ParseError
	if errors.As(err, &pe) {
		return "parse_" + pe.Field
	}
	var mf *MissingFieldError
	if errors.As(err, &mf) {
		return "missing_" + mf.Field
	}
	return "other"
}

// MissingFieldError reports a fragment without one of its sub-elements.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("fragment has no %s", e.Field)
}

func errMissingField(field string) error {
	return &MissingFieldError{Field: field}
}
