package domain

import "fmt"

// ParseError reports a field that could not be converted. It only ever
// drops the record that owns the field.
type ParseError struct {
	Field string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s %q: %v", e.Field, e.Input, e.Err)
	}
	return fmt.Sprintf("parse %s %q", e.Field, e.Input)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FormatError reports report-time text with no recognisable date.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("no date found in report time %q", e.Input)
}

// LookupError reports a boat name or id missing from a NameIDTable.
type LookupError struct {
	Name string
	ID   int
}

func (e *LookupError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unknown boat name %q", e.Name)
	}
	return fmt.Sprintf("unknown boat id %d", e.ID)
}
