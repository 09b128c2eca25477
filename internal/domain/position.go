package domain

import (
	"errors"
	"regexp"
	"strings"
)

// positionRe splits a combined position at the first hemisphere letter:
// everything up to it is latitude, the remainder is longitude.
var positionRe = regexp.MustCompile(`^\s*(\d[^\p{L}]*\p{L})\s*(\S.*?)\s*$`)

var errPositionShape = errors.New("want latitude followed by longitude")

// SplitPosition splits text like `48°23'12" N 004°47'18" W` into its
// latitude and longitude parts without validating either.
func SplitPosition(text string) (lat, lon string, err error) {
	m := positionRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", &ParseError{Field: "position", Input: text, Err: errPositionShape}
	}
	return strings.TrimSpace(m[1]), m[2], nil
}
