package domain

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// angleNoiseRe matches everything that is not a letter, digit or whitespace:
// degree signs, primes, quotes, dots and commas.
var angleNoiseRe = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)

var errAngleTokens = errors.New("want degrees, minutes, seconds and hemisphere")

// ParseAngle converts degrees/minutes/seconds text such as `48°23'12" N` to
// signed decimal degrees rounded to 4 places.
//
// S, W and O negate the result. Unrecognised hemisphere tokens are not an
// error and leave the value positive.
func ParseAngle(text string) (float64, error) {
	tokens := strings.Fields(angleNoiseRe.ReplaceAllString(text, " "))
	if len(tokens) != 4 {
		return 0, &ParseError{Field: "angle", Input: text, Err: errAngleTokens}
	}

	parts := [3]float64{}
	for i, tok := range tokens[:3] {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return 0, &ParseError{Field: "angle", Input: text, Err: err}
		}
		parts[i] = v
	}

	value := parts[0] + parts[1]/60 + parts[2]/3600
	value *= hemisphereSign(tokens[3])
	return round4(value), nil
}

// hemisphereSign is case-sensitive. O is the French "Ouest".
func hemisphereSign(h string) float64 {
	switch h {
	case "S", "W", "O":
		return -1
	default:
		return 1
	}
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
