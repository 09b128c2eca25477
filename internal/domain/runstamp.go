package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// CanonicalLayout is the report-time rendering used inside output files.
	CanonicalLayout = "2006-01-02 15:04:05"
	// CompactLayout renders yy mm dd HH MM for output file names.
	CompactLayout = "0601021504"
)

// RunStamp is the report time shared by every record of one run.
type RunStamp struct {
	Time time.Time
}

// Canonical renders the stamp as "2006-01-02 15:04:05".
func (s RunStamp) Canonical() string { return s.Time.Format(CanonicalLayout) }

// Compact renders the stamp as ten digits, e.g. "2011141600".
func (s RunStamp) Compact() string { return s.Time.Format(CompactLayout) }

var (
	// hourMarkerRe blanks the "h" of "16h00" and any parentheses.
	hourMarkerRe = regexp.MustCompile(`[h()]+`)

	numericDateRe    = regexp.MustCompile(`\b(\d{1,4})[/.-](\d{1,2})[/.-](\d{2,4})\b`)
	dayMonthYearRe   = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th|t)?\s+(\p{L}{3,})\.?,?\s+(\d{4})\b`)
	monthDayYearRe   = regexp.MustCompile(`\b(\p{L}{3,})\.?\s+(\d{1,2})(?:st|nd|rd|th|t)?,?\s+(\d{4})\b`)
	clockTimeRe      = regexp.MustCompile(`\b([01]?\d|2[0-3])(?:\s+|:)([0-5]\d)(?::([0-5]\d))?\b`)
	monthNameIndexes = []struct {
		name  string
		month time.Month
	}{
		{"january", time.January}, {"february", time.February}, {"march", time.March},
		{"april", time.April}, {"may", time.May}, {"june", time.June},
		{"july", time.July}, {"august", time.August}, {"september", time.September},
		{"october", time.October}, {"november", time.November}, {"december", time.December},
		{"janvier", time.January}, {"février", time.February}, {"fevrier", time.February},
		{"mars", time.March}, {"avril", time.April}, {"mai", time.May},
		{"juin", time.June}, {"juillet", time.July}, {"août", time.August},
		{"aout", time.August}, {"septembre", time.September}, {"octobre", time.October},
		{"novembre", time.November}, {"décembre", time.December}, {"decembre", time.December},
	}
)

// ParseRunStamp finds the report date and time in free text such as
// "Ranking of 14/11/2020 at 16h00 (UTC)". Surrounding words are ignored and
// the time is taken as UTC; a missing time means midnight. Text without a
// recognisable date yields a *FormatError.
func ParseRunStamp(text string) (RunStamp, error) {
	cleaned := hourMarkerRe.ReplaceAllString(text, " ")

	year, month, day, rest, ok := findDate(cleaned)
	if !ok {
		return RunStamp{}, &FormatError{Input: text}
	}

	hour, minute, second := findClockTime(rest)
	t := time.Date(year, month, day, hour, minute, second, 0, time.UTC)
	return RunStamp{Time: t}, nil
}

// findDate returns the first valid date and the text with that date removed.
func findDate(s string) (year int, month time.Month, day int, rest string, ok bool) {
	type candidate struct {
		loc       []int
		year, day int
		month     time.Month
	}
	var best *candidate

	consider := func(loc []int, y int, m time.Month, d int) {
		if !validDate(y, m, d) {
			return
		}
		if best == nil || loc[0] < best.loc[0] {
			best = &candidate{loc: loc, year: y, month: m, day: d}
		}
	}

	for _, m := range numericDateRe.FindAllStringSubmatchIndex(s, -1) {
		a, b, c := atoi(s[m[2]:m[3]]), atoi(s[m[4]:m[5]]), atoi(s[m[6]:m[7]])
		if m[3]-m[2] == 4 {
			consider(m, a, time.Month(b), c)
			continue
		}
		y := expandYear(c, m[7]-m[6])
		if a > 12 {
			consider(m, y, time.Month(b), a)
		} else {
			consider(m, y, time.Month(a), b)
		}
	}
	for _, m := range dayMonthYearRe.FindAllStringSubmatchIndex(s, -1) {
		if mon, found := monthFromName(s[m[4]:m[5]]); found {
			consider(m, atoi(s[m[6]:m[7]]), mon, atoi(s[m[2]:m[3]]))
		}
	}
	for _, m := range monthDayYearRe.FindAllStringSubmatchIndex(s, -1) {
		if mon, found := monthFromName(s[m[2]:m[3]]); found {
			consider(m, atoi(s[m[6]:m[7]]), mon, atoi(s[m[4]:m[5]]))
		}
	}

	if best == nil {
		return 0, 0, 0, s, false
	}
	rest = s[:best.loc[0]] + " " + s[best.loc[1]:]
	return best.year, best.month, best.day, rest, true
}

// findClockTime returns the first HH MM[:SS] in s, or midnight.
func findClockTime(s string) (hour, minute, second int) {
	m := clockTimeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, 0
	}
	hour, minute = atoi(m[1]), atoi(m[2])
	if m[3] != "" {
		second = atoi(m[3])
	}
	return hour, minute, second
}

// monthFromName accepts full names and unambiguous prefixes of at least
// three letters, in English or French. The hour-marker blanking turns
// "March" into "Marc", which still resolves.
func monthFromName(word string) (time.Month, bool) {
	word = strings.ToLower(word)
	var found time.Month
	for _, mn := range monthNameIndexes {
		if !strings.HasPrefix(mn.name, word) {
			continue
		}
		if found != 0 && found != mn.month {
			return 0, false
		}
		found = mn.month
	}
	return found, found != 0
}

func validDate(y int, m time.Month, d int) bool {
	if m < time.January || m > time.December || d < 1 || y < 1 {
		return false
	}
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return t.Year() == y && t.Month() == m && t.Day() == d
}

func expandYear(y, digits int) int {
	if digits == 2 {
		return 2000 + y
	}
	return y
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
