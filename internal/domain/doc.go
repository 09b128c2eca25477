// Package domain models ocean-race position reports scraped from a ranking page.
//
// # Data Source
//
// The race organiser publishes a ranking page listing every competitor with
// its fleet position and last reported coordinates. The page also carries a
// subtitle with the time of the position report, e.g.
//
//	"Ranking of 14/11/2020 at 16h00 (UTC)"
//
// Each competitor row exposes three fields that this package consumes through
// the [Fragment] accessor: the boat name, the rank and a position cell holding
// latitude and longitude text.
//
// # Coordinate Format
//
// Coordinates are degrees, minutes, seconds and a hemisphere letter, with
// arbitrary punctuation between the parts:
//
//	"48°23'12\" N"   →  48.3867
//	"004°47'18\" W"  →  -4.7883
//
// Punctuation is collapsed to spaces before splitting, so decimal seconds are
// not supported ("12.5" splits into two tokens and the field is rejected).
// Hemisphere letters S, W and the French O ("Ouest") negate the value. Any
// other letter, including lowercase, yields a positive value. See [ParseAngle].
//
// # Report Time
//
// The subtitle is free text. The "h" hour marker and parentheses are blanked
// out, then the first date and time found are taken as UTC. See
// [ParseRunStamp]. The resulting [RunStamp] names both output files:
//
//	Canonical: "2020-11-14 16:00:00"
//	Compact:   "2011141600" (yy mm dd HH MM)
//
// # Boat Identity
//
// Downstream tools key boats by small integers. A [NameIDTable] maps the
// scraped name to that id. Two variants exist for the same ids: the exact
// source names (with diacritics and trailing spaces as published) and ASCII
// aliases for sinks that cannot carry them.
//
// # Failure Policy
//
//	ParseError   one fragment is dropped, the run continues
//	FormatError  no report time, the run aborts
//	LookupError  unknown boat name or id, the run aborts before any output
package domain
