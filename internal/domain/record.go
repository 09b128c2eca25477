package domain

import "time"

// RaceRecord is one competitor's validated position report for a run.
type RaceRecord struct {
	DisplayName string    `json:"display_name"`
	BoatID      int       `json:"boat_id"`
	Rank        string    `json:"rank"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	ReportTime  time.Time `json:"report_time"`
}

// RecordSet holds the records of a run in document order. Order drives the
// waypoint marker colours, so it must never be re-sorted.
type RecordSet []RaceRecord

// Page is what a ranking page parser hands to the extractor.
type Page struct {
	ReportTimeText string
	Fragments      []Fragment
}

// Diagnostic describes a fragment that was dropped during extraction.
type Diagnostic struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}
