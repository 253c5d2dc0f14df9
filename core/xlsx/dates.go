package xlsx

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order. The list mirrors the formats seen in real
// PRE-EA and CSSM exports: ISO, slashed US/EU with 4- and 2-digit years,
// year-first slashes, and month-name variants with optional timestamps
// (e.g. "2025-Feb-23 00:00:00").
var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"01/02/2006",
	"02/01/2006",
	"01/02/2006 15:04:05",
	"01/02/06",
	"02/01/06",
	"01/02/06 15:04:05",
	"2006/01/02",
	"2006-Jan-02 15:04:05",
	"2006-Jan-02",
	"02-Jan-2006",
	"02-Jan-2006 15:04:05",
	"2006-January-02 15:04:05",
	"2006-January-02",
	"02-January-2006",
	"02-January-2006 15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// excelEpoch is day zero of the 1900 date system. Excel serial 1 is
// 1899-12-31, with the off-by-one for the phantom 1900-02-29 folded in by
// using Dec 30 as the base.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseDate parses a cell value into a calendar date (UTC midnight).
//
// US month-first layouts win over day-first on ambiguous input, matching the
// exports this tool reconciles. Numeric values are treated as Excel date
// serials. Returns false when nothing matches; a failed parse is data to
// classify, not an error.
func ParseDate(val string) (time.Time, bool) {
	s := strings.TrimSpace(val)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	// Excel date serial (days since the 1900 epoch).
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		t := excelEpoch.AddDate(0, 0, int(serial))
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}
