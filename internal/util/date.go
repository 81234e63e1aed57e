package util

import (
	"strconv"
	"strings"
	"time"
)

// Layouts seen in the wild for procurement spreadsheets. Month-first
// for the slash forms, matching the source data convention.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"01-02-06",
	"1/2/06",
	"02.01.2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// Excel serial day 0 is 1899-12-30 (the 1900 leap-year bug included).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseDate permissively parses a spreadsheet cell into a date.
// Unparseable input yields nil, never an error. Bare numbers in a
// plausible range are treated as Excel serial dates.
func ParseDate(input string) *time.Time {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return &parsed
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 10000 && serial < 80000 {
		parsed := excelEpoch.Add(time.Duration(serial * float64(24*time.Hour)))
		return &parsed
	}

	return nil
}
