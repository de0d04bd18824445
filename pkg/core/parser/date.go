package parser

import (
	"regexp"
	"strconv"
	"time"
)

var (
	// D.M[.YYYY] or D/M[/YY], optionally followed by a parenthetical weekday
	// note like "06.12(сб)" which is consumed so place extraction can strip it
	dateDottedRE = regexp.MustCompile(`(\d{1,2})[./](\d{1,2})(?:[./](\d{2,4}))?(?:\s*\([^)]*\))?`)
	dateISORE    = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)
)

// extractDate finds the first dotted/slashed date in the text, falling back to
// ISO form. A malformed numeric group (day 32, month 13) yields nil rather
// than an error.
func extractDate(text string, now time.Time) *time.Time {
	if m := dateDottedRE.FindStringSubmatch(text); m != nil {
		return buildDate(m[1], m[2], m[3], now)
	}
	if m := dateISORE.FindStringSubmatch(text); m != nil {
		return buildDate(m[3], m[2], m[1], now)
	}
	return nil
}

// buildDate assembles a calendar date. A missing year defaults to the current
// one; if that puts the date more than one day in the past, it rolls forward a
// year (the schedule recurs annually, so "11.12" typed in late December means
// next year's occurrence).
func buildDate(dayStr, monthStr, yearStr string, now time.Time) *time.Time {
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return nil
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return nil
	}

	var year int
	if yearStr != "" {
		year, err = strconv.Atoi(yearStr)
		if err != nil {
			return nil
		}
		if year < 100 {
			year += 2000
		}
	} else {
		year = now.Year()
		if !validDate(year, month, day) {
			return nil
		}
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		candidate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if candidate.Before(today.AddDate(0, 0, -1)) {
			year++
		}
	}

	if !validDate(year, month, day) {
		return nil
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &date
}

func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	// day zero of the next month is the last day of this one
	return day <= time.Date(year, time.Month(month+1), 0, 0, 0, 0, 0, time.UTC).Day()
}
