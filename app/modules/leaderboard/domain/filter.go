package leaderboarddomain

import (
	"time"

	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

// TimeWindow narrows a leaderboard query to recent races.
type TimeWindow string

const (
	WindowWeek   TimeWindow = "week"
	WindowMonth  TimeWindow = "month"
	WindowSeason TimeWindow = "season"
	WindowAll    TimeWindow = "all"
)

// SeriesFilter narrows a query to one race series.
type SeriesFilter string

const (
	SeriesFilterSX  SeriesFilter = "SX"
	SeriesFilterMX  SeriesFilter = "MX"
	SeriesFilterAll SeriesFilter = "all"
)

// Filter is the time and series narrowing applied to score records. Window
// bounds are resolved against the caller's clock, never the wall clock.
type Filter struct {
	Window TimeWindow
	Series SeriesFilter
}

// windowStart resolves the window's inclusive start. ok is false for the
// all-time window. Week and month are rolling; season starts at January 1st
// of the current year, which covers both the SX and MX calendars.
func (f Filter) windowStart(now time.Time) (start time.Time, ok bool) {
	switch f.Window {
	case WindowWeek:
		return now.AddDate(0, 0, -7), true
	case WindowMonth:
		return now.AddDate(0, -1, 0), true
	case WindowSeason:
		return time.Date(now.UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC), true
	default:
		return time.Time{}, false
	}
}

// Matches reports whether a race falls inside the filter.
func (f Filter) Matches(series sharedtypes.Series, raceDate, now time.Time) bool {
	switch f.Series {
	case SeriesFilterSX:
		if series != sharedtypes.SeriesSX {
			return false
		}
	case SeriesFilterMX:
		if series != sharedtypes.SeriesMX {
			return false
		}
	}

	if start, ok := f.windowStart(now); ok {
		if raceDate.Before(start) || raceDate.After(now) {
			return false
		}
	}
	return true
}
