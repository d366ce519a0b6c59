package utils

import (
	"fmt"
	"time"

	// CTA timestamps are local to Chicago; ship the zone database so parsing
	// works on hosts without /usr/share/zoneinfo.
	_ "time/tzdata"
)

// TrainTrackerLayout is the layout of ctatt.tmst and the per-record prdt/arrT fields.
const TrainTrackerLayout = "2006-01-02T15:04:05"

// DefaultTimezone is the zone Train Tracker timestamps are expressed in.
const DefaultTimezone = "America/Chicago"

// NoQueryTime marks a client that has not completed a successful query.
const NoQueryTime float64 = -1

// LoadTimezone resolves a zone name, falling back to DefaultTimezone when empty.
func LoadTimezone(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// ParseQueryTimestamp parses a Train Tracker timestamp in loc and returns
// Unix epoch seconds.
func ParseQueryTimestamp(tmst string, loc *time.Location) (float64, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(TrainTrackerLayout, tmst, loc)
	if err != nil {
		return NoQueryTime, fmt.Errorf("parse timestamp %q: %w", tmst, err)
	}
	return EpochSeconds(t), nil
}

// EpochSeconds converts t to fractional Unix seconds.
func EpochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// TimeFromEpochSeconds is the inverse of EpochSeconds.
func TimeFromEpochSeconds(sec float64) time.Time {
	return time.Unix(0, int64(sec*float64(time.Second))).UTC()
}
