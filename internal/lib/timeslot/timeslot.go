// Package timeslot works with the wall-clock strings bookings are stored as:
// dates are YYYY-MM-DD and times of day are zero-padded 24-hour HH:mm.
//
// Once normalized, two clock strings compare lexically in the same order as
// they do chronologically, which is what storage queries rely on.
package timeslot

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var (
	ErrInvalidDate  = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidClock = errors.New("time must be in HH:mm format")
)

// Interval is a half-open [Start, End) range of normalized clock strings.
type Interval struct {
	Start string
	End   string
}

// Overlaps reports whether the two intervals share any instant.
// Touching endpoints do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Valid reports whether the interval is non-empty.
func (i Interval) Valid() bool {
	return i.Start < i.End
}

func (i Interval) String() string {
	return i.Start + "-" + i.End
}

// NormalizeDate validates a YYYY-MM-DD date and returns it unchanged.
func NormalizeDate(s string) (string, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return d.Format(DateLayout), nil
}

// NormalizeClock accepts H:mm or HH:mm and returns zero-padded HH:mm.
func NormalizeClock(s string) (string, error) {
	t, err := time.Parse(ClockLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	return t.Format(ClockLayout), nil
}

// Instant combines a normalized date and clock into an absolute time in loc.
func Instant(date, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+ClockLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("timeslot.Instant: %w", err)
	}

	return t, nil
}

// FirstOverlap returns the index of the first interval in existing that
// overlaps candidate, or -1.
func FirstOverlap(candidate Interval, existing []Interval) int {
	for i, e := range existing {
		if candidate.Overlaps(e) {
			return i
		}
	}

	return -1
}
