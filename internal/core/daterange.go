package core

import (
	"fmt"
	"strings"
	"time"
)

// DateRange is an optional inclusive window. A zero bound is unbounded.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Bounded reports whether either side of the window is set.
func (r DateRange) Bounded() bool {
	return !r.From.IsZero() || !r.To.IsZero()
}

// Contains reports whether t falls inside the window, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

// ParseDateRange builds a DateRange from caller-supplied bounds. Blank
// strings leave that side unbounded. An upper bound given without a time
// of day covers that whole day.
func ParseDateRange(from, to string) (DateRange, error) {
	var r DateRange

	if strings.TrimSpace(from) != "" {
		t, ok := ParseDate(from)
		if !ok {
			return DateRange{}, fmt.Errorf("%w: data_inicial %q", ErrInvalidDate, from)
		}
		r.From = t
	}

	if strings.TrimSpace(to) != "" {
		t, ok := ParseDate(to)
		if !ok {
			return DateRange{}, fmt.Errorf("%w: data_final %q", ErrInvalidDate, to)
		}
		if isDateOnly(to, t) {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		r.To = t
	}

	if !r.From.IsZero() && !r.To.IsZero() && r.From.After(r.To) {
		return DateRange{}, fmt.Errorf("%w: %s is after %s",
			ErrInvalidDateRange, r.From.Format(time.DateTime), r.To.Format(time.DateTime))
	}
	return r, nil
}

func isDateOnly(raw string, t time.Time) bool {
	return !strings.Contains(raw, ":") &&
		t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}
