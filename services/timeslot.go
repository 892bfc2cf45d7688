package services

import (
	"fmt"
	"strconv"
	"time"
)

// Window brackets a delivery slot.
type Window struct {
	Start time.Time
	End   time.Time
}

// At returns the window for a single delivery slot. Start and End are the
// same instant: orders are matched with delivery_time >= t AND <= t, which
// collapses to exact equality. The upstream contract almost certainly meant a
// half-open slot here (e.g. a 30-minute window), but consumers of the legacy
// API depend on the literal behaviour, so it is reproduced as-is. Widening
// the window needs a coordinated change with those consumers.
func At(t time.Time) Window {
	return Window{Start: t, End: t}
}

// Contains reports whether t falls inside the window, bounds inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ParseTimestamp accepts RFC3339 or unix seconds.
func ParseTimestamp(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
	}
	return t, nil
}
