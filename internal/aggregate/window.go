// Package aggregate turns the entry collection into the derived series the
// trend charts consume. Every transform is a pure function of its inputs:
// the caller supplies the entries, the window, and the reference time, and
// the same inputs always produce the same output. Nothing is cached; the
// transforms are cheap enough to re-run on every change.
package aggregate

import (
	"fmt"
	"time"
)

// Window selects the time range over which entries are aggregated: the
// last N calendar days, or everything.
type Window struct {
	days int
}

// LastDays returns a window covering the last n days, counted back from
// the reference time passed to each transform.
func LastDays(n int) Window {
	return Window{days: n}
}

// AllTime returns the unbounded window.
func AllTime() Window {
	return Window{}
}

// Bounded reports whether the window has a day limit.
func (w Window) Bounded() bool {
	return w.days > 0
}

// Days returns the day count of a bounded window, 0 for all time.
func (w Window) Days() int {
	return w.days
}

// Contains reports whether a timestamp falls inside the window relative
// to now. The boundary is inclusive: an entry stamped exactly N*24h ago
// is inside the N-day window.
func (w Window) Contains(ts, now time.Time) bool {
	if !w.Bounded() {
		return true
	}
	cutoff := now.Add(-time.Duration(w.days) * 24 * time.Hour)
	return !ts.Before(cutoff)
}

func (w Window) String() string {
	if !w.Bounded() {
		return "all time"
	}
	if w.days == 1 {
		return "last day"
	}
	return fmt.Sprintf("last %d days", w.days)
}
