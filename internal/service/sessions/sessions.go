package sessions

import (
	"sort"
	"time"
)

// Window is one named market session in UTC wall-clock hours. Windows may
// wrap midnight (Open > Close), e.g. sydney 21:00-06:00.
type Window struct {
	Name  string
	Open  int // opening hour, inclusive
	Close int // closing hour, exclusive
	Days  []time.Weekday
}

// Table is the injected read-only session calendar. The engine never reads
// it; the assembler's Context is filled from here so analyses stay testable
// with fixed clocks.
type Table struct {
	windows []Window
}

// DefaultWindows covers the four classic FX sessions, Monday through Friday.
func DefaultWindows() []Window {
	weekdays := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	return []Window{
		{Name: "sydney", Open: 21, Close: 6, Days: weekdays},
		{Name: "tokyo", Open: 0, Close: 9, Days: weekdays},
		{Name: "london", Open: 8, Close: 17, Days: weekdays},
		{Name: "newyork", Open: 13, Close: 22, Days: weekdays},
	}
}

// NewTable builds a session table. Nil windows fall back to the defaults.
func NewTable(windows []Window) *Table {
	if windows == nil {
		windows = DefaultWindows()
	}
	return &Table{windows: windows}
}

// Active returns the names of the sessions containing t (UTC), sorted.
func (t *Table) Active(at time.Time) []string {
	at = at.UTC()
	hour := at.Hour()
	day := at.Weekday()

	var names []string
	for _, w := range t.windows {
		if !w.onDay(day, hour) {
			continue
		}
		if w.contains(hour) {
			names = append(names, w.Name)
		}
	}
	sort.Strings(names)
	return names
}

// IsOpen reports whether any session is active at t.
func (t *Table) IsOpen(at time.Time) bool {
	return len(t.Active(at)) > 0
}

func (w Window) contains(hour int) bool {
	if w.Open <= w.Close {
		return hour >= w.Open && hour < w.Close
	}
	// wraps midnight
	return hour >= w.Open || hour < w.Close
}

// onDay checks the weekday, attributing the pre-midnight part of a wrapped
// window to its opening day.
func (w Window) onDay(day time.Weekday, hour int) bool {
	effective := day
	if w.Open > w.Close && hour < w.Close {
		// early-morning tail of a window opened yesterday
		effective = (day + 6) % 7
	}
	for _, d := range w.Days {
		if d == effective {
			return true
		}
	}
	return false
}
