// AngelaMos | 2026
// streak.go

package garden

import (
	"time"
)

const dateLayout = "2006-01-02"

type DayState string

const (
	// DayDone means the habit was completed on that date.
	DayDone DayState = "done"
	// DayPending is a past or present date with no completion recorded.
	DayPending DayState = "pending"
	// DayLocked is a future date; it can never be marked.
	DayLocked DayState = "locked"
)

type Day struct {
	Date  string   `json:"date"`
	State DayState `json:"state"`
}

// DateKey formats a time as a history key in the time's own location.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate parses a history key. The zero time and an error come back for
// anything that is not a calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthDays renders one calendar month of a habit's history relative to
// today. Days after today are locked regardless of history content.
func MonthDays(year int, month time.Month, history map[string]bool, today time.Time) []Day {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	cutoff := dayOf(today)

	var days []Day
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		key := DateKey(d)
		state := DayPending
		switch {
		case d.After(cutoff):
			state = DayLocked
		case history[key]:
			state = DayDone
		}
		days = append(days, Day{Date: key, State: state})
	}
	return days
}

// CurrentStreak counts consecutive completed days ending today. A streak is
// still alive if today is not yet marked but yesterday is, so the count
// anchors on whichever of the two is completed.
func CurrentStreak(history map[string]bool, today time.Time) int {
	day := dayOf(today)
	if !history[DateKey(day)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for history[DateKey(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// BestStreak is the longest run of consecutive completed days anywhere in
// the history.
func BestStreak(history map[string]bool) int {
	best := 0
	for key, done := range history {
		if !done {
			continue
		}
		day, err := ParseDate(key)
		if err != nil {
			continue
		}
		// Only count runs from their first day.
		if history[DateKey(day.AddDate(0, 0, -1))] {
			continue
		}

		run := 0
		for history[DateKey(day)] {
			run++
			day = day.AddDate(0, 0, 1)
		}
		if run > best {
			best = run
		}
	}
	return best
}

// TotalDone counts every completed day on record.
func TotalDone(history map[string]bool) int {
	total := 0
	for _, done := range history {
		if done {
			total++
		}
	}
	return total
}
