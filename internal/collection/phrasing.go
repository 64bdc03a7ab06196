package collection

import (
	"strings"
	"time"
)

// Local time is approximated with fixed offsets from UTC, without daylight
// saving. "Tomorrow" is 24 hours past the query offset.
const (
	queryOffset    = -5 * time.Hour
	tomorrowOffset = 19 * time.Hour
)

// dateLayout renders a date as "Thursday February 22"
const dateLayout = "Monday January 02"

// FormatItemList joins items for speech: "nothing", "a", "a and b",
// or "a, b, and c".
func FormatItemList(items []string) string {
	switch len(items) {
	case 0:
		return "nothing"
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

// Dates returns the query date and tomorrow's date for now, as civil dates at
// midnight UTC.
func Dates(now time.Time) (query, tomorrow time.Time) {
	now = now.UTC()
	return civilDate(now.Add(queryOffset)), civilDate(now.Add(tomorrowOffset))
}

// LabelDate renders date, prefixed with "today, " or "tomorrow, " when it
// falls on query or tomorrow.
func LabelDate(date, query, tomorrow time.Time) string {
	date = civilDate(date)

	var prefix string
	switch {
	case date.Equal(civilDate(query)):
		prefix = "today, "
	case date.Equal(civilDate(tomorrow)):
		prefix = "tomorrow, "
	}
	return prefix + date.Format(dateLayout)
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
