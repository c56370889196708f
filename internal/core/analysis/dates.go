package analysis

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// StartOfDay truncates now to midnight in its own location
func StartOfDay(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// IsExpired reports whether expiry falls before the start of today.
// An item without an expiry date never expires.
func IsExpired(expiry *time.Time, now time.Time) bool {
	if expiry == nil {
		return false
	}
	return expiry.Before(StartOfDay(now))
}

// DaysUntil counts days from now until t, rounding partial days up
func DaysUntil(t, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}

// DaysSince counts whole days between t and now in either direction,
// rounding partial days up
func DaysSince(t, now time.Time) int {
	return int(math.Ceil(math.Abs(now.Sub(t).Hours()) / 24))
}

// WholeDaysBetween counts complete days from from to to, rounding down
func WholeDaysBetween(from, to time.Time) int {
	return int(math.Floor(to.Sub(from).Hours() / 24))
}

// fractionalDays is the signed number of days from t to now
func fractionalDays(t, now time.Time) float64 {
	return float64(now.Sub(t)) / float64(day)
}
