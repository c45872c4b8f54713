package workouts

import "time"

const day = 24 * time.Hour

// addMonths shifts t by n calendar months, clamping the day to the end of the target month.
func addMonths(t time.Time, n int) time.Time {
	year, month, d := t.Date()
	total := int(month) - 1 + n
	year += total / 12
	total %= 12
	if total < 0 {
		total += 12
		year--
	}
	target := time.Month(total + 1)
	if last := daysIn(year, target); d > last {
		d = last
	}
	return time.Date(year, target, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// monthsBetween is the calendar difference between two instants in months. Whole months are
// counted first and the remaining whole days add 1/30 of a month each; leftover hours are dropped.
func monthsBetween(later, earlier time.Time) float64 {
	later, earlier = later.UTC(), earlier.UTC()
	if later.Before(earlier) {
		return -monthsBetween(earlier, later)
	}

	months := (later.Year()-earlier.Year())*12 + int(later.Month()) - int(earlier.Month())
	shifted := addMonths(earlier, months)
	for later.Before(shifted) {
		months--
		shifted = addMonths(earlier, months)
	}

	days := int(later.Sub(shifted) / day)
	return float64(months) + float64(days)/30
}

// MonthlyFrequency computes workouts per month from creation times ordered newest first.
// With fewer than two workouts, or all of them less than a day apart, the count itself is returned.
func MonthlyFrequency(newestFirst []time.Time) float64 {
	count := len(newestFirst)
	if count <= 1 {
		return float64(count)
	}

	months := monthsBetween(newestFirst[0], newestFirst[count-1])
	if months == 0 {
		return float64(count)
	}
	return float64(count) / months
}
