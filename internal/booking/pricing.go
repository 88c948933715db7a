package booking

import "time"

const day = 24 * time.Hour

// DurationDays returns the number of billable days between start and end.
// Partial days count as a full day.
func DurationDays(start, end time.Time) int {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	days := int(d / day)
	if d%day != 0 {
		days++
	}
	return days
}

// Price computes the total amount for booking a hoarding with the given
// daily rate over [start, end).
func Price(dailyPrice float64, start, end time.Time) float64 {
	return float64(DurationDays(start, end)) * dailyPrice
}
