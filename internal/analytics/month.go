package analytics

import "time"

// monthFloor truncates a timestamp to the first instant of its calendar
// month in UTC.
func monthFloor(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// monthIndex is the number of calendar months from cohort to month,
// computed by year/month subtraction. Day-count division by 30 would
// miscount cohorts spanning months of different lengths.
func monthIndex(cohort, month time.Time) int {
	return (month.Year()-cohort.Year())*12 + int(month.Month()) - int(cohort.Month())
}
