package domain

import "time"

// ISOWeek returns the ISO-8601 year and week number of t (Monday start,
// week 1 is the week containing the year's first Thursday).
func ISOWeek(t time.Time) (year, week int) {
	return t.ISOWeek()
}

// WeekDates returns the Monday through Friday dates of the given ISO week.
func WeekDates(year, week int) [5]time.Time {
	// January 4th is always in ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := jan4.AddDate(0, 0, -(weekday - 1)).AddDate(0, 0, (week-1)*7)

	var days [5]time.Time
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days
}

// NextWeek advances the week cursor, wrapping week 52 to week 1 of the next
// year. Years with 53 ISO weeks are deliberately not special-cased; the
// schedule wraps at 52 like the dashboard always has.
func NextWeek(year, week int) (int, int) {
	if week < 52 {
		return year, week + 1
	}
	return year + 1, 1
}

// PrevWeek moves the week cursor back, wrapping week 1 to week 52 of the
// previous year.
func PrevWeek(year, week int) (int, int) {
	if week > 1 {
		return year, week - 1
	}
	return year - 1, 52
}
