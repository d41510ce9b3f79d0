package leave

import "time"

// DayCounter abstracts working-day arithmetic. Company calendars and holiday
// tables plug in here; the default counts inclusive calendar days.
type DayCounter interface {
	CountDays(start, end time.Time) int
}

type calendarDayCounter struct{}

func NewCalendarDayCounter() DayCounter {
	return calendarDayCounter{}
}

func (calendarDayCounter) CountDays(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
