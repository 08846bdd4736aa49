package booking

import (
	"time"

	"bookinghub/internal/domain/facility"
)

// ValidateTimeWindow checks that [start, end) lies inside one local day of the
// facility's operating hours. Both boundaries are inclusive and compared with
// full precision in the facility zone, not the host zone.
func ValidateTimeWindow(hours facility.OperatingHours, start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidWindow
	}

	loc := hours.Location
	if loc == nil {
		loc = time.UTC
	}
	ls, le := start.In(loc), end.In(loc)

	day := midnight(ls)
	if !midnight(le).Equal(day) {
		return ErrOutOfOperatingHours
	}

	if ls.Sub(day) < hours.DailyStart || le.Sub(day) > hours.DailyEnd {
		return ErrOutOfOperatingHours
	}
	return nil
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
