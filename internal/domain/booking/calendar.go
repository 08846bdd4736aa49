package booking

import (
	"time"

	"bookinghub/internal/domain/facility"
)

const (
	SlotDuration    = 30 * time.Minute
	MaxCalendarDays = 31
)

type Slot struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Count   int       `json:"count"`
	IsEmpty bool      `json:"is_empty"`
}

type CalendarInput struct {
	Hours         facility.OperatingHours
	StartDate     time.Time
	EndDate       time.Time
	ResourceCount int
	Accepted      []Window
}

// BuildCalendar returns one slice of slots per local day from StartDate to EndDate
// inclusive. Only the calendar date of StartDate and EndDate matters. Slots are
// generated from DailyStart while the slot start is before DailyEnd, so the last
// slot may run past closing when the hours are not aligned to SlotDuration.
func BuildCalendar(in CalendarInput) [][]Slot {
	loc := in.Hours.Location
	if loc == nil {
		loc = time.UTC
	}
	first := localDate(in.StartDate, loc)
	last := localDate(in.EndDate, loc)

	var days [][]Slot
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		var slots []Slot
		for off := in.Hours.DailyStart; off < in.Hours.DailyEnd; off += SlotDuration {
			w := Window{Start: day.Add(off), End: day.Add(off + SlotDuration)}

			count := 0
			for _, b := range in.Accepted {
				if Overlaps(w, b) {
					count++
				}
			}

			slots = append(slots, Slot{
				Start:   w.Start,
				End:     w.End,
				Count:   count,
				IsEmpty: count < in.ResourceCount,
			})
		}
		days = append(days, slots)
	}
	return days
}

// localDate is midnight in loc of the date t carries in its own location.
func localDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func calendarDays(start, end time.Time) int {
	a := localDate(start, time.UTC)
	b := localDate(end, time.UTC)
	return int(b.Sub(a)/(24*time.Hour)) + 1
}
