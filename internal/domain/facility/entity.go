package facility

import (
	"fmt"
	"time"
)

// maxOffsetMinutes bounds UTC offsets to the real-world range (UTC-14:00 .. UTC+14:00).
const maxOffsetMinutes = 14 * 60

// Facility is a resource group owned by one operator. Every resource in it
// shares the facility's daily operating hours and fixed UTC offset.
type Facility struct {
	ID               int64     `json:"id" gorm:"primaryKey"`
	OwnerID          int64     `json:"owner_id" gorm:"index;not null"`
	Name             string    `json:"name" gorm:"size:255;not null"`
	Address          string    `json:"address,omitempty" gorm:"size:500"`
	DailyStart       string    `json:"daily_start" gorm:"size:5;not null"`
	DailyEnd         string    `json:"daily_end" gorm:"size:5;not null"`
	UTCOffsetMinutes int       `json:"utc_offset_minutes" gorm:"not null;default:0"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Facility) TableName() string { return "facilities" }

func (f *Facility) Hours() (OperatingHours, error) {
	return NewOperatingHours(f.DailyStart, f.DailyEnd, f.UTCOffsetMinutes)
}

type Resource struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	FacilityID int64     `json:"facility_id" gorm:"index;not null"`
	OwnerID    int64     `json:"owner_id" gorm:"index;not null"`
	Name       string    `json:"name" gorm:"size:255;not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Resource) TableName() string { return "resources" }

// OperatingHours is the daily open interval as offsets from local midnight,
// evaluated in Location.
type OperatingHours struct {
	DailyStart time.Duration
	DailyEnd   time.Duration
	Location   *time.Location
}

func NewOperatingHours(start, end string, offsetMinutes int) (OperatingHours, error) {
	s, err := ParseClock(start)
	if err != nil {
		return OperatingHours{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return OperatingHours{}, err
	}
	if s >= e {
		return OperatingHours{}, fmt.Errorf("%w: daily start %s must be before daily end %s", ErrInvalidHours, start, end)
	}
	loc, err := FixedZone(offsetMinutes)
	if err != nil {
		return OperatingHours{}, err
	}
	return OperatingHours{DailyStart: s, DailyEnd: e, Location: loc}, nil
}

// ParseClock converts "HH:MM" to a duration since midnight.
func ParseClock(s string) (time.Duration, error) {
	if len(s) != 5 {
		return 0, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidHours, s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidHours, s)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func FixedZone(offsetMinutes int) (*time.Location, error) {
	if offsetMinutes < -maxOffsetMinutes || offsetMinutes > maxOffsetMinutes {
		return nil, fmt.Errorf("%w: utc offset %d out of range", ErrInvalidHours, offsetMinutes)
	}
	sign := '+'
	abs := offsetMinutes
	if abs < 0 {
		sign = '-'
		abs = -abs
	}
	name := fmt.Sprintf("UTC%c%02d:%02d", sign, abs/60, abs%60)
	return time.FixedZone(name, offsetMinutes*60), nil
}

// ResourceInfo is the denormalized view the booking engine needs for one resource.
type ResourceInfo struct {
	ResourceID   int64
	Name         string
	OwnerID      int64
	FacilityID   int64
	FacilityName string
	Hours        OperatingHours
}
