package booking

import (
	"time"

	"gorm.io/gorm"
)

type Booking struct {
	ID          int64          `json:"id" gorm:"primaryKey"`
	ResourceID  int64          `json:"resource_id" gorm:"index:idx_bookings_resource_time;not null"`
	StartTime   time.Time      `json:"start_time" gorm:"index:idx_bookings_resource_time;not null"`
	EndTime     time.Time      `json:"end_time" gorm:"not null"`
	Status      Status         `json:"status" gorm:"size:20;index;not null"`
	CreatedBy   int64          `json:"created_by" gorm:"index;not null"`
	UpdatedBy   int64          `json:"updated_by"`
	FullName    string         `json:"full_name" gorm:"size:255"`
	PhoneNumber string         `json:"phone_number" gorm:"size:32"`
	Notes       string         `json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
	DeletedBy   *int64         `json:"-"`
}

func (Booking) TableName() string { return "bookings" }

func (b *Booking) Window() Window {
	return Window{Start: b.StartTime, End: b.EndTime}
}

// Window is a half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) UTC() Window {
	return Window{Start: w.Start.UTC(), End: w.End.UTC()}
}

const PageSize = 15

type ListFilter struct {
	Statuses []Status
	From     *time.Time
	To       *time.Time
	Name     string
	Page     int
}

func (f ListFilter) page() int {
	if f.Page < 1 {
		return 1
	}
	return f.Page
}

type Page struct {
	Items    []Booking `json:"items"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

// Decision is handed to the Notifier after a pending booking is accepted or rejected.
type Decision struct {
	BookingID    int64
	RecipientID  int64
	FacilityID   int64
	FacilityName string
	ResourceID   int64
	ResourceName string
	Status       Status
	Start        time.Time
	End          time.Time
	Location     *time.Location
}
