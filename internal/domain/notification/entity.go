package notification

import "time"

type Notification struct {
	ID          int64          `json:"id" gorm:"primaryKey"`
	RecipientID int64          `json:"recipient_id" gorm:"index:idx_notifications_recipient_read;not null"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty" gorm:"serializer:json"`
	IsRead      bool           `json:"is_read" gorm:"index:idx_notifications_recipient_read;not null;default:false"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// ReadFilter narrows a listing by read state.
type ReadFilter string

const (
	FilterAll    ReadFilter = "all"
	FilterRead   ReadFilter = "read"
	FilterUnread ReadFilter = "unread"
)

func (f ReadFilter) Valid() bool {
	return f == FilterAll || f == FilterRead || f == FilterUnread
}

type Page struct {
	Items       []Notification `json:"items"`
	Total       int64          `json:"total"`
	UnreadCount int64          `json:"unread_count"`
	Page        int            `json:"page"`
	PageSize    int            `json:"page_size"`
}

const (
	EventNotificationCreated = "notification_created"
)

// Event is what live subscribers receive.
type Event struct {
	Type         string        `json:"type"`
	Notification *Notification `json:"notification,omitempty"`
}
