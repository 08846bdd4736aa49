package booking

import "time"

type CreateBookingRequest struct {
	ResourceID int64     `json:"resource_id" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time" binding:"required"`
	Notes      string    `json:"notes" binding:"max=1000"`
}

type OperatorBookingRequest struct {
	ResourceID  int64     `json:"resource_id" binding:"required"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	FullName    string    `json:"full_name" binding:"required,max=255"`
	PhoneNumber string    `json:"phone_number" binding:"max=32"`
	Notes       string    `json:"notes" binding:"max=1000"`
	Status      Status    `json:"status" binding:"omitempty,oneof=pending accepted"`
}

type ValidateRequest struct {
	ResourceID int64     `json:"resource_id" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time" binding:"required"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required,oneof=accepted rejected disabled"`
}
