package notification

type MarkReadRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1,dive,gt=0"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}
