package facility

type CreateFacilityRequest struct {
	Name             string `json:"name" binding:"required,max=255"`
	Address          string `json:"address" binding:"max=500"`
	DailyStart       string `json:"daily_start" binding:"required,hhmm"`
	DailyEnd         string `json:"daily_end" binding:"required,hhmm"`
	UTCOffsetMinutes int    `json:"utc_offset_minutes" binding:"min=-840,max=840"`
}

type UpdateHoursRequest struct {
	DailyStart       string `json:"daily_start" binding:"required,hhmm"`
	DailyEnd         string `json:"daily_end" binding:"required,hhmm"`
	UTCOffsetMinutes int    `json:"utc_offset_minutes" binding:"min=-840,max=840"`
}

type CreateResourceRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}
