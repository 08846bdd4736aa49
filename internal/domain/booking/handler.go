package booking

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bookinghub/internal/pkg/response"
	"bookinghub/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateBooking
// @Summary		Create booking
// @Description	Reserves a window on a resource. The booking starts as pending.
// @Tags		Bookings
// @Security	BearerAuth
// @Accept		json
// @Produce		json
// @Param		body	body		CreateBookingRequest	true	"payload"
// @Success		201		{object}	Booking
// @Failure		400		{object}	map[string]interface{}
// @Failure		409		{object}	map[string]interface{}
// @Router		/bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.FieldErrors(err))
		return
	}

	b, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), CreateInput{
		ResourceID: req.ResourceID,
		Start:      req.StartTime,
		End:        req.EndTime,
		Notes:      req.Notes,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

// CreateOperatorBooking
// @Summary		Create booking for a customer
// @Tags		Bookings
// @Security	BearerAuth
// @Param		body	body		OperatorBookingRequest	true	"payload"
// @Success		201		{object}	Booking
// @Router		/bookings/operator [post]
func (h *Handler) CreateOperatorBooking(c *gin.Context) {
	var req OperatorBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.FieldErrors(err))
		return
	}

	b, err := h.service.CreateByOperator(c.Request.Context(), c.GetInt64("user_id"), OperatorCreateInput{
		ResourceID:  req.ResourceID,
		Start:       req.StartTime,
		End:         req.EndTime,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Notes:       req.Notes,
		Status:      req.Status,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) ValidateBooking(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.FieldErrors(err))
		return
	}

	err := h.service.Validate(c.Request.Context(), req.ResourceID, Window{Start: req.StartTime, End: req.EndTime})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"available": true})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := pathID(c, "Invalid booking ID")
	if !ok {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// UpdateBookingStatus
// @Summary		Change booking status
// @Description	pending -> accepted|rejected, accepted -> disabled. Only the resource owner may call it.
// @Tags		Bookings
// @Security	BearerAuth
// @Param		id		path		int						true	"Booking ID"
// @Param		body	body		UpdateStatusRequest		true	"payload"
// @Success		200		{object}	Booking
// @Failure		409		{object}	map[string]interface{}
// @Failure		410		{object}	map[string]interface{}
// @Router		/bookings/{id}/status [patch]
func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	id, ok := pathID(c, "Invalid booking ID")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.FieldErrors(err))
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status, c.GetInt64("user_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	id, ok := pathID(c, "Invalid booking ID")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) DeleteFacilityBookings(c *gin.Context) {
	id, ok := pathID(c, "Invalid facility ID")
	if !ok {
		return
	}

	n, err := h.service.BulkDeleteByResourceGroup(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": n})
}

// GetMyBookings
// @Summary		List my bookings
// @Tags		Bookings
// @Security	BearerAuth
// @Param		status	query	string	false	"comma separated statuses"
// @Param		from	query	string	false	"RFC3339"
// @Param		to		query	string	false	"RFC3339"
// @Param		name	query	string	false	"customer name contains"
// @Param		page	query	int		false	"page, 15 per page"
// @Router		/users/me/bookings [get]
func (h *Handler) GetMyBookings(c *gin.Context) {
	f, ok := parseFilter(c)
	if !ok {
		return
	}

	page, err := h.service.ListByCreator(c.Request.Context(), c.GetInt64("user_id"), f)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

func (h *Handler) GetOwnerBookings(c *gin.Context) {
	f, ok := parseFilter(c)
	if !ok {
		return
	}

	var facilityID int64
	if v := c.Query("facility_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid facility ID")
			return
		}
		facilityID = id
	}

	page, err := h.service.ListByOwnerFacility(c.Request.Context(), c.GetInt64("user_id"), facilityID, f)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

func (h *Handler) GetResourceBookings(c *gin.Context) {
	id, ok := pathID(c, "Invalid resource ID")
	if !ok {
		return
	}
	f, ok := parseFilter(c)
	if !ok {
		return
	}

	page, err := h.service.ListByResource(c.Request.Context(), c.GetInt64("user_id"), id, f)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// GetCalendar
// @Summary		Facility calendar
// @Description	30 minute slots per day between start and end (YYYY-MM-DD, inclusive, at most 31 days).
// @Tags		Facilities
// @Param		id		path	int		true	"Facility ID"
// @Param		start	query	string	true	"YYYY-MM-DD"
// @Param		end		query	string	true	"YYYY-MM-DD"
// @Router		/facilities/{id}/calendar [get]
func (h *Handler) GetCalendar(c *gin.Context) {
	id, ok := pathID(c, "Invalid facility ID")
	if !ok {
		return
	}

	start, err := time.Parse(time.DateOnly, c.Query("start"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse(time.DateOnly, c.Query("end"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "end must be YYYY-MM-DD")
		return
	}

	days, err := h.service.CalendarWeek(c.Request.Context(), id, start, end)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"days": days})
}

// statusFilterAll in ?status= disables status filtering.
const statusFilterAll = "all"

func parseFilter(c *gin.Context) (ListFilter, bool) {
	var f ListFilter

	if v := c.Query("status"); v != "" {
		for _, s := range strings.Split(v, ",") {
			s = strings.ToLower(strings.TrimSpace(s))
			if s == statusFilterAll {
				f.Statuses = nil
				break
			}
			if s != "" {
				f.Statuses = append(f.Statuses, Status(s))
			}
		}
	}

	for _, p := range []struct {
		key string
		dst **time.Time
	}{{"from", &f.From}, {"to", &f.To}} {
		v := c.Query(p.key)
		if v == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", p.key+" must be RFC3339")
			return f, false
		}
		*p.dst = &t
	}

	f.Name = c.Query("name")

	if v := c.Query("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "page must be a positive integer")
			return f, false
		}
		f.Page = page
	}
	return f, true
}

func pathID(c *gin.Context, msg string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", msg)
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking or resource not found")
	case errors.Is(err, ErrInvalidWindow):
		response.Error(c, http.StatusBadRequest, "INVALID_WINDOW", "Start time must be before end time")
	case errors.Is(err, ErrOutOfOperatingHours):
		response.Error(c, http.StatusBadRequest, "OUT_OF_OPERATING_HOURS", "Booking is outside the facility operating hours")
	case errors.Is(err, ErrTimeConflict):
		response.Error(c, http.StatusConflict, "TIME_CONFLICT", "The time slot is already taken")
	case errors.Is(err, ErrInThePast):
		response.Error(c, http.StatusBadRequest, "IN_THE_PAST", "Booking cannot start in the past")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Status change is not allowed")
	case errors.Is(err, ErrBookingExpired):
		response.Error(c, http.StatusGone, "BOOKING_EXPIRED", "Booking has already ended")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("booking request failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
