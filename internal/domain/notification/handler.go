package notification

import (
	"errors"
	"net/http"
	"strconv"

	"bookinghub/internal/pkg/jwt"
	"bookinghub/internal/pkg/response"
	"bookinghub/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    *Service
	hub        *Hub
	jwtService *jwt.Service
}

func NewHandler(service *Service, hub *Hub, jwtService *jwt.Service) *Handler {
	return &Handler{service: service, hub: hub, jwtService: jwtService}
}

// GetNotifications
// @Summary		List notifications
// @Description	Newest first. filter is all, read or unread.
// @Tags		Notifications
// @Security	BearerAuth
// @Param		filter	query	string	false	"all|read|unread"
// @Param		page	query	int		false	"page (default 1)"
// @Param		limit	query	int		false	"page size (default 20, max 100)"
// @Success		200	{object}	Page
// @Router		/notifications [get]
func (h *Handler) GetNotifications(c *gin.Context) {
	userID := c.GetInt64("user_id")

	page := 1
	if s := c.Query("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			page = v
		}
	}
	limit := DefaultPageSize
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}

	out, err := h.service.List(c.Request.Context(), userID, ReadFilter(c.DefaultQuery("filter", string(FilterAll))), page, limit)
	if err != nil {
		if errors.Is(err, ErrInvalidFilter) {
			response.Error(c, http.StatusBadRequest, "INVALID_FILTER", "filter must be all, read or unread")
			return
		}
		log.Error().Err(err).Int64("user_id", userID).Msg("list notifications failed")
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get notifications")
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) GetUnreadCount(c *gin.Context) {
	userID := c.GetInt64("user_id")

	n, err := h.service.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("count unread failed")
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to count notifications")
		return
	}
	response.Success(c, http.StatusOK, UnreadCountResponse{UnreadCount: n})
}

func (h *Handler) MarkRead(c *gin.Context) {
	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.FieldErrors(err))
		return
	}

	n, err := h.service.MarkRead(c.Request.Context(), c.GetInt64("user_id"), req.IDs)
	if err != nil {
		if errors.Is(err, ErrNoIDs) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "ids must not be empty")
			return
		}
		log.Error().Err(err).Msg("mark read failed")
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to mark notifications as read")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": n})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	n, err := h.service.MarkAllRead(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		log.Error().Err(err).Msg("mark all read failed")
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to mark notifications as read")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": n})
}
