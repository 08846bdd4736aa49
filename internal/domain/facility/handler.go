package facility

import (
	"errors"
	"net/http"
	"strconv"

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

// CreateFacility
// @Summary		Create facility
// @Tags		Facilities
// @Security	BearerAuth
// @Param		body	body	CreateFacilityRequest	true	"payload"
// @Success		201	{object}	Facility
// @Router		/facilities [post]
func (h *Handler) CreateFacility(c *gin.Context) {
	var req CreateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.FieldErrors(err))
		return
	}

	f, err := h.service.CreateFacility(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, f)
}

func (h *Handler) GetFacility(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	f, err := h.service.GetFacility(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, f)
}

func (h *Handler) GetMyFacilities(c *gin.Context) {
	items, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"facilities": items})
}

// UpdateHours
// @Summary		Update operating hours
// @Tags		Facilities
// @Security	BearerAuth
// @Param		id		path	int					true	"Facility ID"
// @Param		body	body	UpdateHoursRequest	true	"payload"
// @Router		/facilities/{id}/hours [patch]
func (h *Handler) UpdateHours(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.FieldErrors(err))
		return
	}

	f, err := h.service.UpdateHours(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, f)
}

func (h *Handler) CreateResource(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.FieldErrors(err))
		return
	}

	res, err := h.service.CreateResource(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) ListResources(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	items, err := h.service.ListResources(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"resources": items})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid facility ID")
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Facility not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not own this facility")
	case errors.Is(err, ErrInvalidHours):
		response.Error(c, http.StatusBadRequest, "INVALID_HOURS", err.Error())
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("facility request failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
