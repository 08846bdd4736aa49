package booking

import (
	"bookinghub/internal/domain/auth"
	"bookinghub/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	v1.GET("/facilities/:id/calendar", h.GetCalendar)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/bookings", h.CreateBooking)
	protected.POST("/bookings/validate", h.ValidateBooking)
	protected.GET("/bookings/:id", h.GetBooking)
	protected.GET("/users/me/bookings", h.GetMyBookings)

	operator := protected.Group("")
	operator.Use(middleware.RequireRole(string(auth.RoleOperator)))
	{
		operator.POST("/bookings/operator", h.CreateOperatorBooking)
		operator.PATCH("/bookings/:id/status", h.UpdateBookingStatus)
		operator.DELETE("/bookings/:id", h.DeleteBooking)
		operator.GET("/owner/bookings", h.GetOwnerBookings)
		operator.GET("/resources/:id/bookings", h.GetResourceBookings)
		operator.DELETE("/facilities/:id/bookings", h.DeleteFacilityBookings)
	}
}
