package facility

import (
	"bookinghub/internal/domain/auth"
	"bookinghub/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	facilities := v1.Group("/facilities")
	{
		facilities.GET("/:id", h.GetFacility)
		facilities.GET("/:id/resources", h.ListResources)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	operator := protected.Group("")
	operator.Use(middleware.RequireRole(string(auth.RoleOperator)))
	{
		operator.GET("/owner/facilities", h.GetMyFacilities)
		operator.POST("/facilities", h.CreateFacility)
		operator.PATCH("/facilities/:id/hours", h.UpdateHours)
		operator.POST("/facilities/:id/resources", h.CreateResource)
	}
}
