package notification

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	n := protected.Group("/notifications")
	{
		n.GET("", h.GetNotifications)
		n.GET("/unread-count", h.GetUnreadCount)
		n.PATCH("/read", h.MarkRead)
		n.PATCH("/read-all", h.MarkAllRead)
		n.GET("/stream", h.Stream)
	}
}

// RegisterWSRoutes mounts the websocket endpoint outside the JWT header middleware;
// it authenticates with the token query parameter instead.
func (h *Handler) RegisterWSRoutes(r gin.IRouter) {
	r.GET("/ws/notifications", h.ServeWS)
}
