package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking routes. All require authentication;
// the full listing and status transitions are admin only.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")
	group.Use(authMiddleware)

	// === User Routes ===
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/my-bookings", h.ListMine)
	group.GET("/:id", h.Get)
	group.DELETE("/:id", h.Delete)

	// === Admin Routes ===
	admin := group.Group("")
	admin.Use(adminMiddleware)
	{
		admin.PUT("/:id/status", h.UpdateStatus)
	}
}
