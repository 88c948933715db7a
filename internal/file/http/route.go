package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers file serving routes. Hoarding photos are shown
// on public listing pages, so no auth is required to read them.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/files")

	group.GET("/:id", h.ServeFile)
	group.GET("/:id/thumbnail", h.ServeThumbnail)
}
