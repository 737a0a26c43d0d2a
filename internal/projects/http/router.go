package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group. The group is
// expected to run auth.RequireCaller first.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}
