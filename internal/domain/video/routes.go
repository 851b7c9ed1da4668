package video

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the anonymous gallery routes.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	videos := r.Group("/videos")
	{
		videos.GET("", h.List)
		videos.GET("/:id", h.Detail)
	}
}

// RegisterAdminRoutes registers the mutating routes. The group is
// expected to carry auth + admin-role middleware.
func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	videos := r.Group("/videos")
	{
		videos.POST("", h.Upload)
		videos.PATCH("/:id", h.UpdateField)
		videos.DELETE("/:id", h.Delete)
		videos.POST("/:id/thumbnail", h.GenerateThumbnail)
	}

	// Lives outside /videos so the static segment does not collide with
	// the :id wildcard.
	r.GET("/thumbnails/missing", h.MissingThumbnails)
}
