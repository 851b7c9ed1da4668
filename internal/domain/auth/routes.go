package auth

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the login endpoint.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/auth/login", h.Login)
}

// RegisterProtectedRoutes registers endpoints that require a valid token.
func RegisterProtectedRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/auth/logout", h.Logout)
}
