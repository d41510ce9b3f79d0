package company

import (
	"github.com/gin-gonic/gin"

	"github.com/jaytishah/AI-leave-approval-assistant/internal/middleware"
)

// Company creation is the onboarding entry point and happens before any
// credential exists, so it is only rate limited, not authenticated.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	companies := r.Group("/companies")
	{
		companies.POST("", middleware.RateLimitByIP(0.05, 2), handler.Create)
		companies.GET("/:id", middleware.AuthMiddleware(), handler.GetByID)
	}
}
