package leave

import (
	"github.com/gin-gonic/gin"

	"github.com/jaytishah/AI-leave-approval-assistant/internal/middleware"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	idempotency gin.HandlerFunc,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), idempotency, handler.Submit)
		leaves.GET("/me", handler.GetMine)
		leaves.GET("/me/:id", handler.GetOwned)
		leaves.POST("/me/:id/cancel", handler.Cancel)

		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetAll)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetByID)
		leaves.GET("/:id/audit", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetAuditTrail)
		leaves.POST("/:id/review", middleware.RBACAuthorize(rbacService, "leave", "review"), handler.Review)
	}
}
