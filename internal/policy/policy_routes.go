package policy

import (
	"github.com/gin-gonic/gin"

	"github.com/jaytishah/AI-leave-approval-assistant/internal/middleware"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	policies := r.Group("/policy")
	policies.Use(middleware.AuthMiddleware())
	{
		policies.GET("", middleware.RBACAuthorize(rbacService, "policy", "read"), handler.Get)
		policies.PUT("", middleware.RBACAuthorize(rbacService, "policy", "update"), handler.Update)
		policies.POST("/blackouts", middleware.RBACAuthorize(rbacService, "policy", "update"), handler.AddBlackout)
		policies.DELETE("/blackouts/:id", middleware.RBACAuthorize(rbacService, "policy", "update"), handler.RemoveBlackout)
	}
}
