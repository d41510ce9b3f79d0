package balance

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
	balances := r.Group("/balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("/me", handler.GetMine)
		balances.GET("/employees/:employee_id", middleware.RBACAuthorize(rbacService, "balance", "read"), handler.GetByEmployee)
		balances.PUT("", middleware.RBACAuthorize(rbacService, "balance", "update"), handler.Adjust)
	}
}
