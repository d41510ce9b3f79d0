package app

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/jaytishah/AI-leave-approval-assistant/internal/audit"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/auth"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/balance"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/company"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/decision"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/employee"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/leave"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/messaging/kafka"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/middleware"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/policy"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/rbac"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/rbac/infra"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/shared/counter"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)
	policyRepo := policy.NewRepository(gormDB)
	auditRepo := audit.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Decision Pipeline ---
	advisor := decision.NewOracleAdvisor(decision.OracleConfig{
		Endpoint: os.Getenv("GEMINI_ENDPOINT"),
		APIKey:   os.Getenv("GEMINI_API_KEY"),
		Model:    os.Getenv("GEMINI_MODEL"),
	})
	pipeline := decision.NewPipeline(advisor)

	// --- Services ---
	policyService := policy.NewService(db, policyRepo)
	balanceService := balance.NewService(db, balanceRepo)
	ledger := balance.NewLedger(balanceRepo)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, outboxRepo, rdb)
	contextProvider := employee.NewContextProvider(gormDB, balanceService)
	leaveService := leave.NewService(
		db,
		leaveRepo,
		counterRepo,
		policyService,
		contextProvider,
		pipeline,
		ledger,
		auditRepo,
		outboxRepo,
	)
	authService := auth.NewService(authRepo, rbacService, employeeRepo)
	companyService := company.NewService(companyRepo, rbacService)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	companyHandler := company.NewHandler(companyService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService)
	balanceHandler := balance.NewHandler(balanceService)
	policyHandler := policy.NewHandler(policyService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		company.RegisterRoutes(api, companyHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, middleware.Idempotency(rdb))
		balance.RegisterRoutes(api, balanceHandler, rbacService)
		policy.RegisterRoutes(api, policyHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}
