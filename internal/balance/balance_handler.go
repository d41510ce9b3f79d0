package balance

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jaytishah/AI-leave-approval-assistant/internal/shared/apperror"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("balance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("balance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// GetMine returns the authenticated employee's balances.
func (h *Handler) GetMine(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.GetString("employee_id")
	year, _ := strconv.Atoi(c.DefaultQuery("year", "0"))

	resp, err := h.service.GetEmployeeBalances(c.Request.Context(), companyID, employeeID, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GetByEmployee returns any employee's balances, for HR.
func (h *Handler) GetByEmployee(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.Param("employee_id")
	year, _ := strconv.Atoi(c.DefaultQuery("year", "0"))

	resp, err := h.service.GetEmployeeBalances(c.Request.Context(), companyID, employeeID, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Adjust(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http adjust balance validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Adjust(c.Request.Context(), companyID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
