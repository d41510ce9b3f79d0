package leave

import (
	"net/http"

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
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Submit creates a leave request for the authenticated employee and runs the
// decision pipeline synchronously, so the response carries the outcome.
func (h *Handler) Submit(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.GetString("employee_id")

	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http submit leave validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), companyID, employeeID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

// GetAll lists the company's requests, optionally filtered by status.
func (h *Handler) GetAll(c *gin.Context) {
	companyID := c.GetString("company_id")
	status := c.Query("status")

	resp, err := h.service.GetAll(c.Request.Context(), companyID, status)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GetMine lists the authenticated employee's own requests.
func (h *Handler) GetMine(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.GetString("employee_id")

	resp, err := h.service.GetMine(c.Request.Context(), companyID, employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	companyID := c.GetString("company_id")
	id := c.Param("id")

	resp, err := h.service.GetByID(c.Request.Context(), companyID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetOwned(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.GetString("employee_id")
	id := c.Param("id")

	resp, err := h.service.GetOwned(c.Request.Context(), companyID, employeeID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Review resolves a request parked for manual review.
func (h *Handler) Review(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := h.getActorID(c)
	id := c.Param("id")

	var req ReviewLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http review leave validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Review(c.Request.Context(), companyID, actorID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Cancel withdraws the authenticated employee's own request.
func (h *Handler) Cancel(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.GetString("employee_id")
	id := c.Param("id")

	resp, err := h.service.Cancel(c.Request.Context(), companyID, employeeID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GetAuditTrail returns the full decision trail for one request.
func (h *Handler) GetAuditTrail(c *gin.Context) {
	companyID := c.GetString("company_id")
	id := c.Param("id")

	resp, err := h.service.GetAuditTrail(c.Request.Context(), companyID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) getActorID(c *gin.Context) string {
	if employeeID := c.GetString("employee_id"); employeeID != "" {
		return employeeID
	}
	return c.GetString("user_id_validated")
}
