package balanceerrors

import (
	"net/http"

	"github.com/jaytishah/AI-leave-approval-assistant/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found",
		http.StatusNotFound,
	)
	ErrBalanceAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"leave balance already exists for this employee, category and year",
		http.StatusConflict,
	)
	ErrAllocationBelowCommitted = apperror.New(
		apperror.CodeInvalidState,
		"total_days cannot be lower than already used plus pending days",
		http.StatusBadRequest,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInvalidState,
		"insufficient remaining balance",
		http.StatusBadRequest,
	)
)
