package leaveerrors

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
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not belong to this company",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"a leave request already exists in an overlapping period",
		http.StatusConflict,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrNotReviewable = apperror.New(
		apperror.CodeInvalidState,
		"only requests pending review can be reviewed",
		http.StatusBadRequest,
	)
	ErrNotCancellable = apperror.New(
		apperror.CodeInvalidState,
		"request cannot be cancelled in its current state",
		http.StatusBadRequest,
	)
	ErrAlreadyStarted = apperror.New(
		apperror.CodeInvalidState,
		"approved leave cannot be cancelled after its start date",
		http.StatusBadRequest,
	)
)
