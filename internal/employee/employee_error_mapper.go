package employee

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	employeeerrors "github.com/jaytishah/AI-leave-approval-assistant/internal/employee/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_employees_email":
			return employeeerrors.ErrEmailAlreadyExists
		case "uq_employees_number":
			return employeeerrors.ErrEmployeeNumberExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		if strings.Contains(errMsg, "uq_employees_email") {
			return employeeerrors.ErrEmailAlreadyExists
		}
		if strings.Contains(errMsg, "uq_employees_number") {
			return employeeerrors.ErrEmployeeNumberExists
		}
	}

	return err
}
