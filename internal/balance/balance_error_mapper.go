package balance

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	balanceerrors "github.com/jaytishah/AI-leave-approval-assistant/internal/balance/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_leave_balances_employee_category_year" {
			return balanceerrors.ErrBalanceAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_leave_balances_employee_category_year") {
		return balanceerrors.ErrBalanceAlreadyExists
	}

	return err
}
