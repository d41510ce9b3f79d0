package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jaytishah/AI-leave-approval-assistant/internal/audit"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/decision"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/events"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/leave"
	leaveerrors "github.com/jaytishah/AI-leave-approval-assistant/internal/leave/errors"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/messaging/kafka"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/policy"
)

type fakeLeaveRepository struct {
	createFn           func(ctx context.Context, l *leave.LeaveRequest) error
	findAllByCompanyFn func(ctx context.Context, companyID, status string) ([]leave.LeaveRequest, error)
	findAllByEmpFn     func(ctx context.Context, companyID, employeeID string) ([]leave.LeaveRequest, error)
	findByIDFn         func(ctx context.Context, companyID, id string) (*leave.LeaveRequest, error)
	updateFn           func(ctx context.Context, l *leave.LeaveRequest) error
	belongsFn          func(ctx context.Context, companyID, employeeID string) (bool, error)
	overlapFn          func(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository { return f }

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindAllByCompany(ctx context.Context, companyID, status string) ([]leave.LeaveRequest, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID, status)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]leave.LeaveRequest, error) {
	if f.findAllByEmpFn != nil {
		return f.findAllByEmpFn(ctx, companyID, employeeID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*leave.LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.LeaveRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	if f.belongsFn != nil {
		return f.belongsFn(ctx, companyID, employeeID)
	}
	return true, nil
}

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	if f.overlapFn != nil {
		return f.overlapFn(ctx, companyID, employeeID, startDate, endDate, excludeID)
	}
	return false, nil
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakePolicies struct {
	cfg decision.PolicyConfig
	err error
}

func (f *fakePolicies) Get(ctx context.Context, companyID string) (policy.PolicyResponse, error) {
	return policy.PolicyResponse{}, nil
}

func (f *fakePolicies) Update(ctx context.Context, companyID, actorID string, req policy.UpdatePolicyRequest) (policy.PolicyResponse, error) {
	return policy.PolicyResponse{}, nil
}

func (f *fakePolicies) AddBlackout(ctx context.Context, companyID, actorID string, req policy.CreateBlackoutRequest) (policy.BlackoutResponse, error) {
	return policy.BlackoutResponse{}, nil
}

func (f *fakePolicies) RemoveBlackout(ctx context.Context, companyID, id string) error {
	return nil
}

func (f *fakePolicies) ResolveConfig(ctx context.Context, companyID string) (decision.PolicyConfig, error) {
	if f.err != nil {
		return decision.PolicyConfig{}, f.err
	}
	return f.cfg, nil
}

type fakeContexts struct {
	ec  decision.EmployeeContext
	err error
}

func (f *fakeContexts) BuildContext(ctx context.Context, companyID, employeeID string, cfg decision.PolicyConfig, now time.Time) (decision.EmployeeContext, error) {
	return f.ec, f.err
}

type fakeEvaluator struct {
	outcome decision.Outcome
	err     error
	lastReq decision.Request
}

func (f *fakeEvaluator) Evaluate(ctx context.Context, req decision.Request, ec decision.EmployeeContext, cfg decision.PolicyConfig) (decision.Outcome, error) {
	f.lastReq = req
	return f.outcome, f.err
}

type ledgerCall struct {
	op       string
	category string
	days     int
}

type fakeLedger struct {
	calls []ledgerCall
	err   error
}

func (f *fakeLedger) Hold(ctx context.Context, tx *sql.Tx, companyID, employeeID, category string, year, days int, allowNegative bool) error {
	f.calls = append(f.calls, ledgerCall{op: "hold", category: category, days: days})
	return f.err
}

func (f *fakeLedger) Commit(ctx context.Context, tx *sql.Tx, companyID, employeeID, category string, year, days int) error {
	f.calls = append(f.calls, ledgerCall{op: "commit", category: category, days: days})
	return f.err
}

func (f *fakeLedger) Release(ctx context.Context, tx *sql.Tx, companyID, employeeID, category string, year, days int) error {
	f.calls = append(f.calls, ledgerCall{op: "release", category: category, days: days})
	return f.err
}

func (f *fakeLedger) Refund(ctx context.Context, tx *sql.Tx, companyID, employeeID, category string, year, days int) error {
	f.calls = append(f.calls, ledgerCall{op: "refund", category: category, days: days})
	return f.err
}

type fakeAudits struct {
	records []*audit.DecisionAudit
	byReq   []audit.DecisionAudit
	err     error
}

func (f *fakeAudits) WithTx(tx *sql.Tx) audit.Repository { return f }

func (f *fakeAudits) Create(ctx context.Context, a *audit.DecisionAudit) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, a)
	return nil
}

func (f *fakeAudits) FindByRequest(ctx context.Context, companyID, leaveRequestID string) ([]audit.DecisionAudit, error) {
	return f.byReq, f.err
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
	err    error
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   leave.Service
	repo      *fakeLeaveRepository
	policies  *fakePolicies
	contexts  *fakeContexts
	evaluator *fakeEvaluator
	ledger    *fakeLedger
	audits    *fakeAudits
	outbox    *fakeOutbox
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	deps := &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		repo:      &fakeLeaveRepository{},
		policies:  &fakePolicies{cfg: decision.DefaultPolicyConfig()},
		contexts:  &fakeContexts{},
		evaluator: &fakeEvaluator{},
		ledger:    &fakeLedger{},
		audits:    &fakeAudits{},
		outbox:    &fakeOutbox{},
	}
	deps.service = leave.NewService(
		db,
		deps.repo,
		&fakeCounter{},
		deps.policies,
		deps.contexts,
		deps.evaluator,
		deps.ledger,
		deps.audits,
		deps.outbox,
	)
	return deps
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func submitRequest() leave.CreateLeaveRequest {
	return leave.CreateLeaveRequest{
		Category:      "ANNUAL",
		StartDate:     "2026-09-07",
		EndDate:       "2026-09-09",
		Justification: "Attending a family event out of town next month.",
	}
}

func TestLeaveService_Submit(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("approved request commits days and publishes event", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.evaluator.outcome = decision.Outcome{
			Decision: decision.Decision{
				Action:      decision.ActionApproved,
				Engine:      decision.EngineAIRules,
				Explanation: "Request approved.",
				Confidence:  92,
			},
		}

		var created *leave.LeaveRequest
		deps.repo.createFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			created = l
			return nil
		}

		resp, err := deps.service.Submit(ctx, companyID, employeeID, submitRequest())

		require.NoError(t, err)
		assert.Equal(t, "APPROVED", resp.Status)
		assert.Equal(t, decision.EngineAIRules, resp.DecisionEngine)
		assert.Equal(t, 92, resp.Confidence)
		assert.Equal(t, 3, resp.TotalDays)
		assert.Regexp(t, `^LR-\d{8}-\d{4}$`, resp.RequestNumber)
		assert.NotNil(t, resp.DecidedAt)

		require.NotNil(t, created)
		assert.Equal(t, employeeID, created.EmployeeID.String())

		require.Len(t, deps.ledger.calls, 2)
		assert.Equal(t, ledgerCall{op: "hold", category: "ANNUAL", days: 3}, deps.ledger.calls[0])
		assert.Equal(t, ledgerCall{op: "commit", category: "ANNUAL", days: 3}, deps.ledger.calls[1])

		require.Len(t, deps.audits.records, 1)
		assert.Equal(t, "APPROVED", deps.audits.records[0].Action)
		assert.Nil(t, deps.audits.records[0].ActorID)

		require.Len(t, deps.outbox.events, 1)
		assert.Equal(t, events.LeaveDecisionFinalized, deps.outbox.events[0].EventType)
		assert.Equal(t, events.LeaveDecisionTopic, deps.outbox.events[0].Topic)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("pending review holds days without committing", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.evaluator.outcome = decision.Outcome{
			Decision: decision.Decision{
				Action:     decision.ActionPendingReview,
				Engine:     decision.EngineAIRules,
				Confidence: 55,
			},
		}

		resp, err := deps.service.Submit(ctx, companyID, employeeID, submitRequest())

		require.NoError(t, err)
		assert.Equal(t, "PENDING_REVIEW", resp.Status)
		assert.Nil(t, resp.DecidedAt)
		require.Len(t, deps.ledger.calls, 1)
		assert.Equal(t, "hold", deps.ledger.calls[0].op)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("rejected request never touches the ledger", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.evaluator.outcome = decision.Outcome{
			Decision: decision.Decision{
				Action:      decision.ActionRejected,
				Engine:      decision.EngineRules,
				Explanation: "Request rejected by policy rules: insufficient_balance.",
				Confidence:  100,
			},
		}

		resp, err := deps.service.Submit(ctx, companyID, employeeID, submitRequest())

		require.NoError(t, err)
		assert.Equal(t, "REJECTED", resp.Status)
		assert.Empty(t, deps.ledger.calls)
		require.Len(t, deps.outbox.events, 1)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("balance exempt category skips the ledger", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.evaluator.outcome = decision.Outcome{
			Decision: decision.Decision{Action: decision.ActionApproved, Engine: decision.EngineAIRules, Confidence: 90},
		}

		req := submitRequest()
		req.Category = "UNPAID"
		resp, err := deps.service.Submit(ctx, companyID, employeeID, req)

		require.NoError(t, err)
		assert.Equal(t, "APPROVED", resp.Status)
		assert.Empty(t, deps.ledger.calls)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("overlapping period rejected before evaluation", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.overlapFn = func(ctx context.Context, cid, eid string, s, e time.Time, ex *string) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Submit(ctx, companyID, employeeID, submitRequest())

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
		assert.Equal(t, decision.Request{}, deps.evaluator.lastReq)
	})

	t.Run("employee outside company", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.belongsFn = func(ctx context.Context, cid, eid string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Submit(ctx, companyID, employeeID, submitRequest())
		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotInCompany)
	})

	t.Run("invalid date range", func(t *testing.T) {
		deps := setupServiceTest(t)

		req := submitRequest()
		req.StartDate = "2026-09-10"
		req.EndDate = "2026-09-09"

		_, err := deps.service.Submit(ctx, companyID, employeeID, req)
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("evaluation error rolls everything back", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.evaluator.err = errors.New("oracle misbehaved")

		_, err := deps.service.Submit(ctx, companyID, employeeID, submitRequest())

		assert.Error(t, err)
		assert.Empty(t, deps.audits.records)
		assert.Empty(t, deps.outbox.events)
	})

	t.Run("pipeline receives the computed day count", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.evaluator.outcome = decision.Outcome{
			Decision: decision.Decision{Action: decision.ActionRejected, Engine: decision.EngineScreening, Confidence: 100},
		}

		_, err := deps.service.Submit(ctx, companyID, employeeID, submitRequest())

		require.NoError(t, err)
		assert.Equal(t, 3, deps.evaluator.lastReq.Days)
		assert.Equal(t, "ANNUAL", deps.evaluator.lastReq.Category)
	})
}

func TestLeaveService_Review(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	employeeID := uuid.New()

	pendingRequest := func() *leave.LeaveRequest {
		return &leave.LeaveRequest{
			ID:         uuid.New(),
			CompanyID:  uuid.MustParse(companyID),
			EmployeeID: employeeID,
			Category:   "ANNUAL",
			TotalDays:  3,
			Status:     leave.StatusPendingReview,
			CreatedAt:  time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		}
	}

	t.Run("approve commits held days", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, cid, id string) (*leave.LeaveRequest, error) {
			return pendingRequest(), nil
		}

		resp, err := deps.service.Review(ctx, companyID, actorID, uuid.New().String(), leave.ReviewLeaveRequest{
			Action:  leave.ReviewActionApprove,
			Comment: "Verified with the team lead.",
		})

		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.Equal(t, decision.EngineManual, resp.DecisionEngine)
		require.NotNil(t, resp.ReviewedBy)
		assert.Equal(t, actorID, *resp.ReviewedBy)

		require.Len(t, deps.ledger.calls, 1)
		assert.Equal(t, ledgerCall{op: "commit", category: "ANNUAL", days: 3}, deps.ledger.calls[0])

		require.Len(t, deps.audits.records, 1)
		require.NotNil(t, deps.audits.records[0].ActorID)
		assert.Equal(t, actorID, deps.audits.records[0].ActorID.String())

		require.Len(t, deps.outbox.events, 1)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("reject releases held days", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, cid, id string) (*leave.LeaveRequest, error) {
			return pendingRequest(), nil
		}

		resp, err := deps.service.Review(ctx, companyID, actorID, uuid.New().String(), leave.ReviewLeaveRequest{
			Action:  leave.ReviewActionReject,
			Comment: "No coverage that week.",
		})

		require.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		require.Len(t, deps.ledger.calls, 1)
		assert.Equal(t, "release", deps.ledger.calls[0].op)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("auto-decided request is not reviewable", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, cid, id string) (*leave.LeaveRequest, error) {
			l := pendingRequest()
			l.Status = leave.StatusApproved
			return l, nil
		}

		_, err := deps.service.Review(ctx, companyID, actorID, uuid.New().String(), leave.ReviewLeaveRequest{
			Action:  leave.ReviewActionApprove,
			Comment: "Looks fine.",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrNotReviewable)
		assert.Empty(t, deps.ledger.calls)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("missing request", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Review(ctx, companyID, actorID, uuid.New().String(), leave.ReviewLeaveRequest{
			Action:  leave.ReviewActionApprove,
			Comment: "Looks fine.",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New()

	owned := func(status string, start time.Time) *leave.LeaveRequest {
		return &leave.LeaveRequest{
			ID:         uuid.New(),
			CompanyID:  uuid.MustParse(companyID),
			EmployeeID: employeeID,
			Category:   "ANNUAL",
			TotalDays:  2,
			Status:     status,
			StartDate:  start,
			CreatedAt:  time.Now().UTC().AddDate(0, 0, -1),
		}
	}

	t.Run("cancel parked request releases hold", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, cid, id string) (*leave.LeaveRequest, error) {
			return owned(leave.StatusPendingReview, time.Now().UTC().AddDate(0, 0, 10)), nil
		}

		resp, err := deps.service.Cancel(ctx, companyID, employeeID.String(), uuid.New().String())

		require.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, resp.Status)
		require.Len(t, deps.ledger.calls, 1)
		assert.Equal(t, "release", deps.ledger.calls[0].op)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("cancel future approved leave refunds days", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, cid, id string) (*leave.LeaveRequest, error) {
			return owned(leave.StatusApproved, time.Now().UTC().AddDate(0, 0, 10)), nil
		}

		resp, err := deps.service.Cancel(ctx, companyID, employeeID.String(), uuid.New().String())

		require.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, resp.Status)
		require.Len(t, deps.ledger.calls, 1)
		assert.Equal(t, ledgerCall{op: "refund", category: "ANNUAL", days: 2}, deps.ledger.calls[0])
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("approved leave already started", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, cid, id string) (*leave.LeaveRequest, error) {
			return owned(leave.StatusApproved, time.Now().UTC().AddDate(0, 0, -1)), nil
		}

		_, err := deps.service.Cancel(ctx, companyID, employeeID.String(), uuid.New().String())

		assert.ErrorIs(t, err, leaveerrors.ErrAlreadyStarted)
		assert.Empty(t, deps.ledger.calls)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("rejected request cannot be cancelled", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, cid, id string) (*leave.LeaveRequest, error) {
			return owned(leave.StatusRejected, time.Now().UTC().AddDate(0, 0, 10)), nil
		}

		_, err := deps.service.Cancel(ctx, companyID, employeeID.String(), uuid.New().String())
		assert.ErrorIs(t, err, leaveerrors.ErrNotCancellable)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("foreign request reads as not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, cid, id string) (*leave.LeaveRequest, error) {
			l := owned(leave.StatusPendingReview, time.Now().UTC().AddDate(0, 0, 10))
			l.EmployeeID = uuid.New()
			return l, nil
		}

		_, err := deps.service.Cancel(ctx, companyID, employeeID.String(), uuid.New().String())
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_GetOwned(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New()

	deps := setupServiceTest(t)
	deps.repo.findByIDFn = func(ctx context.Context, cid, id string) (*leave.LeaveRequest, error) {
		return &leave.LeaveRequest{
			ID:         uuid.MustParse(id),
			CompanyID:  uuid.MustParse(companyID),
			EmployeeID: employeeID,
			Status:     leave.StatusApproved,
		}, nil
	}

	t.Run("owner reads own request", func(t *testing.T) {
		resp, err := deps.service.GetOwned(ctx, companyID, employeeID.String(), uuid.New().String())
		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
	})

	t.Run("foreign request reads as not found", func(t *testing.T) {
		_, err := deps.service.GetOwned(ctx, companyID, uuid.New().String(), uuid.New().String())
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}

func TestLeaveService_GetAuditTrail(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	deps := setupServiceTest(t)
	deps.repo.findByIDFn = func(ctx context.Context, cid, id string) (*leave.LeaveRequest, error) {
		return &leave.LeaveRequest{ID: uuid.MustParse(id)}, nil
	}
	actor := uuid.New()
	deps.audits.byReq = []audit.DecisionAudit{
		{
			ID:                uuid.New(),
			Action:            "PENDING_REVIEW",
			Engine:            decision.EngineAIRules,
			Confidence:        55,
			ScreeningSnapshot: []byte(`{"outcome":"PASS"}`),
		},
		{
			ID:         uuid.New(),
			Action:     "APPROVED",
			Engine:     decision.EngineManual,
			Confidence: 100,
			ActorID:    &actor,
		},
	}

	trail, err := deps.service.GetAuditTrail(ctx, companyID, uuid.New().String())

	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, decision.EngineAIRules, trail[0].Engine)
	assert.JSONEq(t, `{"outcome":"PASS"}`, trail[0].Screening)
	assert.Empty(t, trail[0].ActorID)
	assert.Equal(t, actor.String(), trail[1].ActorID)
}
