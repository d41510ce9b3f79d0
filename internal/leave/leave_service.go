package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jaytishah/AI-leave-approval-assistant/internal/audit"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/decision"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/employee"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/events"
	leaveerrors "github.com/jaytishah/AI-leave-approval-assistant/internal/leave/errors"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/messaging/kafka"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/policy"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/shared/contextutil"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/shared/counter"
)

const (
	StatusPendingReview = "PENDING_REVIEW"
	StatusApproved      = "APPROVED"
	StatusRejected      = "REJECTED"
	StatusCancelled     = "CANCELLED"
)

const (
	ReviewActionApprove = "APPROVE"
	ReviewActionReject  = "REJECT"
)

// Evaluator is the decision pipeline as the leave service sees it.
type Evaluator interface {
	Evaluate(ctx context.Context, req decision.Request, ec decision.EmployeeContext, cfg decision.PolicyConfig) (decision.Outcome, error)
}

// BalanceLedger moves days between buckets inside the service's transaction.
type BalanceLedger interface {
	Hold(ctx context.Context, tx *sql.Tx, companyID, employeeID, category string, year, days int, allowNegative bool) error
	Commit(ctx context.Context, tx *sql.Tx, companyID, employeeID, category string, year, days int) error
	Release(ctx context.Context, tx *sql.Tx, companyID, employeeID, category string, year, days int) error
	Refund(ctx context.Context, tx *sql.Tx, companyID, employeeID, category string, year, days int) error
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, companyID, employeeID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, companyID, status string) ([]LeaveResponse, error)
	GetMine(ctx context.Context, companyID, employeeID string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error)
	GetOwned(ctx context.Context, companyID, employeeID, id string) (LeaveResponse, error)
	Review(ctx context.Context, companyID, actorID, id string, req ReviewLeaveRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, companyID, employeeID, id string) (LeaveResponse, error)
	GetAuditTrail(ctx context.Context, companyID, id string) ([]AuditEntryResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	counter  counter.Repository
	policies policy.Service
	contexts employee.ContextProvider
	pipeline Evaluator
	ledger   BalanceLedger
	audits   audit.Repository
	outbox   kafka.OutboxRepository
	days     DayCounter
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	policies policy.Service,
	contexts employee.ContextProvider,
	pipeline Evaluator,
	ledger BalanceLedger,
	audits audit.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		counter:  counterRepo,
		policies: policies,
		contexts: contexts,
		pipeline: pipeline,
		ledger:   ledger,
		audits:   audits,
		outbox:   outboxRepo,
		days:     NewCalendarDayCounter(),
		now:      time.Now,
		logger:   l,
	}
}

// Submit runs the full evaluation pipeline and persists the outcome. The
// oracle call happens before the transaction opens so a slow or dead oracle
// never pins a database connection.
func (s *service) Submit(ctx context.Context, companyID, employeeID string, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit leave requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
		zap.String("category", req.Category),
	)

	companyUUID, employeeUUID, startDate, endDate, err := validateSubmitRequest(companyID, employeeID, req)
	if err != nil {
		s.logger.Warn("submit leave validation failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	belongs, err := s.repo.EmployeeBelongsToCompany(ctx, companyID, employeeID)
	if err != nil {
		s.logger.Error("submit leave employee company check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !belongs {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotInCompany
	}

	overlap, err := s.repo.HasOverlappingPeriod(ctx, companyID, employeeID, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("submit leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	cfg, err := s.policies.ResolveConfig(ctx, companyID)
	if err != nil {
		s.logger.Error("submit leave policy resolve failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	now := s.now().UTC()
	ec, err := s.contexts.BuildContext(ctx, companyID, employeeID, cfg, now)
	if err != nil {
		s.logger.Error("submit leave context build failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	requestUUID := uuid.New()
	totalDays := s.days.CountDays(startDate, endDate)
	outcome, err := s.pipeline.Evaluate(ctx, decision.Request{
		RequestID:     requestUUID.String(),
		EmployeeID:    employeeID,
		Category:      req.Category,
		StartDate:     startDate,
		EndDate:       endDate,
		Days:          totalDays,
		Justification: req.Justification,
		HasAttachment: req.HasAttachment,
	}, ec, cfg)
	if err != nil {
		s.logger.Error("submit leave evaluation failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// The pre-check above keeps the oracle out of racy submissions; this one
	// closes the window between evaluation and commit.
	overlap, err = qtx.HasOverlappingPeriod(ctx, companyID, employeeID, startDate, endDate, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	if overlap {
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	number, err := s.nextRequestNumber(ctx, companyID, now)
	if err != nil {
		s.logger.Error("submit leave request number failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	l := &LeaveRequest{
		ID:                  requestUUID,
		CompanyID:           companyUUID,
		EmployeeID:          employeeUUID,
		RequestNumber:       number,
		Category:            req.Category,
		StartDate:           startDate,
		EndDate:             endDate,
		TotalDays:           totalDays,
		Justification:       req.Justification,
		HasAttachment:       req.HasAttachment,
		Status:              string(outcome.Decision.Action),
		DecisionEngine:      outcome.Decision.Engine,
		DecisionExplanation: outcome.Decision.Explanation,
		Confidence:          outcome.Decision.Confidence,
		CreatedBy:           employeeUUID,
	}
	if outcome.Decision.Action != decision.ActionPendingReview {
		l.DecidedAt = &now
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if !cfg.BalanceExempt(req.Category) {
		year := now.Year()
		switch outcome.Decision.Action {
		case decision.ActionApproved:
			if err := s.ledger.Hold(ctx, tx, companyID, employeeID, req.Category, year, totalDays, cfg.AllowNegativeBalance); err != nil {
				return LeaveResponse{}, err
			}
			if err := s.ledger.Commit(ctx, tx, companyID, employeeID, req.Category, year, totalDays); err != nil {
				return LeaveResponse{}, err
			}
		case decision.ActionPendingReview:
			if err := s.ledger.Hold(ctx, tx, companyID, employeeID, req.Category, year, totalDays, cfg.AllowNegativeBalance); err != nil {
				return LeaveResponse{}, err
			}
		}
	}

	if err := s.recordAudit(ctx, tx, l, outcome, nil); err != nil {
		s.logger.Error("submit leave audit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.publishDecision(ctx, tx, rid, l, ""); err != nil {
		s.logger.Error("submit leave outbox failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("request_number", l.RequestNumber),
		zap.String("status", l.Status),
		zap.String("engine", l.DecisionEngine),
		zap.Int("confidence", l.Confidence),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, companyID, status string) ([]LeaveResponse, error) {
	requests, err := s.repo.FindAllByCompany(ctx, companyID, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetMine(ctx context.Context, companyID, employeeID string) ([]LeaveResponse, error) {
	requests, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

// GetOwned answers not found rather than forbidden for foreign requests, so
// employees cannot probe which ids exist.
func (s *service) GetOwned(ctx context.Context, companyID, employeeID, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.EmployeeID.String() != employeeID {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	return mapToResponse(*l), nil
}

// Review resolves a parked request. Only PENDING_REVIEW requests are
// reviewable; auto-decided requests stay final.
func (s *service) Review(ctx context.Context, companyID, actorID, id string, req ReviewLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("review leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("action", req.Action),
	)

	if _, err := uuid.Parse(companyID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	cfg, err := s.policies.ResolveConfig(ctx, companyID)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPendingReview {
		return LeaveResponse{}, leaveerrors.ErrNotReviewable
	}

	now := s.now().UTC()
	year := l.CreatedAt.UTC().Year()
	switch req.Action {
	case ReviewActionApprove:
		l.Status = StatusApproved
		if !cfg.BalanceExempt(l.Category) {
			if err := s.ledger.Commit(ctx, tx, companyID, l.EmployeeID.String(), l.Category, year, l.TotalDays); err != nil {
				return LeaveResponse{}, err
			}
		}
	case ReviewActionReject:
		l.Status = StatusRejected
		if !cfg.BalanceExempt(l.Category) {
			if err := s.ledger.Release(ctx, tx, companyID, l.EmployeeID.String(), l.Category, year, l.TotalDays); err != nil {
				return LeaveResponse{}, err
			}
		}
	}
	l.DecisionEngine = decision.EngineManual
	l.DecisionExplanation = req.Comment
	l.Confidence = 100
	l.ReviewedBy = &actorUUID
	l.ReviewComment = &req.Comment
	l.ReviewedAt = &now
	l.DecidedAt = &now

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("review leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.recordManualAudit(ctx, tx, l, actorUUID, req.Comment); err != nil {
		return LeaveResponse{}, err
	}
	if err := s.publishDecision(ctx, tx, rid, l, actorID); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("review leave success",
		zap.String("leave_id", id),
		zap.String("status", l.Status),
		zap.String("actor_id", actorID),
	)

	return mapToResponse(*l), nil
}

// Cancel lets the owner withdraw a request: parked requests release their
// hold, approved future leave refunds its used days.
func (s *service) Cancel(ctx context.Context, companyID, employeeID, id string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("cancel leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("employee_id", employeeID),
	)

	if _, err := uuid.Parse(companyID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	cfg, err := s.policies.ResolveConfig(ctx, companyID)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.EmployeeID.String() != employeeID {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}

	now := s.now().UTC()
	year := l.CreatedAt.UTC().Year()
	switch l.Status {
	case StatusPendingReview:
		if !cfg.BalanceExempt(l.Category) {
			if err := s.ledger.Release(ctx, tx, companyID, employeeID, l.Category, year, l.TotalDays); err != nil {
				return LeaveResponse{}, err
			}
		}
	case StatusApproved:
		if !now.Before(l.StartDate) {
			return LeaveResponse{}, leaveerrors.ErrAlreadyStarted
		}
		if !cfg.BalanceExempt(l.Category) {
			if err := s.ledger.Refund(ctx, tx, companyID, employeeID, l.Category, year, l.TotalDays); err != nil {
				return LeaveResponse{}, err
			}
		}
	default:
		return LeaveResponse{}, leaveerrors.ErrNotCancellable
	}

	l.Status = StatusCancelled
	l.DecidedAt = &now

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("cancel leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.recordManualAudit(ctx, tx, l, employeeUUID, "cancelled by owner"); err != nil {
		return LeaveResponse{}, err
	}
	if err := s.publishDecision(ctx, tx, rid, l, employeeID); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("cancel leave success", zap.String("leave_id", id))

	return mapToResponse(*l), nil
}

func (s *service) GetAuditTrail(ctx context.Context, companyID, id string) ([]AuditEntryResponse, error) {
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}

	entries, err := s.audits.FindByRequest(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	out := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp := AuditEntryResponse{
			ID:            e.ID.String(),
			Action:        e.Action,
			Engine:        e.Engine,
			Explanation:   e.Explanation,
			Confidence:    e.Confidence,
			Screening:     string(e.ScreeningSnapshot),
			Rules:         string(e.RulesSnapshot),
			Advisory:      string(e.AdvisorySnapshot),
			AdvisoryError: e.AdvisoryError,
			CreatedAt:     e.CreatedAt.UTC().Format(time.RFC3339),
		}
		if e.ActorID != nil {
			resp.ActorID = e.ActorID.String()
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *service) nextRequestNumber(ctx context.Context, companyID string, now time.Time) (string, error) {
	day := now.Format("20060102")
	seq, err := s.counter.GetNextValue(ctx, companyID, "leave_request:"+day)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("LR-%s-%04d", day, seq), nil
}

func (s *service) recordAudit(ctx context.Context, tx *sql.Tx, l *LeaveRequest, outcome decision.Outcome, actorID *uuid.UUID) error {
	screening, err := json.Marshal(outcome.Screening)
	if err != nil {
		return err
	}
	a := &audit.DecisionAudit{
		ID:                uuid.New(),
		CompanyID:         l.CompanyID,
		LeaveRequestID:    l.ID,
		EmployeeID:        l.EmployeeID,
		Action:            string(outcome.Decision.Action),
		Engine:            outcome.Decision.Engine,
		Explanation:       outcome.Decision.Explanation,
		Confidence:        outcome.Decision.Confidence,
		ScreeningSnapshot: screening,
		AdvisoryError:     outcome.AdvisoryError,
		ActorID:           actorID,
	}
	if outcome.Rules != nil {
		if a.RulesSnapshot, err = json.Marshal(outcome.Rules); err != nil {
			return err
		}
	}
	if outcome.Advisory != nil {
		if a.AdvisorySnapshot, err = json.Marshal(outcome.Advisory); err != nil {
			return err
		}
	}
	return s.audits.WithTx(tx).Create(ctx, a)
}

func (s *service) recordManualAudit(ctx context.Context, tx *sql.Tx, l *LeaveRequest, actorID uuid.UUID, comment string) error {
	return s.audits.WithTx(tx).Create(ctx, &audit.DecisionAudit{
		ID:             uuid.New(),
		CompanyID:      l.CompanyID,
		LeaveRequestID: l.ID,
		EmployeeID:     l.EmployeeID,
		Action:         l.Status,
		Engine:         decision.EngineManual,
		Explanation:    comment,
		Confidence:     l.Confidence,
		ActorID:        &actorID,
	})
}

func (s *service) publishDecision(ctx context.Context, tx *sql.Tx, rid string, l *LeaveRequest, decidedBy string) error {
	payload, err := json.Marshal(events.LeaveDecisionEvent{
		EventType:     events.LeaveDecisionFinalized,
		RequestID:     l.ID.String(),
		RequestNumber: l.RequestNumber,
		CompanyID:     l.CompanyID.String(),
		EmployeeID:    l.EmployeeID.String(),
		LeaveCategory: l.Category,
		Status:        l.Status,
		Engine:        l.DecisionEngine,
		Confidence:    l.Confidence,
		DecidedBy:     decidedBy,
		OccurredAt:    s.now().UTC(),
	})
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     rid,
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     events.LeaveDecisionFinalized,
		Topic:         events.LeaveDecisionTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func validateSubmitRequest(companyID, employeeID string, req CreateLeaveRequest) (uuid.UUID, uuid.UUID, time.Time, time.Time, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidActorID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return companyUUID, employeeUUID, startDate, endDate, nil
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t.UTC(), nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:                  l.ID.String(),
		RequestNumber:       l.RequestNumber,
		CompanyID:           l.CompanyID.String(),
		EmployeeID:          l.EmployeeID.String(),
		Category:            l.Category,
		StartDate:           l.StartDate.Format("2006-01-02"),
		EndDate:             l.EndDate.Format("2006-01-02"),
		TotalDays:           l.TotalDays,
		Justification:       l.Justification,
		HasAttachment:       l.HasAttachment,
		Status:              l.Status,
		DecisionEngine:      l.DecisionEngine,
		DecisionExplanation: l.DecisionExplanation,
		Confidence:          l.Confidence,
		ReviewComment:       l.ReviewComment,
		CreatedAt:           l.CreatedAt.UTC().Format(time.RFC3339),
	}
	if l.ReviewedBy != nil {
		reviewer := l.ReviewedBy.String()
		resp.ReviewedBy = &reviewer
	}
	if l.ReviewedAt != nil {
		at := l.ReviewedAt.UTC().Format(time.RFC3339)
		resp.ReviewedAt = &at
	}
	if l.DecidedAt != nil {
		at := l.DecidedAt.UTC().Format(time.RFC3339)
		resp.DecidedAt = &at
	}
	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(requests))
	for _, l := range requests {
		out = append(out, mapToResponse(l))
	}
	return out
}
