package policy

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jaytishah/AI-leave-approval-assistant/internal/decision"
	policyerrors "github.com/jaytishah/AI-leave-approval-assistant/internal/policy/errors"
)

//go:generate mockgen -source=policy_service.go -destination=mock/policy_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context, companyID string) (PolicyResponse, error)
	Update(ctx context.Context, companyID, actorID string, req UpdatePolicyRequest) (PolicyResponse, error)
	AddBlackout(ctx context.Context, companyID, actorID string, req CreateBlackoutRequest) (BlackoutResponse, error)
	RemoveBlackout(ctx context.Context, companyID, id string) error
	// ResolveConfig materializes the company policy for one pipeline run.
	ResolveConfig(ctx context.Context, companyID string) (decision.PolicyConfig, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("policy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("policy.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Get(ctx context.Context, companyID string) (PolicyResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return PolicyResponse{}, policyerrors.ErrInvalidCompanyID
	}

	p, err := s.findOrDefault(ctx, companyID)
	if err != nil {
		return PolicyResponse{}, err
	}
	blackouts, err := s.repo.ListBlackouts(ctx, companyID)
	if err != nil {
		return PolicyResponse{}, err
	}
	return mapToResponse(*p, blackouts), nil
}

func (s *service) Update(ctx context.Context, companyID, actorID string, req UpdatePolicyRequest) (PolicyResponse, error) {
	s.logger.Debug("update policy requested",
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return PolicyResponse{}, policyerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PolicyResponse{}, policyerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update policy begin tx failed", zap.Error(err))
		return PolicyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := s.findOrDefault(ctx, companyID)
	if err != nil {
		return PolicyResponse{}, err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
		p.CompanyID = companyUUID
	}

	applyUpdate(p, req)
	if p.AutoRejectMax >= p.AutoApproveMin {
		return PolicyResponse{}, policyerrors.ErrInvalidThresholds
	}
	p.UpdatedBy = &actorUUID

	if err := qtx.Upsert(ctx, p); err != nil {
		s.logger.Error("update policy persist failed", zap.Error(err))
		return PolicyResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update policy commit failed", zap.Error(err))
		return PolicyResponse{}, err
	}
	s.logger.Info("update policy success",
		zap.String("company_id", companyID),
		zap.Int("auto_approve_min", p.AutoApproveMin),
		zap.Int("auto_reject_max", p.AutoRejectMax),
	)

	blackouts, err := s.repo.ListBlackouts(ctx, companyID)
	if err != nil {
		return PolicyResponse{}, err
	}
	return mapToResponse(*p, blackouts), nil
}

func (s *service) AddBlackout(ctx context.Context, companyID, actorID string, req CreateBlackoutRequest) (BlackoutResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return BlackoutResponse{}, policyerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return BlackoutResponse{}, policyerrors.ErrInvalidActorID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return BlackoutResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return BlackoutResponse{}, err
	}
	if startDate.After(endDate) {
		return BlackoutResponse{}, policyerrors.ErrInvalidDateRange
	}

	b := &BlackoutPeriod{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
		CreatedBy: actorUUID,
	}
	if err := s.repo.CreateBlackout(ctx, b); err != nil {
		s.logger.Error("create blackout persist failed", zap.Error(err))
		return BlackoutResponse{}, err
	}
	s.logger.Info("blackout period created",
		zap.String("company_id", companyID),
		zap.String("name", req.Name),
	)
	return mapBlackout(*b), nil
}

func (s *service) RemoveBlackout(ctx context.Context, companyID, id string) error {
	if _, err := uuid.Parse(companyID); err != nil {
		return policyerrors.ErrInvalidCompanyID
	}
	affected, err := s.repo.DeleteBlackout(ctx, companyID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return policyerrors.ErrBlackoutNotFound
	}
	return nil
}

func (s *service) ResolveConfig(ctx context.Context, companyID string) (decision.PolicyConfig, error) {
	p, err := s.findOrDefault(ctx, companyID)
	if err != nil {
		return decision.PolicyConfig{}, err
	}
	blackouts, err := s.repo.ListBlackouts(ctx, companyID)
	if err != nil {
		return decision.PolicyConfig{}, err
	}
	return toPolicyConfig(*p, blackouts), nil
}

// findOrDefault returns the stored policy or an unsaved default. The caller
// decides whether to persist it.
func (s *service) findOrDefault(ctx context.Context, companyID string) (*LeavePolicy, error) {
	p, err := s.repo.FindByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return defaultEntity(), nil
		}
		return nil, err
	}
	return p, nil
}

func defaultEntity() *LeavePolicy {
	d := decision.DefaultPolicyConfig()
	return &LeavePolicy{
		AutoApproveMin:             d.Thresholds.AutoApproveMin,
		AutoRejectMax:              d.Thresholds.AutoRejectMax,
		SoftFlagBlocksApproval:     d.Thresholds.SoftFlagBlocksApproval,
		AllowNegativeBalance:       d.AllowNegativeBalance,
		PastStartGraceDays:         d.PastStartGraceDays,
		LongLeaveThresholdDays:     d.LongLeaveThresholdDays,
		MinAdvanceDaysForLongLeave: d.MinAdvanceDaysForLongLeave,
		MaxConsecutiveLeaveDays:    d.MaxConsecutiveLeaveDays,
		MaxUnplannedLeaves30Days:   d.MaxUnplannedLeaves30Days,
		MaxLeaves90Days:            d.MaxLeaves90Days,
		MaxPatternScore:            d.MaxPatternScore,
		MedicalProofAfterDays:      d.MedicalProofAfterDays,
		HistoryWindowDays:          d.HistoryWindowDays,
		BalanceExemptCategories:    strings.Join(d.BalanceExemptCategories, ","),
	}
}

func applyUpdate(p *LeavePolicy, req UpdatePolicyRequest) {
	if req.AutoApproveMin != nil {
		p.AutoApproveMin = *req.AutoApproveMin
	}
	if req.AutoRejectMax != nil {
		p.AutoRejectMax = *req.AutoRejectMax
	}
	if req.SoftFlagBlocksApproval != nil {
		p.SoftFlagBlocksApproval = *req.SoftFlagBlocksApproval
	}
	if req.AllowNegativeBalance != nil {
		p.AllowNegativeBalance = *req.AllowNegativeBalance
	}
	if req.PastStartGraceDays != nil {
		p.PastStartGraceDays = *req.PastStartGraceDays
	}
	if req.LongLeaveThresholdDays != nil {
		p.LongLeaveThresholdDays = *req.LongLeaveThresholdDays
	}
	if req.MinAdvanceDaysForLongLeave != nil {
		p.MinAdvanceDaysForLongLeave = *req.MinAdvanceDaysForLongLeave
	}
	if req.MaxConsecutiveLeaveDays != nil {
		p.MaxConsecutiveLeaveDays = *req.MaxConsecutiveLeaveDays
	}
	if req.MaxUnplannedLeaves30Days != nil {
		p.MaxUnplannedLeaves30Days = *req.MaxUnplannedLeaves30Days
	}
	if req.MaxLeaves90Days != nil {
		p.MaxLeaves90Days = *req.MaxLeaves90Days
	}
	if req.MaxPatternScore != nil {
		p.MaxPatternScore = *req.MaxPatternScore
	}
	if req.MedicalProofAfterDays != nil {
		p.MedicalProofAfterDays = *req.MedicalProofAfterDays
	}
	if req.HistoryWindowDays != nil {
		p.HistoryWindowDays = *req.HistoryWindowDays
	}
	if req.ReasonOptionalCategories != nil {
		p.ReasonOptionalCategories = normalizeCategories(*req.ReasonOptionalCategories)
	}
	if req.BalanceExemptCategories != nil {
		p.BalanceExemptCategories = normalizeCategories(*req.BalanceExemptCategories)
	}
}

func normalizeCategories(v string) string {
	parts := splitCategories(v)
	return strings.Join(parts, ",")
}

func splitCategories(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func toPolicyConfig(p LeavePolicy, blackouts []BlackoutPeriod) decision.PolicyConfig {
	cfg := decision.DefaultPolicyConfig()
	cfg.AllowNegativeBalance = p.AllowNegativeBalance
	cfg.ReasonOptionalCategories = splitCategories(p.ReasonOptionalCategories)
	cfg.BalanceExemptCategories = splitCategories(p.BalanceExemptCategories)
	cfg.PastStartGraceDays = p.PastStartGraceDays
	cfg.LongLeaveThresholdDays = p.LongLeaveThresholdDays
	cfg.MinAdvanceDaysForLongLeave = p.MinAdvanceDaysForLongLeave
	cfg.MaxConsecutiveLeaveDays = p.MaxConsecutiveLeaveDays
	cfg.MaxUnplannedLeaves30Days = p.MaxUnplannedLeaves30Days
	cfg.MaxLeaves90Days = p.MaxLeaves90Days
	cfg.MaxPatternScore = p.MaxPatternScore
	cfg.MedicalProofAfterDays = p.MedicalProofAfterDays
	cfg.HistoryWindowDays = p.HistoryWindowDays
	cfg.Thresholds = decision.Thresholds{
		AutoApproveMin:         p.AutoApproveMin,
		AutoRejectMax:          p.AutoRejectMax,
		SoftFlagBlocksApproval: p.SoftFlagBlocksApproval,
	}
	for _, b := range blackouts {
		cfg.Blackouts = append(cfg.Blackouts, decision.BlackoutWindow{
			Name:  b.Name,
			Start: b.StartDate,
			End:   b.EndDate,
		})
	}
	return cfg
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, policyerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(p LeavePolicy, blackouts []BlackoutPeriod) PolicyResponse {
	resp := PolicyResponse{
		ID:                         p.ID.String(),
		CompanyID:                  p.CompanyID.String(),
		AutoApproveMin:             p.AutoApproveMin,
		AutoRejectMax:              p.AutoRejectMax,
		SoftFlagBlocksApproval:     p.SoftFlagBlocksApproval,
		AllowNegativeBalance:       p.AllowNegativeBalance,
		PastStartGraceDays:         p.PastStartGraceDays,
		LongLeaveThresholdDays:     p.LongLeaveThresholdDays,
		MinAdvanceDaysForLongLeave: p.MinAdvanceDaysForLongLeave,
		MaxConsecutiveLeaveDays:    p.MaxConsecutiveLeaveDays,
		MaxUnplannedLeaves30Days:   p.MaxUnplannedLeaves30Days,
		MaxLeaves90Days:            p.MaxLeaves90Days,
		MaxPatternScore:            p.MaxPatternScore,
		MedicalProofAfterDays:      p.MedicalProofAfterDays,
		HistoryWindowDays:          p.HistoryWindowDays,
		ReasonOptionalCategories:   p.ReasonOptionalCategories,
		BalanceExemptCategories:    p.BalanceExemptCategories,
		Blackouts:                  make([]BlackoutResponse, 0, len(blackouts)),
	}
	for _, b := range blackouts {
		resp.Blackouts = append(resp.Blackouts, mapBlackout(b))
	}
	return resp
}

func mapBlackout(b BlackoutPeriod) BlackoutResponse {
	return BlackoutResponse{
		ID:        b.ID.String(),
		Name:      b.Name,
		StartDate: b.StartDate.Format("2006-01-02"),
		EndDate:   b.EndDate.Format("2006-01-02"),
	}
}
