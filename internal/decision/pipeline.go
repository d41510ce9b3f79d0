package decision

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Outcome bundles the terminal decision with every intermediate verdict so
// the caller can persist a complete audit record.
type Outcome struct {
	Decision      Decision
	Screening     ScreeningVerdict
	Rules         *RuleVerdict
	Advisory      *AdvisoryOpinion
	AdvisoryError string
}

// Pipeline runs the staged evaluation: screening, deterministic rules, then
// the advisory oracle, with the combiner folding the verdicts. Stages after a
// terminal rejection never run, so rejected text never reaches the oracle.
type Pipeline struct {
	advisor Advisor
	now     func() time.Time
	logger  *zap.Logger
}

func NewPipeline(advisor Advisor, logger ...*zap.Logger) *Pipeline {
	l := zap.L().Named("decision.pipeline")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("decision.pipeline")
	}
	return &Pipeline{advisor: advisor, now: time.Now, logger: l}
}

// WithClock overrides the pipeline's notion of now. Tests only.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

func (p *Pipeline) Evaluate(ctx context.Context, req Request, ec EmployeeContext, cfg PolicyConfig) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	screening := Screen(req.Justification, cfg.Screening)
	if screening.Outcome == ScreeningReject {
		p.logger.Info("request rejected at screening",
			zap.String("request_id", req.RequestID),
			zap.String("reason", screening.Reason),
		)
		return Outcome{
			Decision:  Combine(screening, RuleVerdict{Outcome: RulesPass}, nil, cfg.Thresholds),
			Screening: screening,
		}, nil
	}

	rules := EvaluateRules(req, ec, cfg, p.now())
	if rules.Outcome == RulesHardReject {
		p.logger.Info("request rejected by policy rules",
			zap.String("request_id", req.RequestID),
			zap.Int("violations", len(rules.HardViolations())),
		)
		return Outcome{
			Decision:  Combine(screening, rules, nil, cfg.Thresholds),
			Screening: screening,
			Rules:     &rules,
		}, nil
	}

	var advisory *AdvisoryOpinion
	var advisoryErr string
	opinion, err := p.advisor.Score(ctx, advisoryInput(req, ec, cfg))
	switch {
	case err == nil:
		advisory = &opinion
	case errors.Is(err, ErrAdvisoryUnavailable):
		// Fail safe: a dead oracle parks the request, it never auto-approves.
		advisoryErr = err.Error()
		p.logger.Warn("advisory unavailable, routing to manual review",
			zap.String("request_id", req.RequestID),
			zap.Error(err),
		)
	default:
		if ctx.Err() != nil {
			return Outcome{}, ctx.Err()
		}
		return Outcome{}, err
	}

	decision := Combine(screening, rules, advisory, cfg.Thresholds)
	p.logger.Info("evaluation complete",
		zap.String("request_id", req.RequestID),
		zap.String("action", string(decision.Action)),
		zap.String("engine", decision.Engine),
		zap.Int("confidence", decision.Confidence),
	)

	return Outcome{
		Decision:      decision,
		Screening:     screening,
		Rules:         &rules,
		Advisory:      advisory,
		AdvisoryError: advisoryErr,
	}, nil
}

func advisoryInput(req Request, ec EmployeeContext, cfg PolicyConfig) AdvisoryInput {
	return AdvisoryInput{
		Justification: req.Justification,
		Category:      req.Category,
		StartDate:     req.StartDate.Format("2006-01-02"),
		EndDate:       req.EndDate.Format("2006-01-02"),
		Days:          req.Days,
		HasAttachment: req.HasAttachment,
		Stats:         ec.Stats,
		Policy: PolicySummary{
			ReasonMandatory:          !cfg.reasonOptional(req.Category),
			LongLeaveThresholdDays:   cfg.LongLeaveThresholdDays,
			MaxUnplannedLeaves30Days: cfg.MaxUnplannedLeaves30Days,
			MedicalProofAfterDays:    cfg.MedicalProofAfterDays,
		},
	}
}
