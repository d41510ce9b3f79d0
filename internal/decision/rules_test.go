package decision

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ruleNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) // a Monday

func day(offset int) time.Time {
	return time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func healthyContext() EmployeeContext {
	return EmployeeContext{
		Balances: map[string]CategoryBalance{
			"ANNUAL": {Total: 20, Used: 4, Pending: 0, Remaining: 16},
			"SICK":   {Total: 10, Used: 2, Pending: 0, Remaining: 8},
		},
		Stats: AggregateStats{RiskLevel: RiskLow},
	}
}

func baseRequest() Request {
	return Request{
		RequestID:     "lr-1",
		EmployeeID:    "emp-1",
		Category:      "ANNUAL",
		StartDate:     day(10),
		EndDate:       day(11),
		Days:          2,
		Justification: "Attending a family event out of town.",
	}
}

func findViolation(t *testing.T, v RuleVerdict, ruleID string) RuleViolation {
	t.Helper()
	for _, violation := range v.Violations {
		if violation.RuleID == ruleID {
			return violation
		}
	}
	require.Failf(t, "violation not found", "rule %s not in %+v", ruleID, v.Violations)
	return RuleViolation{}
}

func TestEvaluateRules_CleanRequestPasses(t *testing.T) {
	verdict := EvaluateRules(baseRequest(), healthyContext(), DefaultPolicyConfig(), ruleNow)
	assert.Equal(t, RulesPass, verdict.Outcome)
	assert.Empty(t, verdict.Violations)
}

func TestEvaluateRules_InvalidDateRange(t *testing.T) {
	req := baseRequest()
	req.StartDate, req.EndDate = req.EndDate, req.StartDate

	verdict := EvaluateRules(req, healthyContext(), DefaultPolicyConfig(), ruleNow)
	assert.Equal(t, RulesHardReject, verdict.Outcome)
	findViolation(t, verdict, RuleInvalidDateRange)
}

func TestEvaluateRules_InsufficientBalance(t *testing.T) {
	req := baseRequest()
	req.Days = 17
	req.EndDate = day(26)

	verdict := EvaluateRules(req, healthyContext(), DefaultPolicyConfig(), ruleNow)
	v := findViolation(t, verdict, RuleInsufficientBalance)
	assert.Equal(t, SeverityHard, v.Severity)
	assert.Contains(t, v.Detail, "remaining ANNUAL balance of 16")
}

func TestEvaluateRules_MissingBalanceTreatedAsZero(t *testing.T) {
	req := baseRequest()
	req.Category = "MATERNITY"

	verdict := EvaluateRules(req, healthyContext(), DefaultPolicyConfig(), ruleNow)
	assert.Equal(t, RulesHardReject, verdict.Outcome)
	findViolation(t, verdict, RuleInsufficientBalance)
}

func TestEvaluateRules_BalanceExemptCategorySkipsCheck(t *testing.T) {
	req := baseRequest()
	req.Category = "UNPAID"
	req.Days = 3
	req.EndDate = day(12)

	verdict := EvaluateRules(req, EmployeeContext{Stats: AggregateStats{RiskLevel: RiskLow}}, DefaultPolicyConfig(), ruleNow)
	assert.Equal(t, RulesPass, verdict.Outcome)
}

func TestEvaluateRules_NegativeBalanceAllowedByPolicy(t *testing.T) {
	cfg := DefaultPolicyConfig()
	cfg.AllowNegativeBalance = true

	req := baseRequest()
	req.Days = 30
	req.EndDate = day(39)
	req.StartDate = day(10)

	ec := healthyContext()
	verdict := EvaluateRules(req, ec, cfg, ruleNow)
	for _, v := range verdict.Violations {
		assert.NotEqual(t, RuleInsufficientBalance, v.RuleID)
	}
}

func TestEvaluateRules_StartDateGraceWindow(t *testing.T) {
	cfg := DefaultPolicyConfig()

	t.Run("yesterday within grace", func(t *testing.T) {
		req := baseRequest()
		req.StartDate = day(-1)
		req.EndDate = day(-1)
		req.Days = 1

		verdict := EvaluateRules(req, healthyContext(), cfg, ruleNow)
		for _, v := range verdict.Violations {
			assert.NotEqual(t, RuleStartDateInPast, v.RuleID)
		}
	})

	t.Run("two days ago rejected", func(t *testing.T) {
		req := baseRequest()
		req.StartDate = day(-2)
		req.EndDate = day(-2)
		req.Days = 1

		verdict := EvaluateRules(req, healthyContext(), cfg, ruleNow)
		findViolation(t, verdict, RuleStartDateInPast)
	})
}

func TestEvaluateRules_AdvanceNoticeForLongLeave(t *testing.T) {
	req := baseRequest()
	req.Days = 6
	req.StartDate = day(3)
	req.EndDate = day(8)

	verdict := EvaluateRules(req, healthyContext(), DefaultPolicyConfig(), ruleNow)
	v := findViolation(t, verdict, RuleAdvanceNotice)
	assert.Contains(t, v.Detail, "advance notice")

	// Same duration with enough notice passes.
	req.StartDate = day(8)
	req.EndDate = day(13)
	verdict = EvaluateRules(req, healthyContext(), DefaultPolicyConfig(), ruleNow)
	assert.Equal(t, RulesPass, verdict.Outcome)
}

func TestEvaluateRules_ConsecutiveStreakCap(t *testing.T) {
	ec := healthyContext()
	ec.Stats.ConsecutiveStreakDays = 14

	verdict := EvaluateRules(baseRequest(), ec, DefaultPolicyConfig(), ruleNow)
	findViolation(t, verdict, RuleMaxConsecutiveDays)
}

func TestEvaluateRules_BlackoutOverlap(t *testing.T) {
	cfg := DefaultPolicyConfig()
	cfg.Blackouts = []BlackoutWindow{{Name: "quarter close", Start: day(9), End: day(12)}}

	verdict := EvaluateRules(baseRequest(), healthyContext(), cfg, ruleNow)
	v := findViolation(t, verdict, RuleBlackoutPeriod)
	assert.Contains(t, v.Detail, "quarter close")

	// Adjacent but non-overlapping range passes.
	req := baseRequest()
	req.StartDate = day(13)
	req.EndDate = day(14)
	verdict = EvaluateRules(req, healthyContext(), cfg, ruleNow)
	assert.Equal(t, RulesPass, verdict.Outcome)
}

func TestEvaluateRules_ReasonRequired(t *testing.T) {
	req := baseRequest()
	req.Justification = ""

	verdict := EvaluateRules(req, healthyContext(), DefaultPolicyConfig(), ruleNow)
	findViolation(t, verdict, RuleReasonRequired)

	cfg := DefaultPolicyConfig()
	cfg.ReasonOptionalCategories = []string{"ANNUAL"}
	verdict = EvaluateRules(req, healthyContext(), cfg, ruleNow)
	assert.Equal(t, RulesPass, verdict.Outcome)
}

func TestEvaluateRules_SoftViolationsDoNotReject(t *testing.T) {
	ec := healthyContext()
	ec.Stats.UnplannedLast30Days = 3
	ec.Stats.TotalLast90Days = 10
	ec.Stats.PatternScore = 0.8

	verdict := EvaluateRules(baseRequest(), ec, DefaultPolicyConfig(), ruleNow)
	assert.Equal(t, RulesSoftFlag, verdict.Outcome)
	assert.Len(t, verdict.SoftViolations(), 3)
	assert.Empty(t, verdict.HardViolations())

	findViolation(t, verdict, RuleUnplannedFrequency)
	findViolation(t, verdict, RuleLeaveFrequency)
	findViolation(t, verdict, RuleWeekdayPattern)
}

func TestEvaluateRules_HardOutweighsSoft(t *testing.T) {
	req := baseRequest()
	req.Days = 17
	req.EndDate = day(26)

	ec := healthyContext()
	ec.Stats.PatternScore = 0.9

	verdict := EvaluateRules(req, ec, DefaultPolicyConfig(), ruleNow)
	assert.Equal(t, RulesHardReject, verdict.Outcome)
	assert.NotEmpty(t, verdict.SoftViolations(), "soft flags still recorded alongside hard violations")
}

func TestEvaluateRules_AllViolationsCollected(t *testing.T) {
	// Rules never short-circuit each other: a request can trip several.
	req := baseRequest()
	req.Days = 20
	req.StartDate = day(1)
	req.EndDate = day(20)
	req.Justification = ""

	verdict := EvaluateRules(req, healthyContext(), DefaultPolicyConfig(), ruleNow)
	assert.Equal(t, RulesHardReject, verdict.Outcome)
	assert.GreaterOrEqual(t, len(verdict.HardViolations()), 3)
}
