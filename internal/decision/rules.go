package decision

import (
	"fmt"
	"time"
)

// Deterministic policy rule identifiers.
const (
	RuleInvalidDateRange    = "invalid_date_range"
	RuleInsufficientBalance = "insufficient_balance"
	RuleStartDateInPast     = "start_date_in_past"
	RuleAdvanceNotice       = "advance_notice"
	RuleMaxConsecutiveDays  = "max_consecutive_days"
	RuleBlackoutPeriod      = "blackout_period"
	RuleReasonRequired      = "reason_required"
	RuleUnplannedFrequency  = "unplanned_frequency_30d"
	RuleLeaveFrequency      = "leave_frequency_90d"
	RuleWeekdayPattern      = "weekday_pattern"
)

// EvaluateRules runs the deterministic compliance checks. They are independent
// of the free-text justification content and of the advisory oracle: a single
// HARD violation terminates the pipeline, SOFT violations carry forward as
// risk signals.
func EvaluateRules(req Request, ec EmployeeContext, cfg PolicyConfig, now time.Time) RuleVerdict {
	var violations []RuleViolation

	hard := func(id, detail string) {
		violations = append(violations, RuleViolation{RuleID: id, Severity: SeverityHard, Detail: detail})
	}
	soft := func(id, detail string) {
		violations = append(violations, RuleViolation{RuleID: id, Severity: SeveritySoft, Detail: detail})
	}

	if req.EndDate.Before(req.StartDate) {
		hard(RuleInvalidDateRange, "start date is after end date")
	}

	if !cfg.BalanceExempt(req.Category) && !cfg.AllowNegativeBalance {
		balance, ok := ec.Balances[req.Category]
		remaining := 0
		if ok {
			remaining = balance.Remaining
		}
		if req.Days > remaining {
			hard(RuleInsufficientBalance, fmt.Sprintf(
				"requested %d day(s) exceeds remaining %s balance of %d", req.Days, req.Category, remaining))
		}
	}

	grace := time.Duration(cfg.PastStartGraceDays) * 24 * time.Hour
	if req.StartDate.Before(truncateToDay(now).Add(-grace)) {
		hard(RuleStartDateInPast, fmt.Sprintf(
			"start date %s is in the past beyond the %d-day grace window",
			req.StartDate.Format("2006-01-02"), cfg.PastStartGraceDays))
	}

	if cfg.LongLeaveThresholdDays > 0 && req.Days >= cfg.LongLeaveThresholdDays {
		notice := int(req.StartDate.Sub(truncateToDay(now)).Hours() / 24)
		if notice < cfg.MinAdvanceDaysForLongLeave {
			hard(RuleAdvanceNotice, fmt.Sprintf(
				"leave of %d day(s) requires at least %d day(s) advance notice, got %d",
				req.Days, cfg.MinAdvanceDaysForLongLeave, notice))
		}
	}

	if cfg.MaxConsecutiveLeaveDays > 0 {
		if ec.Stats.ConsecutiveStreakDays+req.Days > cfg.MaxConsecutiveLeaveDays {
			hard(RuleMaxConsecutiveDays, fmt.Sprintf(
				"request would extend the consecutive leave streak to %d day(s), maximum is %d",
				ec.Stats.ConsecutiveStreakDays+req.Days, cfg.MaxConsecutiveLeaveDays))
		}
	}

	for _, window := range cfg.Blackouts {
		if overlaps(req.StartDate, req.EndDate, window.Start, window.End) {
			name := window.Name
			if name == "" {
				name = window.Start.Format("2006-01-02") + ".." + window.End.Format("2006-01-02")
			}
			hard(RuleBlackoutPeriod, fmt.Sprintf("requested range overlaps blackout period %q", name))
			break
		}
	}

	if req.Justification == "" && !cfg.reasonOptional(req.Category) {
		hard(RuleReasonRequired, fmt.Sprintf("a justification is required for %s leave", req.Category))
	}

	if cfg.MaxUnplannedLeaves30Days > 0 && ec.Stats.UnplannedLast30Days >= cfg.MaxUnplannedLeaves30Days {
		soft(RuleUnplannedFrequency, fmt.Sprintf(
			"%d unplanned leave(s) in the last 30 days, cap is %d",
			ec.Stats.UnplannedLast30Days, cfg.MaxUnplannedLeaves30Days))
	}

	if cfg.MaxLeaves90Days > 0 && ec.Stats.TotalLast90Days >= cfg.MaxLeaves90Days {
		soft(RuleLeaveFrequency, fmt.Sprintf(
			"%d leave(s) in the last 90 days, cap is %d",
			ec.Stats.TotalLast90Days, cfg.MaxLeaves90Days))
	}

	if cfg.MaxPatternScore > 0 && ec.Stats.PatternScore >= cfg.MaxPatternScore {
		soft(RuleWeekdayPattern, fmt.Sprintf(
			"Monday/Friday leave pattern score %.2f meets the %.2f threshold",
			ec.Stats.PatternScore, cfg.MaxPatternScore))
	}

	return RuleVerdict{Outcome: outcomeFor(violations), Violations: violations}
}

func outcomeFor(violations []RuleViolation) RuleOutcome {
	outcome := RulesPass
	for _, v := range violations {
		if v.Severity == SeverityHard {
			return RulesHardReject
		}
		outcome = RulesSoftFlag
	}
	return outcome
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
