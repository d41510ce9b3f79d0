package decision

import (
	"fmt"
	"strings"
)

// Combine folds the three stage verdicts into one terminal decision. The
// precedence order is fixed: screening rejection, then hard rule violations,
// then advisory availability, then score bands. A nil advisory means the
// oracle was unavailable and the request parks in manual review.
func Combine(screening ScreeningVerdict, rules RuleVerdict, advisory *AdvisoryOpinion, t Thresholds) Decision {
	if screening.Outcome == ScreeningReject {
		return Decision{
			Action:      ActionRejected,
			Engine:      EngineScreening,
			Explanation: screening.Explanation,
			Confidence:  100,
		}
	}

	if hard := rules.HardViolations(); len(hard) > 0 {
		return Decision{
			Action:      ActionRejected,
			Engine:      EngineRules,
			Explanation: "Request rejected by policy rules: " + joinViolations(hard),
			Confidence:  100,
		}
	}

	if advisory == nil {
		return Decision{
			Action:      ActionPendingReview,
			Engine:      EngineRules,
			Explanation: "Advisory evaluation was unavailable; the request has been queued for manual review by HR.",
			Confidence:  0,
		}
	}

	soft := rules.SoftViolations()
	score := advisory.ValidityScore

	switch {
	case score >= t.AutoApproveMin:
		if t.SoftFlagBlocksApproval && len(soft) > 0 {
			return Decision{
				Action: ActionPendingReview,
				Engine: EngineAIRules,
				Explanation: fmt.Sprintf(
					"Justification scored %d/100 but soft policy flags require human review: %s",
					score, joinViolations(soft)),
				Confidence: score,
			}
		}
		return Decision{
			Action:      ActionApproved,
			Engine:      EngineAIRules,
			Explanation: fmt.Sprintf("Auto-approved with validity score %d/100. %s", score, advisory.Rationale),
			Confidence:  score,
		}

	case score <= t.AutoRejectMax:
		return Decision{
			Action:      ActionRejected,
			Engine:      EngineAIRules,
			Explanation: fmt.Sprintf("Auto-rejected with validity score %d/100. %s", score, advisory.Rationale),
			Confidence:  score,
		}

	default:
		explanation := fmt.Sprintf(
			"Validity score %d/100 with recommendation %s requires manual review. %s",
			score, advisory.RecommendedAction, advisory.Rationale)
		if len(soft) > 0 {
			explanation += " Soft policy flags: " + joinViolations(soft)
		}
		return Decision{
			Action:      ActionPendingReview,
			Engine:      EngineAIRules,
			Explanation: explanation,
			Confidence:  score,
		}
	}
}

func joinViolations(violations []RuleViolation) string {
	parts := make([]string, 0, len(violations))
	for _, v := range violations {
		parts = append(parts, v.Detail)
	}
	return strings.Join(parts, "; ")
}
