package decision

import "time"

// ScreeningConfig holds the text-quality thresholds. These are policy
// constants, not domain invariants, so every one of them is tunable.
type ScreeningConfig struct {
	MinChars           int     `json:"min_chars"`
	MinWords           int     `json:"min_words"`
	MaxWords           int     `json:"max_words"`
	MaxSpecialChars    int     `json:"max_special_chars"`
	MaxPunctRepeats    int     `json:"max_punct_repeats"`
	MaxNewlines        int     `json:"max_newlines"`
	MinAlphaRatio      float64 `json:"min_alpha_ratio"`
	MinVowelTokenRatio float64 `json:"min_vowel_token_ratio"`
	MaxCharRun         int     `json:"max_char_run"`
	MaxConsonantRun    int     `json:"max_consonant_run"`
	MashMaxLen         int     `json:"mash_max_len"`
}

func DefaultScreeningConfig() ScreeningConfig {
	return ScreeningConfig{
		MinChars:           10,
		MinWords:           5,
		MaxWords:           300,
		MaxSpecialChars:    4,
		MaxPunctRepeats:    3,
		MaxNewlines:        5,
		MinAlphaRatio:      0.60,
		MinVowelTokenRatio: 0.40,
		MaxCharRun:         6,
		MaxConsonantRun:    6,
		MashMaxLen:         25,
	}
}

// Thresholds drive the combiner's score bands.
type Thresholds struct {
	AutoApproveMin int `json:"auto_approve_min"`
	AutoRejectMax  int `json:"auto_reject_max"`
	// SoftFlagBlocksApproval forces PENDING_REVIEW when any soft flag is
	// present, even above the auto-approve score.
	SoftFlagBlocksApproval bool `json:"soft_flag_blocks_approval"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		AutoApproveMin:         80,
		AutoRejectMax:          30,
		SoftFlagBlocksApproval: true,
	}
}

type BlackoutWindow struct {
	Name  string    `json:"name"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// PolicyConfig is an immutable snapshot passed into each evaluation. It is
// never read from ambient state, so evaluations stay deterministic and
// parallel-safe.
type PolicyConfig struct {
	AllowNegativeBalance       bool
	ReasonOptionalCategories   []string
	BalanceExemptCategories    []string
	PastStartGraceDays         int
	LongLeaveThresholdDays     int
	MinAdvanceDaysForLongLeave int
	MaxConsecutiveLeaveDays    int
	MaxUnplannedLeaves30Days   int
	MaxLeaves90Days            int
	MaxPatternScore            float64
	MedicalProofAfterDays      int
	HistoryWindowDays          int
	Blackouts                  []BlackoutWindow
	Thresholds                 Thresholds
	Screening                  ScreeningConfig
}

func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		AllowNegativeBalance:       false,
		ReasonOptionalCategories:   nil,
		BalanceExemptCategories:    []string{"UNPAID"},
		PastStartGraceDays:         1,
		LongLeaveThresholdDays:     5,
		MinAdvanceDaysForLongLeave: 7,
		MaxConsecutiveLeaveDays:    15,
		MaxUnplannedLeaves30Days:   3,
		MaxLeaves90Days:            10,
		MaxPatternScore:            0.7,
		MedicalProofAfterDays:      2,
		HistoryWindowDays:          180,
		Thresholds:                 DefaultThresholds(),
		Screening:                  DefaultScreeningConfig(),
	}
}

func (c PolicyConfig) reasonOptional(category string) bool {
	for _, cat := range c.ReasonOptionalCategories {
		if cat == category {
			return true
		}
	}
	return false
}

// BalanceExempt reports whether a category is tracked outside the balance
// ledger. Exempt categories skip both the balance rule and the hold.
func (c PolicyConfig) BalanceExempt(category string) bool {
	for _, cat := range c.BalanceExemptCategories {
		if cat == category {
			return true
		}
	}
	return false
}
