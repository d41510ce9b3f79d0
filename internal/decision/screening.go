package decision

import (
	"fmt"
	"regexp"
	"strings"
)

// Screen validates free-text justification before any scoring happens. It is a
// pure function over the text and the configured thresholds: injection and
// manipulation attempts first, then gibberish, then length bounds. The first
// failing check wins and the pipeline never forwards rejected text to the
// advisory oracle.
func Screen(text string, cfg ScreeningConfig) ScreeningVerdict {
	trimmed := strings.TrimSpace(text)

	if flag, ok := detectManipulation(trimmed, cfg); ok {
		return ScreeningVerdict{
			Outcome: ScreeningReject,
			Reason:  ReasonSecurityViolation,
			Explanation: "Justification rejected due to a security violation. Leave justifications must " +
				"only contain the genuine reason for absence, not instructions, markup, or attempts to " +
				"manipulate the evaluation.",
			Flags: []string{flag, "manipulation_attempt"},
		}
	}

	if flag, ok := detectGibberish(trimmed, cfg); ok {
		return ScreeningVerdict{
			Outcome: ScreeningReject,
			Reason:  ReasonGibberish,
			Explanation: "Justification rejected as low-information input. The text contains random " +
				"characters or no meaningful content. A valid justification must clearly explain the " +
				"reason for absence in professional language.",
			Flags: []string{flag, "no_meaningful_content"},
		}
	}

	if len(trimmed) < cfg.MinChars {
		return ScreeningVerdict{
			Outcome: ScreeningReject,
			Reason:  ReasonTooShort,
			Explanation: fmt.Sprintf("Justification rejected: fewer than %d characters. "+
				"Provide a clear, detailed explanation of why leave is needed.", cfg.MinChars),
		}
	}

	words := strings.Fields(trimmed)
	if len(words) < cfg.MinWords {
		return ScreeningVerdict{
			Outcome: ScreeningReject,
			Reason:  ReasonTooFewWords,
			Explanation: fmt.Sprintf("Justification rejected: only %d word(s) provided, minimum is %d. "+
				"Include the specific reason, why you cannot work, and any relevant details.",
				len(words), cfg.MinWords),
		}
	}
	if len(words) > cfg.MaxWords {
		return ScreeningVerdict{
			Outcome: ScreeningReject,
			Reason:  ReasonTooManyWords,
			Explanation: fmt.Sprintf("Justification rejected: %d words provided, maximum is %d. "+
				"Overly long justifications can be attempts to confuse the evaluation; keep it concise.",
				len(words), cfg.MaxWords),
			Flags: []string{"potential_manipulation"},
		}
	}

	return ScreeningVerdict{Outcome: ScreeningPass}
}

// Instruction-override, code/script and delimiter-escape constructs. Matched
// as lowercase substrings against the whole justification.
var manipulationPhrases = []string{
	"ignore previous", "ignore all previous", "ignore the above",
	"ignore instructions", "disregard", "forget the", "forget all",
	"new instructions", "system:", "system prompt",
	"you are now", "act as", "pretend you are", "imagine you are",
	"roleplay", "your new role", "override", "overwrite",
	"sudo", "root access", "jailbreak", "prompt injection",
	"approve this", "must approve", "always approve",
	"set status to approved", "return approved", "status: approved",
	"bypass", "skip validation",
	"approved = true", "status = approved", "confidence = 100",
	"instead of rejecting", "do not reject", "never reject",
	"cannot reject", "should not reject", "ignore rules", "break rules",
	"end of prompt", "new prompt", "system message",
	"assistant message", "user message", "prompt ends",
	"you are a", "your role is", "you should act",
	"you will now", "from now on", "starting now",
	"select *", "drop table", "exec(", "eval(",
	"<script>", "javascript:", "console.log", "os.system", "subprocess",
	`"""`, "'''", "```", "---end---", "---stop---",
	"</prompt>", "</instruction>", "</system>",
	"###", "[system]", "<system>", "{{system}}",
	"assistant:", "[assistant]", "<assistant>",
}

var codeInjectionRe = []*regexp.Regexp{
	regexp.MustCompile(`\bselect\b.*\bfrom\b|\bdrop\b.*\btable\b|\bexec\b.*\(`),
	regexp.MustCompile(`\bdelete\b.*\bfrom\b|\binsert\b.*\binto\b`),
	regexp.MustCompile(`;\s*drop\b|;\s*delete\b|;\s*update\b`),
	regexp.MustCompile(`<script[^>]*>|<iframe[^>]*>|<object[^>]*>`),
	regexp.MustCompile(`javascript:|data:text/html|vbscript:`),
}

func detectManipulation(text string, cfg ScreeningConfig) (string, bool) {
	if text == "" {
		return "", false
	}
	lower := strings.ToLower(text)

	for _, phrase := range manipulationPhrases {
		if strings.Contains(lower, phrase) {
			return "injection_pattern", true
		}
	}

	for _, re := range codeInjectionRe {
		if re.MatchString(lower) {
			return "code_injection", true
		}
	}

	special := 0
	for _, r := range text {
		switch r {
		case '<', '>', '{', '}', '[', ']', '`':
			special++
		}
	}
	if special > cfg.MaxSpecialChars {
		return "excessive_special_characters", true
	}

	if strings.Count(text, "!") > cfg.MaxPunctRepeats || strings.Count(text, "?") > cfg.MaxPunctRepeats {
		return "excessive_punctuation", true
	}

	if strings.Count(text, "\n") > cfg.MaxNewlines {
		return "excessive_line_breaks", true
	}

	// C1 control characters are an encoding-trick tell.
	for _, r := range text {
		if r > 127 && r < 160 {
			return "control_characters", true
		}
	}

	return "", false
}

var keyboardMashPatterns = []string{
	"asdf", "qwert", "zxcv", "hjkl", "jkl;", "12345", "abcdefg", "lkjhg",
}

func detectGibberish(text string, cfg ScreeningConfig) (string, bool) {
	if text == "" {
		return "empty_text", true
	}
	lower := strings.ToLower(text)

	if ratio := allowedCharRatio(text); ratio < cfg.MinAlphaRatio {
		return "low_alphabetic_ratio", true
	}

	if hasCharRun(text, cfg.MaxCharRun) {
		return "repeated_characters", true
	}

	words := strings.Fields(text)
	if len(words) > 2 {
		if vowelTokenRatio(words) < cfg.MinVowelTokenRatio {
			return "vowelless_tokens", true
		}
	}

	if len(text) < cfg.MashMaxLen {
		for _, pattern := range keyboardMashPatterns {
			if strings.Contains(lower, pattern) {
				return "keyboard_mash", true
			}
		}
	}

	if hasConsonantRun(lower, cfg.MaxConsonantRun) {
		return "consonant_run", true
	}

	if len(words) > 3 && isSingleRepeatedWord(words) {
		return "repeated_word", true
	}

	return "", false
}

// allowedCharRatio measures letters, spaces and basic punctuation against the
// full text length. Anything below the threshold reads as noise.
func allowedCharRatio(text string) float64 {
	if len(text) == 0 {
		return 0
	}
	allowed := 0
	total := 0
	for _, r := range text {
		total++
		if isLetter(r) || r == ' ' || r == '\t' || r == '\n' ||
			strings.ContainsRune(".,!?'-", r) {
			allowed++
		}
	}
	return float64(allowed) / float64(total)
}

func vowelTokenRatio(words []string) float64 {
	withVowel := 0
	for _, w := range words {
		if strings.ContainsAny(strings.ToLower(w), "aeiou") {
			withVowel++
		}
	}
	return float64(withVowel) / float64(len(words))
}

func hasCharRun(text string, limit int) bool {
	if limit <= 0 {
		return false
	}
	run := 0
	var prev rune = -1
	for _, r := range text {
		if r == prev {
			run++
			if run >= limit {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

func hasConsonantRun(lower string, limit int) bool {
	if limit <= 0 {
		return false
	}
	run := 0
	for _, r := range lower {
		if r >= 'a' && r <= 'z' && !strings.ContainsRune("aeiou", r) {
			run++
			if run >= limit {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

func isSingleRepeatedWord(words []string) bool {
	first := strings.ToLower(words[0])
	for _, w := range words[1:] {
		if strings.ToLower(w) != first {
			return false
		}
	}
	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
