package engine

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Guard identifiers. Guards are classification signals that do not come
// from the rule tables; they appear in Verdict.Patterns like rules do.
const (
	GuardInputLength = "guard/input-length"
)

// Input-side confidence curve: min(1, 0.3n + 0.7) for n signals.
const (
	inputConfidenceSlope = 0.3
	inputConfidenceBase  = 0.7
)

// InputClassifier scans user text against the input rule tables before
// it reaches the model. Stateless after construction; safe for
// concurrent use.
type InputClassifier struct {
	rules    []Rule
	maxChars int
	logger   *zap.Logger
}

// NewInputClassifier builds an input classifier over the library's input
// tables. maxChars is the length guard threshold (characters, not bytes).
func NewInputClassifier(lib *Library, maxChars int, logger *zap.Logger) *InputClassifier {
	return &InputClassifier{
		rules:    lib.Input,
		maxChars: maxChars,
		logger:   logger,
	}
}

// Classify evaluates one user message and returns a fresh Verdict.
// Any string, including empty, is a valid input.
func (c *InputClassifier) Classify(text string) Verdict {
	if strings.TrimSpace(text) == "" {
		return emptyVerdict()
	}

	var s scan
	s.matchRules(c.rules, normalize(text))

	// Oversized input is suspicious regardless of what it contains.
	if utf8.RuneCountInString(text) > c.maxChars {
		s.addGuard(GuardInputLength, SeverityMedium, "input length exceeds safe limits")
	}

	v := s.verdict(inputConfidenceSlope, inputConfidenceBase, "input appears safe")

	if v.Severity != SeveritySafe {
		c.logger.Warn("input flagged",
			zap.String("severity", v.Severity.String()),
			zap.String("action", v.Action.String()),
			zap.Int("patterns", len(v.Patterns)),
		)
	}

	return v
}
