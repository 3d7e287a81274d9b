package engine

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// GuardExcessiveCertainty fires when generated text leans too hard on
// absolute claim markers, independent of any single matched rule.
const GuardExcessiveCertainty = "guard/excessive-certainty"

// Output-side confidence curve: min(1, 0.2n + 0.8) for n signals.
const (
	outputConfidenceSlope = 0.2
	outputConfidenceBase  = 0.8
)

var certaintyWords = regexp.MustCompile(`(?i)(definitely|certainly|guarantee|promise|sure|always|never)`)

// OutputClassifier scans generated text against the output rule tables
// before it reaches the user. Stateless after construction; safe for
// concurrent use.
type OutputClassifier struct {
	rules          []Rule
	certaintyLimit int
	logger         *zap.Logger
}

// NewOutputClassifier builds an output classifier over the library's
// output tables. certaintyLimit is the number of certainty words beyond
// which the excessive-certainty guard fires.
func NewOutputClassifier(lib *Library, certaintyLimit int, logger *zap.Logger) *OutputClassifier {
	return &OutputClassifier{
		rules:          lib.Output,
		certaintyLimit: certaintyLimit,
		logger:         logger,
	}
}

// Classify evaluates one generated response and returns a fresh Verdict.
func (c *OutputClassifier) Classify(text string) Verdict {
	if strings.TrimSpace(text) == "" {
		return emptyVerdict()
	}

	cleaned := normalize(text)

	var s scan
	s.matchRules(c.rules, cleaned)

	// Overconfident market claims are risky even when no individual
	// pattern matches.
	if len(certaintyWords.FindAllStringIndex(cleaned, -1)) > c.certaintyLimit {
		s.addGuard(GuardExcessiveCertainty, SeverityMedium, "excessive confidence in uncertain predictions")
	}

	v := s.verdict(outputConfidenceSlope, outputConfidenceBase, "output appears safe")

	if v.Severity != SeveritySafe {
		c.logger.Warn("output flagged",
			zap.String("severity", v.Severity.String()),
			zap.String("action", v.Action.String()),
			zap.Int("patterns", len(v.Patterns)),
		)
	}

	return v
}
