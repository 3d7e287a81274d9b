package engine

import (
	"fmt"
	"strings"
)

// scan holds the signals accumulated while classifying one text blob.
// Every triggered rule and guard contributes an entry, even when it does
// not raise the maximum severity, so verdicts stay fully explainable.
type scan struct {
	severity Severity
	patterns []string
	reasons  []string
}

func (s *scan) addRule(r *Rule) {
	s.patterns = append(s.patterns, r.ID)
	s.reasons = append(s.reasons, fmt.Sprintf("%s pattern (%s): %s", r.Category, r.Tier, r.Description))
	if r.Tier > s.severity {
		s.severity = r.Tier
	}
}

// addGuard raises the severity to at least floor and records the guard
// as a triggered signal.
func (s *scan) addGuard(id string, floor Severity, reason string) {
	s.patterns = append(s.patterns, id)
	s.reasons = append(s.reasons, reason)
	if floor > s.severity {
		s.severity = floor
	}
}

func (s *scan) matchRules(rules []Rule, text string) {
	for i := range rules {
		if rules[i].Matches(text) {
			s.addRule(&rules[i])
		}
	}
}

// verdict finalizes the scan into a Verdict. Confidence grows with the
// number of corroborating signals and saturates at 1.0.
func (s *scan) verdict(slope, base float64, safeReason string) Verdict {
	reason := safeReason
	if len(s.reasons) > 0 {
		reason = strings.Join(s.reasons, "; ")
	}

	confidence := base + slope*float64(len(s.patterns))
	if confidence > 1.0 {
		confidence = 1.0
	}

	return Verdict{
		Severity:   s.severity,
		Action:     ActionFor(s.severity),
		Reason:     reason,
		Confidence: confidence,
		Patterns:   s.patterns,
	}
}

// normalize trims and case-folds text for matching. Rules also carry
// (?i), so this only matters for the substring-style checks.
func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// emptyVerdict is returned for empty or all-whitespace text. A minor
// anomaly rather than a safety violation, but not silently allowed.
func emptyVerdict() Verdict {
	return Verdict{
		Severity:   SeverityLow,
		Action:     ActionWarn,
		Reason:     "empty input",
		Confidence: 1.0,
	}
}
