package engine

import "fmt"

// Severity is the risk classification assigned to a piece of text.
// Values are ordered: comparisons with < and > follow escalation order.
type Severity int

const (
	SeveritySafe Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeveritySafe:
		return "safe"
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unspecified"
	}
}

// ParseSeverity converts a severity name (as used in rule packs) into a
// Severity. Unknown names are an error, not a silent default.
func ParseSeverity(name string) (Severity, error) {
	switch name {
	case "safe":
		return SeveritySafe, nil
	case "low":
		return SeverityLow, nil
	case "medium":
		return SeverityMedium, nil
	case "high":
		return SeverityHigh, nil
	case "critical":
		return SeverityCritical, nil
	default:
		return SeveritySafe, fmt.Errorf("unknown severity %q", name)
	}
}

// Action is the operational consequence derived from a severity.
type Action int

const (
	ActionAllow Action = iota + 1
	ActionWarn
	ActionBlock
	ActionEscalate
)

// String returns the lowercase action name.
func (a Action) String() string {
	switch a {
	case ActionAllow:
		return "allow"
	case ActionWarn:
		return "warn"
	case ActionBlock:
		return "block"
	case ActionEscalate:
		return "escalate"
	default:
		return "unspecified"
	}
}

// Verdict is the immutable result of classifying one text blob.
// A fresh value is produced per call and never mutated afterwards.
type Verdict struct {
	Severity   Severity
	Action     Action
	Reason     string
	Confidence float64
	Patterns   []string // IDs of every triggered rule and guard
}
