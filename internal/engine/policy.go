package engine

// ActionFor maps a severity to its handling action. This mapping is the
// single source of truth for what a severity means operationally; it is
// identical for the input and output directions.
func ActionFor(s Severity) Action {
	switch s {
	case SeveritySafe, SeverityLow:
		return ActionAllow
	case SeverityMedium:
		return ActionWarn
	case SeverityHigh:
		return ActionBlock
	case SeverityCritical:
		return ActionEscalate
	default:
		// Out-of-range severities fail closed.
		return ActionBlock
	}
}
