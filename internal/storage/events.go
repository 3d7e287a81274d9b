package storage

import "time"

// EventWriter is the interface for the audit event sink.
// Write() must NEVER block the caller.
type EventWriter interface {
	Write(event *AuditEvent)
	Close()
}

// AuditEvent records one guardrail decision (or manually logged security
// event) for monitoring and analysis. Observability only; the filtering
// core never reads events back.
type AuditEvent struct {
	RequestID      string
	Timestamp      time.Time
	EventType      string // "filter_input", "filter_output", or caller-supplied
	Direction      string // "input", "output", or "" for manual events
	UserID         string
	PayloadPreview string // first 500 chars
	PayloadHash    string // SHA256 of the full payload
	PayloadSize    uint32
	Severity       string
	Action         string
	Allowed        bool
	Reason         string
	Patterns       []string
	Confidence     float64
	Metadata       map[string]string
	LatencyMs      float32
}

// PayloadPreviewLength is the max chars stored in payload_preview.
const PayloadPreviewLength = 500

// TruncatePayload returns the first N characters (runes) of a payload
// for preview storage. It never splits a multi-byte UTF-8 character.
func TruncatePayload(payload string, maxLen int) string {
	runes := []rune(payload)
	if len(runes) <= maxLen {
		return payload
	}
	return string(runes[:maxLen])
}
