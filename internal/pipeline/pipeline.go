// Package pipeline coordinates the classifiers, the action policy and
// the user state tracker behind the two entry points the surrounding
// application calls: FilterInput before text reaches the model and
// FilterOutput after text comes back.
package pipeline

import (
	"crypto/sha256"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hearthline-ai/rampart/internal/engine"
	"github.com/hearthline-ai/rampart/internal/storage"
	"github.com/hearthline-ai/rampart/internal/userstate"
)

// Pipeline is the guardrail coordinator. One instance per process,
// shared by all in-flight conversation turns; every method is safe for
// concurrent use.
type Pipeline struct {
	input   *engine.InputClassifier
	output  *engine.OutputClassifier
	tracker *userstate.Tracker
	writer  storage.EventWriter
	logger  *zap.Logger
}

// New creates a pipeline from its dependencies.
func New(
	input *engine.InputClassifier,
	output *engine.OutputClassifier,
	tracker *userstate.Tracker,
	writer storage.EventWriter,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		input:   input,
		output:  output,
		tracker: tracker,
		writer:  writer,
		logger:  logger,
	}
}

// FilterInput screens one user message before it reaches the model.
// It returns whether the text may proceed, the text to use (the original
// when allowed, a replacement message otherwise) and the verdict.
//
// A blocked user is rejected up front with a fixed lockout message; the
// new text is never classified. Otherwise the verdict's action is run
// through the tracker, which may escalate a WARN into a lockout.
func (p *Pipeline) FilterInput(text, userID string) (bool, string, engine.Verdict) {
	start := time.Now()

	if p.tracker.IsBlocked(userID) {
		v := engine.Verdict{
			Severity:   engine.SeverityCritical,
			Action:     engine.ActionBlock,
			Reason:     "user is currently blocked",
			Confidence: 1.0,
		}
		p.writeEvent("filter_input", "input", text, userID, nil, v, false, start)
		return false, MsgLockedOut, v
	}

	v := p.input.Classify(text)
	outcome := p.tracker.RecordOutcome(userID, v.Action)

	allowed, message := p.inputDisposition(v, outcome, text, userID)
	p.writeEvent("filter_input", "input", text, userID, nil, v, allowed, start)
	return allowed, message, v
}

func (p *Pipeline) inputDisposition(v engine.Verdict, outcome userstate.Outcome, text, userID string) (bool, string) {
	// A WARN that tipped the user over the warning limit becomes a
	// lockout, reported with its own message.
	if v.Action == engine.ActionWarn && outcome.Blocked {
		return false, MsgRepeatedWarnings
	}

	switch outcome.Effective {
	case engine.ActionAllow:
		return true, text
	case engine.ActionWarn:
		return false, MsgRephrase
	case engine.ActionBlock:
		return false, MsgBlocked
	case engine.ActionEscalate:
		p.logger.Error("user escalated for critical violation",
			zap.String("user_id", userID),
			zap.String("reason", v.Reason),
		)
		return false, MsgEscalated
	default:
		return false, SafeErrorMessage("general")
	}
}

// FilterOutput screens one generated response before it reaches the
// user. Output filtering never touches user state: it rejects or
// annotates content, not people. WARN outcomes deliver the original
// text with a disclaimer appended; BLOCK and ESCALATE substitute a
// fixed safe fallback.
func (p *Pipeline) FilterOutput(text string, metadata map[string]string) (bool, string, engine.Verdict) {
	start := time.Now()

	v := p.output.Classify(text)

	var allowed bool
	var message string
	switch v.Action {
	case engine.ActionAllow:
		allowed, message = true, text
	case engine.ActionWarn:
		allowed, message = true, text+MsgDisclaimer
	default: // block, escalate
		p.logger.Error("model output suppressed", zap.String("reason", v.Reason))
		allowed, message = false, MsgOutputFallback
	}

	p.writeEvent("filter_output", "output", text, "", metadata, v, allowed, start)
	return allowed, message, v
}

// Status returns the user's current security standing.
func (p *Pipeline) Status(userID string) userstate.Snapshot {
	return p.tracker.Status(userID)
}

// Reset clears the user's warnings and lockout.
func (p *Pipeline) Reset(userID string) {
	p.tracker.Reset(userID)
}

// Stats returns aggregate counters for a health surface.
func (p *Pipeline) Stats() userstate.Stats {
	return p.tracker.Stats()
}

// LogSecurityEvent emits a caller-defined security event to the audit
// sink. Fire-and-forget: it never blocks and has no return contract.
func (p *Pipeline) LogSecurityEvent(eventType, userID string, details map[string]string) {
	p.logger.Info("security event",
		zap.String("event_type", eventType),
		zap.String("user_id", userID),
		zap.Any("details", details),
	)
	p.writer.Write(&storage.AuditEvent{
		RequestID: uuid.New().String(),
		Timestamp: time.Now(),
		EventType: eventType,
		UserID:    userID,
		Metadata:  details,
	})
}

func (p *Pipeline) writeEvent(
	eventType, direction, payload, userID string,
	metadata map[string]string,
	v engine.Verdict,
	allowed bool,
	start time.Time,
) {
	hashBytes := sha256.Sum256([]byte(payload))

	p.writer.Write(&storage.AuditEvent{
		RequestID:      uuid.New().String(),
		Timestamp:      time.Now(),
		EventType:      eventType,
		Direction:      direction,
		UserID:         userID,
		PayloadPreview: storage.TruncatePayload(payload, storage.PayloadPreviewLength),
		PayloadHash:    string(hashBytes[:]),
		PayloadSize:    uint32(len(payload)),
		Severity:       v.Severity.String(),
		Action:         v.Action.String(),
		Allowed:        allowed,
		Reason:         v.Reason,
		Patterns:       v.Patterns,
		Confidence:     v.Confidence,
		Metadata:       metadata,
		LatencyMs:      float32(float64(time.Since(start)) / float64(time.Millisecond)),
	})
}
