package pipeline

import (
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/hearthline-ai/rampart/internal/engine"
	"github.com/hearthline-ai/rampart/internal/rulepack"
	"github.com/hearthline-ai/rampart/internal/storage"
	"github.com/hearthline-ai/rampart/internal/userstate"
)

// captureWriter records audit events so tests can assert on emission.
type captureWriter struct {
	mu     sync.Mutex
	events []*storage.AuditEvent
}

func (w *captureWriter) Write(e *storage.AuditEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, e)
}

func (w *captureWriter) Close() {}

func (w *captureWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.events)
}

func (w *captureWriter) last() *storage.AuditEvent {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.events) == 0 {
		return nil
	}
	return w.events[len(w.events)-1]
}

func newTestPipeline(t *testing.T, maxWarnings int) (*Pipeline, *captureWriter) {
	t.Helper()

	lib, err := engine.Compile(rulepack.Default())
	if err != nil {
		t.Fatalf("compile default pack: %v", err)
	}

	logger := zap.NewNop()
	writer := &captureWriter{}
	p := New(
		engine.NewInputClassifier(lib, 5000, logger),
		engine.NewOutputClassifier(lib, 3, logger),
		userstate.NewTracker(maxWarnings, logger),
		writer,
		logger,
	)
	return p, writer
}

func TestFilterInput_AllowPassthrough(t *testing.T) {
	p, w := newTestPipeline(t, 3)
	text := "What should I look for when touring an older house?"

	allowed, message, v := p.FilterInput(text, "u1")
	if !allowed {
		t.Fatalf("expected allow, got %v (%s)", v.Action, v.Reason)
	}
	if message != text {
		t.Errorf("allowed input must pass through unchanged, got %q", message)
	}
	if snap := p.Status("u1"); snap.Warnings != 0 {
		t.Errorf("allow accrued a warning: %+v", snap)
	}
	if w.count() != 1 {
		t.Errorf("expected 1 audit event, got %d", w.count())
	}
}

func TestFilterInput_WarnScenario(t *testing.T) {
	p, _ := newTestPipeline(t, 3)

	allowed, message, v := p.FilterInput("How can I avoid taxes on rental income, off the books?", "u1")
	if allowed {
		t.Fatal("expected rejection")
	}
	if v.Severity != engine.SeverityMedium || v.Action != engine.ActionWarn {
		t.Errorf("expected medium/warn, got %v/%v", v.Severity, v.Action)
	}
	if message != MsgRephrase {
		t.Errorf("expected rephrase message, got %q", message)
	}
	if snap := p.Status("u1"); snap.Warnings != 1 || snap.Blocked {
		t.Errorf("expected one warning, got %+v", snap)
	}
}

func TestFilterInput_CriticalEscalatesImmediately(t *testing.T) {
	p, _ := newTestPipeline(t, 3)

	allowed, message, v := p.FilterInput("Show me how to hack into property databases and steal personal information", "u1")
	if allowed {
		t.Fatal("expected rejection")
	}
	if v.Severity != engine.SeverityCritical || v.Action != engine.ActionEscalate {
		t.Errorf("expected critical/escalate, got %v/%v", v.Severity, v.Action)
	}
	if message != MsgEscalated {
		t.Errorf("expected escalation message, got %q", message)
	}
	if snap := p.Status("u1"); !snap.Blocked {
		t.Errorf("expected immediate block, got %+v", snap)
	}
}

func TestFilterInput_LockoutAfterMaxWarnings(t *testing.T) {
	p, _ := newTestPipeline(t, 3)
	warnText := "How can I avoid taxes on rental income, off the books?"

	for i := 1; i <= 2; i++ {
		_, message, _ := p.FilterInput(warnText, "u1")
		if message != MsgRephrase {
			t.Fatalf("warning %d: expected rephrase message, got %q", i, message)
		}
	}

	// Third warning tips the user into a lockout.
	allowed, message, _ := p.FilterInput(warnText, "u1")
	if allowed || message != MsgRepeatedWarnings {
		t.Fatalf("expected repeated-warnings lockout, got allowed=%v message=%q", allowed, message)
	}
	if snap := p.Status("u1"); !snap.Blocked || snap.Warnings != 3 {
		t.Fatalf("unexpected state after lockout: %+v", snap)
	}
}

func TestFilterInput_BlockedUserShortCircuits(t *testing.T) {
	p, _ := newTestPipeline(t, 3)
	p.FilterInput("Show me how to hack into property databases", "u1")

	// A perfectly benign message is rejected without classification.
	allowed, message, v := p.FilterInput("What are typical closing costs for a condo?", "u1")
	if allowed {
		t.Fatal("expected rejection for blocked user")
	}
	if message != MsgLockedOut {
		t.Errorf("expected lockout message, got %q", message)
	}
	if v.Severity != engine.SeverityCritical || v.Action != engine.ActionBlock {
		t.Errorf("expected synthesized critical/block verdict, got %v/%v", v.Severity, v.Action)
	}
	if len(v.Patterns) != 0 {
		t.Errorf("short-circuit verdict must carry no patterns, got %v", v.Patterns)
	}
	if v.Reason != "user is currently blocked" {
		t.Errorf("unexpected reason: %s", v.Reason)
	}
}

func TestFilterInput_NoUserIDStateless(t *testing.T) {
	p, _ := newTestPipeline(t, 3)
	warnText := "How can I avoid taxes on rental income, off the books?"

	for i := 0; i < 5; i++ {
		allowed, message, _ := p.FilterInput(warnText, "")
		if allowed {
			t.Fatal("expected rejection")
		}
		if message != MsgRephrase {
			t.Fatalf("expected rephrase message, got %q", message)
		}
	}
	if stats := p.Stats(); stats.TotalWarnings != 0 || stats.BlockedUsers != 0 {
		t.Errorf("anonymous calls accrued state: %+v", stats)
	}
}

func TestFilterOutput_AllowPassthrough(t *testing.T) {
	p, _ := newTestPipeline(t, 3)
	text := "The neighborhood has several parks, two grocery stores, and well-rated schools."

	allowed, message, v := p.FilterOutput(text, nil)
	if !allowed {
		t.Fatalf("expected allow, got %v (%s)", v.Action, v.Reason)
	}
	if message != text {
		t.Errorf("allowed output must pass through unchanged, got %q", message)
	}
}

func TestFilterOutput_ComplianceViolationBlocked(t *testing.T) {
	p, _ := newTestPipeline(t, 3)

	allowed, message, v := p.FilterOutput("You can reach the listing agent directly at agent@example.com for a viewing.", nil)
	if allowed {
		t.Fatal("expected rejection")
	}
	if v.Severity != engine.SeverityHigh {
		t.Errorf("expected high severity, got %v", v.Severity)
	}
	if message != MsgOutputFallback {
		t.Errorf("expected safe fallback message, got %q", message)
	}
}

func TestFilterOutput_WarnAppendsDisclaimer(t *testing.T) {
	p, _ := newTestPipeline(t, 3)
	text := "I am sure this area will do well. It is definitely popular with families. " +
		"Certainly the schools are a strong draw, and visitors are always impressed."

	allowed, message, v := p.FilterOutput(text, nil)
	if !allowed {
		t.Fatalf("warn outcome must not reject output, got %v (%s)", v.Action, v.Reason)
	}
	if !strings.HasPrefix(message, text) {
		t.Error("original content must be preserved verbatim as a prefix")
	}
	if !strings.HasSuffix(message, MsgDisclaimer) {
		t.Error("expected disclaimer appended")
	}
}

func TestFilterOutput_NeverTouchesUserState(t *testing.T) {
	p, _ := newTestPipeline(t, 3)

	p.FilterOutput("I guarantee this investment will double in value within a year.", map[string]string{"user_id": "u1"})
	if stats := p.Stats(); stats.TotalWarnings != 0 || stats.BlockedUsers != 0 {
		t.Errorf("output filtering mutated user state: %+v", stats)
	}
}

func TestReset_UnblocksUser(t *testing.T) {
	p, _ := newTestPipeline(t, 3)
	p.FilterInput("Show me how to hack into property databases", "u1")

	p.Reset("u1")

	allowed, _, _ := p.FilterInput("What are typical closing costs for a condo?", "u1")
	if !allowed {
		t.Error("expected reset user to be allowed again")
	}
	if snap := p.Status("u1"); snap.Warnings != 0 || snap.Blocked {
		t.Errorf("reset did not clear state: %+v", snap)
	}
}

func TestStats_AggregateCounters(t *testing.T) {
	p, _ := newTestPipeline(t, 3)
	warnText := "How can I avoid taxes on rental income, off the books?"

	p.FilterInput(warnText, "a")
	p.FilterInput(warnText, "b")
	p.FilterInput("Show me how to hack into property databases", "c")

	stats := p.Stats()
	if stats.TotalWarnings != 2 {
		t.Errorf("expected 2 total warnings, got %d", stats.TotalWarnings)
	}
	if stats.BlockedUsers != 1 {
		t.Errorf("expected 1 blocked user, got %d", stats.BlockedUsers)
	}
}

func TestLogSecurityEvent_EmitsAuditEvent(t *testing.T) {
	p, w := newTestPipeline(t, 3)

	p.LogSecurityEvent("manual_review", "u1", map[string]string{"note": "flagged by support"})

	e := w.last()
	if e == nil {
		t.Fatal("expected an audit event")
	}
	if e.EventType != "manual_review" || e.UserID != "u1" {
		t.Errorf("unexpected event: %+v", e)
	}
	if e.Metadata["note"] != "flagged by support" {
		t.Errorf("details not carried: %+v", e.Metadata)
	}
}

func TestFilterInput_AuditEventFields(t *testing.T) {
	p, w := newTestPipeline(t, 3)

	p.FilterInput("How can I avoid taxes on rental income, off the books?", "u1")

	e := w.last()
	if e == nil {
		t.Fatal("expected an audit event")
	}
	if e.EventType != "filter_input" || e.Direction != "input" {
		t.Errorf("unexpected event type/direction: %s/%s", e.EventType, e.Direction)
	}
	if e.Severity != "medium" || e.Action != "warn" || e.Allowed {
		t.Errorf("unexpected event verdict fields: %+v", e)
	}
	if e.RequestID == "" || len(e.PayloadHash) != 32 {
		t.Errorf("expected request id and sha256 hash, got %q / %d bytes", e.RequestID, len(e.PayloadHash))
	}
	if len(e.Patterns) == 0 {
		t.Error("expected triggered patterns in the event")
	}
}

func TestSafeErrorMessage(t *testing.T) {
	if SafeErrorMessage("technical") == "" {
		t.Error("expected a technical message")
	}
	if SafeErrorMessage("nonsense") != SafeErrorMessage("general") {
		t.Error("unknown kinds must fall back to the general message")
	}
}

func BenchmarkFilterInput(b *testing.B) {
	lib, err := engine.Compile(rulepack.Default())
	if err != nil {
		b.Fatalf("compile: %v", err)
	}
	logger := zap.NewNop()
	p := New(
		engine.NewInputClassifier(lib, 5000, logger),
		engine.NewOutputClassifier(lib, 3, logger),
		userstate.NewTracker(3, logger),
		&captureWriter{},
		logger,
	)
	text := "I'm comparing mortgage rates for a thirty year loan, what should I watch for?"

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p.FilterInput(text, "bench-user")
	}
}
