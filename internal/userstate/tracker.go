// Package userstate tracks per-user violation history: warning counts
// and a blocked flag, escalating repeat offenders to a lockout.
package userstate

import (
	"sync"

	"go.uber.org/zap"

	"github.com/hearthline-ai/rampart/internal/engine"
)

// Tracker holds warning counts and blocked flags keyed by user id.
// It is the only mutable shared state in the filtering core; every
// read-then-write runs under a single mutex; contention is low at one
// call per conversation turn. Records are created lazily and live
// until Reset or process exit; nothing schedules an automatic unblock.
type Tracker struct {
	mu          sync.Mutex
	users       map[string]*record
	maxWarnings int
	logger      *zap.Logger
}

type record struct {
	warnings int
	blocked  bool
}

// Snapshot is a point-in-time copy of one user's state.
type Snapshot struct {
	UserID      string `json:"user_id"`
	Warnings    int    `json:"warnings"`
	Blocked     bool   `json:"is_blocked"`
	MaxWarnings int    `json:"max_warnings"`
}

// Outcome reports the effective action after the tracker applied a
// classification action to a user's record.
type Outcome struct {
	Effective engine.Action
	Blocked   bool
}

// Stats are aggregate counters for a health surface.
type Stats struct {
	BlockedUsers  int `json:"blocked_users"`
	TotalWarnings int `json:"total_warnings"`
}

// NewTracker creates a tracker that locks users out after maxWarnings
// accumulated warnings.
func NewTracker(maxWarnings int, logger *zap.Logger) *Tracker {
	return &Tracker{
		users:       make(map[string]*record),
		maxWarnings: maxWarnings,
		logger:      logger,
	}
}

// RecordOutcome applies a classification action to the user's record and
// returns the effective action. An empty user id means no tracking: the
// action passes through unchanged and nothing accrues.
//
// Transitions: WARN increments the warning count and escalates to a
// lockout when it reaches the maximum. BLOCK increments the count (it
// counts toward a future lockout) without blocking by itself. ESCALATE
// blocks immediately. ALLOW is a no-op. An already-blocked user gets a
// forced BLOCK regardless of the incoming action.
func (t *Tracker) RecordOutcome(userID string, action engine.Action) Outcome {
	if userID == "" {
		return Outcome{Effective: action}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	rec := t.users[userID]
	if rec == nil {
		if action == engine.ActionAllow {
			return Outcome{Effective: action}
		}
		rec = &record{}
		t.users[userID] = rec
	}

	if rec.blocked {
		return Outcome{Effective: engine.ActionBlock, Blocked: true}
	}

	switch action {
	case engine.ActionWarn:
		rec.warnings++
		if rec.warnings >= t.maxWarnings {
			rec.blocked = true
			t.logger.Warn("user locked out after repeated warnings",
				zap.String("user_id", userID),
				zap.Int("warnings", rec.warnings),
			)
			return Outcome{Effective: engine.ActionEscalate, Blocked: true}
		}
		return Outcome{Effective: engine.ActionWarn}

	case engine.ActionBlock:
		rec.warnings++
		return Outcome{Effective: engine.ActionBlock}

	case engine.ActionEscalate:
		rec.blocked = true
		t.logger.Warn("user blocked for critical violation",
			zap.String("user_id", userID),
		)
		return Outcome{Effective: engine.ActionEscalate, Blocked: true}

	default:
		return Outcome{Effective: action}
	}
}

// IsBlocked reports whether the user is currently locked out. An empty
// or unknown user id is never blocked.
func (t *Tracker) IsBlocked(userID string) bool {
	if userID == "" {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	rec := t.users[userID]
	return rec != nil && rec.blocked
}

// Status returns a read-only snapshot of the user's state. Absent users
// yield a zero-valued snapshot without creating a record.
func (t *Tracker) Status(userID string) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := Snapshot{UserID: userID, MaxWarnings: t.maxWarnings}
	if rec := t.users[userID]; rec != nil {
		snap.Warnings = rec.warnings
		snap.Blocked = rec.blocked
	}
	return snap
}

// Reset clears the user's warnings and blocked flag.
func (t *Tracker) Reset(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.users, userID)
	t.logger.Info("user state reset", zap.String("user_id", userID))
}

// Stats returns point-in-time aggregate counters.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	var s Stats
	for _, rec := range t.users {
		if rec.blocked {
			s.BlockedUsers++
		}
		s.TotalWarnings += rec.warnings
	}
	return s
}
