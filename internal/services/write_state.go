// internal/services/write_state.go
package services

import (
	"github.com/sirupsen/logrus"
)

// WriteState tracks one write orchestration through
// Idle -> Validating -> (Rejected | Submitting) -> (Committed | Failed).
//
// Rejected and Failed are both terminal for the attempt but mean different
// things: Rejected fired before any mutating call, so the operator can fix
// input and retry immediately; Failed means a mutating call errored and the
// caller should re-fetch before retrying.
type WriteState int

const (
	StateIdle WriteState = iota
	StateValidating
	StateRejected
	StateSubmitting
	StateCommitted
	StateFailed
)

func (s WriteState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateRejected:
		return "rejected"
	case StateSubmitting:
		return "submitting"
	case StateCommitted:
		return "committed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var writeTransitions = map[WriteState][]WriteState{
	StateIdle:       {StateValidating},
	StateValidating: {StateRejected, StateSubmitting},
	StateSubmitting: {StateCommitted, StateFailed},
}

type writeAttempt struct {
	op    string
	state WriteState
	log   *logrus.Entry
}

func beginWrite(op string, fields logrus.Fields) *writeAttempt {
	entry := logrus.WithField("op", op)
	if fields != nil {
		entry = entry.WithFields(fields)
	}
	return &writeAttempt{op: op, state: StateIdle, log: entry}
}

func (w *writeAttempt) to(next WriteState) {
	allowed := false
	for _, s := range writeTransitions[w.state] {
		if s == next {
			allowed = true
			break
		}
	}
	if !allowed {
		w.log.WithFields(logrus.Fields{
			"from": w.state.String(),
			"to":   next.String(),
		}).Warn("Invalid write state transition")
	}

	w.state = next
	w.log.WithField("state", next.String()).Debug("Write state transition")
}

// State reports the attempt's current state.
func (w *writeAttempt) State() WriteState {
	return w.state
}
