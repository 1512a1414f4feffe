package engine

import "time"

// State is the lifecycle position of a Session.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// FinishReason records why a session reached StateFinished.
type FinishReason int

const (
	FinishNone FinishReason = iota
	FinishCompleted
	FinishErrorCeiling
	FinishTimeUp
)

func (r FinishReason) String() string {
	switch r {
	case FinishCompleted:
		return "completed"
	case FinishErrorCeiling:
		return "error-ceiling"
	case FinishTimeUp:
		return "time-up"
	default:
		return "none"
	}
}

// Snapshot is a read-only view of a Session for rendering.
type Snapshot struct {
	ID                    string
	State                 State
	Reason                FinishReason
	TargetText            string
	CompletedText         string
	RemainingText         string
	ProgressIndex         int
	CorrectCount          int
	ErrorCount            int
	Accuracy              int
	WPM                   int
	RemainingSeconds      int
	Duration              int
	ErrorCeiling          int
	LastKeystrokeWasError bool
	StartedAt             time.Time
	EndedAt               time.Time
}

// Elapsed returns how long the session ran. It is zero before Start and
// measured up to now while running.
func (s Snapshot) Elapsed(now time.Time) time.Duration {
	if s.StartedAt.IsZero() {
		return 0
	}
	if !s.EndedAt.IsZero() {
		return s.EndedAt.Sub(s.StartedAt)
	}
	return now.Sub(s.StartedAt)
}
