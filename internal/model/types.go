// Package model defines shared data structures.
package model

import "time"

// Config defines typing-test settings after flag and file layering.
type Config struct {
	Duration     int
	ErrorCeiling int
	Words        int
	CapsPct      float64
	PunctPct     float64
	PunctSet     string
	WordList     string
	Sound        bool
	History      bool
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since  *time.Time
	Last   int
	Window int
}

// Result summarizes a finished typing test.
type Result struct {
	ID          string
	StartedAt   time.Time
	EndedAt     time.Time
	Duration    int
	TargetChars int
	Progress    int
	Errors      int
	Accuracy    int
	WPM         int
	Reason      string
	WordList    string
}

// ElapsedMs returns the wall time the test ran for.
func (r Result) ElapsedMs() int64 {
	return r.EndedAt.Sub(r.StartedAt).Milliseconds()
}
