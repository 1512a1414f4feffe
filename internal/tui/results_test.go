package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/speedtype/internal/engine"
)

func TestRenderResultsShowsElapsedTime(t *testing.T) {
	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	snap := engine.Snapshot{
		State:            engine.StateFinished,
		Reason:           engine.FinishCompleted,
		TargetText:       "cat",
		ProgressIndex:    3,
		WPM:              1,
		Duration:         60,
		RemainingSeconds: 48,
		StartedAt:        start,
		EndedAt:          start.Add(12500 * time.Millisecond),
	}
	out := renderResults(snap)
	for _, want := range []string{"Text complete!", "12.5s", "3/3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("results missing %q:\n%s", want, out)
		}
	}
}
