package metrics

import (
	"math"
	"testing"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name     string
		progress int
		errors   int
		want     int
	}{
		{"no progress", 0, 0, 0},
		{"below threshold", 5, 0, 0},
		{"threshold plus one", 6, 0, 100},
		{"ten with two errors", 10, 2, 80},
		{"floors fraction", 7, 1, 85},
		{"errors equal progress", 10, 10, 0},
		{"errors exceed progress", 10, 25, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Accuracy(tt.progress, tt.errors); got != tt.want {
				t.Errorf("Accuracy(%d, %d) = %d, want %d", tt.progress, tt.errors, got, tt.want)
			}
		})
	}
}

func TestAccuracyAlwaysInRange(t *testing.T) {
	for p := 0; p <= 60; p++ {
		for e := 0; e <= 60; e++ {
			got := Accuracy(p, e)
			if got < 0 || got > 100 {
				t.Fatalf("Accuracy(%d, %d) = %d out of range", p, e, got)
			}
		}
	}
}

func TestWPM(t *testing.T) {
	tests := []struct {
		correct int
		want    int
	}{
		{0, 0},
		{2, 0},
		{3, 1},
		{12, 2},
		{13, 3},
		{15, 3},
		{-4, 0},
	}
	for _, tt := range tests {
		if got := WPM(tt.correct); got != tt.want {
			t.Errorf("WPM(%d) = %d, want %d", tt.correct, got, tt.want)
		}
	}
}

func TestSessionWPM(t *testing.T) {
	got := SessionWPM(250, 60000)
	if math.Abs(got-50) > 1e-9 {
		t.Fatalf("expected 50 wpm, got %f", got)
	}
	if SessionWPM(10, 0) != 0 {
		t.Fatalf("expected 0 wpm for zero duration")
	}
}
