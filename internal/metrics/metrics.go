// Package metrics derives accuracy and words-per-minute from session counters.
package metrics

import "math"

// MinAccuracyProgress is the number of correct characters that must be typed
// before accuracy is reported. Below it accuracy stays at 0.
const MinAccuracyProgress = 5

// CharsPerWord is the conventional word length used for WPM.
const CharsPerWord = 5

// Accuracy returns the share of correct keystrokes as a whole percentage in [0, 100].
func Accuracy(progress, errors int) int {
	if progress <= MinAccuracyProgress {
		return 0
	}
	pct := math.Floor(float64(progress-errors) / float64(progress) * 100)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return int(pct)
}

// WPM returns correct characters divided by the word length, rounded.
func WPM(correct int) int {
	if correct <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / CharsPerWord))
}

// SessionWPM normalises correct characters to a per-minute rate over the
// elapsed session time.
func SessionWPM(correct int, durationMs int64) float64 {
	if durationMs <= 0 || correct <= 0 {
		return 0
	}
	minutes := float64(durationMs) / 60000.0
	return (float64(correct) / CharsPerWord) / minutes
}
