// Package stats contains statistics calculations and reporting over result history.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/speedtype/internal/metrics"
	"github.com/verte-zerg/speedtype/internal/model"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Tail keeps at most the last width values.
func Tail(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		return values
	}
	return values[len(values)-width:]
}

// RenderSummary prints aggregate figures for the results.
func RenderSummary(w io.Writer, results []model.Result) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No results found.")
		return err
	}
	var totalWPM, totalRate, totalAcc float64
	best := results[0]
	completed := 0
	for _, r := range results {
		totalWPM += float64(r.WPM)
		totalRate += metrics.SessionWPM(r.Progress, r.ElapsedMs())
		totalAcc += float64(r.Accuracy)
		if r.WPM > best.WPM {
			best = r
		}
		if r.Reason == "completed" {
			completed++
		}
	}
	count := float64(len(results))
	lines := []string{
		"Summary",
		fmt.Sprintf("Tests: %d (%d completed)", len(results), completed),
		fmt.Sprintf("Avg WPM: %.1f", totalWPM/count),
		fmt.Sprintf("Best WPM: %d (%s)", best.WPM, best.EndedAt.Local().Format("2006-01-02 15:04")),
		fmt.Sprintf("Avg pace: %.1f WPM over elapsed time", totalRate/count),
		fmt.Sprintf("Avg Accuracy: %.1f%%", totalAcc/count),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderRecent prints a table of the last n results, newest first.
func RenderRecent(w io.Writer, results []model.Result, n int) error {
	if len(results) == 0 {
		return nil
	}
	if n <= 0 || n > len(results) {
		n = len(results)
	}
	if _, err := fmt.Fprintln(w, "Recent"); err != nil {
		return err
	}
	headers := []string{"Date", "WPM", "Accuracy", "Errors", "Typed", "Result"}
	rows := make([][]string, 0, n)
	for i := len(results) - 1; i >= len(results)-n; i-- {
		r := results[i]
		rows = append(rows, []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", r.WPM),
			fmt.Sprintf("%d%%", r.Accuracy),
			fmt.Sprintf("%d", r.Errors),
			fmt.Sprintf("%d/%d", r.Progress, r.TargetChars),
			r.Reason,
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTrend prints moving-average sparklines for WPM and accuracy, trimmed
// to width columns.
func RenderTrend(w io.Writer, results []model.Result, window, width int) error {
	if len(results) < 2 {
		return nil
	}
	wpms := make([]float64, len(results))
	accs := make([]float64, len(results))
	for i, r := range results {
		wpms[i] = float64(r.WPM)
		accs[i] = float64(r.Accuracy)
	}
	wpms = Tail(MovingAverage(wpms, window), width)
	accs = Tail(MovingAverage(accs, window), width)

	lines := []string{
		fmt.Sprintf("Trend (moving average, window %d)", window),
		fmt.Sprintf("WPM      %s  %.1f", Sparkline(wpms), wpms[len(wpms)-1]),
		fmt.Sprintf("Accuracy %s  %.1f%%", Sparkline(accs), accs[len(accs)-1]),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
