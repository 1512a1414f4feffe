package tui

import "io"

// Bell returns an error hook that rings the terminal bell on w, or nil when
// sound is disabled.
func Bell(w io.Writer, enabled bool) func() {
	if !enabled || w == nil {
		return nil
	}
	return func() {
		if _, err := io.WriteString(w, "\a"); err != nil {
			// Best-effort feedback.
			_ = err
		}
	}
}
