package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Date", "WPM", "Result"}
	rows := [][]string{
		{"2026-05-01", "7", "time-up"},
		{"today", "112", "completed"},
	}
	rightAlign := map[int]bool{1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Date       WPM Result   " {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "2026-05-01   7 time-up  " {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "today      112 completed" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Word", "N"}, [][]string{{"日本", "1"}, {"ab", "2"}}, nil)
	if lines[1] != "日本 1" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
	if lines[2] != "ab   2" {
		t.Fatalf("expected padding by display width, got %q", lines[2])
	}
}
