package cli

import "testing"

func TestFormatStats(t *testing.T) {
	tests := []struct {
		name                 string
		paths, filled, total int
		cached               bool
		want                 string
	}{
		{"full grid", 12, 48, 48, false, "12 snakes · 48/48 cells · fresh"},
		{"cached", 1, 1, 1, true, "1 snake · 1/1 cells · cached"},
		{"stopped early", 2, 10, 40, false, "2 snakes · 10/40 cells (25%) · fresh"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// lipgloss renders plain text when stdout is not a terminal
			if got := formatStats(tt.paths, tt.filled, tt.total, tt.cached); got != tt.want {
				t.Errorf("formatStats() = %q, want %q", got, tt.want)
			}
		})
	}
}
