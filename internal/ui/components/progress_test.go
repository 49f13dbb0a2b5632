package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestProgressBarCells(t *testing.T) {
	tests := []struct {
		name       string
		bar        ProgressBar
		wantFilled int
		wantEmpty  int
	}{
		{"empty", NewProgressBar("", 0, false, 20), 0, 20},
		{"half", NewProgressBar("", 0.5, false, 20), 10, 10},
		{"full", NewProgressBar("", 1, false, 20), 20, 0},
		{"overflow clamps", NewProgressBar("", 1.7, false, 10), 10, 0},
		{"negative clamps", NewProgressBar("", -0.3, false, 10), 0, 10},
		{"percent takes room", NewProgressBar("", 1, true, 20), 14, 0},
		{"label takes room", NewProgressBar("XP", 0, false, 20), 0, 16},
		{"minimum width", NewProgressBar("a long label here", 0.5, true, 10), 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filled, empty := tt.bar.Cells()
			if filled != tt.wantFilled || empty != tt.wantEmpty {
				t.Errorf("Cells() = (%d, %d), want (%d, %d)", filled, empty, tt.wantFilled, tt.wantEmpty)
			}
		})
	}
}

func TestProgressBarView(t *testing.T) {
	view := ansi.Strip(NewProgressBar("XP", 0.25, true, 30).View())

	if !strings.HasPrefix(view, "XP  ") {
		t.Errorf("view %q should start with the label", view)
	}
	if !strings.HasSuffix(view, "25%") {
		t.Errorf("view %q should end with the percentage", view)
	}
	if got := strings.Count(view, "█"); got != 5 {
		t.Errorf("filled cells = %d, want 5", got)
	}
}
