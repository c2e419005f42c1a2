package ui

import (
	"testing"

	"github.com/five82/decksim/internal/state"
)

func TestCycleOption(t *testing.T) {
	opts := []string{"SDI", "HDMI", "Component"}
	tests := []struct {
		current string
		step    int
		want    string
	}{
		{"SDI", 1, "HDMI"},
		{"Component", 1, "SDI"},
		{"SDI", -1, "Component"},
		{"HDMI", 0, "HDMI"},
		{"Composite", 1, "SDI"},
	}
	for _, tt := range tests {
		if got := cycleOption(opts, tt.current, tt.step); got != tt.want {
			t.Fatalf("cycleOption(%q, %d) = %q, want %q", tt.current, tt.step, got, tt.want)
		}
	}
	if got := cycleOption(nil, "x", 1); got != "x" {
		t.Fatalf("cycleOption(nil) = %q, want x", got)
	}
}

func TestCycleSlot(t *testing.T) {
	last := state.Slots[len(state.Slots)-1]
	if got := cycleSlot(last, 1); got != state.Slots[0] {
		t.Fatalf("cycleSlot(%d, 1) = %d, want %d", last, got, state.Slots[0])
	}
	if got := cycleSlot(state.Slots[0], -1); got != last {
		t.Fatalf("cycleSlot(%d, -1) = %d, want %d", state.Slots[0], got, last)
	}
}
