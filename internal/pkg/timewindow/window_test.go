package timewindow

import (
	"testing"
	"time"
)

func mustLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jerusalem")
	if err != nil {
		t.Skipf("timezone data not available: %v", err)
	}
	return loc
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	win := New(base, 30*time.Minute) // 14:00-14:30

	tests := []struct {
		name  string
		other Window
		want  bool
	}{
		{"identical", New(base, 30*time.Minute), true},
		{"contained", New(base.Add(10*time.Minute), 10*time.Minute), true},
		{"overlap start", New(base.Add(-10*time.Minute), 20*time.Minute), true},
		{"overlap end", New(base.Add(20*time.Minute), 20*time.Minute), true},
		{"touching before", New(base.Add(-30*time.Minute), 30*time.Minute), false},
		{"touching after", New(base.Add(30*time.Minute), 30*time.Minute), false},
		{"disjoint before", New(base.Add(-2*time.Hour), 30*time.Minute), false},
		{"disjoint after", New(base.Add(2*time.Hour), 30*time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := win.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			// Overlap is symmetric
			if got := tt.other.Overlaps(win); got != tt.want {
				t.Errorf("Overlaps() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSlice(t *testing.T) {
	base := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	win := New(base, time.Hour)

	var slots []Window
	for slot := range win.Slice(15 * time.Minute) {
		slots = append(slots, slot)
	}

	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(slots))
	}
	if !slots[0].Start.Equal(base) {
		t.Errorf("first slot starts at %v", slots[0].Start)
	}
	if !slots[3].End.Equal(base.Add(time.Hour)) {
		t.Errorf("last slot ends at %v", slots[3].End)
	}
}

func TestSliceOverhang(t *testing.T) {
	base := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	win := New(base, 40*time.Minute)

	var slots []Window
	for slot := range win.Slice(15 * time.Minute) {
		slots = append(slots, slot)
	}

	// 40 minutes on a 15-minute grid: the last slot keeps the full step
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	if !slots[2].End.Equal(base.Add(45 * time.Minute)) {
		t.Errorf("last slot ends at %v, want overhang to 14:45", slots[2].End)
	}
}

func TestSliceNonPositiveStep(t *testing.T) {
	win := New(time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC), time.Hour)
	for range win.Slice(0) {
		t.Fatal("zero step must yield nothing")
	}
}

func TestToAbsoluteAcrossDST(t *testing.T) {
	loc := mustLoc(t)

	// Israel springs forward on 2026-03-27 at 02:00, so the local span
	// 01:00-04:00 covers only two real hours.
	day := time.Date(2026, 3, 27, 0, 0, 0, 0, loc)
	start := ToAbsolute(day, Clock{Hour: 1}, loc)
	end := ToAbsolute(day, Clock{Hour: 4}, loc)

	if d := end.Sub(start); d != 2*time.Hour {
		t.Errorf("spring-forward span = %v, want 2h", d)
	}
}
