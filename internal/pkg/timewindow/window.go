package timewindow

import (
	"iter"
	"time"
)

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// New creates a window starting at start with the given duration
func New(start time.Time, d time.Duration) Window {
	return Window{Start: start, End: start.Add(d)}
}

// Overlaps reports whether two half-open windows share any instant.
// Windows that merely touch at an endpoint do not overlap, so
// back-to-back bookings never conflict.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

// Duration returns the length of the window
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// IsZero reports whether the window is uninitialized
func (w Window) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// Slice yields fixed-size sub-windows stepping through [w.Start, w.End).
// Every sub-window keeps the full step, so the last one may overhang
// w.End; that matches the granularity of the occupancy scan. The
// sequence is lazy and restartable.
func (w Window) Slice(step time.Duration) iter.Seq[Window] {
	return func(yield func(Window) bool) {
		if step <= 0 {
			return
		}
		for t := w.Start; t.Before(w.End); t = t.Add(step) {
			if !yield(Window{Start: t, End: t.Add(step)}) {
				return
			}
		}
	}
}
