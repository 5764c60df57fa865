package domain

import (
	"fmt"
	"time"
)

// Window is one half-open download unit [Start, End). Consecutive windows
// share an endpoint exactly, so committed coverage never gaps or overlaps.
type Window struct {
	Start time.Time
	End   time.Time
}

func NewWindow(start, end time.Time) (Window, error) {
	if !end.After(start) {
		return Window{}, fmt.Errorf("window end %s is not after start %s", end, start)
	}
	return Window{Start: start.UTC(), End: end.UTC()}, nil
}

func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Next returns the adjacent window of duration d starting where w ends.
func (w Window) Next(d time.Duration) Window {
	return Window{Start: w.End, End: w.End.Add(d)}
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s)", w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
}
