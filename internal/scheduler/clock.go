package scheduler

import (
	"context"
	"time"
)

// Clock provides the loop's only two time operations. The scheduler reads
// "now" and sleeps through the same source so window arithmetic and wakeups
// can never skew against each other.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// Sleep blocks for d or until the context is cancelled, whichever comes
// first.
func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
