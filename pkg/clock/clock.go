package clock

import (
	"context"
	"time"
)

// Clock abstracts time so polling and rate-limit delays can be tested
// without real waits.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until the context is cancelled.
	Sleep(ctx context.Context, d time.Duration) error
}

type implClock struct{}

// New creates a Clock backed by real time.
func New() Clock {
	return &implClock{}
}

func (c *implClock) Now() time.Time {
	return time.Now()
}

func (c *implClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
