package actions

import (
	"context"
	"fmt"
	"time"
)

// DefaultCooldown is the pause between consecutive remote writes.
const DefaultCooldown = time.Second

// Pacer blocks until the next remote write is allowed.
type Pacer interface {
	Wait(ctx context.Context) error
}

// sleepPacer pauses for a fixed cooldown on every call.
type sleepPacer struct {
	cooldown time.Duration
}

// NewPacer returns a Pacer that pauses for cooldown each time Wait is called.
//
// Wait is called after a write completes and before the next one starts, so the pause is
// measured from the end of the previous write. A cooldown of zero or less disables pacing.
//
// Parameters:
//   - cooldown: Pause between writes.
//
// Returns:
//   - Pacer: Fixed-delay pacer.
func NewPacer(cooldown time.Duration) Pacer {
	return &sleepPacer{cooldown: cooldown}
}

// Wait blocks for the cooldown or until ctx is done.
func (p *sleepPacer) Wait(ctx context.Context) error {
	if p.cooldown <= 0 {
		return nil
	}

	timer := time.NewTimer(p.cooldown)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("cooldown interrupted: %w", ctx.Err())
	}
}
