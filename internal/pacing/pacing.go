// Package pacing spaces out requests to the completion service.
package pacing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// ModeFixed sleeps the full delay between consecutive calls
	ModeFixed = "fixed"
	// ModeRate spaces call start times with a token bucket
	ModeRate = "rate"
)

// Pacer blocks until the next request may be sent
type Pacer interface {
	Wait(ctx context.Context) error
}

// New returns the pacer for mode. An empty mode means ModeFixed.
func New(mode string, delay time.Duration) (Pacer, error) {
	switch mode {
	case ModeFixed, "":
		return NewFixed(delay), nil
	case ModeRate:
		return NewRate(delay), nil
	default:
		return nil, fmt.Errorf("unsupported pacing mode: %s", mode)
	}
}

// Fixed lets the first call through and then sleeps delay before every
// further call. Callers wait only after the previous call has returned, so
// the delay is a gap between calls regardless of how long each call takes.
type Fixed struct {
	delay time.Duration

	mu      sync.Mutex
	started bool
}

// NewFixed returns a Fixed pacer. A delay <= 0 never blocks.
func NewFixed(delay time.Duration) *Fixed {
	return &Fixed{delay: delay}
}

// Wait blocks for the delay, or until ctx is done
func (f *Fixed) Wait(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if !f.started || f.delay <= 0 {
		f.started = true
		return nil
	}

	timer := time.NewTimer(f.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NewRate returns a limiter that lets one request through immediately and
// then one per delay, measured between call starts. A delay <= 0 never blocks.
func NewRate(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// None is a Pacer that never waits
type None struct{}

// Wait returns ctx.Err() without blocking
func (None) Wait(ctx context.Context) error {
	return ctx.Err()
}
