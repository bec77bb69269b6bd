package scrape

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacing defaults, matching a polite single-operator batch run.
const (
	DefaultResourceDelay = 500 * time.Millisecond
	DefaultPageDelay     = 1 * time.Second
)

// Pacer spaces sequential operations with fixed-duration pauses: a short
// one between resource downloads and a longer one between pages. Built on
// token buckets with burst 1 so the first operation is immediate and each
// subsequent one waits out the configured interval. Context cancellation
// interrupts a wait.
type Pacer struct {
	resources *rate.Limiter
	pages     *rate.Limiter
}

// NewPacer creates a Pacer with the given delays. A zero or negative
// delay disables pacing for that level.
func NewPacer(resourceDelay, pageDelay time.Duration) *Pacer {
	return &Pacer{
		resources: limiterFor(resourceDelay),
		pages:     limiterFor(pageDelay),
	}
}

func limiterFor(d time.Duration) *rate.Limiter {
	if d <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(d), 1)
}

// WaitResource blocks until the next resource download may start.
func (p *Pacer) WaitResource(ctx context.Context) error {
	return p.resources.Wait(ctx)
}

// WaitPage blocks until the next page fetch may start.
func (p *Pacer) WaitPage(ctx context.Context) error {
	return p.pages.Wait(ctx)
}
