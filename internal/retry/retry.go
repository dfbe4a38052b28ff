// Package retry re-runs operations that fail with transient errors, such as
// a history database briefly locked by another vitals process.
package retry

import (
	"context"
	"math/rand"
	"time"
)

// Policy bounds how often and how long an operation is retried.
type Policy struct {
	Attempts int
	Delay    time.Duration
	MaxDelay time.Duration
}

// Local is the policy for local resources: a few quick attempts.
var Local = Policy{Attempts: 4, Delay: 25 * time.Millisecond, MaxDelay: 250 * time.Millisecond}

// Do calls fn until it succeeds, returns an error transient rejects, or the
// attempts run out. The last error is returned.
func Do(ctx context.Context, p Policy, transient func(error) bool, fn func() error) error {
	if p.Attempts < 1 {
		p.Attempts = 1
	}

	var err error
	for attempt := 1; ; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if err != nil {
				return err
			}
			return ctxErr
		}
		if err = fn(); err == nil {
			return nil
		}
		if attempt >= p.Attempts || transient == nil || !transient(err) {
			return err
		}
		if !wait(ctx, jitter(p.Delay, p.MaxDelay, attempt)) {
			return err
		}
	}
}

// jitter doubles delay per attempt up to max and picks a random point below it.
func jitter(delay, max time.Duration, attempt int) time.Duration {
	if delay <= 0 {
		return 0
	}
	d := delay << (attempt - 1)
	if max > 0 && (d > max || d <= 0) {
		d = max
	}
	return time.Duration(rand.Int63n(int64(d) + 1))
}

func wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
