package ai

import (
	"context"
	"time"
)

const (
	maxAttempts = 2
	retryDelay  = time.Second
)

// completeWithRetry calls the gateway up to maxAttempts times, running each
// response through parse. A shape mismatch retries immediately; a transport
// error sleeps before the next attempt. On exhaustion the zero value is
// returned along with the last transport error, or nil when every attempt
// produced an unparseable response. Callers distinguish the two: a recorded
// error means the provider is unreachable, a nil error means fall back to
// static content.
func completeWithRetry[T any](ctx context.Context, gw Gateway, prompt string, sleep func(time.Duration), parse func(string) (T, bool)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		raw, err := gw.Complete(ctx, prompt)
		if err != nil {
			lastErr = err
			if attempt < maxAttempts {
				sleep(retryDelay)
			}
			continue
		}
		if parsed, ok := parse(raw); ok {
			return parsed, nil
		}
	}
	return zero, lastErr
}
