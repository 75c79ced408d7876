// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package info

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"
)

// maxRetryAfter caps how long a Retry-After header can stall a lookup.
const maxRetryAfter = 30 * time.Second

// transientError is an upstream failure worth another attempt: a network
// error, 429 or 5xx. wait holds the delay the server asked for.
type transientError struct {
	err     error
	wait    time.Duration
	hasWait bool
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// fetch GETs u into v. Transient failures are retried up to c.attempts
// times with a doubling delay; a Retry-After from the server overrides the
// delay for that wait.
func (c *Client) fetch(ctx context.Context, u string, v any) error {
	delay := c.delay
	var err error

	for i := range max(c.attempts, 1) {
		if i > 0 {
			wait := delay
			var te *transientError
			if errors.As(err, &te) && te.hasWait {
				wait = te.wait
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			delay *= 2
		}

		err = c.getJSON(ctx, u, v)
		if err == nil || !errors.As(err, new(*transientError)) {
			return err
		}
	}
	return err
}

// retryAfter parses a Retry-After header in either the seconds or the
// HTTP-date form.
func retryAfter(h string, now time.Time) (time.Duration, bool) {
	if h == "" {
		return 0, false
	}
	if s, err := strconv.Atoi(h); err == nil {
		if s < 0 {
			return 0, false
		}
		return min(time.Duration(s)*time.Second, maxRetryAfter), true
	}
	if t, err := http.ParseTime(h); err == nil {
		return min(max(t.Sub(now), 0), maxRetryAfter), true
	}
	return 0, false
}
