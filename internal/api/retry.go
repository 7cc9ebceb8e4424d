package api

import (
	"context"
	"time"

	apierrors "github.com/MBhoomika/serene-ai/internal/errors"
)

// Retry policy for rate-limit failures: fixed delay, no backoff growth.
const (
	MaxRetries = 3
	RetryDelay = 5 * time.Second
)

// RetryState tracks the rate-limit retry cycle for a single exchange. It is
// owned by whoever drives the exchange (the widget model or ChatWithRetry),
// never shared across sessions.
type RetryState struct {
	Count    int
	Max      int
	Delay    time.Duration
	InFlight bool
	Pending  string // message awaiting resend, empty when none
}

// NewRetryState returns a RetryState with the default policy.
func NewRetryState() RetryState {
	return RetryState{Max: MaxRetries, Delay: RetryDelay}
}

// Schedule records one more retry attempt for message. It reports false when
// the budget is exhausted or a retry is already pending, in which case the
// caller falls through to the generic-error branch.
func (r *RetryState) Schedule(message string) bool {
	if r.Count >= r.Max || r.InFlight {
		return false
	}
	r.Count++
	r.InFlight = true
	r.Pending = message
	return true
}

// Resend marks the pending retry as dispatched and returns the message to
// resend.
func (r *RetryState) Resend() string {
	msg := r.Pending
	r.InFlight = false
	r.Pending = ""
	return msg
}

// Reset clears the cycle. Called on success and on every non-retryable
// failure, so the next rate-limit error starts from attempt 1.
func (r *RetryState) Reset() {
	r.Count = 0
	r.InFlight = false
	r.Pending = ""
}

// ChatWithRetry sends message, retrying rate-limit failures up to the
// RetryState budget with a fixed delay between attempts. notify, when
// non-nil, is called before each wait with the attempt number and budget.
// The wait is cancellable through ctx.
func (c *Client) ChatWithRetry(ctx context.Context, message string, rs *RetryState, notify func(attempt, max int)) (string, error) {
	for {
		response, err := c.Chat(ctx, message)
		if err == nil {
			rs.Reset()
			return response, nil
		}

		if apierrors.IsAuthError(err) {
			// Terminal: no retry, state untouched.
			return "", err
		}

		if apierrors.IsRetryable(err) && rs.Schedule(message) {
			if notify != nil {
				notify(rs.Count, rs.Max)
			}
			timer := time.NewTimer(rs.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				rs.Reset()
				return "", ctx.Err()
			case <-timer.C:
			}
			message = rs.Resend()
			continue
		}

		rs.Reset()
		return "", err
	}
}
