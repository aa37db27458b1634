// Package retry wraps gateway calls with bounded exponential backoff.
// Classification of what is worth retrying lives in pkg/errors; this
// package only owns attempt counting and delay math.
package retry

import (
	"context"
	"fmt"
	"math"
	"time"

	"blogspace-client/pkg/alerts"
	apperrors "blogspace-client/pkg/errors"
)

// Config defines retry behavior.
type Config struct {
	MaxAttempts       int           // total attempts, including the first
	BaseDelay         time.Duration // delay after the first failure
	MaxDelay          time.Duration // cap applied to every delay
	BackoffMultiplier float64       // exponential growth factor

	// sleep is swapped out in tests to observe delays without waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// DefaultConfig returns the standard client policy.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:       3,
		BaseDelay:         1 * time.Second,
		MaxDelay:          10 * time.Second,
		BackoffMultiplier: 2,
	}
}

// delayFor computes the wait after the given 1-based failed attempt:
// min(base * multiplier^(attempt-1), max).
func (c Config) delayFor(attempt int) time.Duration {
	backoff := float64(c.BaseDelay) * math.Pow(c.BackoffMultiplier, float64(attempt-1))
	delay := time.Duration(backoff)
	if delay > c.MaxDelay {
		delay = c.MaxDelay
	}
	return delay
}

// Operation is a single attemptable call.
type Operation func(ctx context.Context) error

// Do executes op up to cfg.MaxAttempts times. Non-retryable failures
// (auth, permission, validation, any 4xx outside 408/429) propagate
// immediately after the first attempt; retryable ones are retried with
// backoff until attempts run out, at which point the last error is
// returned wrapped with the attempt count.
func Do(ctx context.Context, cfg Config, op Operation) error {
	sleep := cfg.sleep
	if sleep == nil {
		sleep = sleepWithContext
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !apperrors.IsRetryable(err) {
			return err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		if err := sleep(ctx, cfg.delayFor(attempt)); err != nil {
			return err
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", cfg.MaxAttempts, lastErr)
}

// DoNotify runs Do and, on terminal failure, surfaces the error through
// the alert facade so callers do not have to duplicate that handling.
// A 401 has already torn the session down inside the gateway; here it is
// only narrated.
func DoNotify(ctx context.Context, cfg Config, alerter alerts.Alerter, op Operation) error {
	err := Do(ctx, cfg, op)
	if err == nil {
		return nil
	}

	if apperrors.IsUnauthorized(err) {
		alerter.Warning("Authentication Required", "Your session has expired. Please log in again.")
		return err
	}

	msg := "Network error. Please check your connection."
	if appErr := apperrors.GetAppError(err); appErr != nil {
		msg = appErr.UserMessage()
	}
	alerter.ToastError(msg)
	return err
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
