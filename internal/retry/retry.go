package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

// Config controls the bounded exponential backoff schedule.
type Config struct {
	MaxAttempts       int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
}

// DefaultConfig is the short profile used for steady-state fetches during
// page generation.
var DefaultConfig = Config{
	MaxAttempts:       5,
	InitialDelay:      1 * time.Second,
	MaxDelay:          30 * time.Second,
	BackoffMultiplier: 2,
}

// WarmupConfig is the long profile used by the offline warm-up job, where a
// transient outage must not abort the whole run.
var WarmupConfig = Config{
	MaxAttempts:       100,
	InitialDelay:      1 * time.Second,
	MaxDelay:          60 * time.Second,
	BackoffMultiplier: 2,
}

// Delay returns the sleep before retrying after the given failed attempt
// (1-based): min(initial * multiplier^(attempt-1), max). No jitter.
func (c Config) Delay(attempt int) time.Duration {
	d := float64(c.InitialDelay) * math.Pow(c.BackoffMultiplier, float64(attempt-1))
	if d > float64(c.MaxDelay) {
		return c.MaxDelay
	}
	return time.Duration(d)
}

// retryable is implemented by errors that know whether retrying can succeed.
type retryable interface {
	Retryable() bool
}

// Do invokes op up to cfg.MaxAttempts times, sleeping the backoff schedule
// between failures. It stops early when the error is marked non-retryable or
// the context is done. On exhaustion the aggregate error names the label and
// the attempt count and wraps the last failure.
func Do[T any](ctx context.Context, cfg Config, label string, logger *zap.Logger, op func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		var r retryable
		if errors.As(err, &r) && !r.Retryable() {
			return zero, err
		}

		if attempt == cfg.MaxAttempts {
			break
		}

		delay := cfg.Delay(attempt)
		logger.Warn("operation failed, retrying",
			zap.String("label", label),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", cfg.MaxAttempts),
			zap.Duration("delay", delay),
			zap.Error(err))

		if err := sleep(ctx, delay); err != nil {
			return zero, fmt.Errorf("%s interrupted: %w", label, err)
		}
	}

	return zero, fmt.Errorf("%s failed after %d attempts: %w", label, cfg.MaxAttempts, lastErr)
}

// sleep blocks for d or until the context is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
