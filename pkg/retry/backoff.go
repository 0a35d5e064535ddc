// Package retry re-executes operations that failed with a transient
// infrastructure error, using bounded exponential backoff. Domain and
// validation errors are never retried.
package retry

import (
	"context"
	"log/slog"
	"time"
)

// Config defines retry behavior.
type Config struct {
	// MaxRetries is the number of re-attempts after the first try, so an
	// always-failing transient operation runs MaxRetries+1 times in total.
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// DefaultConfig returns the stock retry settings: up to 4 retries with a
// 1s/2s/4s/8s backoff series capped at 30s.
func DefaultConfig() Config {
	return Config{
		MaxRetries: 4,
		BaseDelay:  time.Second,
		MaxDelay:   30 * time.Second,
	}
}

// Do executes fn, retrying on transient errors with exponential backoff.
// The error returned by fn propagates unchanged: fatal errors immediately,
// transient ones once retries are exhausted. Operations passed here must be
// safe to re-run as a whole (e.g. a full transaction that rolls back cleanly).
func Do(ctx context.Context, cfg Config, logger *slog.Logger, operation string, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			if attempt > 0 && logger != nil {
				logger.Info("Operation succeeded after retries",
					slog.String("operation", operation),
					slog.Int("attempts", attempt+1))
			}
			return nil
		}

		if !IsTransient(lastErr) || attempt == cfg.MaxRetries {
			return lastErr
		}

		delay := backoffDelay(cfg, attempt)
		if logger != nil {
			logger.Warn("Transient failure, retrying",
				slog.String("operation", operation),
				slog.Int("attempt", attempt+1),
				slog.Int("max_retries", cfg.MaxRetries),
				slog.Duration("retry_in", delay),
				slog.String("error", lastErr.Error()))
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return lastErr
}

// backoffDelay computes min(base * 2^attempt, max).
func backoffDelay(cfg Config, attempt int) time.Duration {
	delay := cfg.BaseDelay
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= cfg.MaxDelay {
			return cfg.MaxDelay
		}
	}
	if delay > cfg.MaxDelay {
		return cfg.MaxDelay
	}
	return delay
}
