package analytics

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/katyella/sprig-sample/internal/constants"
)

// RetryConfig configures batch redelivery.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts, including the first.
	// Set to 1 to disable retries.
	MaxAttempts int

	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration

	// MaxDelay caps the delay between retries.
	MaxDelay time.Duration

	// Multiplier is the factor by which the delay grows.
	Multiplier float64

	// JitterFactor adds randomness to delays (0.0 to 1.0).
	JitterFactor float64
}

func defaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  constants.DefaultRetryAttempts,
		BaseDelay:    constants.DefaultInitialDelay,
		MaxDelay:     constants.DefaultMaxDelay,
		Multiplier:   constants.DefaultBackoffFactor,
		JitterFactor: constants.DefaultJitterFactor,
	}
}

// retryer runs an operation with exponential backoff.
type retryer struct {
	config RetryConfig
}

func newRetryer(config RetryConfig) *retryer {
	defaults := defaultRetryConfig()
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = defaults.MaxAttempts
	}
	if config.BaseDelay <= 0 {
		config.BaseDelay = defaults.BaseDelay
	}
	if config.MaxDelay <= 0 {
		config.MaxDelay = defaults.MaxDelay
	}
	if config.Multiplier <= 0 {
		config.Multiplier = defaults.Multiplier
	}
	return &retryer{config: config}
}

// do executes op until it succeeds, fails permanently or attempts run out.
func (r *retryer) do(ctx context.Context, op func() error) error {
	var lastErr error

	for attempt := 0; attempt < r.config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("context cancelled: %w", err)
		}

		lastErr = op()
		if lastErr == nil {
			return nil
		}

		if !r.isRetryable(lastErr) {
			return lastErr
		}

		if attempt < r.config.MaxAttempts-1 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for retry: %w", ctx.Err())
			case <-time.After(r.calculateDelay(attempt)):
			}
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// calculateDelay computes the delay for a given attempt with jitter.
func (r *retryer) calculateDelay(attempt int) time.Duration {
	delay := float64(r.config.BaseDelay) * math.Pow(r.config.Multiplier, float64(attempt))
	if delay > float64(r.config.MaxDelay) {
		delay = float64(r.config.MaxDelay)
	}

	if r.config.JitterFactor > 0 {
		delay += delay * r.config.JitterFactor * (rand.Float64()*2 - 1)
	}

	return time.Duration(delay)
}

func (r *retryer) isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.IsRetryable()
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.IsTemporary()
	}

	return false
}
