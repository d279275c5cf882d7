package remote

import (
	"fmt"
	"time"
)

// RetryPolicy bounds connection establishment. The delay before attempt k+1
// is InitialDelay * BackoffMultiplier^(k-1); a multiplier of at least 1.0
// guarantees non-decreasing delays. Growth is uncapped and unjittered.
type RetryPolicy struct {
	MaxAttempts       int
	InitialDelay      time.Duration
	BackoffMultiplier float64
}

// DefaultRetryPolicy matches the values the appliance test suites have
// always used.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:       3,
		InitialDelay:      2 * time.Second,
		BackoffMultiplier: 1.5,
	}
}

// Validate checks the policy invariants. Violations are caller errors.
func (p RetryPolicy) Validate() error {
	if p.MaxAttempts < 1 {
		return &ConfigurationError{Reason: fmt.Sprintf("max attempts must be at least 1, got %d", p.MaxAttempts)}
	}
	if p.InitialDelay < 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("initial delay cannot be negative, got %s", p.InitialDelay)}
	}
	if p.BackoffMultiplier < 1.0 {
		return &ConfigurationError{Reason: fmt.Sprintf("backoff multiplier must be at least 1.0, got %g", p.BackoffMultiplier)}
	}
	return nil
}
