package remote

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned by Establish when the surrounding context is
// cancelled during a dial or a backoff wait.
var ErrCancelled = errors.New("connection attempt cancelled")

// ConfigurationError reports invalid caller-supplied input. No connection
// attempt is made.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Reason
}

// AuthenticationError reports a credential rejection. Never retried: a wrong
// credential cannot succeed on retry and repeated attempts risk account
// lockout.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication rejected: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// ExhaustedRetriesError reports that every policy-permitted attempt failed
// transiently. LastCause is the failure of the final attempt.
type ExhaustedRetriesError struct {
	Attempts  int
	LastCause error
}

func (e *ExhaustedRetriesError) Error() string {
	return fmt.Sprintf("connection failed after %d attempts: %v", e.Attempts, e.LastCause)
}

func (e *ExhaustedRetriesError) Unwrap() error {
	return e.LastCause
}

// ValidationError reports that a connection was opened but the post-connect
// probe did not come back clean. The transport is already closed when this is
// returned. Not retried: a session that dials fine but cannot echo a literal
// points at a broken remote environment, not a transient fault.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "connection validation failed: " + e.Reason
}
