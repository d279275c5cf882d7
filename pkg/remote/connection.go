package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/applianceops/remoterun/pkg/logger"
	"github.com/applianceops/remoterun/pkg/sshutils"
)

const (
	// connectTimeout bounds a single dial attempt, including the protocol
	// handshake and authentication.
	connectTimeout = 30 * time.Second

	// probeTimeout bounds the post-connect known-answer probe.
	probeTimeout = 10 * time.Second

	probeCommand  = "echo 'ok'"
	probeExpected = "ok"
)

// Connector establishes validated sessions. The zero value is not usable;
// call NewConnector.
type Connector struct {
	// Dialer opens transport handles. Replaced in tests.
	Dialer sshutils.SSHDialer

	// Timer drives the backoff waits. Nil means real time. Replaced in
	// tests so retry schedules can be asserted without sleeping.
	Timer backoff.Timer
}

func NewConnector() *Connector {
	return &Connector{Dialer: sshutils.NewSSHDialer()}
}

// Establish opens, retries, and validates a connection to endpoint under the
// given policy. Transient dial failures are retried with geometric backoff;
// credential rejections and probe failures are terminal. Raw transport
// errors never escape: callers see ConfigurationError, AuthenticationError,
// ExhaustedRetriesError, ValidationError, or ErrCancelled.
func (c *Connector) Establish(
	ctx context.Context,
	endpoint Endpoint,
	policy RetryPolicy,
) (*Session, error) {
	l := logger.Get()

	if err := endpoint.Validate(); err != nil {
		return nil, err
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	clientConfig, err := endpoint.clientConfig(connectTimeout)
	if err != nil {
		return nil, &ConfigurationError{Reason: err.Error()}
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = policy.InitialDelay
	b.Multiplier = policy.BackoffMultiplier
	b.RandomizationFactor = 0
	b.MaxInterval = time.Duration(1<<62 - 1)
	b.MaxElapsedTime = 0
	b.Reset()

	attempts := 0
	var client sshutils.SSHClienter

	operation := func() error {
		attempts++
		l.Debugf("connecting to %s (attempt %d/%d)", endpoint, attempts, policy.MaxAttempts)

		dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		handle, dialErr := c.Dialer.Dial(dialCtx, "tcp", endpoint.Addr(), clientConfig)
		if dialErr != nil {
			if classify(dialErr) == classPermanent {
				return backoff.Permanent(&AuthenticationError{Err: dialErr})
			}
			return dialErr
		}
		client = handle
		return nil
	}

	notify := func(err error, next time.Duration) {
		l.Debugf("connection to %s failed, retrying in %s: %v", endpoint, next, err)
	}

	retryPolicy := backoff.WithContext(
		backoff.WithMaxRetries(b, uint64(policy.MaxAttempts-1)),
		ctx,
	)

	if err := backoff.RetryNotifyWithTimer(operation, retryPolicy, notify, c.Timer); err != nil {
		var authErr *AuthenticationError
		if errors.As(err, &authErr) {
			l.Warnf("authentication rejected by %s", endpoint)
			return nil, authErr
		}
		if ctx.Err() != nil {
			l.Infof("connection to %s cancelled", endpoint)
			return nil, ErrCancelled
		}
		l.Warnf("giving up on %s after %d attempts: %v", endpoint, attempts, err)
		return nil, &ExhaustedRetriesError{Attempts: attempts, LastCause: err}
	}

	session := newSession(endpoint, client)

	// A handshake can complete against a host whose shell environment is
	// broken (quota, forced command). Catch that with a known-answer probe
	// before handing the session out; a failed probe is not transient.
	if reason := validateSession(ctx, session); reason != "" {
		l.Warnf("probe on %s failed: %s", endpoint, reason)
		if closeErr := client.Close(); closeErr != nil {
			l.Debugf("closing unvalidated transport to %s: %v", endpoint, closeErr)
		}
		session.mu.Lock()
		session.state = StateFailed
		session.client = nil
		session.mu.Unlock()
		return nil, &ValidationError{Reason: reason}
	}

	session.setState(StateConnected)
	l.Infof("established validated session to %s after %d attempt(s)", endpoint, attempts)
	return session, nil
}

// validateSession runs the known-answer probe and returns a non-empty reason
// on failure.
func validateSession(ctx context.Context, session *Session) string {
	result := session.exec(ctx, probeCommand, probeTimeout)
	if result.Failure != nil {
		return result.Failure.Error()
	}
	if got := strings.TrimSpace(result.Stdout); got != probeExpected {
		return fmt.Sprintf("probe returned %q, want %q", got, probeExpected)
	}
	return ""
}
