package remote

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/applianceops/remoterun/pkg/logger"
)

// Execute runs one command on the session under a hard deadline and returns
// the classified outcome. Command failures are data, not errors: a non-zero
// exit, a timeout, or a transport hiccup all come back inside the
// CommandResult. Execute never retries; repeating a command automatically
// could double-apply a non-idempotent remote action, so that decision stays
// with the caller.
func (s *Session) Execute(ctx context.Context, command string, timeout time.Duration) CommandResult {
	if s.State() != StateConnected {
		return CommandResult{Failure: &Failure{Kind: FailureNotConnected}}
	}
	return s.exec(ctx, command, timeout)
}

// exec is the state-check-free execution path, shared with the post-connect
// probe which runs while the session is still Connecting.
func (s *Session) exec(ctx context.Context, command string, timeout time.Duration) CommandResult {
	l := logger.Get()

	client := s.clientHandle()
	if client == nil {
		return CommandResult{Failure: &Failure{Kind: FailureNotConnected}}
	}

	execSession, err := client.NewSession()
	if err != nil {
		return CommandResult{Failure: &Failure{Kind: FailureTransport, Detail: err.Error()}}
	}
	defer execSession.Close()

	// The timeout path reads these while the remote may still be writing.
	var stdout, stderr syncBuffer
	execSession.SetStdout(&stdout)
	execSession.SetStderr(&stderr)

	l.Debugf("executing on %s: %s", s.endpoint, command)
	if err := execSession.Start(command); err != nil {
		return CommandResult{Failure: &Failure{Kind: FailureTransport, Detail: err.Error()}}
	}

	done := make(chan error, 1)
	go func() {
		done <- execSession.Wait()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		result := CommandResult{Stdout: stdout.String(), Stderr: stderr.String()}
		if err != nil {
			// *ssh.ExitError satisfies this; so do test fakes, since the
			// real type cannot be constructed outside x/crypto.
			var exitErr interface{ ExitStatus() int }
			if errors.As(err, &exitErr) {
				result.Failure = &Failure{
					Kind:     FailureNonZeroExit,
					ExitCode: exitErr.ExitStatus(),
					Stderr:   result.Stderr,
				}
			} else {
				// A transport fault mid-command does not flip the
				// session to Failed; one hiccup does not invalidate the
				// connection, and the caller decides whether to
				// re-establish.
				result.Failure = &Failure{Kind: FailureTransport, Detail: err.Error()}
			}
		}
		return result

	case <-timer.C:
		// The exec channel gives no way to kill the remote process; close
		// the channel and abandon it. The session stays Connected, but
		// repeated timeouts are the caller's cue to re-establish.
		l.Warnf("command on %s timed out after %s", s.endpoint, timeout)
		return CommandResult{
			Stdout:  stdout.String(),
			Stderr:  stderr.String(),
			Failure: &Failure{Kind: FailureTimeout, Elapsed: timeout},
		}

	case <-ctx.Done():
		l.Debugf("command on %s cancelled", s.endpoint)
		return CommandResult{
			Stdout:  stdout.String(),
			Stderr:  stderr.String(),
			Failure: &Failure{Kind: FailureTransport, Detail: "cancelled"},
		}
	}
}

// syncBuffer is a mutex-guarded bytes.Buffer. The executor reads partial
// output on the timeout and cancellation paths while the session goroutine
// may still be appending.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
