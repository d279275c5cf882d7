package remote

import (
	"fmt"
	"time"
)

// SessionState tracks where a session is in its lifecycle. Closed is
// terminal; a closed session is never reused.
type SessionState int

const (
	StateConnecting SessionState = iota
	StateConnected
	StateFailed
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// FailureKind discriminates the ways a single command execution can fail.
type FailureKind int

const (
	FailureNotConnected FailureKind = iota
	FailureTimeout
	FailureNonZeroExit
	FailureTransport
)

func (k FailureKind) String() string {
	switch k {
	case FailureNotConnected:
		return "not connected"
	case FailureTimeout:
		return "timeout"
	case FailureNonZeroExit:
		return "non-zero exit"
	case FailureTransport:
		return "transport error"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Failure describes why a command did not run to completion with exit 0.
// Only the fields relevant to Kind are populated.
type Failure struct {
	Kind     FailureKind
	Elapsed  time.Duration // FailureTimeout
	ExitCode int           // FailureNonZeroExit
	Stderr   string        // FailureNonZeroExit
	Detail   string        // FailureTransport
}

func (f *Failure) Error() string {
	switch f.Kind {
	case FailureNotConnected:
		return "session is not connected"
	case FailureTimeout:
		return fmt.Sprintf("command timed out after %s", f.Elapsed)
	case FailureNonZeroExit:
		if f.Stderr != "" {
			return fmt.Sprintf("command exited with code %d: %s", f.ExitCode, f.Stderr)
		}
		return fmt.Sprintf("command exited with code %d", f.ExitCode)
	case FailureTransport:
		return fmt.Sprintf("transport error: %s", f.Detail)
	default:
		return "unknown failure"
	}
}

// CommandResult is the outcome of one command execution. A nil Failure means
// the command ran to completion and exited 0. Stdout is kept even when the
// command failed.
type CommandResult struct {
	Stdout  string
	Stderr  string
	Failure *Failure
}

// Succeeded reports whether the command completed with exit code 0.
func (r CommandResult) Succeeded() bool {
	return r.Failure == nil
}
