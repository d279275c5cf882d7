package remote

import (
	"sync"

	"github.com/applianceops/remoterun/pkg/logger"
	"github.com/applianceops/remoterun/pkg/sshutils"
)

// Session is one established, validated connection to one endpoint. A
// Session owns exactly one transport handle and supports at most one
// in-flight Execute at a time; callers needing parallelism establish one
// Session per worker.
type Session struct {
	mu       sync.Mutex
	state    SessionState
	client   sshutils.SSHClienter
	endpoint Endpoint
}

func newSession(endpoint Endpoint, client sshutils.SSHClienter) *Session {
	return &Session{
		state:    StateConnecting,
		client:   client,
		endpoint: endpoint,
	}
}

// State returns the session's current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Endpoint returns the endpoint this session was established against.
func (s *Session) Endpoint() Endpoint {
	return s.endpoint
}

func (s *Session) setState(state SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// Close tears the session down. Idempotent and infallible: closing an
// already-closed session is a no-op, transport teardown errors are logged
// and swallowed, and the session ends up Closed on every path. Cleanup code
// can always call Close without its own error handling.
func (s *Session) Close() {
	l := logger.Get()

	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		l.Debugf("close on already-closed session to %s is a no-op", s.endpoint)
		return
	}
	prev := s.state
	s.state = StateClosed
	client := s.client
	s.client = nil
	s.mu.Unlock()

	// A Failed session has no live transport left to tear down.
	if prev == StateFailed || client == nil {
		l.Debugf("session to %s closed (was %s)", s.endpoint, prev)
		return
	}

	if err := client.Close(); err != nil {
		l.Warnf("transport teardown for %s reported: %v", s.endpoint, err)
	} else {
		l.Infof("disconnected from %s", s.endpoint)
	}
}

// clientHandle returns the transport handle, or nil once closed.
func (s *Session) clientHandle() sshutils.SSHClienter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client
}
