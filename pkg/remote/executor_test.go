package remote

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/applianceops/remoterun/pkg/sshutils"
)

// fakeExitError stands in for *ssh.ExitError, which cannot be constructed
// outside x/crypto.
type fakeExitError struct {
	code int
}

func (e *fakeExitError) Error() string {
	return fmt.Sprintf("Process exited with status %d", e.code)
}

func (e *fakeExitError) ExitStatus() int {
	return e.code
}

func connectedSession(client sshutils.SSHClienter) *Session {
	s := newSession(testEndpoint(), client)
	s.setState(StateConnected)
	return s
}

func TestExecuteOnNotConnectedSession(t *testing.T) {
	client := &sshutils.MockSSHClient{}
	client.On("Close").Return(nil)

	// Still Connecting: the public path refuses it.
	s := newSession(testEndpoint(), client)
	result := s.Execute(context.Background(), "uptime", time.Second)
	require.NotNil(t, result.Failure)
	assert.Equal(t, FailureNotConnected, result.Failure.Kind)

	// Closed: same answer, and the transport is never touched.
	s.setState(StateConnected)
	s.Close()
	result = s.Execute(context.Background(), "uptime", time.Second)
	require.NotNil(t, result.Failure)
	assert.Equal(t, FailureNotConnected, result.Failure.Kind)

	client.AssertNumberOfCalls(t, "NewSession", 0)
}

func TestExecuteSuccess(t *testing.T) {
	execSession := &sshutils.MockSSHSession{}
	execSession.On("SetStdout", mock.Anything).Return()
	execSession.On("SetStderr", mock.Anything).Return()
	execSession.On("Start", "echo test").Run(func(mock.Arguments) {
		_, _ = execSession.Stdout.Write([]byte("test"))
	}).Return(nil)
	execSession.On("Wait").Return(nil)
	execSession.On("Close").Return(nil)

	client := &sshutils.MockSSHClient{}
	client.On("NewSession").Return(execSession, nil)

	s := connectedSession(client)
	result := s.Execute(context.Background(), "echo test", 30*time.Second)

	assert.True(t, result.Succeeded())
	assert.Equal(t, "test", result.Stdout)
	assert.Empty(t, result.Stderr)
	execSession.AssertExpectations(t)
}

func TestExecuteNonZeroExitKeepsStdout(t *testing.T) {
	execSession := &sshutils.MockSSHSession{}
	execSession.On("SetStdout", mock.Anything).Return()
	execSession.On("SetStderr", mock.Anything).Return()
	execSession.On("Start", "grep pattern /etc/config").Run(func(mock.Arguments) {
		_, _ = execSession.Stdout.Write([]byte("partial output"))
		_, _ = execSession.Stderr.Write([]byte("grep: /etc/config: No such file"))
	}).Return(nil)
	execSession.On("Wait").Return(&fakeExitError{code: 2})
	execSession.On("Close").Return(nil)

	client := &sshutils.MockSSHClient{}
	client.On("NewSession").Return(execSession, nil)

	s := connectedSession(client)
	result := s.Execute(context.Background(), "grep pattern /etc/config", 30*time.Second)

	require.NotNil(t, result.Failure)
	assert.Equal(t, FailureNonZeroExit, result.Failure.Kind)
	assert.Equal(t, 2, result.Failure.ExitCode)
	assert.Equal(t, "grep: /etc/config: No such file", result.Failure.Stderr)
	assert.Equal(t, "partial output", result.Stdout)
}

func TestExecuteTimeoutLeavesSessionConnected(t *testing.T) {
	neverDone := make(chan time.Time)

	execSession := &sshutils.MockSSHSession{}
	execSession.On("SetStdout", mock.Anything).Return()
	execSession.On("SetStderr", mock.Anything).Return()
	execSession.On("Start", "sleep 60").Run(func(mock.Arguments) {
		_, _ = execSession.Stdout.Write([]byte("started"))
	}).Return(nil)
	execSession.On("Wait").WaitUntil(neverDone).Return(nil)
	execSession.On("Close").Return(nil)

	client := &sshutils.MockSSHClient{}
	client.On("NewSession").Return(execSession, nil)

	s := connectedSession(client)
	timeout := 20 * time.Millisecond
	result := s.Execute(context.Background(), "sleep 60", timeout)

	require.NotNil(t, result.Failure)
	assert.Equal(t, FailureTimeout, result.Failure.Kind)
	assert.Equal(t, timeout, result.Failure.Elapsed)
	assert.Equal(t, "started", result.Stdout, "partial output is kept")
	assert.Equal(t, StateConnected, s.State(), "timeout does not tear the session down")
}

func TestExecuteTransportErrorLeavesSessionConnected(t *testing.T) {
	execSession := &sshutils.MockSSHSession{}
	execSession.On("SetStdout", mock.Anything).Return()
	execSession.On("SetStderr", mock.Anything).Return()
	execSession.On("Start", "uptime").Return(nil)
	execSession.On("Wait").Return(errors.New("ssh: unexpected packet in response to channel open"))
	execSession.On("Close").Return(nil)

	client := &sshutils.MockSSHClient{}
	client.On("NewSession").Return(execSession, nil)

	s := connectedSession(client)
	result := s.Execute(context.Background(), "uptime", time.Second)

	require.NotNil(t, result.Failure)
	assert.Equal(t, FailureTransport, result.Failure.Kind)
	assert.Contains(t, result.Failure.Detail, "unexpected packet")
	assert.Equal(t, StateConnected, s.State())
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	neverDone := make(chan time.Time)

	execSession := &sshutils.MockSSHSession{}
	execSession.On("SetStdout", mock.Anything).Return()
	execSession.On("SetStderr", mock.Anything).Return()
	execSession.On("Start", "sleep 60").Run(func(mock.Arguments) {
		cancel()
	}).Return(nil)
	execSession.On("Wait").WaitUntil(neverDone).Return(nil)
	execSession.On("Close").Return(nil)

	client := &sshutils.MockSSHClient{}
	client.On("NewSession").Return(execSession, nil)

	s := connectedSession(client)
	result := s.Execute(ctx, "sleep 60", time.Minute)

	require.NotNil(t, result.Failure)
	assert.Equal(t, FailureTransport, result.Failure.Kind)
	assert.Equal(t, "cancelled", result.Failure.Detail)
	assert.Equal(t, StateConnected, s.State(), "cleanup after cancellation is the caller's call")
}

func TestExecuteSessionOpenFailure(t *testing.T) {
	client := &sshutils.MockSSHClient{}
	client.On("NewSession").Return(nil, errors.New("ssh: channel open failed"))

	s := connectedSession(client)
	result := s.Execute(context.Background(), "uptime", time.Second)

	require.NotNil(t, result.Failure)
	assert.Equal(t, FailureTransport, result.Failure.Kind)
}

func TestFailureMessages(t *testing.T) {
	cases := []struct {
		failure *Failure
		want    string
	}{
		{&Failure{Kind: FailureNotConnected}, "session is not connected"},
		{&Failure{Kind: FailureTimeout, Elapsed: 5 * time.Second}, "command timed out after 5s"},
		{&Failure{Kind: FailureNonZeroExit, ExitCode: 1, Stderr: "boom"}, "command exited with code 1: boom"},
		{&Failure{Kind: FailureNonZeroExit, ExitCode: 1}, "command exited with code 1"},
		{&Failure{Kind: FailureTransport, Detail: "reset"}, "transport error: reset"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.failure.Error())
	}
}
