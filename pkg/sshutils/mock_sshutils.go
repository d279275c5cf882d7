package sshutils

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/ssh"
)

// MockSSHDialer is a mock implementation of SSHDialer.
type MockSSHDialer struct {
	mock.Mock
}

func (m *MockSSHDialer) Dial(
	ctx context.Context,
	network, addr string,
	config *ssh.ClientConfig,
) (SSHClienter, error) {
	args := m.Called(ctx, network, addr, config)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(SSHClienter), args.Error(1)
}

// MockSSHClient is a mock implementation of SSHClienter.
type MockSSHClient struct {
	mock.Mock
}

func (m *MockSSHClient) NewSession() (SSHSessioner, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(SSHSessioner), args.Error(1)
}

func (m *MockSSHClient) GetClient() *ssh.Client {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*ssh.Client)
}

func (m *MockSSHClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockSSHSession is a mock implementation of SSHSessioner. Stdout and Stderr
// capture the writers handed to SetStdout/SetStderr so tests can emit output
// for in-flight commands.
type MockSSHSession struct {
	mock.Mock
	Stdout io.Writer
	Stderr io.Writer
}

func (m *MockSSHSession) SetStdout(w io.Writer) {
	m.Stdout = w
	m.Called(w)
}

func (m *MockSSHSession) SetStderr(w io.Writer) {
	m.Stderr = w
	m.Called(w)
}

func (m *MockSSHSession) Start(cmd string) error {
	args := m.Called(cmd)
	return args.Error(0)
}

func (m *MockSSHSession) Wait() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSSHSession) Run(cmd string) error {
	args := m.Called(cmd)
	return args.Error(0)
}

func (m *MockSSHSession) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockSFTPClient is a mock implementation of SFTPClienter.
type MockSFTPClient struct {
	mock.Mock
}

func (m *MockSFTPClient) Create(path string) (io.WriteCloser, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSFTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockWriteCloser is a mock io.WriteCloser.
type MockWriteCloser struct {
	mock.Mock
}

func (m *MockWriteCloser) Write(p []byte) (int, error) {
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockWriteCloser) Close() error {
	args := m.Called()
	return args.Error(0)
}

var (
	_ SSHDialer    = (*MockSSHDialer)(nil)
	_ SSHClienter  = (*MockSSHClient)(nil)
	_ SSHSessioner = (*MockSSHSession)(nil)
	_ SFTPClienter = (*MockSFTPClient)(nil)
)
