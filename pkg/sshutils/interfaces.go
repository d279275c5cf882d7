package sshutils

import (
	"context"
	"io"

	"golang.org/x/crypto/ssh"
)

// SSHSessioner defines the operations needed from one remote exec channel.
type SSHSessioner interface {
	SetStdout(w io.Writer)
	SetStderr(w io.Writer)
	Start(cmd string) error
	Wait() error
	Run(cmd string) error
	Close() error
}

// SSHClienter defines the operations needed from one live SSH connection.
type SSHClienter interface {
	NewSession() (SSHSessioner, error)
	GetClient() *ssh.Client
	Close() error
}

// SSHDialer opens SSH connections. The context bounds the whole dial,
// including the protocol handshake and authentication.
type SSHDialer interface {
	Dial(ctx context.Context, network, addr string, config *ssh.ClientConfig) (SSHClienter, error)
}
