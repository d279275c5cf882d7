package sshutils

import (
	"context"
	"fmt"

	"golang.org/x/crypto/ssh"
)

// NewSSHDialer returns the production dialer.
func NewSSHDialer() SSHDialer {
	return &sshDialer{}
}

type sshDialer struct{}

type dialResult struct {
	client SSHClienter
	err    error
}

func (d *sshDialer) Dial(
	ctx context.Context,
	network, addr string,
	config *ssh.ClientConfig,
) (SSHClienter, error) {
	result := make(chan dialResult, 1)

	go func() {
		client, err := ssh.Dial(network, addr, config)
		if err != nil {
			result <- dialResult{nil, fmt.Errorf("failed to dial: %w", err)}
			return
		}
		select {
		case result <- dialResult{&SSHClientWrapper{Client: client}, nil}:
		case <-ctx.Done():
			// Nobody is waiting for this handle anymore.
			client.Close()
		}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-result:
		return res.client, res.err
	}
}
