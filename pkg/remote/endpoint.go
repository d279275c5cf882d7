package remote

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/ssh"
)

const maxPort = 65535

// Endpoint identifies one remote host and the credentials used against it.
// Immutable once a connection attempt begins. Password auth is the common
// case for the appliances this tool targets; a private key path may be given
// instead of (or in addition to) a password.
type Endpoint struct {
	Host           string
	Port           int
	User           string
	Password       string
	PrivateKeyPath string
}

// Validate checks the endpoint invariants. Violations are caller errors.
func (e Endpoint) Validate() error {
	if e.Host == "" {
		return &ConfigurationError{Reason: "host cannot be empty"}
	}
	if e.Port < 1 || e.Port > maxPort {
		return &ConfigurationError{Reason: fmt.Sprintf("invalid port number: %d", e.Port)}
	}
	if e.User == "" {
		return &ConfigurationError{Reason: "user cannot be empty"}
	}
	if e.Password == "" && e.PrivateKeyPath == "" {
		return &ConfigurationError{Reason: "no credential provided: set a password or a private key path"}
	}
	return nil
}

// Addr returns the host:port dial address.
func (e Endpoint) Addr() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// String renders the endpoint for logs. The credential is never included.
func (e Endpoint) String() string {
	return fmt.Sprintf("%s@%s:%d", e.User, e.Host, e.Port)
}

func (e Endpoint) clientConfig(timeout time.Duration) (*ssh.ClientConfig, error) {
	var methods []ssh.AuthMethod
	if e.Password != "" {
		methods = append(methods, ssh.Password(e.Password))
	}
	if e.PrivateKeyPath != "" {
		keyBytes, err := os.ReadFile(e.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read private key: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(keyBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}

	return &ssh.ClientConfig{
		User:            e.User,
		Auth:            methods,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec
		Timeout:         timeout,
	}, nil
}
