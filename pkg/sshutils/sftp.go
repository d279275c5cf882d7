package sshutils

import (
	"io"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// SFTPClienter defines the file transfer operations used by the upload path.
type SFTPClienter interface {
	Create(path string) (io.WriteCloser, error)
	Close() error
}

// SFTPClientCreator builds an SFTP client on top of an established SSH
// connection. Overridable so tests can substitute a mock.
var SFTPClientCreator = func(client *ssh.Client) (SFTPClienter, error) {
	c, err := sftp.NewClient(client)
	if err != nil {
		return nil, err
	}
	return &sftpClientWrapper{client: c}, nil
}

type sftpClientWrapper struct {
	client *sftp.Client
}

func (w *sftpClientWrapper) Create(path string) (io.WriteCloser, error) {
	return w.client.Create(path)
}

func (w *sftpClientWrapper) Close() error {
	return w.client.Close()
}
