package remote

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/applianceops/remoterun/pkg/logger"
	"github.com/applianceops/remoterun/pkg/sshutils"
)

// Upload copies a local file to remotePath over SFTP on this session's
// transport. The local file is checked before any transport use.
func (s *Session) Upload(ctx context.Context, localPath, remotePath string) error {
	l := logger.Get()

	if s.State() != StateConnected {
		return fmt.Errorf("session to %s is not connected", s.endpoint)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(localPath); err != nil {
		return fmt.Errorf("local file not accessible: %w", err)
	}

	client := s.clientHandle()
	if client == nil {
		return fmt.Errorf("session to %s is not connected", s.endpoint)
	}

	sftpClient, err := sshutils.SFTPClientCreator(client.GetClient())
	if err != nil {
		return fmt.Errorf("failed to create SFTP client: %w", err)
	}
	defer sftpClient.Close()

	local, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open local file: %w", err)
	}
	defer local.Close()

	remote, err := sftpClient.Create(remotePath)
	if err != nil {
		return fmt.Errorf("failed to create remote file: %w", err)
	}

	written, err := io.Copy(remote, local)
	if err != nil {
		remote.Close()
		return fmt.Errorf("failed to write remote file: %w", err)
	}
	if err := remote.Close(); err != nil {
		return fmt.Errorf("failed to finalize remote file: %w", err)
	}

	l.Infof("transferred %d bytes to %s:%s", written, s.endpoint.Host, remotePath)
	return nil
}
