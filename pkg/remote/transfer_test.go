package remote

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	"github.com/applianceops/remoterun/internal/testutil"
	"github.com/applianceops/remoterun/pkg/sshutils"
)

type captureWriteCloser struct {
	bytes.Buffer
	closed bool
}

func (c *captureWriteCloser) Close() error {
	c.closed = true
	return nil
}

func withSFTPCreator(
	t *testing.T,
	creator func(*ssh.Client) (sshutils.SFTPClienter, error),
) {
	t.Helper()
	original := sshutils.SFTPClientCreator
	sshutils.SFTPClientCreator = creator
	t.Cleanup(func() { sshutils.SFTPClientCreator = original })
}

func TestUploadSuccess(t *testing.T) {
	localPath, cleanup, err := testutil.WriteStringToTempFile("payload contents")
	require.NoError(t, err)
	defer cleanup()

	remoteFile := &captureWriteCloser{}
	sftpClient := &sshutils.MockSFTPClient{}
	sftpClient.On("Create", "/tmp/payload.bin").Return(remoteFile, nil)
	sftpClient.On("Close").Return(nil)

	withSFTPCreator(t, func(*ssh.Client) (sshutils.SFTPClienter, error) {
		return sftpClient, nil
	})

	client := &sshutils.MockSSHClient{}
	client.On("GetClient").Return(nil)

	s := connectedSession(client)
	err = s.Upload(context.Background(), localPath, "/tmp/payload.bin")

	require.NoError(t, err)
	assert.Equal(t, "payload contents", remoteFile.String())
	assert.True(t, remoteFile.closed)
	sftpClient.AssertExpectations(t)
}

func TestUploadOnNotConnectedSession(t *testing.T) {
	withSFTPCreator(t, func(*ssh.Client) (sshutils.SFTPClienter, error) {
		t.Fatal("SFTP client must not be created for a closed session")
		return nil, nil
	})

	client := &sshutils.MockSSHClient{}
	client.On("Close").Return(nil)

	s := connectedSession(client)
	s.Close()

	err := s.Upload(context.Background(), "/does/not/matter", "/remote/path")
	assert.ErrorContains(t, err, "not connected")
}

func TestUploadMissingLocalFile(t *testing.T) {
	withSFTPCreator(t, func(*ssh.Client) (sshutils.SFTPClienter, error) {
		t.Fatal("SFTP client must not be created when the local file is missing")
		return nil, nil
	})

	client := &sshutils.MockSSHClient{}

	s := connectedSession(client)
	err := s.Upload(context.Background(), "/nonexistent/local/file", "/remote/path")
	assert.ErrorContains(t, err, "local file not accessible")
}

func TestUploadSFTPSetupFailure(t *testing.T) {
	localPath, cleanup, err := testutil.WriteStringToTempFile("x")
	require.NoError(t, err)
	defer cleanup()

	withSFTPCreator(t, func(*ssh.Client) (sshutils.SFTPClienter, error) {
		return nil, errors.New("sftp subsystem unavailable")
	})

	client := &sshutils.MockSSHClient{}
	client.On("GetClient").Return(nil)

	s := connectedSession(client)
	uploadErr := s.Upload(context.Background(), localPath, "/remote/path")
	assert.ErrorContains(t, uploadErr, "failed to create SFTP client")
}
