package testutil

import (
	"os"

	"github.com/applianceops/remoterun/internal/testdata"
)

// CreateSSHPublicPrivateKeyPairOnDisk writes the embedded dummy key pair to
// temp files and returns both paths with their cleanup funcs.
func CreateSSHPublicPrivateKeyPairOnDisk() (string, func(), string, func()) {
	publicKeyPath, cleanupPublicKey, err := WriteStringToTempFile(
		testdata.TestPublicSSHKeyMaterial,
	)
	if err != nil {
		panic(err)
	}
	privateKeyPath, cleanupPrivateKey, err := WriteStringToTempFile(
		testdata.TestPrivateSSHKeyMaterial,
	)
	if err != nil {
		panic(err)
	}

	return publicKeyPath, cleanupPublicKey, privateKeyPath, cleanupPrivateKey
}

// WriteStringToTempFileWithExtension writes content to a temp file carrying
// the given extension. Needed for config files, where the extension selects
// the parser.
func WriteStringToTempFileWithExtension(content, extension string) (string, func(), error) {
	path, cleanup, err := WriteStringToTempFile(content)
	if err != nil {
		return "", nil, err
	}

	pathPlusExtension := path + extension
	if err := os.Rename(path, pathPlusExtension); err != nil {
		cleanup()
		return "", nil, err
	}

	return pathPlusExtension, func() { os.Remove(pathPlusExtension) }, nil
}

// WriteStringToTempFile writes content to a fresh temp file and returns its
// path and a cleanup func.
func WriteStringToTempFile(content string) (string, func(), error) {
	tempFile, err := os.CreateTemp("", "remoterun-*")
	if err != nil {
		return "", nil, err
	}

	if _, err := tempFile.WriteString(content); err != nil {
		tempFile.Close()
		os.Remove(tempFile.Name())
		return "", nil, err
	}

	tempFile.Close()

	cleanup := func() {
		os.Remove(tempFile.Name())
	}

	return tempFile.Name(), cleanup, nil
}
