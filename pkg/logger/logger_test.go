package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReturnsUsableLogger(t *testing.T) {
	l := Get()
	require.NotNil(t, l)

	// Must not panic.
	l.Debugf("debug %d", 1)
	l.Infof("info %s", "x")
}

func TestInitializeWritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "remoterun-test.log")

	err := Initialize(Config{Level: "debug", FilePath: logPath})
	require.NoError(t, err)
	defer CleanupLogFile()

	Get().Infof("hello from the test")

	info, statErr := os.Stat(logPath)
	require.NoError(t, statErr)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGetZapLevel(t *testing.T) {
	assert.Equal(t, "debug", getZapLevel("DEBUG").String())
	assert.Equal(t, "warn", getZapLevel("warn").String())
	assert.Equal(t, "error", getZapLevel("error").String())
	assert.Equal(t, "info", getZapLevel("anything-else").String())
}
