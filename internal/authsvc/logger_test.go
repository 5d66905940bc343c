package authsvc

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Writer(t *testing.T) {
	var out bytes.Buffer
	logger, closer := NewLogger(&Config{LogLevel: "info"}, &out)
	defer closer.Close()

	logger.Debug("hidden")
	logger.Info("session created", logger.Args("session", "id-1"))

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "session created")
	assert.Contains(t, out.String(), "id-1")
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.log")
	var out bytes.Buffer

	logger, closer := NewLogger(&Config{LogLevel: "debug", LogFile: path}, &out)
	logger.Debug("rotated session", logger.Args("from", "id-1", "to", "id-2"))
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rotated session")
	assert.Contains(t, string(data), `"id-2"`)
	assert.Empty(t, out.String())
}
