package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewDisabled(t *testing.T) {
	logger, err := New(Options{Disabled: true})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestNewLevels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quest.log")

	quiet, err := New(Options{OutputPaths: []string{path}})
	require.NoError(t, err)
	assert.False(t, quiet.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, quiet.Core().Enabled(zapcore.InfoLevel))

	verbose, err := New(Options{Verbose: true, OutputPaths: []string{path}})
	require.NoError(t, err)
	assert.True(t, verbose.Core().Enabled(zapcore.DebugLevel))

	verbose.Info("[Test] hello", zap.String("scene", "title"))
	require.NoError(t, verbose.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"scene":"title"`), string(data))
}
