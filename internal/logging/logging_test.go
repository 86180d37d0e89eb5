package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/habits/internal/model"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "habits.log")

	l, err := New(model.LogConfig{Path: path, Level: "debug"})
	require.NoError(t, err)
	l.Debug("hello")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habits.log")

	l, err := New(model.LogConfig{Path: path, Level: "warn"})
	require.NoError(t, err)
	l.Info("quiet")
	l.Warn("loud")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
	assert.Contains(t, string(data), "loud")
}

func TestNewEmptyPathIsNop(t *testing.T) {
	l, err := New(model.LogConfig{})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNewBadLevel(t *testing.T) {
	_, err := New(model.LogConfig{Path: filepath.Join(t.TempDir(), "x.log"), Level: "chatty"})
	require.Error(t, err)
}
