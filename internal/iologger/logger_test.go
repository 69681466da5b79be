package iologger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gnmyco/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	old := slog.Default()
	defer slog.SetDefault(old)

	dir := t.TempDir()
	cfg := config.LogConfig{Format: "text", Level: "warn", Destination: "file"}
	closer, err := Init(dir, cfg, false)
	require.NoError(t, err)

	slog.Info("hidden")
	slog.Warn("visible", "project", "Aspnid1")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
	assert.Contains(t, string(data), "project=Aspnid1")
	assert.NotContains(t, string(data), "hidden")
}

func TestInitBadDir(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	cfg := config.LogConfig{Destination: "file"}
	closer, err := Init(filepath.Join(t.TempDir(), "no", "such"), cfg, true)
	assert.Error(t, err)
	assert.NotNil(t, closer)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		res   slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, parseLevel(v.input), v.input)
	}
}
