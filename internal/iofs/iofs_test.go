package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gnmyco/pkg/config"
	"github.com/gnames/gnmyco/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnsureDirs_CreatesDirectories verifies all required
// directories are created.
func TestEnsureDirs_CreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	dirs := []string{
		filepath.Join(tmpDir, ".config", "gnmyco"),
		filepath.Join(tmpDir, ".cache", "gnmyco"),
		filepath.Join(tmpDir, ".local", "share", "gnmyco", "logs"),
	}
	for _, v := range dirs {
		info, err := os.Stat(v)
		require.NoError(t, err)
		assert.True(t, info.IsDir(), v)
	}

	// Second call should succeed
	err = EnsureDirs(tmpDir)
	require.NoError(t, err)
}

func TestTouchDir_ExistingDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	existingDir := filepath.Join(tmpDir, "existing")
	require.NoError(t, os.MkdirAll(existingDir, 0755))

	err := touchDir(existingDir)
	require.NoError(t, err)

	info, err := os.Stat(existingDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureFiles(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))

	require.NoError(t, EnsureConfigFile(tmpDir))
	require.NoError(t, EnsureRulesFile(tmpDir))

	data, err := os.ReadFile(config.ConfigFilePath(tmpDir))
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(data))

	data, err = os.ReadFile(config.RulesFilePath(tmpDir))
	require.NoError(t, err)
	assert.Equal(t, rules.DefaultYAML, data)
}

// TestEnsureConfigFile_KeepsUserCopy verifies that an edited config
// is not overwritten.
func TestEnsureConfigFile_KeepsUserCopy(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))

	path := config.ConfigFilePath(tmpDir)
	custom := "log:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))

	require.NoError(t, EnsureConfigFile(tmpDir))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, string(data))
}

func TestLoadRules(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))

	r, err := LoadRules(tmpDir)
	require.NoError(t, err)
	assert.Len(t, r.TreeBranches, 28)

	path := config.RulesFilePath(tmpDir)
	custom := "tree_branches:\n  - dothideomycetes\n"
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))
	r, err = LoadRules(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"dothideomycetes"}, r.TreeBranches)

	bad := "time_zones:\n  PDT: seven\n"
	require.NoError(t, os.WriteFile(path, []byte(bad), 0644))
	_, err = LoadRules(tmpDir)
	assert.Error(t, err)
}
