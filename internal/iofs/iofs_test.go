package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/findcoffee/findcoffee/pkg/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnsureDirs verifies all required directories are created and
// repeated calls succeed.
func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()

	for range 2 {
		require.NoError(t, EnsureDirs(tmpDir))
	}

	dirs := []string{
		filepath.Join(tmpDir, ".config", "findcoffee"),
		filepath.Join(tmpDir, ".cache", "findcoffee"),
		filepath.Join(tmpDir, ".local", "share", "findcoffee", "logs"),
	}
	for _, v := range dirs {
		info, err := os.Stat(v)
		require.NoError(t, err, v)
		assert.True(t, info.IsDir(), v)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), v)
	}
}

// TestTouchDir_File verifies that a file in place of a directory
// is reported.
func TestTouchDir_File(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "blocker")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	err := touchDir(filepath.Join(path, "sub"))
	assert.Error(t, err)
}

// TestEnsureConfigFile verifies the default config is written once and
// an edited config is kept.
func TestEnsureConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))

	require.NoError(t, EnsureConfigFile(tmpDir))
	path := filepath.Join(tmpDir, ".config", "findcoffee", "config.yaml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, templates.ConfigYAML, string(data))

	custom := "server:\n  host: 10.0.2.2\n"
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))
	require.NoError(t, EnsureConfigFile(tmpDir))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, string(data))
}

// TestConfigYAML_Embedded verifies the template carries every section.
func TestConfigYAML_Embedded(t *testing.T) {
	for _, v := range []string{"server:", "cache:", "sync:", "monitor:", "log:"} {
		assert.Contains(t, templates.ConfigYAML, v)
	}
}
