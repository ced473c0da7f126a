package paths

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withPlatform swaps platformDir for the duration of the test.
func withPlatform(t *testing.T, goos, home, userConfig string) {
	t.Helper()
	saved := platformDir
	t.Cleanup(func() { platformDir = saved })

	platformDir.goos = goos
	platformDir.homeDir = func() (string, error) { return home, nil }
	platformDir.userConfigDir = func() (string, error) { return userConfig, nil }
}

func TestDefaultDirs_Linux(t *testing.T) {
	withPlatform(t, "linux", "/home/robot", "/unused")

	t.Run("XDG variables win", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
		t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-config/bce", got)

		got, err = DefaultDataDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-data/bce", got)
	})

	t.Run("home fallbacks", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("XDG_DATA_HOME", "")

		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/home/robot/.config/bce", got)

		got, err = DefaultDataDir()
		require.NoError(t, err)
		assert.Equal(t, "/home/robot/.local/share/bce", got)
	})
}

func TestDefaultDirs_Darwin(t *testing.T) {
	withPlatform(t, "darwin", "/Users/robot", "/Users/robot/Library/Application Support")
	t.Setenv("XDG_CONFIG_HOME", "/ignored")

	cfg, err := DefaultConfigDir()
	require.NoError(t, err)
	data, err := DefaultDataDir()
	require.NoError(t, err)

	assert.Equal(t, "/Users/robot/Library/Application Support/bce", cfg)
	assert.Equal(t, cfg, data)
}

func TestDefaultDirs_HomeError(t *testing.T) {
	withPlatform(t, "linux", "", "")
	platformDir.homeDir = func() (string, error) { return "", errors.New("no home") }
	t.Setenv("XDG_CONFIG_HOME", "")

	_, err := DefaultConfigDir()
	require.Error(t, err)
}

func TestResolveConfigDir(t *testing.T) {
	withPlatform(t, "linux", "/home/robot", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/from/env")
		got, err := ResolveConfigDir("/from/flag")
		require.NoError(t, err)
		assert.Equal(t, "/from/flag", got)
	})

	t.Run("env next", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/from/env")
		got, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.Equal(t, "/from/env", got)
	})

	t.Run("default last", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		got, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.Equal(t, "/home/robot/.config/bce", got)
	})

	t.Run("relative flag made absolute", func(t *testing.T) {
		got, err := ResolveConfigDir("conf")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
	})
}

func TestResolveDataDir(t *testing.T) {
	withPlatform(t, "linux", "/home/robot", "")
	t.Setenv("XDG_DATA_HOME", "")

	t.Setenv(EnvDataDir, "/from/env")
	got, err := ResolveDataDir("")
	require.NoError(t, err)
	assert.Equal(t, "/from/env", got)

	t.Setenv(EnvDataDir, "")
	got, err = ResolveDataDir("")
	require.NoError(t, err)
	assert.Equal(t, "/home/robot/.local/share/bce", got)
}

func TestResolveDBPath(t *testing.T) {
	got, err := ResolveDBPath("/flag/x.db", "/config/y.db", "/data")
	require.NoError(t, err)
	assert.Equal(t, "/flag/x.db", got)

	got, err = ResolveDBPath("", "/config/y.db", "/data")
	require.NoError(t, err)
	assert.Equal(t, "/config/y.db", got)

	got, err = ResolveDBPath("", "", "/data")
	require.NoError(t, err)
	assert.Equal(t, "/data/completion.db", got)
}
