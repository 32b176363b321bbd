package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kerbaras/littlelemon/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into an empty directory so no stray .env file is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	require.NoError(t, err)

	dataDir := filepath.Join(home, ".littlelemon")
	assert.Equal(t, sources.DefaultMenuURL, cfg.MenuURL)
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dataDir, "littlelemon.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dataDir, "littlelemon.log"), cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, sources.DefaultFetchTimeout, cfg.FetchTimeout)
	assert.Equal(t, sources.DefaultMaxRetries, cfg.MaxRetries)
	assert.Equal(t, sources.DefaultRetryDelay, cfg.RetryDelay)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t)
	dataDir := t.TempDir()
	t.Setenv("LITTLELEMON_DATA_DIR", dataDir)
	t.Setenv("LITTLELEMON_MENU_URL", "http://localhost:8080/menu.json")
	t.Setenv("LITTLELEMON_LOG_LEVEL", "debug")
	t.Setenv("LITTLELEMON_FETCH_TIMEOUT", "3s")
	t.Setenv("LITTLELEMON_MAX_RETRIES", "0")
	t.Setenv("LITTLELEMON_RETRY_DELAY", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/menu.json", cfg.MenuURL)
	assert.Equal(t, filepath.Join(dataDir, "littlelemon.db"), cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)

	controller := cfg.Controller()
	assert.Equal(t, cfg.DBPath, controller.DBPath)
	assert.Equal(t, cfg.MenuURL, controller.MenuURL)
	assert.Equal(t, cfg.FetchTimeout, controller.FetchTimeout)
}

func TestLoadFromDotEnv(t *testing.T) {
	dir := chdir(t)
	t.Setenv("LITTLELEMON_DATA_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("LITTLELEMON_DB_PATH="+filepath.Join(dir, "custom.db")+"\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("LITTLELEMON_DB_PATH") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "custom.db"), cfg.DBPath)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := map[string]string{
		"LITTLELEMON_FETCH_TIMEOUT": "soon",
		"LITTLELEMON_RETRY_DELAY":   "-1s",
		"LITTLELEMON_MAX_RETRIES":   "many",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			chdir(t)
			t.Setenv("LITTLELEMON_DATA_DIR", t.TempDir())
			t.Setenv(key, value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
