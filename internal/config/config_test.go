package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults fill missing keys", func(t *testing.T) {
		// Given: a config file with only the storage driver
		path := writeConfig(t, "storage:\n  driver: sqlite\n")

		// When: loading it
		conf, err := Load(path)

		// Then: every other key takes its default
		require.NoError(t, err)
		assert.Equal(t, DriverSQLite, conf.Storage.Driver)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "9091", conf.SocketPort)
		assert.Equal(t, "json", conf.LogFormat)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 5*time.Minute, conf.PlayerCache.TTL)
		assert.Equal(t, 20, conf.Games.ListLimit)
		assert.Equal(t, 100, conf.Games.MaxListLimit)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		// Given: a file port and an env port
		path := writeConfig(t, "http-port: \"8000\"\n")
		t.Setenv("HTTP_PORT", "8081")

		// When: loading
		conf, err := Load(path)

		// Then: the env value wins
		require.NoError(t, err)
		assert.Equal(t, "8081", conf.HTTPPort)
	})

	t.Run("Unknown storage driver is rejected", func(t *testing.T) {
		path := writeConfig(t, "storage:\n  driver: mongo\n")

		_, err := Load(path)

		require.Error(t, err)
	})

	t.Run("Missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.Error(t, err)
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "absent.yml"))
		})
	})
}

func TestLoadFileOrEnv(t *testing.T) {
	t.Run("Missing file falls back to the environment", func(t *testing.T) {
		// Given: no config file and the driver set in the environment
		t.Setenv("STORAGE_DRIVER", DriverSQLite)
		t.Setenv("SQLITE_STORAGE_PATH", "/tmp/games.db")

		// When: loading an absent path
		conf, err := LoadFileOrEnv(filepath.Join(t.TempDir(), "absent.yml"))

		// Then: env values and defaults are used
		require.NoError(t, err)
		assert.Equal(t, DriverSQLite, conf.Storage.Driver)
		assert.Equal(t, "/tmp/games.db", conf.SQLiteStoragePath)
		assert.Equal(t, "9090", conf.HTTPPort)
	})

	t.Run("Existing file is read", func(t *testing.T) {
		path := writeConfig(t, "http-port: \"8000\"\n")

		conf, err := LoadFileOrEnv(path)

		require.NoError(t, err)
		assert.Equal(t, "8000", conf.HTTPPort)
	})

	t.Run("Invalid environment is rejected", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "mongo")

		_, err := LoadFileOrEnv(filepath.Join(t.TempDir(), "absent.yml"))

		require.Error(t, err)
	})
}
