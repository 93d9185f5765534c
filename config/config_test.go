package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guileen/keyguess/errors"
)

// unsetEnv clears name for the test and restores it afterwards.
func unsetEnv(t *testing.T, name string) {
	t.Helper()
	t.Setenv(name, "")
	require.NoError(t, os.Unsetenv(name))
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "127.0.0.1", config.Server.Bind)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, []string{"*"}, config.Server.CORSOrigins)
	assert.Equal(t, "./data", config.Storage.Path)
	assert.True(t, config.Storage.ReadOnly)
	assert.Equal(t, "info", config.Logging.Level)
	assert.NoError(t, config.Validate())
	assert.Equal(t, "127.0.0.1:8080", config.Addr())
}

func TestSaveAndLoadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "keyguess.yaml")
	expected := DefaultConfig()
	expected.Server.Port = 9000
	expected.Server.CORSOrigins = []string{"http://localhost:3000"}
	expected.Storage.Path = "/var/lib/keyguess"
	expected.Logging.Level = "debug"

	require.NoError(t, SaveConfig(expected, configPath))
	assert.True(t, ConfigExists(configPath))

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, expected, loaded)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "keyguess.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("server:\n  port: 7000\n"), 0600))

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, 7000, loaded.Server.Port)
	assert.Equal(t, "127.0.0.1", loaded.Server.Bind)
	assert.Equal(t, "json", loaded.Logging.Format)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.IsValidationError(err))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("server: [1, 2"), 0600))
	_, err = LoadConfig(bad)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"KEYGUESS_BIND":               "0.0.0.0",
		"KEYGUESS_PORT":               "9090",
		"KEYGUESS_CORS_ORIGINS":       "http://a.test, http://b.test,",
		"KEYGUESS_STORAGE_PATH":       "/tmp/kg",
		"KEYGUESS_STORAGE_READ_ONLY":  "false",
		"KEYGUESS_STORAGE_CACHE_SIZE": "1024",
		"KEYGUESS_LOG_LEVEL":          "debug",
		"KEYGUESS_LOG_FORMAT":         "text",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	config := DefaultConfig()
	require.NoError(t, config.ApplyEnv(lookup))

	assert.Equal(t, "0.0.0.0:9090", config.Addr())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, config.Server.CORSOrigins)
	assert.Equal(t, "/tmp/kg", config.Storage.Path)
	assert.False(t, config.Storage.ReadOnly)
	assert.Equal(t, int64(1024), config.Storage.CacheSize)

	lc := config.LoggerConfig()
	assert.Equal(t, slog.LevelDebug, lc.Level)
	assert.Equal(t, "text", lc.Format)

	pc := config.PebbleConfig()
	assert.Equal(t, "/tmp/kg", pc.Path)
	assert.False(t, pc.ReadOnly)
	assert.Equal(t, int64(1024), pc.CacheSize)
}

func TestApplyEnvRejectsBadNumbers(t *testing.T) {
	for _, name := range []string{"KEYGUESS_PORT", "KEYGUESS_STORAGE_READ_ONLY", "KEYGUESS_STORAGE_CACHE_SIZE"} {
		lookup := func(k string) (string, bool) {
			if k == name {
				return "nope", true
			}
			return "", false
		}
		err := DefaultConfig().ApplyEnv(lookup)
		assert.True(t, errors.IsValidationError(err), name)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 70000 }},
		{"cache", func(c *Config) { c.Storage.CacheSize = -1 }},
		{"level", func(c *Config) { c.Logging.Level = "loud" }},
		{"format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultConfig()
			tc.mutate(c)
			assert.True(t, errors.IsValidationError(c.Validate()))
		})
	}
}

func TestLoadWithEnvFile(t *testing.T) {
	unsetEnv(t, "KEYGUESS_PORT")
	unsetEnv(t, "KEYGUESS_LOG_LEVEL")
	t.Setenv("KEYGUESS_BIND", "10.0.0.1")

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("KEYGUESS_PORT=9191\nKEYGUESS_LOG_LEVEL=warn\nKEYGUESS_BIND=192.0.2.1\n"), 0600))

	configPath := filepath.Join(dir, "keyguess.yaml")
	fileConfig := DefaultConfig()
	fileConfig.Server.Port = 7000
	require.NoError(t, SaveConfig(fileConfig, configPath))

	config, err := Load(configPath, envFile)
	require.NoError(t, err)
	assert.Equal(t, 9191, config.Server.Port)
	assert.Equal(t, "warn", config.Logging.Level)
	// variables already in the environment are not replaced by the file
	assert.Equal(t, "10.0.0.1", config.Server.Bind)
}

func TestLoadWithoutFiles(t *testing.T) {
	unsetEnv(t, "KEYGUESS_PORT")
	config, err := Load("", filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, 8080, config.Server.Port)
}
