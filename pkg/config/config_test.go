package config

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "~/Music/_ScratchLIVE_/database V2", config.Library.DatabasePath)
	assert.Equal(t, []string{"mp3"}, config.Entries.AllowedExtensions)
	assert.Equal(t, "mp3", config.Entries.DefaultExtension)
	assert.True(t, config.Backup.Enabled)
	assert.Equal(t, 20, config.Backup.Keep)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "127.0.0.1", config.Server.Bind)
	assert.Empty(t, config.Server.APIKey)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "auto", config.Logging.Format)
	assert.NoError(t, config.Validate())
}

func TestGenerateSecureKey(t *testing.T) {
	t.Run("generate 32 byte key", func(t *testing.T) {
		key, err := GenerateSecureKey(32)
		require.NoError(t, err)
		assert.Len(t, key, 64) // 32 bytes = 64 hex characters

		_, err = hex.DecodeString(key)
		assert.NoError(t, err)
	})

	t.Run("generate different keys", func(t *testing.T) {
		key1, err := GenerateSecureKey(16)
		require.NoError(t, err)
		key2, err := GenerateSecureKey(16)
		require.NoError(t, err)

		assert.NotEqual(t, key1, key2)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("load existing config", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		expectedConfig := &Config{
			Library: Library{
				DatabasePath: "/srv/music/_ScratchLIVE_/database V2",
				CrateDir:     "/srv/music/_ScratchLIVE_/Subcrates",
			},
			Entries: Entries{
				AllowedExtensions: []string{"mp3", "flac"},
				DefaultExtension:  "mp3",
			},
			Backup: Backup{
				Enabled: false,
				Dir:     "/var/backups/scratchlive",
				Keep:    5,
			},
			Server: Server{
				Bind:   "0.0.0.0",
				Port:   9000,
				APIKey: "test-api-key",
			},
			Logging: Logging{
				Level:  "debug",
				Format: "json",
			},
		}

		require.NoError(t, SaveConfig(expectedConfig, configPath))

		loadedConfig, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, expectedConfig, loadedConfig)
	})

	t.Run("missing keys keep defaults", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "partial.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("server:\n  port: 9100\n"), 0644))

		loadedConfig, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, 9100, loadedConfig.Server.Port)
		assert.Equal(t, "127.0.0.1", loadedConfig.Server.Bind)
		assert.Equal(t, 20, loadedConfig.Backup.Keep)
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := LoadConfig("/non/existent/config.yaml")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "config file does not exist")
	})

	t.Run("load invalid yaml", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "invalid.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0644))

		_, err := LoadConfig(configPath)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("load invalid values", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("logging:\n  format: xml\n"), 0644))

		_, err := LoadConfig(configPath)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"negative keep", func(c *Config) { c.Backup.Keep = -1 }},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"blank extension", func(c *Config) { c.Entries.AllowedExtensions = []string{"mp3", " "} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)
			assert.ErrorIs(t, config.Validate(), ErrInvalidConfig)
		})
	}
}

func TestSaveConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	config := DefaultConfig()

	require.NoError(t, SaveConfig(config, configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loadedConfig, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, config, loadedConfig)
}

func TestBootstrapConfig(t *testing.T) {
	t.Run("with api key", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")

		config, err := BootstrapConfig(configPath, true)
		require.NoError(t, err)

		assert.Len(t, config.Server.APIKey, 64)
		_, err = hex.DecodeString(config.Server.APIKey)
		assert.NoError(t, err)

		assert.True(t, ConfigExists(configPath))

		loadedConfig, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, config, loadedConfig)
	})

	t.Run("without api key", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")

		config, err := BootstrapConfig(configPath, false)
		require.NoError(t, err)
		assert.Empty(t, config.Server.APIKey)
		assert.Equal(t, DefaultConfig(), config)
	})
}

func TestGetDefaultConfigPath(t *testing.T) {
	path := GetDefaultConfigPath()
	assert.NotEmpty(t, path)
	assert.Contains(t, path, "scratchlive")
	assert.Contains(t, path, "config.yaml")
}

func TestConfigExists(t *testing.T) {
	tmpDir := t.TempDir()

	existingPath := filepath.Join(tmpDir, "exists.yaml")
	nonExistentPath := filepath.Join(tmpDir, "does-not-exist.yaml")

	require.NoError(t, os.WriteFile(existingPath, []byte("test"), 0644))

	assert.True(t, ConfigExists(existingPath))
	assert.False(t, ConfigExists(nonExistentPath))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "Music"), ExpandPath("~/Music"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
	assert.Equal(t, "~user/x", ExpandPath("~user/x"))
}

func TestLibraryPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"B.crate", "A.crate", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	lib := Library{DatabasePath: "/music/database V2", CrateDir: dir}
	assert.Equal(t, "/music/database V2", lib.Database())

	crates, err := lib.Crates()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "A.crate"), filepath.Join(dir, "B.crate")}, crates)

	crates, err = Library{CrateDir: filepath.Join(dir, "missing")}.Crates()
	require.NoError(t, err)
	assert.Empty(t, crates)

	crates, err = Library{}.Crates()
	require.NoError(t, err)
	assert.Empty(t, crates)
	assert.Empty(t, Library{}.Database())

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Music", "database V2"), Library{DatabasePath: "~/Music/database V2"}.Database())
}

func TestConfigYAMLKeys(t *testing.T) {
	data, err := yaml.Marshal(DefaultConfig())
	require.NoError(t, err)

	for _, key := range []string{
		"database_path:", "crate_dir:", "allowed_extensions:", "default_extension:",
		"enabled:", "keep:", "bind:", "port:", "api_key:", "level:", "format:",
	} {
		assert.Contains(t, string(data), key)
	}

	var unmarshalled Config
	require.NoError(t, yaml.Unmarshal(data, &unmarshalled))
	assert.Equal(t, DefaultConfig(), &unmarshalled)
}

func TestSaveConfigErrorHandling(t *testing.T) {
	config := DefaultConfig()

	// A regular file where the config directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := SaveConfig(config, filepath.Join(blocker, "config.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create config directory")
}
