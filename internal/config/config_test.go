package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/sensordash/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and cwd at fresh temp dirs and clears env overrides.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SENSORDASH_SERVER_URL", "")
	os.Unsetenv("SENSORDASH_SERVER_URL")
	t.Setenv("SENSORDASH_LOG_LEVEL", "")
	os.Unsetenv("SENSORDASH_LOG_LEVEL")
	t.Chdir(work)
	return home, work
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, DefaultServerURL, cfg.Server.URL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
	require.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)

	content := `
version: 1
server:
  url: http://raspberrypi.local:5000/
log:
  level: debug
  file: /tmp/sensordash.log
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "http://raspberrypi.local:5000", cfg.Server.URL, "trailing slash trimmed")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/sensordash.log", cfg.Log.File)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	isolate(t)
	configPath := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("log:\n  level: warn\n"), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, DefaultServerURL, cfg.Server.URL)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_EnvOverride(t *testing.T) {
	isolate(t)
	configPath := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("server:\n  url: http://a:5000\n"), 0644))
	t.Setenv("SENSORDASH_SERVER_URL", "http://b:8080")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "http://b:8080", cfg.Server.URL)
}

func TestLoad_ExpandsHomeInLogFile(t *testing.T) {
	home, _ := isolate(t)
	configPath := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("log:\n  file: ~/logs/sd.log\n"), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "sd.log"), cfg.Log.File)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load("/nonexistent/.sensordash.yaml")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFind(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		isolate(t)
		p := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(p, []byte("version: 1\n"), 0644))

		got, err := Find(p)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		isolate(t)
		_, err := Find("/does/not/exist.yaml")
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("current directory", func(t *testing.T) {
		_, work := isolate(t)
		p := filepath.Join(work, ConfigFileName)
		require.NoError(t, os.WriteFile(p, []byte("version: 1\n"), 0644))

		got, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Base(p), filepath.Base(got))
	})

	t.Run("parent directory stops at git root", func(t *testing.T) {
		_, work := isolate(t)
		require.NoError(t, os.WriteFile(filepath.Join(work, ConfigFileName), []byte("version: 1\n"), 0644))
		require.NoError(t, os.Mkdir(filepath.Join(work, ".git"), 0755))
		sub := filepath.Join(work, "a", "b")
		require.NoError(t, os.MkdirAll(sub, 0755))
		t.Chdir(sub)

		got, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, ConfigFileName, filepath.Base(got))
	})

	t.Run("global config", func(t *testing.T) {
		home, _ := isolate(t)
		globalDir := filepath.Join(home, GlobalConfigDir)
		require.NoError(t, os.MkdirAll(globalDir, 0755))
		p := filepath.Join(globalDir, GlobalConfigFile)
		require.NoError(t, os.WriteFile(p, []byte("version: 1\n"), 0644))

		got, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, p, got)
	})

	t.Run("nothing found", func(t *testing.T) {
		isolate(t)
		got, err := Find("")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("no file uses defaults", func(t *testing.T) {
		isolate(t)
		cfg, path, err := LoadOrDefault("")
		require.NoError(t, err)
		assert.Empty(t, path)
		assert.Equal(t, DefaultServerURL, cfg.Server.URL)
	})

	t.Run("dotenv supplies server url", func(t *testing.T) {
		_, work := isolate(t)
		require.NoError(t, os.WriteFile(filepath.Join(work, DotEnvFile),
			[]byte("SENSORDASH_SERVER_URL=http://from-dotenv:5000\n"), 0644))
		t.Cleanup(func() { os.Unsetenv("SENSORDASH_SERVER_URL") })

		cfg, _, err := LoadOrDefault("")
		require.NoError(t, err)
		assert.Equal(t, "http://from-dotenv:5000", cfg.Server.URL)
	})

	t.Run("file found", func(t *testing.T) {
		_, work := isolate(t)
		require.NoError(t, os.WriteFile(filepath.Join(work, ConfigFileName),
			[]byte("server:\n  url: http://pi:5000\n"), 0644))

		cfg, path, err := LoadOrDefault("")
		require.NoError(t, err)
		assert.NotEmpty(t, path)
		assert.Equal(t, "http://pi:5000", cfg.Server.URL)
	})
}

func TestLoadDotEnv_MissingIsFine(t *testing.T) {
	assert.NoError(t, LoadDotEnv(t.TempDir()))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{
			name:    "future version",
			mutate:  func(c *Config) { c.Version = CurrentConfigVersion + 1 },
			wantErr: "from the future",
		},
		{
			name:    "empty url",
			mutate:  func(c *Config) { c.Server.URL = "" },
			wantErr: "Server URL is empty",
		},
		{
			name:    "wrong scheme",
			mutate:  func(c *Config) { c.Server.URL = "ftp://pi" },
			wantErr: "http or https",
		},
		{
			name:    "no host",
			mutate:  func(c *Config) { c.Server.URL = "http://" },
			wantErr: "has no host",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "chatty" },
			wantErr: "isn't a log level",
		},
		{
			name:    "level with offset",
			mutate:  func(c *Config) { c.Log.Level = "info+2" },
			wantErr: "isn't a log level",
		},
		{
			name:    "upper case level with offset",
			mutate:  func(c *Config) { c.Log.Level = "DEBUG-4" },
			wantErr: "isn't a log level",
		},
		{
			name:    "large offset",
			mutate:  func(c *Config) { c.Log.Level = "warn+100" },
			wantErr: "isn't a log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
		})
	}

	assert.Error(t, Validate(nil))
}

func TestWriteAndLoad(t *testing.T) {
	isolate(t)
	p := filepath.Join(t.TempDir(), ConfigFileName)
	cfg := DefaultConfig()
	cfg.Server.URL = "http://greenhouse:5000"

	require.NoError(t, Write(p, cfg))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# sensordash configuration")

	loaded, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "http://greenhouse:5000", loaded.Server.URL)
}

func TestSetValue(t *testing.T) {
	t.Run("replaces existing key and keeps comments", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), ConfigFileName)
		content := "# my dashboard\nserver:\n  url: http://old:5000 # lab pi\nlog:\n  level: info\n"
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))

		require.NoError(t, SetValue(p, "server.url", "http://new:5000"))

		data, err := os.ReadFile(p)
		require.NoError(t, err)
		out := string(data)
		assert.Contains(t, out, "# my dashboard")
		assert.Contains(t, out, "url: http://new:5000")
		assert.NotContains(t, out, "old")
		assert.Contains(t, out, "level: info")
	})

	t.Run("creates missing mapping", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), ConfigFileName)
		require.NoError(t, os.WriteFile(p, []byte("version: 1\n"), 0644))

		require.NoError(t, SetValue(p, "log.level", "debug"))

		isolate(t)
		cfg, err := Load(p)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("empty file", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), ConfigFileName)
		require.NoError(t, os.WriteFile(p, nil, 0644))

		require.NoError(t, SetValue(p, "server.url", "http://x:1"))

		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Contains(t, string(data), "url: http://x:1")
	})

	t.Run("non-mapping parent", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), ConfigFileName)
		require.NoError(t, os.WriteFile(p, []byte("server: nope\n"), 0644))

		err := SetValue(p, "server.url", "http://x:1")
		assert.Error(t, err)
	})
}
