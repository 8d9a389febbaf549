package doctor

import (
	"context"
	stderrors "errors"
	"fmt"
	"path/filepath"

	"github.com/rileyhilliard/sensordash/internal/config"
	"github.com/rileyhilliard/sensordash/internal/errors"
)

// ConfigFileCheck reports which config file is in use. Running on defaults
// is a warning, fixable by writing a default file.
type ConfigFileCheck struct {
	ConfigPath string // Explicit path, or empty to search
	Dir        string // Where Fix writes a new file; empty means cwd
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return CategoryConfig }

func (c *ConfigFileCheck) Run(_ context.Context) CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    errors.OneLine(err),
			Suggestion: "Check the --config path or run 'sensordash init'",
		}
	}

	if path == "" {
		return CheckResult{
			Status:     StatusWarn,
			Message:    fmt.Sprintf("No config file found, using defaults (%s)", config.DefaultServerURL),
			Suggestion: "Run 'sensordash init' to create " + config.ConfigFileName,
			Fixable:    true,
		}
	}

	return CheckResult{
		Status:  StatusPass,
		Message: "Config file: " + path,
	}
}

// Fix writes a default config file.
func (c *ConfigFileCheck) Fix() error {
	dir := c.Dir
	if dir == "" {
		dir = "."
	}
	return config.Write(filepath.Join(dir, config.ConfigFileName), config.DefaultConfig())
}

// ConfigValidCheck loads the effective config (file, .env and environment)
// and validates it.
type ConfigValidCheck struct {
	ConfigPath string
}

func (c *ConfigValidCheck) Name() string     { return "config_valid" }
func (c *ConfigValidCheck) Category() string { return CategoryConfig }

func (c *ConfigValidCheck) Run(_ context.Context) CheckResult {
	cfg, _, err := config.LoadOrDefault(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    errors.OneLine(err),
			Suggestion: "Check the YAML syntax in your config file",
		}
	}

	if err := config.Validate(cfg); err != nil {
		suggestion := ""
		var sdErr *errors.Error
		if stderrors.As(err, &sdErr) {
			suggestion = sdErr.Suggestion
		}
		return CheckResult{
			Status:     StatusFail,
			Message:    errors.OneLine(err),
			Suggestion: suggestion,
		}
	}

	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("Config valid (server %s, log level %s)", cfg.Server.URL, cfg.Log.Level),
	}
}

func (c *ConfigValidCheck) Fix() error {
	return nil // Invalid values need a human
}
