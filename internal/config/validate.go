package config

import (
	"fmt"
	"net/url"

	"github.com/rileyhilliard/sensordash/internal/errors"
	"github.com/rileyhilliard/sensordash/internal/logger"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig, "No config loaded", "Run 'sensordash init' first")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but sensordash only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade sensordash, or lower the version field")
	}

	if err := ValidateServerURL(cfg.Server.URL); err != nil {
		return err
	}

	if _, err := logger.ParseLevel(cfg.Log.Level); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' isn't a log level", cfg.Log.Level),
			"Use one of: debug, info, warn, error")
	}

	return nil
}

// ValidateServerURL checks that raw is an absolute http(s) URL with a host.
func ValidateServerURL(raw string) error {
	if raw == "" {
		return errors.New(errors.ErrConfig,
			"Server URL is empty",
			"Set server.url in .sensordash.yaml or pass --server http://host:5000")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't parse as a URL", raw),
			"Try something like http://raspberrypi.local:5000")
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Server URL must use http or https, got '%s'", u.Scheme),
			"Try something like http://raspberrypi.local:5000")
	}

	if u.Host == "" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Server URL '%s' has no host", raw),
			"Try something like http://raspberrypi.local:5000")
	}

	return nil
}
