package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/sensordash/internal/config"
	"github.com/rileyhilliard/sensordash/internal/errors"
	"github.com/rileyhilliard/sensordash/internal/logger"
	"github.com/rileyhilliard/sensordash/internal/sensors"
)

// loadSettings loads the config file (or defaults), applies flag overrides
// and validates the result. The returned path is empty when no file was found.
func loadSettings(opts GlobalOptions) (*config.Config, string, error) {
	cfg, path, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return nil, "", err
	}

	if opts.Server != "" {
		cfg.Server.URL = strings.TrimRight(opts.Server, "/")
	}
	if opts.LogFile != "" {
		cfg.Log.File = opts.LogFile
	}
	if opts.Verbose {
		cfg.Log.Level = "debug"
	}

	if err := config.Validate(cfg); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// defaultTUILogFile is where logs go while the alt screen is active.
func defaultTUILogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "sensordash.log")
	}
	return filepath.Join(home, ".cache", "sensordash", "sensordash.log")
}

// openLogger builds the process logger. Terminal output uses the colored
// handler; a log file gets JSON lines. In TUI mode logs always go to a file
// so they never draw over the dashboard. The returned func closes the file.
func openLogger(cfg *config.Config, tui, noColor bool) (logger.Logger, func(), error) {
	path := cfg.Log.File
	if path == "" && tui {
		path = defaultTUILogFile()
	}

	if path == "" {
		return logger.New(logger.Options{Level: cfg.Log.Level, NoColor: noColor}), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't create the log directory "+filepath.Dir(path),
			"Set log.file or --log-file to a writable location")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't open log file "+path,
			"Set log.file or --log-file to a writable location")
	}

	l := logger.New(logger.Options{Level: cfg.Log.Level, Writer: f, JSON: true})
	return l, func() { _ = f.Close() }, nil
}

// newClient builds the HTTP source for cfg.
func newClient(cfg *config.Config, log logger.Logger) *sensors.Client {
	return sensors.NewClient(cfg.Server.URL,
		sensors.WithLogger(logger.With(log, "sensors")),
		sensors.WithUserAgent("sensordash/"+version),
	)
}
