package config

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// DefaultServerURL points at the sensor server's default Flask port on localhost.
const DefaultServerURL = "http://localhost:5000"

// Config represents the complete .sensordash.yaml configuration file.
//
// The alert threshold and refresh interval are deliberately absent; they are
// fixed in the dashboard package.
type Config struct {
	Version int          `yaml:"version" mapstructure:"version"`
	Server  ServerConfig `yaml:"server" mapstructure:"server"`
	Log     LogConfig    `yaml:"log" mapstructure:"log"`
}

// ServerConfig describes where readings come from.
type ServerConfig struct {
	// URL is the base URL of the sensor server; /api/data is appended.
	URL string `yaml:"url" mapstructure:"url"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	// Level: "debug", "info", "warn", or "error".
	Level string `yaml:"level" mapstructure:"level"`

	// File receives log output. Empty means stderr in plain mode and
	// the cache log file while the TUI owns the terminal.
	File string `yaml:"file" mapstructure:"file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Server: ServerConfig{
			URL: DefaultServerURL,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
