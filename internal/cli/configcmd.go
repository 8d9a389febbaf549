package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/rileyhilliard/sensordash/internal/config"
	"github.com/rileyhilliard/sensordash/internal/errors"
	"github.com/rileyhilliard/sensordash/internal/logger"
	"github.com/rileyhilliard/sensordash/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// settableKeys are the config keys `config set` accepts.
var settableKeys = []string{"server.url", "log.level", "log.file"}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or edit the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration sensordash would run with, after the config
file, .env, SENSORDASH_* variables and flags are applied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShow(globals, cmd.OutOrStdout())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a value in the config file",
	Long: `Set a single key in the config file found by the usual search,
keeping the rest of the file and its comments intact.

Keys: server.url, log.level, log.file

Examples:
  sensordash config set server.url http://raspberrypi.local:5000
  sensordash config set log.level debug`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: settableKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configSet(globals, cmd.OutOrStdout(), args[0], args[1])
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func configShow(opts GlobalOptions, w io.Writer) error {
	cfg, path, err := loadSettings(opts)
	if err != nil {
		return err
	}

	if path == "" {
		path = "none, using defaults"
	}
	fmt.Fprintln(w, ui.Muted("# source: "+path))

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}

func configSet(opts GlobalOptions, w io.Writer, key, value string) error {
	if !slices.Contains(settableKeys, key) {
		return errors.New(errors.ErrConfig,
			"Unknown config key: "+key,
			"Settable keys: "+strings.Join(settableKeys, ", "))
	}

	switch key {
	case "server.url":
		value = strings.TrimRight(value, "/")
		if err := config.ValidateServerURL(value); err != nil {
			return err
		}
	case "log.level":
		if _, err := logger.ParseLevel(value); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Invalid log level: "+value,
				"Use one of: debug, info, warn, error")
		}
		value = strings.ToLower(value)
	}

	path, err := config.Find(opts.ConfigPath)
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New(errors.ErrConfig,
			"No config file found",
			"Run: sensordash init")
	}

	if err := config.SetValue(path, key, value); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't update "+path,
			"Check the file is valid YAML and writable")
	}

	fmt.Fprintln(w, ui.Success(fmt.Sprintf("Set %s = %s in %s", key, value, path)))
	return nil
}
