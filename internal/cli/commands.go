package cli

import (
	"github.com/rileyhilliard/sensordash/internal/errors"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	initForce          bool
	initNonInteractive bool
	initLogLevel       string
)

// initCmd creates a new .sensordash.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .sensordash.yaml configuration",
	Long: `Create a sensordash configuration file in the current directory.

Prompts for the sensor server URL and log level, then tests the connection.
Passing --server (or --non-interactive) skips the prompts.

Examples:
  sensordash init
  sensordash init --server http://raspberrypi.local:5000
  sensordash init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(cmd.Context(), InitOptions{
			Server:         globals.Server,
			LogLevel:       initLogLevel,
			Overwrite:      initForce,
			NonInteractive: initNonInteractive || globals.Server != "" || !isInteractive(),
			Out:            cmd.OutOrStdout(),
		})
	},
}

// checkCmd fetches once and prints the readings
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fetch readings once and exit",
	Long: `Run a single refresh cycle against the configured server and print the
current temperature and humidity. Exits non-zero when the server can't be
reached or returns unusable data, so it works as a smoke test.

Examples:
  sensordash check
  sensordash check --server http://localhost:5000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkCommand(cmd.Context(), globals, cmd.OutOrStdout(), isInteractive())
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for sensordash.

Examples:
  # Bash
  sensordash completion bash > /etc/bash_completion.d/sensordash

  # Zsh
  sensordash completion zsh > "${fpath[1]}/_sensordash"

  # Fish
  sensordash completion fish > ~/.config/fish/completions/sensordash.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "skip prompts and use flags and defaults")
	initCmd.Flags().StringVar(&initLogLevel, "log-level", "", "log level to write (debug, info, warn, error)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(completionCmd)
}
