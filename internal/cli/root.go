package cli

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/rileyhilliard/sensordash/internal/config"
	"github.com/rileyhilliard/sensordash/internal/errors"
	"github.com/rileyhilliard/sensordash/internal/ui"
	"github.com/spf13/cobra"
)

// GlobalOptions are the persistent flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	Server     string
	LogFile    string
	Verbose    bool
	NoColor    bool
}

var (
	globals   GlobalOptions
	plainMode bool
)

// rootCmd runs the dashboard when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "sensordash",
	Short: "Live temperature and humidity dashboard with a fire alert",
	Long: `sensordash polls a sensor server every 5 seconds and shows the
temperature and humidity series as line charts with the latest readings.
A fire alert banner appears while the latest temperature is above 20°C.

In a terminal it runs full screen; with --plain, or when output is not a
terminal, it prints one line per refresh instead.

Examples:
  sensordash
  sensordash --server http://10.0.0.5:5000
  sensordash --plain | tee readings.log`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if globals.NoColor || os.Getenv("NO_COLOR") != "" {
			globals.NoColor = true
			ui.DisableColor()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd.Context(), globals, plainMode)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&globals.ConfigPath, "config", "", "config file (default: search for "+config.ConfigFileName+")")
	pf.StringVar(&globals.Server, "server", "", "sensor server base URL (overrides server.url)")
	pf.StringVar(&globals.LogFile, "log-file", "", "write logs to this file (overrides log.file)")
	pf.BoolVarP(&globals.Verbose, "verbose", "v", false, "debug logging")
	pf.BoolVar(&globals.NoColor, "no-color", false, "disable colored output")

	rootCmd.Flags().BoolVar(&plainMode, "plain", false, "print one line per refresh instead of the full-screen dashboard")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, formatError(err))
		os.Exit(exitCode(err))
	}
}

// formatError renders structured errors as-is; anything else (cobra flag
// errors, mostly) gets the same failure mark.
func formatError(err error) string {
	var sdErr *errors.Error
	if stderrors.As(err, &sdErr) {
		return err.Error()
	}
	return ui.Failure(err.Error()) + "\n"
}

// exitCode maps error codes to process exit codes so scripts can tell a
// bad config from an unreachable server.
func exitCode(err error) int {
	switch {
	case errors.IsCode(err, errors.ErrConfig):
		return 2
	case errors.IsCode(err, errors.ErrFetch), errors.IsCode(err, errors.ErrData):
		return 3
	default:
		return 1
	}
}
