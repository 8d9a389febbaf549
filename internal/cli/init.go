package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/sensordash/internal/config"
	"github.com/rileyhilliard/sensordash/internal/errors"
	"github.com/rileyhilliard/sensordash/internal/logger"
	"github.com/rileyhilliard/sensordash/internal/sensors"
	"github.com/rileyhilliard/sensordash/internal/ui"
)

// probeTimeout bounds the connection test during init.
const probeTimeout = 5 * time.Second

// InitOptions holds options for the init command.
type InitOptions struct {
	Dir            string // Directory to write the config into; empty means cwd
	Server         string // Pre-specified server URL
	LogLevel       string // Pre-specified log level
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use flags and defaults
	Out            io.Writer
}

// Init creates a new .sensordash.yaml configuration file.
func Init(ctx context.Context, opts InitOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	configPath := filepath.Join(dir, config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if opts.Server != "" {
		cfg.Server.URL = strings.TrimRight(opts.Server, "/")
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}

	if !opts.NonInteractive {
		if err := promptConfig(cfg); err != nil {
			return err
		}
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	// A server that is down right now is not fatal; it may just not be running yet.
	if err := probeServer(ctx, cfg.Server.URL, out, !opts.NonInteractive); err != nil {
		save, err := saveAfterFailedProbe(out, opts.NonInteractive, confirmSaveAnyway)
		if err != nil {
			return err
		}
		if !save {
			return nil
		}
	}

	if err := config.Write(configPath, cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s\n\n", ui.Success("Created "+configPath))
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  sensordash check  - Fetch once and print the readings")
	fmt.Fprintln(out, "  sensordash        - Start the dashboard")

	return nil
}

// promptConfig asks for the server URL and log level.
func promptConfig(cfg *config.Config) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Sensor server URL").
				Description("Base URL; readings are fetched from <url>"+sensors.Endpoint).
				Placeholder(config.DefaultServerURL).
				Value(&cfg.Server.URL).
				Validate(config.ValidateServerURL),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Log level").
				Options(
					huh.NewOption("info", "info"),
					huh.NewOption("debug", "debug"),
					huh.NewOption("warn", "warn"),
					huh.NewOption("error", "error"),
				).
				Value(&cfg.Log.Level),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or pass --server to skip the prompts")
	}
	cfg.Server.URL = strings.TrimRight(strings.TrimSpace(cfg.Server.URL), "/")
	return nil
}

// probeServer fetches once to confirm the endpoint answers with usable data.
func probeServer(ctx context.Context, url string, out io.Writer, animated bool) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	client := sensors.NewClient(url, sensors.WithLogger(logger.Noop()), sensors.WithUserAgent("sensordash/"+version))

	s := ui.NewSpinner(out, "Testing "+client.URL(), animated)
	s.Start()

	r, err := client.Fetch(ctx)
	if err == nil {
		err = r.Validate()
	}
	if err != nil {
		s.Fail(errors.OneLine(err))
		return err
	}

	s.Success(fmt.Sprintf("%d samples", len(r.Temperature)))
	return nil
}

// saveAfterFailedProbe decides whether to write the config when the server
// didn't answer. Non-interactive runs always save; otherwise ask decides.
func saveAfterFailedProbe(out io.Writer, nonInteractive bool, ask func() (bool, error)) (bool, error) {
	if nonInteractive {
		fmt.Fprintln(out, ui.Muted("  Saving anyway. Run 'sensordash check' once the server is up."))
		return true, nil
	}

	save, err := ask()
	if err != nil {
		return false, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Try running with --non-interactive to save without asking")
	}
	if !save {
		fmt.Fprintln(out, "Cancelled.")
		return false, nil
	}
	return true, nil
}

func confirmSaveAnyway() (bool, error) {
	save := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("The server didn't answer. Save the config anyway?").
				Value(&save),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return save, nil
}
