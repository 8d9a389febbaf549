package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/sensordash/internal/dashboard"
	"github.com/rileyhilliard/sensordash/internal/errors"
	"github.com/rileyhilliard/sensordash/internal/logger"
	"golang.org/x/term"
)

// dashboardCommand starts the dashboard: the Bubble Tea program on an
// interactive terminal, the line printer otherwise.
func dashboardCommand(ctx context.Context, opts GlobalOptions, plain bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, path, err := loadSettings(opts)
	if err != nil {
		return err
	}

	tui := !plain && isInteractive()

	log, closeLog, err := openLogger(cfg, tui, opts.NoColor)
	if err != nil {
		return err
	}
	defer closeLog()

	if path != "" {
		log.Debug("loaded config from %s", path)
	}

	client := newClient(cfg, log)
	ctrl := dashboard.NewController(client, logger.With(log, "dashboard"))

	if !tui {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Info("polling %s every %s", client.URL(), dashboard.RefreshInterval)
		return dashboard.RunPlain(ctx, ctrl, os.Stdout)
	}

	model := dashboard.NewModel(ctrl, client.URL(), logger.With(log, "tui"))
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrUI,
			"The dashboard stopped unexpectedly",
			"Try --plain for line-by-line output")
	}
	return nil
}

// isInteractive reports whether both stdin and stdout are terminals.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
