package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rileyhilliard/sensordash/internal/dashboard"
	"github.com/rileyhilliard/sensordash/internal/errors"
	"github.com/rileyhilliard/sensordash/internal/logger"
	"github.com/rileyhilliard/sensordash/internal/ui"
)

// checkCommand runs one refresh cycle and reports the outcome on w. It
// returns the fetch or data error so the process exits non-zero.
func checkCommand(ctx context.Context, opts GlobalOptions, w io.Writer, animated bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, path, err := loadSettings(opts)
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{Level: cfg.Log.Level, NoColor: opts.NoColor})
	if path != "" {
		fmt.Fprintln(w, ui.Muted("config: "+path))
	}

	client := newClient(cfg, log)
	ctrl := dashboard.NewController(client, log)

	s := ui.NewSpinner(w, "GET "+client.URL(), animated)
	s.Start()

	readings, err := ctrl.Fetch(ctx)
	if err != nil {
		s.Fail(errors.OneLine(err))
		return err
	}

	res, err := ctrl.Apply(readings)
	if err != nil {
		s.Fail(errors.OneLine(err))
		return err
	}

	s.Success(fmt.Sprintf("temperature %s  humidity %s  samples %d/%d",
		res.Readouts.Temperature, res.Readouts.Humidity,
		len(res.Readings.Temperature), len(res.Readings.Humidity)))

	if res.Alert == dashboard.AlertShown {
		fmt.Fprintln(w, ui.Alert(fmt.Sprintf("FIRE ALERT  temperature %s is above %s°C",
			res.Readouts.Temperature, dashboard.FormatReading(dashboard.Threshold))))
	}
	return nil
}
