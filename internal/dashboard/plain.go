package dashboard

import (
	"context"
	"fmt"
	"io"
	"time"
)

// RunPlain drives ctrl without a TUI: one refresh immediately, then one
// every RefreshInterval until ctx is cancelled. Each successful cycle prints
// a readout line; alert transitions print an extra line. Failed cycles are
// logged by the controller and the loop waits for the next tick.
func RunPlain(ctx context.Context, ctrl *Controller, w io.Writer) error {
	return runPlain(ctx, ctrl, w, RefreshInterval)
}

func runPlain(ctx context.Context, ctrl *Controller, w io.Writer, interval time.Duration) error {
	cycle := func() {
		res, err := ctrl.Refresh(ctx)
		if err != nil {
			return
		}
		fmt.Fprintf(w, "%s  temperature %s  humidity %s  samples %d\n",
			res.At.Format("15:04:05"), res.Readouts.Temperature, res.Readouts.Humidity,
			len(res.Readings.Temperature))

		switch res.Action {
		case ActionShow:
			fmt.Fprintf(w, "%s  FIRE ALERT  temperature %s is above %s°C\n",
				res.At.Format("15:04:05"), res.Readouts.Temperature, FormatReading(Threshold))
		case ActionHide:
			fmt.Fprintf(w, "%s  alert cleared  temperature %s\n",
				res.At.Format("15:04:05"), res.Readouts.Temperature)
		}
	}

	cycle()

	// A cycle runs on this goroutine, so ticks that fire during it are
	// dropped by the ticker instead of queueing up overlapping cycles.
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if ctx.Err() != nil {
				return nil
			}
			cycle()
		}
	}
}
