package dashboard

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rileyhilliard/sensordash/internal/errors"
	"github.com/rileyhilliard/sensordash/internal/logger"
	"github.com/rileyhilliard/sensordash/internal/sensors"
)

// Readouts are the two current-value texts shown next to the charts.
type Readouts struct {
	Temperature string
	Humidity    string
}

// Result describes one successful refresh cycle.
type Result struct {
	Readings *sensors.Readings
	Readouts Readouts
	Alert    AlertState
	Action   AlertAction
	At       time.Time
}

// Controller owns the dashboard state: both charts, the readouts and the
// alert state. It is not safe for concurrent use; Apply must be called from
// a single goroutine (the Bubble Tea update loop or the plain runner).
type Controller struct {
	source sensors.Source
	log    logger.Logger
	now    func() time.Time

	temperature *Chart
	humidity    *Chart
	readouts    Readouts
	alert       AlertState
	lastUpdate  time.Time
}

// NewController creates a controller reading from source with empty charts
// and the alert hidden.
func NewController(source sensors.Source, log logger.Logger) *Controller {
	if log == nil {
		log = logger.Noop()
	}
	return &Controller{
		source:      source,
		log:         log,
		now:         time.Now,
		temperature: NewTemperatureChart(),
		humidity:    NewHumidityChart(),
		alert:       AlertHidden,
	}
}

// Temperature returns the temperature chart.
func (c *Controller) Temperature() *Chart { return c.temperature }

// Humidity returns the humidity chart.
func (c *Controller) Humidity() *Chart { return c.humidity }

// Readouts returns the current readout texts (empty before the first update).
func (c *Controller) Readouts() Readouts { return c.readouts }

// Alert returns the current alert state.
func (c *Controller) Alert() AlertState { return c.alert }

// LastUpdate returns when Apply last succeeded, or the zero time.
func (c *Controller) LastUpdate() time.Time { return c.lastUpdate }

// Fetch retrieves the latest readings. The request is bounded by
// RefreshInterval so a stalled server can't hold up the next cycle.
// Fetch does not touch controller state and may run on any goroutine.
func (c *Controller) Fetch(ctx context.Context) (*sensors.Readings, error) {
	ctx, cancel := context.WithTimeout(ctx, RefreshInterval)
	defer cancel()
	return c.source.Fetch(ctx)
}

// Apply installs a fetched payload: readouts, both charts and the alert
// transition. Readings are validated first, so on error nothing changes.
func (c *Controller) Apply(r *sensors.Readings) (Result, error) {
	temp, hum, err := r.Current()
	if err != nil {
		return Result{}, err
	}

	c.readouts = Readouts{
		Temperature: FormatReading(temp) + "°C",
		Humidity:    FormatReading(hum) + "%",
	}

	c.temperature.Update(r.Temperature)
	c.humidity.Update(r.Humidity)

	next, action := c.alert.Next(temp)
	c.alert = next
	c.lastUpdate = c.now()

	return Result{
		Readings: r,
		Readouts: c.readouts,
		Alert:    c.alert,
		Action:   action,
		At:       c.lastUpdate,
	}, nil
}

// Refresh runs one full cycle: fetch, then apply. Errors are logged and
// returned; the caller decides whether to continue (the schedulers always do).
func (c *Controller) Refresh(ctx context.Context) (Result, error) {
	r, err := c.Fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			// Shutting down, not a server problem.
			c.log.Debug("refresh stopped: %s", errors.OneLine(err))
			return Result{}, err
		}
		c.log.Error("Error: %s", errors.OneLine(err))
		return Result{}, err
	}

	res, err := c.Apply(r)
	if err != nil {
		c.log.Error("Error: %s", errors.OneLine(err))
		return Result{}, err
	}

	c.logTransition(res)
	return res, nil
}

// logTransition records alert banner changes.
func (c *Controller) logTransition(res Result) {
	switch res.Action {
	case ActionShow:
		c.log.Warn("fire alert shown: temperature %s above %s°C", res.Readouts.Temperature, FormatReading(Threshold))
	case ActionHide:
		c.log.Info("fire alert cleared: temperature %s", res.Readouts.Temperature)
	}
}

// FormatReading renders a sample like a browser prints a number: shortest
// decimal, no trailing zeros (21 -> "21", 21.5 -> "21.5"). Negative zero
// prints as "0"; magnitudes from 1e21 up or below 1e-6 use exponent form
// ("1e+21", "1.5e-7").
func FormatReading(v float64) string {
	switch {
	case v == 0:
		return "0"
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	abs := math.Abs(v)
	if abs < 1e21 && abs >= 1e-6 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	// Go pads the exponent to two digits ("1e-07").
	mant, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}
