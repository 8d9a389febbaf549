package doctor

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/rileyhilliard/sensordash/internal/dashboard"
	"github.com/rileyhilliard/sensordash/internal/errors"
	"github.com/rileyhilliard/sensordash/internal/sensors"
)

// EndpointTimeout bounds the endpoint probe.
const EndpointTimeout = 5 * time.Second

// EndpointCheck fetches the readings endpoint once and keeps the payload
// for PayloadCheck.
type EndpointCheck struct {
	Source sensors.Source
	URL    string

	readings *sensors.Readings
}

func (c *EndpointCheck) Name() string     { return "endpoint" }
func (c *EndpointCheck) Category() string { return CategoryServer }

func (c *EndpointCheck) Run(ctx context.Context) CheckResult {
	c.readings = nil

	if c.Source == nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    "No usable server URL",
			Suggestion: "Fix the config errors above first",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, EndpointTimeout)
	defer cancel()

	start := time.Now()
	r, err := c.Source.Fetch(ctx)
	took := time.Since(start).Round(time.Millisecond)

	if err != nil {
		var serverErr *sensors.ServerError
		if stderrors.As(err, &serverErr) {
			return CheckResult{
				Status:     StatusFail,
				Message:    fmt.Sprintf("%s answered %s", c.URL, serverErr.Status),
				Suggestion: "Check the sensor server logs for request " + serverErr.RequestID,
			}
		}
		return CheckResult{
			Status:     StatusFail,
			Message:    errors.OneLine(err),
			Suggestion: "Is the sensor server running? Try: curl " + c.URL,
		}
	}

	c.readings = r
	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("%s reachable (%s)", c.URL, took),
	}
}

func (c *EndpointCheck) Fix() error {
	return nil
}

// PayloadCheck inspects the payload fetched by Endpoint: both series must be
// non-empty, and should be the same length.
type PayloadCheck struct {
	Endpoint *EndpointCheck
}

func (c *PayloadCheck) Name() string     { return "payload" }
func (c *PayloadCheck) Category() string { return CategoryServer }

func (c *PayloadCheck) Run(_ context.Context) CheckResult {
	if c.Endpoint == nil || c.Endpoint.readings == nil {
		return CheckResult{
			Status:  StatusWarn,
			Message: "Payload not checked: endpoint unavailable",
		}
	}
	r := c.Endpoint.readings

	temp, hum, err := r.Current()
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    errors.OneLine(err),
			Suggestion: "The dashboard shows nothing until the server reports at least one sample per series",
		}
	}

	latest := fmt.Sprintf("latest %s°C / %s%%", dashboard.FormatReading(temp), dashboard.FormatReading(hum))

	if len(r.Temperature) != len(r.Humidity) {
		return CheckResult{
			Status: StatusWarn,
			Message: fmt.Sprintf("Series lengths differ: %d temperature, %d humidity samples (%s)",
				len(r.Temperature), len(r.Humidity), latest),
			Suggestion: "The two charts will have different x axes",
		}
	}

	if temp > dashboard.Threshold {
		return CheckResult{
			Status: StatusWarn,
			Message: fmt.Sprintf("%d samples, %s: above %s°C, the fire alert will show",
				len(r.Temperature), latest, dashboard.FormatReading(dashboard.Threshold)),
		}
	}

	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("%d samples, %s", len(r.Temperature), latest),
	}
}

func (c *PayloadCheck) Fix() error {
	return nil
}

// NewServerChecks returns the endpoint and payload checks for source.
// source may be nil when the config could not be resolved.
func NewServerChecks(source sensors.Source, url string) []Check {
	endpoint := &EndpointCheck{Source: source, URL: url}
	return []Check{endpoint, &PayloadCheck{Endpoint: endpoint}}
}
