// Package sensors fetches temperature and humidity series from the sensor
// server's JSON endpoint.
package sensors

import (
	"fmt"

	"github.com/rileyhilliard/sensordash/internal/errors"
)

// Endpoint is the fixed path of the readings endpoint.
const Endpoint = "/api/data"

// Readings is the decoded body of GET /api/data. Both series are
// chronological, oldest first, and are replaced wholesale on every fetch.
type Readings struct {
	Temperature []float64 `json:"temperature"`
	Humidity    []float64 `json:"humidity"`
}

// EmptyDataError reports a series that has no samples, so there is no
// current value to show.
type EmptyDataError struct {
	Series string
}

func (e *EmptyDataError) Error() string {
	return fmt.Sprintf("server returned an empty %s series", e.Series)
}

// Validate returns an ErrData error wrapping *EmptyDataError when either
// series is empty.
func (r *Readings) Validate() error {
	if r == nil {
		return errors.WrapWithCode(&EmptyDataError{Series: "temperature"}, errors.ErrData,
			"No readings in response", "")
	}
	for _, s := range []struct {
		name string
		data []float64
	}{
		{"temperature", r.Temperature},
		{"humidity", r.Humidity},
	} {
		if len(s.data) == 0 {
			return errors.WrapWithCode(&EmptyDataError{Series: s.name}, errors.ErrData,
				"Nothing to display",
				"The sensor server has no samples yet; the dashboard will pick them up on the next refresh")
		}
	}
	return nil
}

// Current returns the last temperature and humidity samples.
func (r *Readings) Current() (temperature, humidity float64, err error) {
	if err := r.Validate(); err != nil {
		return 0, 0, err
	}
	return r.Temperature[len(r.Temperature)-1], r.Humidity[len(r.Humidity)-1], nil
}
