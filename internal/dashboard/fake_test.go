package dashboard

import (
	"context"
	"sync"

	"github.com/rileyhilliard/sensordash/internal/sensors"
)

// fakeResponse is one scripted Fetch outcome.
type fakeResponse struct {
	readings *sensors.Readings
	err      error
}

// fakeSource replays scripted responses in order, repeating the last one.
type fakeSource struct {
	mu        sync.Mutex
	responses []fakeResponse
	calls     int
}

func newFakeSource(responses ...fakeResponse) *fakeSource {
	return &fakeSource{responses: responses}
}

func (f *fakeSource) Fetch(ctx context.Context) (*sensors.Readings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx := f.calls
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	f.calls++

	if idx < 0 {
		return &sensors.Readings{}, nil
	}
	r := f.responses[idx]
	return r.readings, r.err
}

func (f *fakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func ok(temp, hum []float64) fakeResponse {
	return fakeResponse{readings: &sensors.Readings{Temperature: temp, Humidity: hum}}
}

func fail(err error) fakeResponse {
	return fakeResponse{err: err}
}
