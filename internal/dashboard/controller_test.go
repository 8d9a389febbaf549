package dashboard

import (
	"context"
	stderrors "errors"
	"math"
	"testing"
	"time"

	"github.com/rileyhilliard/sensordash/internal/errors"
	"github.com/rileyhilliard/sensordash/internal/logger"
	"github.com/rileyhilliard/sensordash/internal/sensors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(src sensors.Source) (*Controller, *logger.BufferLogger) {
	log := logger.NewBufferLogger()
	c := NewController(src, log)
	fixed := time.Date(2026, 10, 15, 14, 30, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }
	return c, log
}

func TestNewController_InitialState(t *testing.T) {
	c, _ := newTestController(newFakeSource())

	assert.Equal(t, AlertHidden, c.Alert())
	assert.Equal(t, Readouts{}, c.Readouts())
	assert.True(t, c.LastUpdate().IsZero())
	assert.Empty(t, c.Temperature().Data)
	assert.Empty(t, c.Humidity().Data)
}

func TestNewController_NilLogger(t *testing.T) {
	c := NewController(newFakeSource(ok([]float64{1}, []float64{2})), nil)
	_, err := c.Refresh(context.Background())
	require.NoError(t, err)
}

func TestController_Refresh(t *testing.T) {
	src := newFakeSource(ok([]float64{18, 19, 21}, []float64{40, 41, 42}))
	c, log := newTestController(src)

	res, err := c.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "21°C", c.Readouts().Temperature)
	assert.Equal(t, "42%", c.Readouts().Humidity)
	assert.Equal(t, AlertShown, c.Alert())
	assert.Equal(t, ActionShow, res.Action)
	assert.Equal(t, c.Readouts(), res.Readouts)
	assert.Equal(t, c.LastUpdate(), res.At)

	assert.Equal(t, []int{1, 2, 3}, c.Temperature().Labels)
	assert.Equal(t, []float64{18, 19, 21}, c.Temperature().Data)
	assert.Equal(t, []int{1, 2, 3}, c.Humidity().Labels)
	assert.Equal(t, []float64{40, 41, 42}, c.Humidity().Data)

	assert.Equal(t, 1, log.Count("warn"))
	assert.Contains(t, log.Messages[0].Message, "fire alert shown")
}

func TestController_AlertShowsThenHides(t *testing.T) {
	src := newFakeSource(
		ok([]float64{18, 19, 21}, []float64{40, 41, 42}),
		ok([]float64{21, 19, 18}, []float64{42, 41, 40}),
	)
	c, log := newTestController(src)

	res, err := c.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ActionShow, res.Action)
	assert.Equal(t, AlertShown, c.Alert())

	res, err = c.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "18°C", c.Readouts().Temperature)
	assert.Equal(t, "40%", c.Readouts().Humidity)
	assert.Equal(t, ActionHide, res.Action)
	assert.Equal(t, AlertHidden, c.Alert())

	assert.Equal(t, 1, log.Count("warn"))
	assert.Equal(t, 1, log.Count("info"))
}

func TestController_RepeatedHotReadingsToggleOnce(t *testing.T) {
	src := newFakeSource(ok([]float64{25}, []float64{50}))
	c, log := newTestController(src)

	res, err := c.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ActionShow, res.Action)

	res, err = c.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ActionNone, res.Action)
	assert.Equal(t, AlertShown, c.Alert())

	assert.Equal(t, 1, log.Count("warn"))
}

func TestController_ThresholdIsExclusive(t *testing.T) {
	c, _ := newTestController(newFakeSource(ok([]float64{20}, []float64{50})))

	res, err := c.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ActionNone, res.Action)
	assert.Equal(t, AlertHidden, c.Alert())
	assert.Equal(t, "20°C", c.Readouts().Temperature)
}

func TestController_CancelledRefreshIsNotAnError(t *testing.T) {
	c, log := newTestController(newFakeSource(ok([]float64{18}, []float64{40})))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Refresh(ctx)
	require.ErrorIs(t, err, context.Canceled)

	assert.Zero(t, log.Count("error"))
	assert.Equal(t, 1, log.Count("debug"))
	assert.True(t, c.LastUpdate().IsZero())
}

func TestController_FailureLeavesStateUnchanged(t *testing.T) {
	src := newFakeSource(
		ok([]float64{18, 22}, []float64{40, 45}),
		fail(errors.New(errors.ErrFetch, "Couldn't reach the sensor server", "")),
	)
	c, log := newTestController(src)

	_, err := c.Refresh(context.Background())
	require.NoError(t, err)

	before := struct {
		readouts Readouts
		alert    AlertState
		tempRev  int
		humRev   int
		update   time.Time
	}{c.Readouts(), c.Alert(), c.Temperature().Revision, c.Humidity().Revision, c.LastUpdate()}

	_, err = c.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrFetch))

	assert.Equal(t, before.readouts, c.Readouts())
	assert.Equal(t, before.alert, c.Alert())
	assert.Equal(t, before.tempRev, c.Temperature().Revision)
	assert.Equal(t, before.humRev, c.Humidity().Revision)
	assert.Equal(t, before.update, c.LastUpdate())
	assert.Equal(t, []float64{18, 22}, c.Temperature().Data)

	require.Equal(t, 1, log.Count("error"))
	last := log.Messages[len(log.Messages)-1]
	assert.Equal(t, "Error: Couldn't reach the sensor server", last.Message)
}

func TestController_EmptySeries(t *testing.T) {
	tests := []struct {
		name   string
		temp   []float64
		hum    []float64
		series string
	}{
		{"empty temperature", []float64{}, []float64{40}, "temperature"},
		{"empty humidity", []float64{21}, nil, "humidity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, log := newTestController(newFakeSource(ok(tt.temp, tt.hum)))

			_, err := c.Refresh(context.Background())
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrData))

			var empty *sensors.EmptyDataError
			require.True(t, stderrors.As(err, &empty))
			assert.Equal(t, tt.series, empty.Series)

			assert.Equal(t, Readouts{}, c.Readouts())
			assert.Equal(t, AlertHidden, c.Alert())
			assert.Equal(t, 0, c.Temperature().Revision)
			assert.Equal(t, 1, log.Count("error"))
		})
	}
}

func TestController_ApplyNil(t *testing.T) {
	c, _ := newTestController(newFakeSource())
	_, err := c.Apply(nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrData))
}

func TestController_FetchCancelled(t *testing.T) {
	c, _ := newTestController(newFakeSource(ok([]float64{1}, []float64{1})))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// deadlineSource records the deadline it was called with.
type deadlineSource struct {
	deadline time.Time
	ok       bool
}

func (d *deadlineSource) Fetch(ctx context.Context) (*sensors.Readings, error) {
	d.deadline, d.ok = ctx.Deadline()
	return &sensors.Readings{Temperature: []float64{1}, Humidity: []float64{1}}, nil
}

func TestController_FetchIsBoundedByInterval(t *testing.T) {
	src := &deadlineSource{}
	c, _ := newTestController(src)

	start := time.Now()
	_, err := c.Fetch(context.Background())
	require.NoError(t, err)

	require.True(t, src.ok)
	assert.WithinDuration(t, start.Add(RefreshInterval), src.deadline, time.Second)
}

func TestFormatReading(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{21, "21"},
		{21.5, "21.5"},
		{0, "0"},
		{-3.25, "-3.25"},
		{100, "100"},
		{math.Copysign(0, -1), "0"},
		{1e21, "1e+21"},
		{-2.5e22, "-2.5e+22"},
		{0.000001, "0.000001"},
		{1.5e-7, "1.5e-7"},
		{1e-100, "1e-100"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatReading(tt.in))
		})
	}
}
