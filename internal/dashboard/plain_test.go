package dashboard

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rileyhilliard/sensordash/internal/errors"
	"github.com/rileyhilliard/sensordash/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe to read while the runner writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunPlain_CancelledContext(t *testing.T) {
	src := newFakeSource(ok([]float64{18}, []float64{40}))
	log := logger.NewBufferLogger()
	ctrl := NewController(src, log)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out syncBuffer
	err := RunPlain(ctx, ctrl, &out)
	require.NoError(t, err)
	assert.Empty(t, out.String(), "a cancelled fetch prints nothing")
	assert.False(t, log.HasLevel("error"), "shutdown is not logged as a failure")
}

func TestRunPlain_PrintsCycles(t *testing.T) {
	src := newFakeSource(
		ok([]float64{18, 19}, []float64{40, 41}),
		ok([]float64{19, 21}, []float64{41, 42}),
		fail(errors.New(errors.ErrFetch, "Server Error", "")),
		ok([]float64{21, 18}, []float64{42, 40}),
	)
	ctrl, log := newTestController(src)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	done := make(chan error, 1)
	go func() { done <- runPlain(ctx, ctrl, &out, 10*time.Millisecond) }()

	require.Eventually(t, func() bool { return src.Calls() >= 4 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 5)

	assert.Contains(t, lines[0], "temperature 19°C  humidity 41%  samples 2")
	assert.Contains(t, lines[1], "temperature 21°C  humidity 42%")
	assert.Contains(t, lines[2], "FIRE ALERT  temperature 21°C is above 20°C")
	// The failed cycle prints nothing; the controller logs it.
	assert.Contains(t, lines[3], "temperature 18°C  humidity 40%")
	assert.Contains(t, lines[4], "alert cleared  temperature 18°C")

	assert.True(t, strings.HasPrefix(lines[0], "14:30:00"))
	assert.GreaterOrEqual(t, log.Count("error"), 1)
}
