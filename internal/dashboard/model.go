package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/sensordash/internal/errors"
	"github.com/rileyhilliard/sensordash/internal/logger"
	"github.com/rileyhilliard/sensordash/internal/sensors"
)

// Model is the Bubble Tea model for the sensor dashboard.
type Model struct {
	ctrl     *Controller
	log      logger.Logger
	endpoint string
	interval time.Duration

	width  int
	height int

	// Refresh cycles are serialized: a tick that arrives while inFlight is
	// skipped rather than starting a second fetch.
	inFlight bool
	spinning bool
	cycles   int
	skipped  int
	lastErr  string

	spinner  spinner.Model
	help     help.Model
	quitting bool
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// readingsMsg carries a successful fetch back to the update loop.
type readingsMsg struct {
	readings *sensors.Readings
}

// fetchErrMsg carries a failed fetch back to the update loop.
type fetchErrMsg struct {
	err error
}

// NewModel creates a dashboard model around ctrl. endpoint is shown in the
// header. The first refresh is issued by Init, so the model starts in flight.
func NewModel(ctrl *Controller, endpoint string, log logger.Logger) Model {
	if log == nil {
		log = logger.Noop()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{Frames: SpinnerFrames, FPS: time.Second / 10}
	sp.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	return Model{
		ctrl:     ctrl,
		log:      log,
		endpoint: endpoint,
		interval: RefreshInterval,
		inFlight: true,
		spinning: true,
		spinner:  sp,
		help:     help.New(),
	}
}

// Init runs the first refresh immediately and starts the tick timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchCmd(),
		m.tickCmd(),
		m.spinner.Tick,
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		refresh := m.startRefresh()
		return m, tea.Batch(m.tickCmd(), refresh)

	case readingsMsg:
		m.inFlight = false
		m.cycles++
		res, err := m.ctrl.Apply(msg.readings)
		if err != nil {
			m.lastErr = errors.OneLine(err)
			m.log.Error("Error: %s", m.lastErr)
			return m, nil
		}
		m.lastErr = ""
		m.ctrl.logTransition(res)

	case fetchErrMsg:
		m.inFlight = false
		m.cycles++
		m.lastErr = errors.OneLine(msg.err)
		m.log.Error("Error: %s", m.lastErr)

	case spinner.TickMsg:
		if !m.inFlight {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Refresh):
		cmd := m.startRefresh()
		return m, cmd

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// startRefresh begins a cycle unless one is already in flight. It must be
// called on a model that Update will return.
func (m *Model) startRefresh() tea.Cmd {
	if m.inFlight {
		m.skipped++
		m.log.Debug("refresh still in flight, skipping this tick")
		return nil
	}
	m.inFlight = true

	cmds := []tea.Cmd{m.fetchCmd()}
	if !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchCmd fetches readings off the update loop. Only the immutable source
// is touched here; state changes happen when the result message arrives.
func (m Model) fetchCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		r, err := ctrl.Fetch(context.Background())
		if err != nil {
			return fetchErrMsg{err: err}
		}
		return readingsMsg{readings: r}
	}
}

// InFlight reports whether a refresh cycle is running.
func (m Model) InFlight() bool { return m.inFlight }

// SecondsSinceUpdate returns how many seconds have passed since the last
// successful update.
func (m Model) SecondsSinceUpdate() int {
	last := m.ctrl.LastUpdate()
	if last.IsZero() {
		return 0
	}
	return int(time.Since(last).Seconds())
}
