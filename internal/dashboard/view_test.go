package dashboard

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView_BeforeFirstUpdate(t *testing.T) {
	m, _ := newTestModel(newFakeSource())
	out := m.View()

	assert.Contains(t, out, "sensordash")
	assert.Contains(t, out, "http://localhost:5000/api/data")
	assert.Contains(t, out, "waiting for data")
	assert.Contains(t, out, "Temperature")
	assert.Contains(t, out, "Humidity")
	assert.Contains(t, out, "--")
	assert.NotContains(t, out, "FIRE ALERT")
}

func TestView_ReadoutsAndAlert(t *testing.T) {
	m, _ := newTestModel(newFakeSource())
	m, _ = step(t, m, readings([]float64{18, 19, 21}, []float64{40, 41, 42}))

	out := m.View()
	assert.Contains(t, out, "21°C")
	assert.Contains(t, out, "42%")
	assert.Contains(t, out, "updated just now")
	assert.Contains(t, out, "FIRE ALERT  temperature 21°C is above 20°C")

	m, _ = step(t, m, readings([]float64{21, 19, 18}, []float64{42, 41, 40}))
	out = m.View()
	assert.Contains(t, out, "18°C")
	assert.NotContains(t, out, "FIRE ALERT")
}

func TestView_ErrorLine(t *testing.T) {
	m, _ := newTestModel(newFakeSource())
	m.lastErr = "Couldn't reach the sensor server"

	assert.Contains(t, m.View(), "Couldn't reach the sensor server")
}

func TestView_Layout(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		sideBySide bool
	}{
		{"narrow stacks panels", 80, false},
		{"wide places panels side by side", 140, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(newFakeSource())
			m, _ = step(t, m, tea.WindowSizeMsg{Width: tt.width, Height: 50})
			m, _ = step(t, m, readings([]float64{18, 19}, []float64{40, 41}))

			panels := m.renderPanels()
			assert.LessOrEqual(t, lipgloss.Width(panels), tt.width)

			var titleRow string
			for _, line := range strings.Split(panels, "\n") {
				if strings.Contains(line, "Temperature") {
					titleRow = line
					break
				}
			}
			require.NotEmpty(t, titleRow)
			assert.Equal(t, tt.sideBySide, strings.Contains(titleRow, "Humidity"))
		})
	}
}

func TestView_Footer(t *testing.T) {
	m, _ := newTestModel(newFakeSource())
	footer := m.renderFooter()

	assert.Contains(t, footer, "refresh now")
	assert.Contains(t, footer, "quit")
}

func TestKeyMap_Help(t *testing.T) {
	assert.Len(t, keys.ShortHelp(), 3)
	assert.Len(t, keys.FullHelp(), 2)
}
