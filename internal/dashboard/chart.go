package dashboard

import "github.com/charmbracelet/lipgloss"

// Stroke colors of the two series.
const (
	ColorTemperatureLine = lipgloss.Color("#FF6384") // rgb(255, 99, 132)
	ColorHumidityLine    = lipgloss.Color("#36A2EB") // rgb(54, 162, 235)
)

// Chart holds one line series and its axis settings. Labels and Data are
// replaced wholesale on every update, never appended to. Charts are drawn
// as lines only, never filled.
type Chart struct {
	Title string
	Unit  string
	Color lipgloss.Color

	// BeginAtZero pins the bottom of the y axis at 0 unless data goes negative.
	BeginAtZero bool
	// SuggestedMax is the minimum top of the y axis; data above it extends the axis.
	SuggestedMax float64

	Labels []int
	Data   []float64

	// Revision increments on every Update, the terminal's equivalent of a re-render.
	Revision int
}

// NewTemperatureChart returns the temperature chart configuration.
func NewTemperatureChart() *Chart {
	return &Chart{
		Title:        "Temperature",
		Unit:         "°C",
		Color:        ColorTemperatureLine,
		BeginAtZero:  true,
		SuggestedMax: 40,
		Labels:       []int{},
		Data:         []float64{},
	}
}

// NewHumidityChart returns the humidity chart configuration.
func NewHumidityChart() *Chart {
	return &Chart{
		Title:        "Humidity",
		Unit:         "%",
		Color:        ColorHumidityLine,
		BeginAtZero:  true,
		SuggestedMax: 100,
		Labels:       []int{},
		Data:         []float64{},
	}
}

// Update replaces the series with a copy of data, relabels it 1..len(data)
// and bumps the revision.
func (c *Chart) Update(data []float64) {
	c.Data = make([]float64, len(data))
	copy(c.Data, data)

	c.Labels = make([]int, len(data))
	for i := range c.Labels {
		c.Labels[i] = i + 1
	}

	c.Revision++
}

// Bounds returns the y axis range for the current data.
func (c *Chart) Bounds() (lo, hi float64) {
	if len(c.Data) == 0 {
		return 0, c.SuggestedMax
	}

	lo, hi = c.Data[0], c.Data[0]
	for _, v := range c.Data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	if c.BeginAtZero && lo > 0 {
		lo = 0
	}
	if hi < c.SuggestedMax {
		hi = c.SuggestedMax
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}
