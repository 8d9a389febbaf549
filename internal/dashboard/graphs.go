package dashboard

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille character rendering for high-resolution terminal line charts.
//
// Braille patterns use a 2x4 dot matrix per character:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
//
// Unicode braille starts at U+2800 (empty) and uses bit patterns:
// bit 0 = dot 1, bit 1 = dot 2, bit 2 = dot 3, bit 3 = dot 4,
// bit 4 = dot 5, bit 5 = dot 6, bit 6 = dot 7, bit 7 = dot 8

const brailleBase = '⠀'

// brailleDots maps row/column to the bit offset for braille pattern
// [row][col] where row is 0-3 (top to bottom) and col is 0-1 (left to right)
var brailleDots = [4][2]uint8{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

// dotGrid is a canvas of braille cells addressed in dot coordinates.
type dotGrid struct {
	cells         [][]rune
	width, height int // in dots
}

func newDotGrid(cols, rows int) *dotGrid {
	cells := make([][]rune, rows)
	for i := range cells {
		cells[i] = make([]rune, cols)
		for j := range cells[i] {
			cells[i][j] = brailleBase
		}
	}
	return &dotGrid{cells: cells, width: cols * 2, height: rows * 4}
}

// set turns on the dot at (x, y), y counted from the top. Out of range is ignored.
func (g *dotGrid) set(x, y int) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return
	}
	g.cells[y/4][x/2] |= rune(1) << brailleDots[y%4][x%2]
}

// line draws a Bresenham line between two dots.
func (g *dotGrid) line(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		g.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (g *dotGrid) rows() []string {
	out := make([]string, len(g.cells))
	for i, row := range g.cells {
		out[i] = string(row)
	}
	return out
}

// RenderLineChart plots data as an unfilled braille line spanning the full
// width. Points are spread evenly left to right (index 0 at the left edge),
// and the y axis runs from lo (bottom) to hi (top). Values outside the
// range are clamped.
//
// Parameters:
//   - width: number of braille characters (2 dots each)
//   - height: number of rows (4 dots each)
func RenderLineChart(data []float64, width, height int, lo, hi float64, color lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	g := newDotGrid(width, height)

	prevX, prevY := -1, -1
	for i, v := range data {
		x := pointX(i, len(data), g.width)
		y := g.height - 1 - scaleDot(v, lo, hi, g.height)
		if prevX >= 0 {
			g.line(prevX, prevY, x, y)
		} else {
			g.set(x, y)
		}
		prevX, prevY = x, y
	}

	style := lipgloss.NewStyle().Foreground(color)
	rows := g.rows()
	for i, r := range rows {
		rows[i] = style.Render(r)
	}
	return strings.Join(rows, "\n")
}

// pointX maps a sample index to a dot column so n points span the width.
func pointX(i, n, width int) int {
	if n <= 1 {
		return 0
	}
	return int(math.Round(float64(i) * float64(width-1) / float64(n-1)))
}

// scaleDot maps v into [0, dots-1] between lo and hi, counted from the bottom.
func scaleDot(v, lo, hi float64, dots int) int {
	if hi <= lo || dots <= 1 {
		return 0
	}
	norm := (v - lo) / (hi - lo)
	return clampInt(int(math.Round(norm*float64(dots-1))), dots-1)
}

// RenderChartPanel renders a chart with a y axis on the left and the first
// and last x labels underneath.
func RenderChartPanel(c *Chart, width, height int) string {
	lo, hi := c.Bounds()

	hiLabel := formatAxis(hi)
	loLabel := formatAxis(lo)
	axisWidth := maxInt(lipgloss.Width(hiLabel), lipgloss.Width(loLabel))

	plotWidth := width - axisWidth - 1
	if plotWidth < 1 || height < 1 {
		return ""
	}

	plot := strings.Split(RenderLineChart(c.Data, plotWidth, height, lo, hi, c.Color), "\n")

	axis := make([]string, height)
	for i := range axis {
		label := ""
		switch i {
		case 0:
			label = hiLabel
		case height - 1:
			label = loLabel
		}
		axis[i] = AxisStyle.Render(fmt.Sprintf("%*s", axisWidth, label)) + AxisStyle.Render("┤")
	}

	lines := make([]string, 0, height+1)
	for i := range plot {
		lines = append(lines, axis[i]+plot[i])
	}
	lines = append(lines, strings.Repeat(" ", axisWidth+1)+xLabels(c.Labels, plotWidth))

	return strings.Join(lines, "\n")
}

// xLabels places the first label at the left edge and the last at the right.
func xLabels(labels []int, width int) string {
	if len(labels) == 0 || width <= 0 {
		return ""
	}
	first := fmt.Sprintf("%d", labels[0])
	if len(labels) == 1 {
		return AxisStyle.Render(first)
	}
	last := fmt.Sprintf("%d", labels[len(labels)-1])
	gap := width - len(first) - len(last)
	if gap < 1 {
		return AxisStyle.Render(last)
	}
	return AxisStyle.Render(first + strings.Repeat(" ", gap) + last)
}

func formatAxis(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

func clampInt(val, maxVal int) int {
	if val < 0 {
		return 0
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
