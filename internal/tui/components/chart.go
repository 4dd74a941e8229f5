package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/niraj8/startup-runway-estimator/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// eighths are the partial cells used for the top of a bar.
var eighths = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := seriesMax(values)
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = max(0, min(idx, len(sparkBlocks)-1))
		buf.WriteRune(sparkBlocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// AxisFormatter renders a y-axis tick value.
type AxisFormatter func(float64) string

// BarChart renders a bar chart with a labeled y axis and sampled x labels.
// When there are more values than columns, values are sampled evenly. yFmt
// may be nil for plain abbreviated numbers.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int, yFmt AxisFormatter) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	if yFmt == nil {
		yFmt = formatChartLabel
	}

	t := theme.Active
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	peak := seriesMax(values)
	if peak <= 0 {
		peak = 1
	}

	step, intervals := chartTicks(peak, height)
	ceiling := step * float64(intervals)
	rowsPerTick := max(2, height/intervals)
	chartH := rowsPerTick * intervals

	yLabelW := max(4, lipgloss.Width(yFmt(ceiling))+1)
	tickLabels := make(map[int]string, intervals)
	for i := 1; i <= intervals; i++ {
		tickLabels[i*rowsPerTick] = yFmt(step * float64(i))
	}

	chartW := max(5, width-yLabelW-1)
	values, labels, barW, gap := fitBars(values, labels, chartW)
	n := len(values)
	axisLen := n*barW + max(0, n-1)*gap

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(blank.Render(strings.Repeat(" ", gap)))
			}
			switch {
			case v >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				idx := int((v - rowBottom) / (rowTop - rowBottom) * 8)
				idx = max(1, min(idx, 8))
				b.WriteString(barStyle.Render(strings.Repeat(string(eighths[idx]), barW)))
			default:
				b.WriteString(blank.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, yFmt(0))))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", axisLen)))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axisStyle.Render(xAxisLabels(labels, barW, gap, axisLen)))
	}

	return b.String()
}

// fitBars picks a bar width and gap for n values in chartW columns, sampling
// the series when even two-column bars don't fit.
func fitBars(values []float64, labels []string, chartW int) ([]float64, []string, int, int) {
	n := len(values)
	if n == 1 {
		return values, labels, min(chartW, 6), 0
	}

	gap := 1
	barW := (chartW - (n - 1)) / n
	if barW < 2 {
		maxN := max(2, (chartW+1)/3)
		sampled := make([]float64, maxN)
		var sampledLabels []string
		if len(labels) == n {
			sampledLabels = make([]string, maxN)
		}
		for i := range sampled {
			src := i * (n - 1) / (maxN - 1)
			sampled[i] = values[src]
			if sampledLabels != nil {
				sampledLabels[i] = labels[src]
			}
		}
		return sampled, sampledLabels, 2, gap
	}
	return values, labels, min(barW, 6), gap
}

// xAxisLabels spaces labels under their bars without overlap. The last
// label is always shown when it fits.
func xAxisLabels(labels []string, barW, gap, axisLen int) string {
	buf := []rune(strings.Repeat(" ", axisLen))
	n := len(labels)
	lastEnd := -1

	place := func(pos int, lbl string) bool {
		r := []rune(lbl)
		if pos <= lastEnd || pos < 0 || pos+len(r) > axisLen {
			return false
		}
		copy(buf[pos:], r)
		lastEnd = pos + len(r)
		return true
	}

	for i := 0; i < n-1; i++ {
		place(i*(barW+gap), labels[i])
	}
	if n > 1 {
		lbl := labels[n-1]
		pos := min((n-1)*(barW+gap), axisLen-len([]rune(lbl)))
		if pos > lastEnd {
			place(pos, lbl)
		}
	}
	return strings.TrimRight(string(buf), " ")
}

func seriesMax(values []float64) float64 {
	peak := math.Inf(-1)
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}
	return peak
}

// chartTicks returns the tick step and interval count for a peak value,
// doubling the step until the ticks fit in height rows.
func chartTicks(peak float64, height int) (float64, int) {
	step := chartTickStep(peak)
	maxIntervals := max(2, height/2)
	for int(math.Ceil(peak/step)) > maxIntervals {
		step *= 2
	}
	return step, max(1, int(math.Ceil(peak/step)))
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	trim := func(x float64, unit string) string {
		if x == math.Trunc(x) {
			return fmt.Sprintf("%.0f%s", x, unit)
		}
		return fmt.Sprintf("%.1f%s", x, unit)
	}
	switch {
	case v >= 1e9:
		return trim(v/1e9, "B")
	case v >= 1e6:
		return trim(v/1e6, "M")
	case v >= 1e3:
		return trim(v/1e3, "k")
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
