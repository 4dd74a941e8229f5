package components

import (
	"strings"
	"testing"

	"github.com/niraj8/startup-runway-estimator/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToWidth(t *testing.T) {
	for _, total := range []int{80, 81, 119, 180} {
		for n := 1; n <= 5; n++ {
			sum := 0
			for _, w := range LayoutRow(total, n) {
				sum += w
			}
			if sum != total {
				t.Fatalf("LayoutRow(%d, %d) sums to %d", total, n, sum)
			}
		}
	}
	if LayoutRow(80, 0) != nil {
		t.Fatal("LayoutRow with n=0 should be nil")
	}
}

func TestCardRowPadsShorterCards(t *testing.T) {
	theme.SetActive("sunset")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := lipgloss.Height(shortCard)
	tallLines := lipgloss.Height(tallCard)
	if shortLines >= tallLines {
		t.Fatal("test setup error: short card should be shorter than tall card")
	}

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}
	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("line %d below the short card has no background styling", i)
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	cards := []Metric{
		{Label: "Runway", Value: "23 months"},
		{Label: "Starting funds", Value: "$4,050,000", Note: "after credits"},
		{Label: "Month-0 burn", Value: "$52,581"},
	}
	row := MetricCardRow(cards, 90)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Fatalf("line %d width = %d, want 90", i, w)
		}
	}
}

func TestTabVisualWidthMatchesRender(t *testing.T) {
	for active := range Tabs {
		bar := RenderTabBar(active, 0)
		want := 0
		for i, tab := range Tabs {
			want += TabVisualWidth(tab, i == active)
		}
		want += len(Tabs) - 1 // separators
		if got := lipgloss.Width(bar); got != want {
			t.Fatalf("active=%d: rendered width %d, want %d", active, got, want)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('b'); got != 3 {
		t.Fatalf("TabIdxByKey('b') = %d, want 3", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Fatalf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestChartTickStep(t *testing.T) {
	tests := []struct {
		max  float64
		want float64
	}{
		{0, 1},
		{10, 2},
		{4_050_000, 500_000},
		{150_000, 20_000},
		{600, 100},
	}
	for _, tt := range tests {
		if got := chartTickStep(tt.max); got != tt.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", tt.max, got, tt.want)
		}
	}
}

func TestChartTicksFitHeight(t *testing.T) {
	step, n := chartTicks(4_050_000, 6)
	if n > 3 {
		t.Fatalf("got %d intervals for height 6, want at most 3", n)
	}
	if step*float64(n) < 4_050_000 {
		t.Fatalf("ceiling %v below peak", step*float64(n))
	}
}

func TestFormatChartLabel(t *testing.T) {
	tests := map[float64]string{
		0:         "0",
		500:       "500",
		2000:      "2k",
		2500:      "2.5k",
		4_000_000: "4M",
		1.5e9:     "1.5B",
	}
	for v, want := range tests {
		if got := formatChartLabel(v); got != want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestBarChartHeightAndLabels(t *testing.T) {
	values := []float64{400, 300, 200, 100, 0}
	labels := []string{"Oct", "Nov", "Dec", "Jan", "Feb"}

	out := BarChart(values, labels, theme.Active.Funds, 60, 8, nil)
	lines := strings.Split(out, "\n")
	// chart rows + axis + labels
	if len(lines) < 5 {
		t.Fatalf("chart has %d lines", len(lines))
	}
	last := lines[len(lines)-1]
	for _, l := range []string{"Oct", "Feb"} {
		if !strings.Contains(last, l) {
			t.Errorf("x axis %q missing label %q", last, l)
		}
	}
}

func TestBarChartSamplesLongSeries(t *testing.T) {
	values := make([]float64, 600)
	for i := range values {
		values[i] = float64(600 - i)
	}
	out := BarChart(values, nil, theme.Active.Funds, 40, 6, nil)
	for i, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 40 {
			t.Fatalf("line %d is %d wide, want <= 40", i, w)
		}
	}
}

func TestBarChartFallsBackToSparkline(t *testing.T) {
	out := BarChart([]float64{1, 2, 3}, nil, theme.Active.Burn, 10, 2, nil)
	if strings.Contains(out, "\n") {
		t.Fatal("narrow chart should render as a single-line sparkline")
	}
}

func TestXAxisLabelsNoOverlap(t *testing.T) {
	labels := []string{"Oct 2026", "Nov 2026", "Dec 2026", "Jan 2027"}
	got := xAxisLabels(labels, 2, 1, 11)
	if !strings.HasPrefix(got, "Oct 2026") {
		t.Fatalf("first label missing: %q", got)
	}
	if strings.Contains(got, "Nov") {
		t.Fatalf("overlapping label placed: %q", got)
	}
}

func TestRunwayGaugeColor(t *testing.T) {
	theme.SetActive("sunset")
	if ColorForRunway(0.1) != theme.Active.Red {
		t.Fatal("short runway should be red")
	}
	if ColorForRunway(1.3) != theme.Active.Green {
		t.Fatal("runway past goal should be green")
	}
	if !strings.Contains(RunwayGauge(23, 18, 20), "18 mo goal") {
		t.Fatal("gauge missing goal label")
	}
}
