package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/spigell/skill-matrix/internal/skills"
)

var ErrEmptyRanking = errors.New("ranking is empty")

const (
	chartHeight  = 600
	barWidth     = 40
	barSpacing   = 20
	minChartSize = 480
)

// ChartTitle is the title used for a top-k chart.
func ChartTitle(k int) string {
	return fmt.Sprintf("Top %d Technology Skills", k)
}

// RenderChart draws the ranking as a PNG bar chart.
func RenderChart(w io.Writer, ranking skills.Ranking, title string) error {
	if len(ranking) == 0 {
		return ErrEmptyRanking
	}

	bars, maxCount := chartBars(ranking)

	width := len(bars)*(barWidth+barSpacing) + 2*barSpacing
	if width < minChartSize {
		width = minChartSize
	}

	graph := chart.BarChart{
		Title:      strings.TrimSpace(title),
		TitleStyle: chart.Shown(),
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Bottom: 20},
		},
		Width:      width,
		Height:     chartHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		XAxis:      chart.Shown(),
		YAxis: chart.YAxis{
			Style: chart.Shown(),
			Range: &chart.ContinuousRange{Min: 0, Max: maxCount},
		},
		Bars: bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

func chartBars(ranking skills.Ranking) ([]chart.Value, float64) {
	labels, values := ranking.Labels(), ranking.Values()

	bars := make([]chart.Value, len(labels))
	maxValue := 0.0
	for i, label := range labels {
		bars[i] = chart.Value{Label: label, Value: values[i]}
		if values[i] > maxValue {
			maxValue = values[i]
		}
	}
	return bars, maxValue
}

// WriteDistribution prints the ranking as "<skill>: <count>" lines under a header.
func WriteDistribution(w io.Writer, ranking skills.Ranking) error {
	if _, err := fmt.Fprintln(w, "Technology Skill Distribution:"); err != nil {
		return err
	}
	for _, line := range ranking.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
