package charts

import (
	"fmt"
	"io"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// MaxRenderedBars caps the bars drawn for high-cardinality columns
const MaxRenderedBars = 60

// RenderSVG draws the chart as an SVG document
func RenderSVG(c Chart, w io.Writer, width, height int) error {
	return render(c, w, width, height, chart.SVG)
}

// RenderPNG draws the chart as a PNG image
func RenderPNG(c Chart, w io.Writer, width, height int) error {
	return render(c, w, width, height, chart.PNG)
}

func render(c Chart, w io.Writer, width, height int, provider chart.RendererProvider) error {
	if len(c.Bars) == 0 {
		return ErrNoChart
	}

	bars := c.Bars
	title := c.Title
	if len(bars) > MaxRenderedBars {
		bars = bars[:MaxRenderedBars]
		title = fmt.Sprintf("%s (top %d)", title, MaxRenderedBars)
	}

	color := drawing.ColorFromHex(strings.TrimPrefix(c.Color, "#"))
	labelEvery := 1
	if c.Kind == KindHistogram {
		labelEvery = 5
	}

	values := make([]chart.Value, len(bars))
	peak := 0.0
	for i, b := range bars {
		label := ""
		if i%labelEvery == 0 {
			label = b.Label
		}
		values[i] = chart.Value{
			Label: label,
			Value: b.Value,
			Style: chart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 0},
		}
		if b.Value > peak {
			peak = b.Value
		}
	}
	if peak == 0 {
		peak = 1
	}

	barWidth := (width - 80) / (len(bars) + len(bars)/4 + 1)
	if barWidth < 1 {
		barWidth = 1
	}
	spacing := 2
	if c.Kind == KindBar {
		spacing = barWidth / 4
	}

	bc := chart.BarChart{
		Title:        title,
		Width:        width,
		Height:       height,
		BarWidth:     barWidth,
		BarSpacing:   spacing,
		UseBaseValue: true,
		BaseValue:    0,
		Background:   chart.Style{Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10}},
		YAxis: chart.YAxis{
			Name:  c.YLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: peak * 1.05},
		},
		Bars: values,
	}

	if err := bc.Render(provider, w); err != nil {
		return fmt.Errorf("render %s chart: %w", c.Kind, err)
	}
	return nil
}
