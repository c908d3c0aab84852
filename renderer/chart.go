package renderer

import (
	"io"
	"math"

	"github.com/etnz/folio"
	"github.com/etnz/folio/nav"
	"github.com/etnz/folio/series"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	chartHeight  = "360px"
	colorLine    = "#3b82f6"
	colorBuyLine = "red"
)

// NAVChart draws the NAV series.
func NAVChart(c nav.Chart) *charts.Line {
	label := "Portfolio NAV (index)"
	if c.Unit != "" {
		label = "Portfolio NAV (" + c.Unit + ")"
	}
	line := newLine(label, c.Series)
	line.AddSeries(label, lineData(c.Points),
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: colorLine, Width: 2}),
	)
	return line
}

// PriceChart draws the close prices of a stock, with its buy price as a flat
// dashed line when known. The series bounds are expected to include the buy
// price.
func PriceChart(name string, s series.Series, buy folio.Money) *charts.Line {
	line := newLine(name, s)
	line.AddSeries("Close price", lineData(s.Points),
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: colorLine, Width: 2}),
	)
	if buy.IsPositive() {
		var flat []opts.LineData
		if s.Len() > 0 {
			flat = lineData([]series.Point{{X: s.First().X, Y: buy.Float()}, {X: s.Last().X, Y: buy.Float()}})
		}
		line.AddSeries("Buy price", flat,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: colorBuyLine, Width: 1, Type: "dashed"}),
		)
	}
	return line
}

// WriteChart writes the chart as a standalone HTML page.
func WriteChart(w io.Writer, line *charts.Line) error { return line.Render(w) }

func newLine(title string, s series.Series) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "100%", Height: chartHeight}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside", XAxisIndex: []int{0}}),
		charts.WithXAxisOpts(opts.XAxis{Type: "time"}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
			Min:   round(s.SuggestedMin),
			Max:   round(s.SuggestedMax),
		}),
	)
	return line
}

// lineData returns points as [date, value] pairs of a time axis, so that
// gaps between observations keep their width.
func lineData(points []series.Point) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, p := range points {
		data[i] = opts.LineData{Value: []any{p.X.Format("2006-01-02"), round(p.Y)}}
	}
	return data
}

func round(v float64) float64 { return math.Round(v*100) / 100 }
