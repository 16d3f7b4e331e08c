// Package chart draws dashboard charts as PNG images.
package chart

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/fintrack-dev/fintrack/internal/aggregate"
	"github.com/fintrack-dev/fintrack/internal/model"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to plot")

const (
	width  = 1000
	height = 500
)

var kindColors = map[model.Kind]drawing.Color{
	model.KindExpense: {R: 220, G: 53, B: 69, A: 255},
	model.KindIncome:  {R: 40, G: 167, B: 69, A: 255},
	model.KindSaving:  {R: 0, G: 123, B: 255, A: 255},
}

// RenderTrend draws one line per kind over the trend points.
func RenderTrend(w io.Writer, points []aggregate.TrendPoint) error {
	if len(points) == 0 {
		return ErrNoData
	}

	byKind := make(map[model.Kind]*chart.TimeSeries)
	var series []chart.Series
	for _, k := range model.Kinds() {
		color := kindColors[k]
		ts := &chart.TimeSeries{
			Name: k.String(),
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotColor:    color,
				DotWidth:    4,
			},
		}
		byKind[k] = ts
	}
	for _, p := range points {
		ts, ok := byKind[p.Kind]
		if !ok {
			continue
		}
		ts.XValues = append(ts.XValues, p.Date)
		ts.YValues = append(ts.YValues, p.Amount.InexactFloat64())
	}
	for _, k := range model.Kinds() {
		if len(byKind[k].XValues) > 0 {
			series = append(series, *byKind[k])
		}
	}
	if len(series) == 0 {
		return ErrNoData
	}

	graph := chart.Chart{
		Title:  "Daily Financial Activity",
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 30},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat(model.DateFormat),
			Range:          timeRange(points),
		},
		YAxis: chart.YAxis{
			Range: amountRange(points),
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.2f", f)
				}
				return ""
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering trend chart: %w", err)
	}
	return nil
}

// timeRange widens a single-day span so the axis range is never empty.
func timeRange(points []aggregate.TrendPoint) *chart.ContinuousRange {
	lo, hi := points[0].Date, points[0].Date
	for _, p := range points[1:] {
		if p.Date.Before(lo) {
			lo = p.Date
		}
		if p.Date.After(hi) {
			hi = p.Date
		}
	}
	if !hi.After(lo) {
		lo = lo.Add(-12 * time.Hour)
		hi = hi.Add(12 * time.Hour)
	}
	return &chart.ContinuousRange{
		Min: chart.TimeToFloat64(lo),
		Max: chart.TimeToFloat64(hi),
	}
}

// amountRange starts the y axis at zero so flat series still have a range.
func amountRange(points []aggregate.TrendPoint) *chart.ContinuousRange {
	hi := 0.0
	for _, p := range points {
		if v := p.Amount.InexactFloat64(); v > hi {
			hi = v
		}
	}
	if hi == 0 {
		hi = 1
	}
	return &chart.ContinuousRange{Min: 0, Max: hi * 1.1}
}

// RenderBreakdown draws expense categories as a pie chart. Zero amounts are
// skipped; an empty category is labelled "(none)".
func RenderBreakdown(w io.Writer, amounts []aggregate.CategoryAmount) error {
	var values []chart.Value
	for _, a := range amounts {
		if !a.Amount.IsPositive() {
			continue
		}
		label := a.Category
		if label == "" {
			label = "(none)"
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %s", label, a.Amount.StringFixed(2)),
			Value: a.Amount.InexactFloat64(),
		})
	}
	if len(values) == 0 {
		return ErrNoData
	}

	pie := chart.PieChart{
		Title:  "Spending by Category",
		Width:  height,
		Height: height,
		Values: values,
	}
	if err := pie.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering breakdown chart: %w", err)
	}
	return nil
}
