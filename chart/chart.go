// Package chart draws chart series as PNG or SVG images.
package chart

import (
	"errors"
	"fmt"
	"math"

	"github.com/etnz/networth"
	"github.com/vicanso/go-charts/v2"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("no data to chart")

// Options tunes the rendered image. Zero values take defaults.
type Options struct {
	Title  string
	Width  int
	Height int
	SVG    bool // render SVG instead of PNG
	Dark   bool
}

// Render draws chart points produced by networth.Transform with sel.
//
// Allocation series are drawn as a pie of their last point, every other kind
// as lines: one for the total and one per asset.
func Render(points []networth.ChartPoint, sel networth.Selector, opts Options) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrNoData
	}
	if sel.Kind == networth.Allocation {
		return pie(points[len(points)-1], opts)
	}
	return lines(points, sel, opts)
}

func lines(points []networth.ChartPoint, sel networth.Selector, opts Options) ([]byte, error) {
	assets := networth.ChartAssets(points)
	names := append([]string{"Total"}, assets...)

	labels := make([]string, len(points))
	values := make([][]float64, len(names))
	for i := range values {
		values[i] = make([]float64, len(points))
	}
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		labels[i] = p.Date
		values[0][i] = p.Total
		for j, a := range assets {
			values[j+1][i] = p.PerAsset[a]
		}
		for _, serie := range values {
			yMin, yMax = math.Min(yMin, serie[i]), math.Max(yMax, serie[i])
		}
	}
	pad := (yMax - yMin) * 0.05
	if pad == 0 {
		pad = math.Max(math.Abs(yMax)*0.05, 1)
	}
	yMin -= pad
	yMax += pad

	yAxis := charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}
	if sel.Percent() {
		yAxis.Formatter = "{value}%"
	}
	splitNum := len(labels) - 1
	if splitNum > 12 {
		splitNum = 12
	}

	p, err := charts.LineRender(values,
		append(common(opts, sel),
			charts.XAxisOptionFunc(charts.XAxisOption{
				Data:        labels,
				SplitNumber: max(splitNum, 1),
				BoundaryGap: charts.FalseFlag(),
			}),
			charts.YAxisOptionFunc(yAxis),
			charts.LegendOptionFunc(charts.LegendOption{Data: names, Left: charts.PositionRight}),
		)...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return encode(p)
}

func pie(point networth.ChartPoint, opts Options) ([]byte, error) {
	names := networth.ChartAssets([]networth.ChartPoint{point})
	if len(names) == 0 {
		return nil, ErrNoData
	}
	values := make([]float64, len(names))
	for i, n := range names {
		values[i] = point.PerAsset[n]
	}
	sel := networth.Selector{Kind: networth.Allocation}
	if opts.Title == "" {
		opts.Title = "Allocation " + point.Date
	}
	p, err := charts.PieRender(values,
		append(common(opts, sel),
			charts.LegendOptionFunc(charts.LegendOption{Data: names, Orient: charts.OrientVertical, Left: charts.PositionLeft}),
			charts.PieSeriesShowLabel(),
		)...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return encode(p)
}

func common(opts Options, sel networth.Selector) []charts.OptionFunc {
	title := opts.Title
	if title == "" {
		title = sel.String()
	}
	theme := charts.ThemeLight
	if opts.Dark {
		theme = charts.ThemeDark
	}
	fns := []charts.OptionFunc{
		charts.TitleTextOptionFunc(title),
		charts.ThemeOptionFunc(theme),
	}
	if opts.Width > 0 {
		fns = append(fns, charts.WidthOptionFunc(opts.Width))
	}
	if opts.Height > 0 {
		fns = append(fns, charts.HeightOptionFunc(opts.Height))
	}
	if opts.SVG {
		fns = append(fns, charts.SVGTypeOption())
	} else {
		fns = append(fns, charts.PNGTypeOption())
	}
	return fns
}

func encode(p *charts.Painter) ([]byte, error) {
	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to generate chart bytes: %w", err)
	}
	return buf, nil
}
