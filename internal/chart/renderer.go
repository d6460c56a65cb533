// Package chart renders the revenue bar chart shown on the dashboard.
package chart

import (
	"context"

	"github.com/samber/lo"

	"dashboard/internal/core"
	"dashboard/internal/ports"
)

const (
	DefaultHeight = 350

	Title       = "Recent Revenue"
	Caption     = "Last 12 months"
	EmptyNotice = "No data available."
)

// Tick is a y axis label.
type Tick struct {
	Value int64
	Label string
}

// Bar is one rendered period of the series.
type Bar struct {
	Period string
	Amount core.Money
	Height float64
}

// View is the renderable chart. When Empty is set no axis or bars are
// computed and the template shows EmptyNotice.
type View struct {
	Empty       bool
	Title       string
	Caption     string
	Notice      string
	ChartHeight int
	Axis        AxisScale
	Ticks       []Tick
	Bars        []Bar
}

// Renderer fetches the revenue series and builds the chart view. It holds no
// state between renders.
type Renderer struct {
	reader ports.RevenueReader
	height int
}

type Option func(*Renderer)

// WithHeight overrides the chart height in pixels. Non-positive values are ignored.
func WithHeight(px int) Option {
	return func(r *Renderer) {
		if px > 0 {
			r.height = px
		}
	}
}

func NewRenderer(reader ports.RevenueReader, opts ...Option) *Renderer {
	r := &Renderer{reader: reader, height: DefaultHeight}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Height returns the configured chart height in pixels.
func (r *Renderer) Height() int { return r.height }

// Load fetches the series once and builds the view. Fetch errors are returned
// as is.
func (r *Renderer) Load(ctx context.Context) (View, error) {
	series, err := r.reader.FetchRevenue(ctx)
	if err != nil {
		return View{}, err
	}
	return Build(series, r.height), nil
}

// Build derives the view for series at the given chart height.
func Build(series []core.RevenuePoint, chartHeight int) View {
	v := View{
		Title:       Title,
		Caption:     Caption,
		ChartHeight: chartHeight,
	}
	if len(series) == 0 {
		v.Empty = true
		v.Notice = EmptyNotice
		return v
	}

	v.Axis = DeriveAxis(series)
	v.Ticks = lo.Map(v.Axis.Labels, func(val int64, _ int) Tick {
		return Tick{Value: val, Label: FormatTick(val)}
	})
	v.Bars = lo.Map(series, func(p core.RevenuePoint, _ int) Bar {
		return Bar{
			Period: p.Period,
			Amount: p.Amount,
			Height: BarHeight(chartHeight, v.Axis.Top, p.Amount.Cents),
		}
	})
	return v
}
