package chart

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

const (
	svgGutter   = 56
	svgPadTop   = 16
	svgPadBot   = 28
	svgBarWidth = 28
	svgBarGap   = 12
)

// RenderSVG writes v as a standalone SVG document with one rect per bar.
func RenderSVG(w io.Writer, v View) error {
	canvas := svg.New(w)

	if v.Empty {
		canvas.Start(320, 80)
		canvas.Title(v.Title)
		canvas.Text(160, 44, v.Notice, "text-anchor:middle;font-size:14px;fill:#6b7280")
		canvas.End()
		return nil
	}

	plotW := len(v.Bars) * (svgBarWidth + svgBarGap)
	width := svgGutter + plotW + svgBarGap
	height := svgPadTop + v.ChartHeight + svgPadBot
	baseline := svgPadTop + v.ChartHeight

	canvas.Start(width, height)
	canvas.Title(fmt.Sprintf("%s (%s)", v.Title, v.Caption))

	for _, t := range v.Ticks {
		y := baseline - int(math.Round(BarHeight(v.ChartHeight, v.Axis.Top, t.Value)))
		canvas.Line(svgGutter, y, width, y, "stroke:#e5e7eb;stroke-width:1")
		canvas.Text(svgGutter-8, y+4, t.Label, "text-anchor:end;font-size:11px;fill:#6b7280")
	}

	for i, b := range v.Bars {
		x := svgGutter + svgBarGap + i*(svgBarWidth+svgBarGap)
		h := int(math.Round(b.Height))
		canvas.Rect(x, baseline-h, svgBarWidth, h, "fill:#93c5fd;rx:4")
		canvas.Text(x+svgBarWidth/2, baseline+18, b.Period, "text-anchor:middle;font-size:11px;fill:#6b7280")
	}

	canvas.End()
	return nil
}
