package chart

import (
	"math"
	"strconv"

	"dashboard/internal/core"
)

const (
	// baseStep is the smallest tick interval: $1,000 in cents.
	baseStep int64 = 100_000
	// maxIntervals caps the number of gaps between ticks before the step grows.
	maxIntervals = 10
)

// AxisScale is the derived y axis of the revenue chart. Values are cents.
type AxisScale struct {
	// Labels holds tick values from Top down to 0, evenly spaced by Step.
	Labels []int64
	Top    int64
	Step   int64
}

// DeriveAxis computes the y axis for series.
//
// Top is the maximum amount rounded up to a multiple of Step. Step starts at
// $1,000 and walks the 1-2-5 sequence ($2,000, $5,000, $10,000, ...) until at
// most ten intervals are needed. A zero or empty series yields Top 0 with a
// single 0 label. When the rounded top does not fit in an int64 it saturates
// at math.MaxInt64.
func DeriveAxis(series []core.RevenuePoint) AxisScale {
	max := core.MaxRevenue(series).Cents
	step := stepFor(max)

	top := int64(math.MaxInt64)
	if n := ceilDiv(max, step); n <= math.MaxInt64/step {
		top = n * step
	}

	labels := make([]int64, 0, top/step+2)
	for v := top; v > 0; v -= step {
		labels = append(labels, v)
	}
	labels = append(labels, 0)
	return AxisScale{Labels: labels, Top: top, Step: step}
}

func stepFor(max int64) int64 {
	step := baseStep
	mult := [...]int64{2, 5, 10}
	decade := baseStep
	for i := 0; ceilDiv(max, step) > maxIntervals; i++ {
		if i%3 == 0 && i > 0 {
			decade *= 10
		}
		if decade > math.MaxInt64/mult[i%3] {
			break
		}
		step = decade * mult[i%3]
	}
	return step
}

func ceilDiv(a, b int64) int64 {
	if a <= 0 {
		return 0
	}
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}

// BarHeight returns the pixel height of a bar for amount on an axis topping
// at top, i.e. (chartHeight/top)*amount. It is 0 when top is 0.
func BarHeight(chartHeight int, top, amount int64) float64 {
	if top <= 0 || amount <= 0 {
		return 0
	}
	// Multiply first so amount == top yields chartHeight exactly.
	return float64(chartHeight) * float64(amount) / float64(top)
}

// FormatTick renders a tick value in cents as "$2K", or "$2.5K" for values
// that are not whole thousands.
func FormatTick(cents int64) string {
	thousands := float64(cents) / float64(baseStep)
	return "$" + strconv.FormatFloat(thousands, 'f', -1, 64) + "K"
}
