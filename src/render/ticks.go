package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
)

const desiredTicks = 6

// niceBounds widens [min,max] by 5% and rounds outwards to the span's order of
// magnitude. A degenerate span is opened to one unit.
func niceBounds(min, max float64) (float64, float64) {
	if max <= min {
		max = min + 1
		min = min - 1
	}
	span := max - min
	pad := span * 0.05
	a, b := min-pad, max+pad
	mag := math.Pow(10, math.Floor(math.Log10(span)))
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	return a, b
}

// niceTicks lays roughly n ticks on a 1, 2, 2.5, 5 step pattern. The first and last
// tick enclose [min,max].
func niceTicks(min, max float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	step := mag
	bestScore := math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		count := math.Max(2, math.Ceil(span/(c*mag)))
		if score := math.Abs(count - float64(n)); score < bestScore {
			bestScore, step = score, c*mag
		}
	}
	start := math.Floor(min/step) * step
	end := math.Ceil(max/step) * step
	var ticks []chart.Tick
	for i := 0; ; i++ {
		v := start + float64(i)*step
		if v > end+step/2 || i > 4*n {
			break
		}
		// snap float drift so labels read 0.3 and not 0.30000000000000004
		v = math.Round(v/step) * step
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
	}
	return ticks
}

func formatTick(v float64) string {
	av := math.Abs(v)
	switch {
	case v == 0:
		return "0"
	case av >= 1e7 || av < 1e-3:
		return strconv.FormatFloat(v, 'g', 3, 64)
	case av >= 100:
		return fmt.Sprintf("%.0f", v)
	case av >= 10:
		return trimZeros(fmt.Sprintf("%.1f", v))
	default:
		return trimZeros(fmt.Sprintf("%.3f", v))
	}
}

func trimZeros(s string) string {
	for len(s) > 1 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

// decadeBounds rounds a positive extent out to whole decades.
func decadeBounds(min, max float64) (float64, float64) {
	lo := math.Pow(10, math.Floor(math.Log10(min)))
	hi := math.Pow(10, math.Ceil(math.Log10(max)))
	if hi <= lo {
		hi = lo * 10
	}
	return lo, hi
}

// decadeTicks returns a tick at both ends of [min,max] and at every power of ten
// strictly inside it.
func decadeTicks(min, max float64) []chart.Tick {
	ticks := []chart.Tick{{Value: min, Label: formatTick(min)}}
	for e := math.Floor(math.Log10(min)) + 1; ; e++ {
		v := math.Pow(10, e)
		if v >= max*(1-1e-9) {
			break
		}
		if v > min*(1+1e-9) {
			ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
		}
	}
	return append(ticks, chart.Tick{Value: max, Label: formatTick(max)})
}
