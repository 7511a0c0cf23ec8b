package render

import (
	"math"

	"github.com/iafilius/GUIPlotter/src/dataset"
)

// Candidate corners, tried in this order. Ties keep the earlier one.
var placements = []Placement{UpperRight, UpperLeft, LowerLeft, LowerRight}

// Approximate legend footprint as a fraction of the plot area. The backend sizes
// the real box from measured text, these only need to rank the corners.
const (
	legendMargin     = 0.02
	legendBaseWidth  = 0.08
	legendCharWidth  = 0.012
	legendMaxWidth   = 0.5
	legendBaseHeight = 0.04
	legendRowHeight  = 0.055
	legendMaxHeight  = 0.8
)

type box struct{ x0, y0, x1, y1 float64 }

func (b box) contains(x, y float64) bool {
	return x >= b.x0 && x <= b.x1 && y >= b.y0 && y <= b.y1
}

// legendBox returns the footprint of the legend at p in unit plot coordinates,
// with y growing upwards.
func legendBox(p Placement, w, h float64) box {
	var b box
	switch p {
	case UpperRight, LowerRight:
		b.x1 = 1 - legendMargin
		b.x0 = b.x1 - w
	default:
		b.x0 = legendMargin
		b.x1 = b.x0 + w
	}
	switch p {
	case UpperRight, UpperLeft:
		b.y1 = 1 - legendMargin
		b.y0 = b.y1 - h
	default:
		b.y0 = legendMargin
		b.y1 = b.y0 + h
	}
	return b
}

// bestPlacement picks the corner whose legend footprint covers the fewest points.
func bestPlacement(c *Chart) Placement {
	longest := 0
	for _, l := range c.Lines {
		if n := len([]rune(l.Label)); n > longest {
			longest = n
		}
	}
	w := math.Min(legendMaxWidth, legendBaseWidth+legendCharWidth*float64(longest))
	h := math.Min(legendMaxHeight, legendBaseHeight+legendRowHeight*float64(len(c.Lines)))

	var xs []float64
	for _, l := range c.Lines {
		xs = append(xs, l.X...)
	}
	nx := newNormalizer(c.X, xs)
	var pts [][2]float64
	for _, axis := range []dataset.Axis{dataset.AxisLeft, dataset.AxisRight} {
		lines := c.LinesFor(axis)
		if len(lines) == 0 {
			continue
		}
		ax := c.Left
		if axis == dataset.AxisRight {
			ax = *c.Right
		}
		var ys []float64
		for _, l := range lines {
			ys = append(ys, l.Y...)
		}
		ny := newNormalizer(ax, ys)
		for _, l := range lines {
			for i := range l.X {
				x, okx := nx.apply(l.X[i])
				y, oky := ny.apply(l.Y[i])
				if okx && oky {
					pts = append(pts, [2]float64{x, y})
				}
			}
		}
	}

	best, bestCount := placements[0], -1
	for _, p := range placements {
		b := legendBox(p, w, h)
		n := 0
		for _, pt := range pts {
			if b.contains(pt[0], pt[1]) {
				n++
			}
		}
		if bestCount < 0 || n < bestCount {
			best, bestCount = p, n
		}
	}
	return best
}

// normalizer maps data values onto [0,1] along one axis, honoring its scale and
// explicit limits.
type normalizer struct {
	log    bool
	lo, hi float64
}

func newNormalizer(a Axis, vs []float64) normalizer {
	n := normalizer{log: a.Scale == Log}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		t, ok := n.transform(v)
		if !ok {
			continue
		}
		lo, hi = math.Min(lo, t), math.Max(hi, t)
	}
	if a.Limits.Min != nil {
		if t, ok := n.transform(*a.Limits.Min); ok {
			lo = t
		}
	}
	if a.Limits.Max != nil {
		if t, ok := n.transform(*a.Limits.Max); ok {
			hi = t
		}
	}
	n.lo, n.hi = lo, hi
	return n
}

func (n normalizer) transform(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if n.log {
		if v <= 0 {
			return 0, false
		}
		return math.Log10(v), true
	}
	return v, true
}

func (n normalizer) apply(v float64) (float64, bool) {
	t, ok := n.transform(v)
	if !ok || math.IsInf(n.lo, 0) || math.IsInf(n.hi, 0) {
		return 0, false
	}
	if n.hi == n.lo {
		return 0.5, true
	}
	return (t - n.lo) / (n.hi - n.lo), true
}
