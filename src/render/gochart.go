package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/GUIPlotter/src/dataset"
	"github.com/iafilius/GUIPlotter/src/logging"
)

// ErrNothingToDraw is returned by Write when no line has a drawable point.
var ErrNothingToDraw = errors.New("no drawable points in the selected series")

// Format is an output image format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat accepts "png" or "svg" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatSVG:
		return f, nil
	}
	return "", fmt.Errorf("unsupported image format %q (want png or svg)", s)
}

// FormatForPath picks the format from the file extension, falling back to def.
func FormatForPath(path string, def Format) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return def
}

// segment is a run of consecutive drawable points of one line.
type segment struct {
	xs, ys []float64
}

// bounds is an axis' explicit limits in sorted order.
type bounds struct {
	lo, hi       float64
	hasLo, hasHi bool
	descending   bool
}

func boundsOf(l Limits) bounds {
	var b bounds
	if l.Min != nil {
		b.lo, b.hasLo = *l.Min, true
	}
	if l.Max != nil {
		b.hi, b.hasHi = *l.Max, true
	}
	if b.hasLo && b.hasHi && b.lo > b.hi {
		b.lo, b.hi, b.descending = b.hi, b.lo, true
	}
	return b
}

func (b bounds) admits(v float64, s Scale) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	if s == Log && v <= 0 {
		return false
	}
	return (!b.hasLo || v >= b.lo) && (!b.hasHi || v <= b.hi)
}

// segments splits a line wherever a point is not finite, is non-positive on a log
// axis, or lies outside an explicit limit.
func segments(l Line, xa, ya Axis) []segment {
	xb, yb := boundsOf(xa.Limits), boundsOf(ya.Limits)
	var out []segment
	var cur segment
	flush := func() {
		if len(cur.xs) > 0 {
			out = append(out, cur)
		}
		cur = segment{}
	}
	for i := range l.X {
		if i >= len(l.Y) {
			break
		}
		if !xb.admits(l.X[i], xa.Scale) || !yb.admits(l.Y[i], ya.Scale) {
			flush()
			continue
		}
		cur.xs = append(cur.xs, l.X[i])
		cur.ys = append(cur.ys, l.Y[i])
	}
	flush()
	return out
}

type extent struct {
	min, max float64
	ok       bool
}

func (e *extent) add(vs []float64) {
	for _, v := range vs {
		if !e.ok {
			e.min, e.max, e.ok = v, v, true
			continue
		}
		e.min, e.max = math.Min(e.min, v), math.Max(e.max, v)
	}
}

// axisRange resolves the go-chart range and ticks of one axis from its limits and
// the extent of the points drawn against it.
func axisRange(a Axis, e extent) (chart.Range, []chart.Tick) {
	b := boundsOf(a.Limits)
	if a.Scale == Log {
		lo, hi := 1.0, 10.0
		if e.ok {
			lo, hi = e.min, e.max
			if !b.hasLo && !b.hasHi {
				lo, hi = decadeBounds(lo, hi)
			}
		}
		if b.hasLo && b.lo > 0 {
			lo = b.lo
		}
		if b.hasHi && b.hi > 0 {
			hi = b.hi
		}
		if hi <= lo {
			lo, hi = decadeBounds(lo, lo)
		}
		return &logRange{min: lo, max: hi, descending: b.descending}, decadeTicks(lo, hi)
	}

	if !b.hasLo && !b.hasHi {
		lo, hi := 0.0, 1.0
		if e.ok {
			lo, hi = niceBounds(e.min, e.max)
		}
		ticks := niceTicks(lo, hi, desiredTicks)
		return &chart.ContinuousRange{Min: ticks[0].Value, Max: ticks[len(ticks)-1].Value}, ticks
	}
	lo, hi := e.min, e.max
	if !e.ok {
		lo, hi = 0, 1
	}
	if b.hasLo {
		lo = b.lo
	}
	if b.hasHi {
		hi = b.hi
	}
	if hi < lo {
		// a single bound beyond every point: keep it and open the other end
		if b.hasLo {
			hi = lo + 1
		} else {
			lo = hi - 1
		}
	}
	if hi == lo {
		lo, hi = lo-1, hi+1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi, Descending: b.descending}, nil
}

func goColor(hex string) drawing.Color {
	c, err := dataset.ParseColor(hex)
	if err != nil {
		return drawing.ColorBlack
	}
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// GoChart lays the chart out as a go-chart figure of the given size.
func (c *Chart) GoChart(width, height int) chart.Chart {
	var series []chart.Series
	var xe, le, re extent
	for _, l := range c.Lines {
		right := l.Axis == dataset.AxisRight && c.Right != nil
		ya, ye := c.Left, &le
		if right {
			ya, ye = *c.Right, &re
		}
		col := goColor(l.Color)
		for _, seg := range segments(l, c.X, ya) {
			xe.add(seg.xs)
			ye.add(seg.ys)
			s := chart.ContinuousSeries{
				Name:    l.Label,
				XValues: seg.xs,
				YValues: seg.ys,
				Style:   chart.Style{StrokeColor: col, StrokeWidth: 2},
			}
			if len(seg.xs) == 1 {
				s.Style.DotColor, s.Style.DotWidth = col, 3
			}
			if right {
				s.YAxis = chart.YAxisSecondary
			}
			series = append(series, s)
		}
	}

	xr, xt := axisRange(c.X, xe)
	yr, yt := axisRange(c.Left, le)
	ch := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 16, Bottom: 12}},
		XAxis:      chart.XAxis{Name: c.X.Label, Range: xr, Ticks: xt},
		YAxis:      chart.YAxis{Name: c.Left.Label, Range: yr, Ticks: yt},
		Series:     series,
	}
	if c.Right != nil {
		rr, rt := axisRange(*c.Right, re)
		ch.YAxisSecondary = chart.YAxis{Name: c.Right.Label, Range: rr, Ticks: rt}
	}
	if c.Legend != nil {
		ch.Elements = []chart.Renderable{legendRenderable(c.Legend)}
	}
	return ch
}

// Write renders the chart as PNG or SVG.
func (c *Chart) Write(w io.Writer, format Format, width, height int) error {
	ch := c.GoChart(width, height)
	if len(ch.Series) == 0 {
		return ErrNothingToDraw
	}
	provider := chart.PNG
	if format == FormatSVG {
		provider = chart.SVG
	} else if format != FormatPNG {
		return fmt.Errorf("unsupported image format %q", format)
	}
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// Image renders the chart to an in-memory image. When nothing can be drawn it
// returns a placeholder explaining why, so the caller always has something to show.
func (c *Chart) Image(width, height int) image.Image {
	var buf bytes.Buffer
	if err := c.Write(&buf, FormatPNG, width, height); err != nil {
		logging.Warnf("chart render failed: %v; showing placeholder", err)
		return Placeholder(width, height, "Nothing to draw: "+err.Error())
	}
	img, err := png.Decode(&buf)
	if err != nil {
		logging.Warnf("chart decode failed: %v; showing placeholder", err)
		return Placeholder(width, height, "Nothing to draw: "+err.Error())
	}
	return img
}

// logRange is a base-10 logarithmic chart.Range over a positive interval.
type logRange struct {
	min, max   float64
	domain     int
	descending bool
}

func (r *logRange) String() string {
	return fmt.Sprintf("LogRange [%g,%g] => %d", r.min, r.max, r.domain)
}

func (r *logRange) IsZero() bool         { return r.min == 0 && r.max == 0 }
func (r *logRange) GetMin() float64      { return r.min }
func (r *logRange) SetMin(min float64)   { r.min = min }
func (r *logRange) GetMax() float64      { return r.max }
func (r *logRange) SetMax(max float64)   { r.max = max }
func (r *logRange) GetDelta() float64    { return r.max - r.min }
func (r *logRange) GetDomain() int       { return r.domain }
func (r *logRange) SetDomain(domain int) { r.domain = domain }
func (r *logRange) IsDescending() bool   { return r.descending }

// Translate maps value to a pixel offset within the domain.
func (r *logRange) Translate(value float64) int {
	if r.min <= 0 || r.max <= r.min {
		return 0
	}
	if value <= 0 {
		value = r.min
	}
	lo, hi := math.Log10(r.min), math.Log10(r.max)
	frac := (math.Log10(value) - lo) / (hi - lo)
	if r.descending {
		frac = 1 - frac
	}
	return int(math.Round(frac * float64(r.domain)))
}
