// Package render turns a table list, an ordered selection list and a plot
// configuration into a Chart: a backend-neutral description of one figure with a
// primary and an optional secondary Y axis. gochart.go draws a Chart with go-chart.
package render

import (
	"fmt"

	"github.com/iafilius/GUIPlotter/src/dataset"
)

// Scale is the transform applied along an axis.
type Scale int

const (
	Linear Scale = iota
	Log
)

func (s Scale) String() string {
	if s == Log {
		return "log"
	}
	return "linear"
}

func scaleOf(log bool) Scale {
	if log {
		return Log
	}
	return Linear
}

// Limits holds optional explicit bounds. A nil end is chosen from the data.
type Limits struct {
	Min *float64
	Max *float64
}

// IsZero reports whether neither bound is set.
func (l Limits) IsZero() bool { return l.Min == nil && l.Max == nil }

type Axis struct {
	Label  string
	Scale  Scale
	Limits Limits
}

// Line is one drawn series, already multiplied by its axis scales.
type Line struct {
	Label string
	Color string
	Axis  dataset.Axis
	X     []float64
	Y     []float64
}

// Placement is the corner of the plot area holding the legend.
type Placement int

const (
	UpperRight Placement = iota
	UpperLeft
	LowerLeft
	LowerRight
)

func (p Placement) String() string {
	switch p {
	case UpperRight:
		return "upper right"
	case UpperLeft:
		return "upper left"
	case LowerLeft:
		return "lower left"
	case LowerRight:
		return "lower right"
	}
	return fmt.Sprintf("placement(%d)", int(p))
}

type LegendEntry struct {
	Label string
	Color string
}

// Legend lists every line of both axes, in draw order.
type Legend struct {
	Placement Placement
	Entries   []LegendEntry
}

// Chart is the result of one render. Right is nil unless at least one series was
// drawn against the secondary axis; Legend is nil when disabled or empty.
type Chart struct {
	X      Axis
	Left   Axis
	Right  *Axis
	Lines  []Line
	Legend *Legend
}

// LinesFor returns the lines drawn against axis, in order.
func (c *Chart) LinesFor(axis dataset.Axis) []Line {
	var out []Line
	for _, l := range c.Lines {
		if l.Axis == axis {
			out = append(out, l)
		}
	}
	return out
}

// Warning reports a selection that was skipped. Rendering continues without it.
type Warning struct {
	Index  int
	Label  string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("series %d (%s) skipped: %s", w.Index+1, w.Label, w.Reason)
}
