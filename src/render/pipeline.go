package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/iafilius/GUIPlotter/src/dataset"
	"github.com/iafilius/GUIPlotter/src/logging"
)

// Render builds a Chart from the selections in order. Selections that cannot be
// drawn are reported as warnings and skipped; a *RenderError means nothing could be
// rendered at all. Inputs are not modified.
func Render(tables []*dataset.Table, selections []dataset.SeriesSelection, cfg Config) (*Chart, []Warning, error) {
	defer logging.TimeTrack(time.Now(), "render")
	if len(selections) == 0 {
		return nil, nil, &RenderError{Kind: NoSeries}
	}
	xcol := strings.TrimSpace(cfg.XColumn)
	if xcol == "" {
		return nil, nil, &RenderError{Kind: NoXColumn}
	}
	s, err := cfg.parse()
	if err != nil {
		return nil, nil, err
	}

	c := &Chart{
		X:    Axis{Label: labelOr(cfg.XLabel, xcol), Scale: scaleOf(cfg.XLog), Limits: s.x},
		Left: Axis{Label: labelOr(cfg.LeftLabel, defaultLeftLabel), Scale: scaleOf(cfg.LeftLog), Limits: s.left},
	}
	var warnings []Warning
	skip := func(i int, sel dataset.SeriesSelection, format string, args ...interface{}) {
		w := Warning{Index: i, Label: sel.Label, Reason: fmt.Sprintf(format, args...)}
		logging.Warnf("%s", w.String())
		warnings = append(warnings, w)
	}

	for i, sel := range selections {
		if sel.TableIndex < 0 || sel.TableIndex >= len(tables) || tables[sel.TableIndex] == nil {
			skip(i, sel, "dataset index %d out of range", sel.TableIndex)
			continue
		}
		tbl := tables[sel.TableIndex]
		if !tbl.HasColumn(sel.Column) {
			skip(i, sel, "column %q not found in dataset %q", sel.Column, tbl.Name())
			continue
		}
		if !tbl.HasColumn(xcol) {
			skip(i, sel, "x column %q not found in dataset %q", xcol, tbl.Name())
			continue
		}
		xs, err := tbl.Float64s(xcol)
		if err != nil {
			skip(i, sel, "%v", err)
			continue
		}
		ys, err := tbl.Float64s(sel.Column)
		if err != nil {
			skip(i, sel, "%v", err)
			continue
		}

		yScale := s.leftScale
		if sel.Axis == dataset.AxisRight {
			yScale = s.rightScale
			if c.Right == nil {
				c.Right = &Axis{Label: labelOr(cfg.RightLabel, defaultRightLabel), Scale: scaleOf(cfg.RightLog), Limits: s.right}
			}
		} else if sel.Axis != dataset.AxisLeft {
			skip(i, sel, "invalid axis %q", string(sel.Axis))
			continue
		}
		c.Lines = append(c.Lines, Line{
			Label: sel.Label,
			Color: sel.Color,
			Axis:  sel.Axis,
			X:     scaled(xs, s.xScale),
			Y:     scaled(ys, yScale),
		})
	}

	if cfg.ShowLegend && len(c.Lines) > 0 {
		c.Legend = &Legend{Placement: bestPlacement(c), Entries: make([]LegendEntry, len(c.Lines))}
		for i, l := range c.Lines {
			c.Legend.Entries[i] = LegendEntry{Label: l.Label, Color: l.Color}
		}
	}
	logging.Debugf("rendered %d of %d series (%d warnings)", len(c.Lines), len(selections), len(warnings))
	return c, warnings, nil
}

// scaled returns a fresh slice; the table's own data is never aliased.
func scaled(vs []float64, k float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v * k
	}
	return out
}
