// Package uihelpers holds the pure layout and text helpers of the viewer so they can
// be tested without a window.
package uihelpers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iafilius/GUIPlotter/src/dataset"
)

const (
	MinChartWidth  = 480
	MinChartHeight = 300
	MaxChartHeight = 1200
)

// ComputeChartDimensions clamps the canvas area available to the chart. A
// non-positive height is derived from the width at a 2:1 ratio.
func ComputeChartDimensions(rawW, rawH int) (int, int) {
	w := rawW
	if w < MinChartWidth {
		w = MinChartWidth
	}
	h := rawH
	if h <= 0 {
		h = w / 2
	}
	if h < MinChartHeight {
		h = MinChartHeight
	}
	if h > MaxChartHeight {
		h = MaxChartHeight
	}
	return w, h
}

// TruncatePath shortens p to about n characters, keeping the file name whole.
func TruncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	left := n - len(base) - 4
	if left <= 0 {
		return "..." + base
	}
	dir := filepath.Dir(p)
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}

// DatasetDisplay is the dataset list entry: name, shape and a shortened path.
func DatasetDisplay(t *dataset.Table) string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf("%s  (%d rows, %d cols)  %s", t.Name(), t.Rows(), len(t.Columns()), TruncatePath(t.Path(), 48))
}

// SeriesDisplay is the per-axis list entry of a selection.
func SeriesDisplay(sel dataset.SeriesSelection, tableName string) string {
	if tableName == "" {
		return fmt.Sprintf("%s  [%s]", sel.Label, sel.Column)
	}
	return fmt.Sprintf("%s  [%s/%s]", sel.Label, tableName, sel.Column)
}

// StatusText summarizes the session for the status bar.
func StatusText(tables, left, right int) string {
	switch tables {
	case 0:
		return "No datasets loaded. Use Open… to add files."
	case 1:
		return fmt.Sprintf("1 dataset loaded · %d left / %d right series", left, right)
	}
	return fmt.Sprintf("%d datasets loaded · %d left / %d right series", tables, left, right)
}

// WarningsText joins skipped-series messages for an information dialog.
func WarningsText(msgs []string) string {
	if len(msgs) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d series could not be plotted:\n\n", len(msgs))
	for _, m := range msgs {
		b.WriteString("• ")
		b.WriteString(m)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// PickXColumn keeps current when the table has it, else the first column.
func PickXColumn(columns []string, current string) string {
	for _, c := range columns {
		if c == current && current != "" {
			return current
		}
	}
	if len(columns) == 0 {
		return ""
	}
	return columns[0]
}
