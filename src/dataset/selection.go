package dataset

import (
	"fmt"
	"strings"
)

// Axis identifies the Y axis a series is drawn against.
type Axis string

const (
	AxisLeft  Axis = "left"
	AxisRight Axis = "right"
)

// Valid reports whether a is one of the two axes.
func (a Axis) Valid() bool { return a == AxisLeft || a == AxisRight }

// ParseAxis accepts "left" or "right" in any case.
func ParseAxis(s string) (Axis, error) {
	a := Axis(strings.ToLower(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", fmt.Errorf("invalid axis %q (want left or right)", s)
	}
	return a, nil
}

// SeriesSelection is one plotted column: which table (by session index), which
// column, which axis, and how it is labeled and colored.
type SeriesSelection struct {
	TableIndex int
	Column     string
	Axis       Axis
	Label      string
	Color      string
}

// DefaultLabel is the label used when none is given: "<table name>: <column>".
func DefaultLabel(t *Table, column string) string {
	return fmt.Sprintf("%s: %s", t.Name(), column)
}
