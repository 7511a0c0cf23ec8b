// Package session owns the mutable state of one plotting session: the loaded tables,
// the ordered series selections and the palette cursor. A Session is used from a
// single goroutine; hand a Snapshot to anything that runs elsewhere.
package session

import (
	"strings"

	"github.com/iafilius/GUIPlotter/src/dataset"
	"github.com/iafilius/GUIPlotter/src/logging"
)

type Session struct {
	tables     []*dataset.Table
	selections []dataset.SeriesSelection
	palette    *Palette
}

// New returns an empty session using the default palette.
func New() *Session { return NewWithPalette(DefaultPalette()) }

// NewWithPalette returns an empty session drawing colors from p.
func NewWithPalette(p *Palette) *Session {
	if p == nil {
		p = DefaultPalette()
	}
	return &Session{palette: p}
}

// AddTables appends tables and returns the index of the first one added.
func (s *Session) AddTables(tables ...*dataset.Table) int {
	start := len(s.tables)
	s.tables = append(s.tables, tables...)
	return start
}

func (s *Session) TableCount() int { return len(s.tables) }

// Table returns the table at index i, or nil when i is out of range.
func (s *Session) Table(i int) *dataset.Table {
	if i < 0 || i >= len(s.tables) {
		return nil
	}
	return s.tables[i]
}

// Tables returns a copy of the table list.
func (s *Session) Tables() []*dataset.Table {
	return append([]*dataset.Table(nil), s.tables...)
}

// AddSeries appends a selection of column from table tableIndex on axis. A blank
// label becomes "<table name>: <column>"; the color comes from the palette.
func (s *Session) AddSeries(tableIndex int, column string, axis dataset.Axis, label string) (dataset.SeriesSelection, error) {
	const op = "add series"
	tbl := s.Table(tableIndex)
	if tbl == nil {
		return dataset.SeriesSelection{}, invalid(op, "dataset index %d out of range (%d loaded)", tableIndex, len(s.tables))
	}
	if !tbl.HasColumn(column) {
		return dataset.SeriesSelection{}, invalid(op, "dataset %q does not contain column %q", tbl.Name(), column)
	}
	if !axis.Valid() {
		return dataset.SeriesSelection{}, invalid(op, "invalid axis %q (want left or right)", string(axis))
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = dataset.DefaultLabel(tbl, column)
	}
	sel := dataset.SeriesSelection{
		TableIndex: tableIndex,
		Column:     column,
		Axis:       axis,
		Label:      label,
		Color:      s.palette.Next(),
	}
	s.selections = append(s.selections, sel)
	logging.Debugf("added series %q (%s/%s) on %s axis color=%s", sel.Label, tbl.Name(), column, axis, sel.Color)
	return sel, nil
}

// RemoveSeries deletes the selection at master index i. It reports false and does
// nothing when i is out of range.
func (s *Session) RemoveSeries(i int) bool {
	if i < 0 || i >= len(s.selections) {
		return false
	}
	s.selections = append(s.selections[:i], s.selections[i+1:]...)
	return true
}

// SetColor replaces the color of the selection at master index i.
func (s *Session) SetColor(i int, color string) error {
	const op = "set color"
	if i < 0 || i >= len(s.selections) {
		return invalid(op, "series index %d out of range (%d selected)", i, len(s.selections))
	}
	c, err := dataset.ParseColor(color)
	if err != nil {
		return invalid(op, "%v", err)
	}
	s.selections[i].Color = dataset.FormatColor(c)
	return nil
}

// Selections returns a copy of the master selection list.
func (s *Session) Selections() []dataset.SeriesSelection {
	return append([]dataset.SeriesSelection(nil), s.selections...)
}

// SelectionsForAxis returns the selections drawn on axis, in insertion order.
func (s *Session) SelectionsForAxis(axis dataset.Axis) []dataset.SeriesSelection {
	var out []dataset.SeriesSelection
	for _, sel := range s.selections {
		if sel.Axis == axis {
			out = append(out, sel)
		}
	}
	return out
}

// MasterIndex maps row of the axis view returned by SelectionsForAxis back to the
// selection's index in the master list.
func (s *Session) MasterIndex(axis dataset.Axis, row int) (int, bool) {
	if row < 0 {
		return 0, false
	}
	n := 0
	for i, sel := range s.selections {
		if sel.Axis != axis {
			continue
		}
		if n == row {
			return i, true
		}
		n++
	}
	return 0, false
}

// Snapshot is a value copy of the session's tables and selections. Tables are
// immutable, so sharing their pointers is safe.
type Snapshot struct {
	Tables     []*dataset.Table
	Selections []dataset.SeriesSelection
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{Tables: s.Tables(), Selections: s.Selections()}
}
