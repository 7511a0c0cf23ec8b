// Package dataset holds the passive records of a plotting session: loaded tables and
// the series selections that point into them.
package dataset

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// Column is one named column of a Table. Exactly one of Numbers or Text is set.
type Column struct {
	Name    string
	Numbers []float64
	Text    []string
}

// Numeric reports whether the column holds numbers.
func (c Column) Numeric() bool { return c.Text == nil }

// Len returns the number of cells in the column.
func (c Column) Len() int {
	if c.Numeric() {
		return len(c.Numbers)
	}
	return len(c.Text)
}

// Cell returns the display string of row i.
func (c Column) Cell(i int) string {
	if c.Numeric() {
		return strconv.FormatFloat(c.Numbers[i], 'g', -1, 64)
	}
	return c.Text[i]
}

// Table is a loaded dataset. It always has at least one row and one column and is
// not modified after construction.
type Table struct {
	path    string
	names   []string
	columns map[string]Column
	rows    int
}

// NewTable builds a table from a header and row-major string cells. A column whose
// cells all parse as floats becomes numeric; anything else stays text.
func NewTable(path string, header []string, cells [][]string) (*Table, error) {
	for i, row := range cells {
		if len(row) != len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", i+1, len(row), len(header))
		}
	}
	cols := make([]Column, len(header))
	for j, name := range header {
		raw := make([]string, len(cells))
		for i, row := range cells {
			raw[i] = row[j]
		}
		cols[j] = ColumnFromStrings(name, raw)
	}
	return NewTableFromColumns(path, cols)
}

// NewTableFromColumns builds a table from typed columns.
func NewTableFromColumns(path string, cols []Column) (*Table, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %s has no columns", path)
	}
	t := &Table{path: path, columns: make(map[string]Column, len(cols))}
	for i, c := range cols {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("column %d has an empty name", i+1)
		}
		if _, dup := t.columns[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", c.Name)
		}
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", c.Name, c.Len(), t.rows)
		}
		t.names = append(t.names, c.Name)
		t.columns[c.Name] = c
	}
	if t.rows == 0 {
		return nil, fmt.Errorf("table %s has no rows", path)
	}
	return t, nil
}

// ColumnFromStrings types a raw column: numeric when every non-empty cell parses as
// a float. Empty cells of a numeric column become NaN.
func ColumnFromStrings(name string, raw []string) Column {
	nums := make([]float64, len(raw))
	for i, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			nums[i] = math.NaN()
			continue
		}
		v, err := parseCell(s)
		if err != nil {
			text := make([]string, len(raw))
			copy(text, raw)
			return Column{Name: name, Text: text}
		}
		nums[i] = v
	}
	return Column{Name: name, Numbers: nums}
}

// parseCell accepts decimal floats, inf and nan. Go-only spellings such as hex
// floats and digit separators stay text.
func parseCell(s string) (float64, error) {
	if strings.ContainsRune(s, '_') {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	body := strings.ToLower(strings.TrimLeft(s, "+-"))
	if strings.HasPrefix(body, "0x") {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return strconv.ParseFloat(s, 64)
}

// Path is the absolute source path.
func (t *Table) Path() string { return t.path }

// Name is the file stem of the source path.
func (t *Table) Name() string {
	base := filepath.Base(t.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Columns returns the column names in file order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Rows returns the number of data rows.
func (t *Table) Rows() int { return t.rows }

// Column returns a copy of the named column.
func (t *Table) Column(name string) (Column, bool) {
	c, ok := t.columns[name]
	if !ok {
		return Column{}, false
	}
	out := Column{Name: c.Name}
	if c.Numeric() {
		out.Numbers = append([]float64(nil), c.Numbers...)
	} else {
		out.Text = append([]string(nil), c.Text...)
	}
	return out, true
}

// Float64s returns a copy of a numeric column.
func (t *Table) Float64s(name string) ([]float64, error) {
	c, ok := t.columns[name]
	if !ok {
		return nil, fmt.Errorf("column %q not found in dataset %q", name, t.Name())
	}
	if !c.Numeric() {
		return nil, fmt.Errorf("column %q in dataset %q is not numeric", name, t.Name())
	}
	return append([]float64(nil), c.Numbers...), nil
}

// Strings returns the column rendered as strings.
func (t *Table) Strings(name string) ([]string, bool) {
	c, ok := t.columns[name]
	if !ok {
		return nil, false
	}
	out := make([]string, c.Len())
	for i := range out {
		out[i] = c.Cell(i)
	}
	return out, true
}

// NumericColumns lists the numeric column names in file order.
func (t *Table) NumericColumns() []string {
	var out []string
	for _, n := range t.names {
		if t.columns[n].Numeric() {
			out = append(out, n)
		}
	}
	return out
}

// Extent returns the finite min and max of a numeric column.
func Extent(vs []float64) (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		ok = true
	}
	return min, max, ok
}
