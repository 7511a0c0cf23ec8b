package session

import (
	"errors"
	"reflect"
	"testing"

	"github.com/iafilius/GUIPlotter/src/dataset"
)

func mustTable(t *testing.T, path string, header ...string) *dataset.Table {
	t.Helper()
	row := make([]string, len(header))
	for i := range row {
		row[i] = "1"
	}
	tbl, err := dataset.NewTable(path, header, [][]string{row, row})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return tbl
}

func newSession(t *testing.T) *Session {
	t.Helper()
	s := New()
	s.AddTables(mustTable(t, "/data/alpha.dat", "t", "a", "b"), mustTable(t, "/data/beta.dat", "t", "c"))
	return s
}

func TestAddTablesReturnsStartIndex(t *testing.T) {
	s := New()
	if got := s.AddTables(mustTable(t, "/x/one.dat", "a")); got != 0 {
		t.Fatalf("first start = %d", got)
	}
	if got := s.AddTables(mustTable(t, "/x/two.dat", "a"), mustTable(t, "/x/three.dat", "a")); got != 1 {
		t.Fatalf("second start = %d", got)
	}
	if s.TableCount() != 3 || s.Table(2).Name() != "three" || s.Table(3) != nil || s.Table(-1) != nil {
		t.Fatalf("unexpected table list")
	}
}

func TestAddSeriesDefaultsLabelAndColor(t *testing.T) {
	s := newSession(t)
	sel, err := s.AddSeries(0, "a", dataset.AxisLeft, "  ")
	if err != nil {
		t.Fatalf("AddSeries: %v", err)
	}
	if sel.Label != "alpha: a" {
		t.Fatalf("label = %q", sel.Label)
	}
	if sel.Color != "#1f77b4" {
		t.Fatalf("color = %q", sel.Color)
	}
	custom, err := s.AddSeries(1, "c", dataset.AxisRight, "Throughput")
	if err != nil {
		t.Fatal(err)
	}
	if custom.Label != "Throughput" || custom.TableIndex != 1 || custom.Axis != dataset.AxisRight {
		t.Fatalf("unexpected selection %+v", custom)
	}
}

func TestAddSeriesValidation(t *testing.T) {
	s := newSession(t)
	if _, err := s.AddSeries(0, "a", dataset.AxisLeft, ""); err != nil {
		t.Fatal(err)
	}
	before := s.Selections()
	next := s.palette.Peek()

	cases := []struct {
		name   string
		table  int
		column string
		axis   dataset.Axis
	}{
		{"index too large", 2, "a", dataset.AxisLeft},
		{"negative index", -1, "a", dataset.AxisLeft},
		{"unknown column", 1, "a", dataset.AxisLeft},
		{"bad axis", 0, "a", dataset.Axis("top")},
	}
	for _, c := range cases {
		_, err := s.AddSeries(c.table, c.column, c.axis, "")
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s: expected ValidationError, got %v", c.name, err)
		}
	}
	if !reflect.DeepEqual(before, s.Selections()) {
		t.Fatalf("selection list changed after failed adds")
	}
	if s.palette.Peek() != next {
		t.Fatalf("palette advanced on failed add")
	}
}

func TestColorsAreDeterministicAcrossRuns(t *testing.T) {
	run := func() []string {
		s := newSession(t)
		var colors []string
		for _, col := range []string{"a", "b", "t"} {
			sel, err := s.AddSeries(0, col, dataset.AxisLeft, "")
			if err != nil {
				t.Fatal(err)
			}
			colors = append(colors, sel.Color)
		}
		return colors
	}
	first, second := run(), run()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("color order differs between runs: %v vs %v", first, second)
	}
	if first[0] == first[1] || first[1] == first[2] || first[0] == first[2] {
		t.Fatalf("expected 3 distinct colors, got %v", first)
	}
	want := []string{"#1f77b4", "#ff7f0e", "#2ca02c"}
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("colors = %v want %v", first, want)
	}
}

func TestPaletteWraps(t *testing.T) {
	p := NewPalette([]string{"#000000", "#ffffff"})
	got := []string{p.Next(), p.Next(), p.Next()}
	if !reflect.DeepEqual(got, []string{"#000000", "#ffffff", "#000000"}) {
		t.Fatalf("palette did not wrap: %v", got)
	}
	p.Reset()
	if p.Next() != "#000000" {
		t.Fatalf("Reset should restart the cycle")
	}
	if DefaultPalette().Len() != 10 {
		t.Fatalf("default palette should have 10 colors")
	}
}

func TestRemoveSeriesPreservesOrder(t *testing.T) {
	s := newSession(t)
	mustAdd := func(table int, col string, axis dataset.Axis, label string) {
		if _, err := s.AddSeries(table, col, axis, label); err != nil {
			t.Fatal(err)
		}
	}
	mustAdd(0, "a", dataset.AxisLeft, "L1")
	mustAdd(1, "c", dataset.AxisRight, "R1")
	mustAdd(0, "b", dataset.AxisLeft, "L2")
	mustAdd(0, "t", dataset.AxisLeft, "L3")

	if !s.RemoveSeries(2) {
		t.Fatalf("RemoveSeries(2) should succeed")
	}
	left := s.SelectionsForAxis(dataset.AxisLeft)
	if len(left) != 2 || left[0].Label != "L1" || left[1].Label != "L3" {
		t.Fatalf("left after remove = %+v", left)
	}
	right := s.SelectionsForAxis(dataset.AxisRight)
	if len(right) != 1 || right[0].Label != "R1" {
		t.Fatalf("right after remove = %+v", right)
	}
	if s.RemoveSeries(5) || s.RemoveSeries(-1) {
		t.Fatalf("invalid indices must be a no-op")
	}
	if len(s.Selections()) != 3 {
		t.Fatalf("expected 3 selections, got %d", len(s.Selections()))
	}
}

func TestMasterIndex(t *testing.T) {
	s := newSession(t)
	for _, axis := range []dataset.Axis{dataset.AxisLeft, dataset.AxisRight, dataset.AxisLeft, dataset.AxisRight} {
		if _, err := s.AddSeries(0, "a", axis, ""); err != nil {
			t.Fatal(err)
		}
	}
	cases := []struct {
		axis dataset.Axis
		row  int
		want int
		ok   bool
	}{
		{dataset.AxisLeft, 0, 0, true},
		{dataset.AxisLeft, 1, 2, true},
		{dataset.AxisRight, 0, 1, true},
		{dataset.AxisRight, 1, 3, true},
		{dataset.AxisRight, 2, 0, false},
		{dataset.AxisLeft, -1, 0, false},
	}
	for _, c := range cases {
		got, ok := s.MasterIndex(c.axis, c.row)
		if ok != c.ok || (ok && got != c.want) {
			t.Fatalf("MasterIndex(%s,%d) = %d,%v want %d,%v", c.axis, c.row, got, ok, c.want, c.ok)
		}
	}
}

func TestSetColorOnlyChangesColor(t *testing.T) {
	s := newSession(t)
	orig, err := s.AddSeries(1, "c", dataset.AxisRight, "Latency")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetColor(0, "#ABCDEF"); err != nil {
		t.Fatalf("SetColor: %v", err)
	}
	got := s.Selections()[0]
	want := orig
	want.Color = "#abcdef"
	if got != want {
		t.Fatalf("after SetColor got %+v want %+v", got, want)
	}
	var ve *ValidationError
	if err := s.SetColor(3, "#000000"); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for bad index, got %v", err)
	}
	if err := s.SetColor(0, "blue-ish"); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for bad color, got %v", err)
	}
	if s.Selections()[0].Color != "#abcdef" {
		t.Fatalf("failed SetColor must not change the selection")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := newSession(t)
	if _, err := s.AddSeries(0, "a", dataset.AxisLeft, ""); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()
	s.RemoveSeries(0)
	s.AddTables(mustTable(t, "/data/gamma.dat", "x"))
	if len(snap.Selections) != 1 || len(snap.Tables) != 2 {
		t.Fatalf("snapshot changed with the session: %d selections, %d tables", len(snap.Selections), len(snap.Tables))
	}
}
