package viewer

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/iafilius/GUIPlotter/src/dataset"
	"github.com/iafilius/GUIPlotter/src/loader"
	"github.com/iafilius/GUIPlotter/src/session"
)

func newTestState(t *testing.T) *uiState {
	t.Helper()
	a := test.NewTempApp(t)
	w := a.NewWindow("test")
	s := &uiState{
		app:          a,
		window:       w,
		loader:       loader.NewAuto(),
		sess:         session.New(),
		currentTable: -1,
		defaultW:     640,
		defaultH:     400,
	}
	w.SetContent(buildUI(s))
	return s
}

func writeData(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadSelectAddPlot(t *testing.T) {
	s := newTestState(t)
	p := writeData(t, "run.dat", "time temp rate\n0 20 1\n1 21 10\n2 22 100\n")
	s.loadFiles([]string{p})
	if s.sess.TableCount() != 1 || s.currentTable != 0 {
		t.Fatalf("dataset not loaded/selected: count=%d current=%d", s.sess.TableCount(), s.currentTable)
	}
	if s.xSelect.Selected != "time" {
		t.Fatalf("x column should default to the first column, got %q", s.xSelect.Selected)
	}
	s.selectColumn("temp")
	if s.labelEntry.Text != "run: temp" {
		t.Fatalf("label prefill = %q", s.labelEntry.Text)
	}
	s.addSeries(dataset.AxisLeft)
	if s.labelEntry.Text != "" {
		t.Fatalf("label entry should be emptied after adding, got %q", s.labelEntry.Text)
	}
	s.selectColumn("rate")
	s.addSeries(dataset.AxisRight)
	if got := len(s.sess.Selections()); got != 2 {
		t.Fatalf("expected 2 selections, got %d", got)
	}

	s.plot()
	if s.lastChart == nil || len(s.lastChart.Lines) != 2 || s.lastChart.Right == nil {
		t.Fatalf("plot did not produce a two-axis chart: %+v", s.lastChart)
	}
	if s.chartImg.Image == nil {
		t.Fatalf("chart image not set")
	}

	s.clear()
	if s.lastChart != nil || s.sess.TableCount() != 1 {
		t.Fatalf("clear should drop the chart")
	}
	if got := len(s.sess.Selections()); got != 2 {
		t.Fatalf("clear must keep the selected series, got %d", got)
	}
	s.plot()
	if s.lastChart == nil || len(s.lastChart.Lines) != 2 {
		t.Fatalf("series kept through clear should plot again")
	}
}

func TestXColumnChoicesAreNumeric(t *testing.T) {
	s := newTestState(t)
	p := writeData(t, "hosts.dat", "host t v\na 1 2\nb 2 3\n")
	s.loadFiles([]string{p})
	if len(s.xSelect.Options) != 2 || s.xSelect.Options[0] != "t" || s.xSelect.Options[1] != "v" {
		t.Fatalf("x choices = %v", s.xSelect.Options)
	}
	if s.xSelect.Selected != "t" {
		t.Fatalf("x column = %q, want first numeric column", s.xSelect.Selected)
	}

	text := writeData(t, "names.dat", "name\nalpha\n")
	s.loadFiles([]string{text})
	if len(s.xSelect.Options) != 0 || s.xSelect.Selected != "" {
		t.Fatalf("table without numeric columns should offer no x column: %v %q", s.xSelect.Options, s.xSelect.Selected)
	}
}

func TestLoadFailureAddsNothing(t *testing.T) {
	s := newTestState(t)
	good := writeData(t, "good.dat", "a b\n1 2\n")
	s.loadFiles([]string{good, filepath.Join(t.TempDir(), "missing.dat")})
	if s.sess.TableCount() != 0 {
		t.Fatalf("failed load must not add tables")
	}
}

func TestSelectDatasetKeepsXColumn(t *testing.T) {
	s := newTestState(t)
	a := writeData(t, "a.dat", "t x y\n1 2 3\n")
	b := writeData(t, "b.dat", "x z\n1 2\n")
	c := writeData(t, "c.dat", "q r\n1 2\n")
	s.loadFiles([]string{a, b, c})
	s.selectDataset(0)
	s.xSelect.SetSelected("x")
	s.selectDataset(1)
	if s.xSelect.Selected != "x" {
		t.Fatalf("x column should be kept when present, got %q", s.xSelect.Selected)
	}
	s.selectDataset(2)
	if s.xSelect.Selected != "q" {
		t.Fatalf("x column should fall back to the first column, got %q", s.xSelect.Selected)
	}
}

func TestRemoveUsesAxisRowMapping(t *testing.T) {
	s := newTestState(t)
	p := writeData(t, "m.dat", "t a b c\n1 2 3 4\n2 3 4 5\n")
	s.loadFiles([]string{p})
	for _, add := range []struct {
		col  string
		axis dataset.Axis
	}{{"a", dataset.AxisLeft}, {"b", dataset.AxisRight}, {"c", dataset.AxisLeft}} {
		s.selectColumn(add.col)
		s.addSeries(add.axis)
	}
	s.axes[dataset.AxisLeft].selected = 1
	s.removeSeries(dataset.AxisLeft)
	sels := s.sess.Selections()
	if len(sels) != 2 || sels[0].Column != "a" || sels[1].Column != "b" {
		t.Fatalf("wrong series removed: %+v", sels)
	}
}

func TestRecentFiles(t *testing.T) {
	s := newTestState(t)
	addRecentFile(s, "/a")
	addRecentFile(s, "/b")
	addRecentFile(s, "/a")
	got := recentFiles(s)
	if len(got) != 2 || got[0] != "/a" || got[1] != "/b" {
		t.Fatalf("recent files = %v", got)
	}
	clearRecentFiles(s)
	if len(recentFiles(s)) != 0 {
		t.Fatalf("recent files not cleared")
	}
}
