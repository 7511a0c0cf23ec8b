package uihelpers

import (
	"strings"
	"testing"

	"github.com/iafilius/GUIPlotter/src/dataset"
)

func TestComputeChartDimensions(t *testing.T) {
	cases := []struct {
		w, h         int
		wantW, wantH int
	}{
		{100, 100, 480, 300},
		{1000, 0, 1000, 500},
		{1000, 700, 1000, 700},
		{2000, 5000, 2000, 1200},
		{640, -1, 640, 320},
	}
	for _, c := range cases {
		w, h := ComputeChartDimensions(c.w, c.h)
		if w != c.wantW || h != c.wantH {
			t.Fatalf("(%d,%d) => (%d,%d) want (%d,%d)", c.w, c.h, w, h, c.wantW, c.wantH)
		}
	}
}

func TestTruncatePath(t *testing.T) {
	if got := TruncatePath("/a/b.dat", 40); got != "/a/b.dat" {
		t.Fatalf("short path changed: %q", got)
	}
	long := "/very/long/directory/name/that/keeps/going/results.dat"
	got := TruncatePath(long, 30)
	if !strings.HasSuffix(got, "/...results.dat") || len(got) > 30 {
		t.Fatalf("TruncatePath = %q", got)
	}
	if got := TruncatePath(long, 8); got != "...results.dat" {
		t.Fatalf("tiny budget = %q", got)
	}
}

func TestDisplays(t *testing.T) {
	tbl, err := dataset.NewTable("/data/run1.dat", []string{"t", "v"}, [][]string{{"1", "2"}, {"3", "4"}})
	if err != nil {
		t.Fatal(err)
	}
	if got := DatasetDisplay(tbl); !strings.HasPrefix(got, "run1  (2 rows, 2 cols)") {
		t.Fatalf("DatasetDisplay = %q", got)
	}
	sel := dataset.SeriesSelection{Column: "v", Label: "run1: v"}
	if got := SeriesDisplay(sel, "run1"); got != "run1: v  [run1/v]" {
		t.Fatalf("SeriesDisplay = %q", got)
	}
	if got := SeriesDisplay(sel, ""); got != "run1: v  [v]" {
		t.Fatalf("SeriesDisplay without table = %q", got)
	}
}

func TestStatusAndWarnings(t *testing.T) {
	if !strings.HasPrefix(StatusText(0, 0, 0), "No datasets") {
		t.Fatalf("empty status wrong")
	}
	if got := StatusText(2, 3, 1); got != "2 datasets loaded · 3 left / 1 right series" {
		t.Fatalf("StatusText = %q", got)
	}
	if WarningsText(nil) != "" {
		t.Fatalf("no warnings should give empty text")
	}
	got := WarningsText([]string{"a", "b"})
	if !strings.HasPrefix(got, "2 series could not be plotted") || !strings.HasSuffix(got, "• b") {
		t.Fatalf("WarningsText = %q", got)
	}
}

func TestPickXColumn(t *testing.T) {
	cols := []string{"time", "temp"}
	if PickXColumn(cols, "temp") != "temp" || PickXColumn(cols, "gone") != "time" || PickXColumn(nil, "x") != "" || PickXColumn(cols, "") != "time" {
		t.Fatalf("PickXColumn rules violated")
	}
}
