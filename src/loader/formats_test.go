package loader

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	p := filepath.Join(t.TempDir(), "book.xlsx")
	if err := f.SaveAs(p); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return p
}

func TestXLSXLoad(t *testing.T) {
	p := writeWorkbook(t, [][]interface{}{
		{"time", "", "site"},
		{0, 1.5, "ams"},
		{1, 2.5, "fra"},
		{2, nil, "lon"},
	})
	tables, err := NewXLSX().Load([]string{p})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tbl := tables[0]
	if got := strings.Join(tbl.Columns(), ","); got != "time,Column_2,site" {
		t.Fatalf("columns = %s", got)
	}
	if tbl.Rows() != 3 {
		t.Fatalf("rows = %d want 3", tbl.Rows())
	}
	v, err := tbl.Float64s("Column_2")
	if err != nil {
		t.Fatalf("Column_2 should be numeric: %v", err)
	}
	if v[1] != 2.5 || !math.IsNaN(v[2]) {
		t.Fatalf("Column_2 = %v", v)
	}
}

func TestXLSXHeaderOnlyIsEmpty(t *testing.T) {
	p := writeWorkbook(t, [][]interface{}{{"a", "b"}})
	if _, err := NewXLSX().Load([]string{p}); !IsEmpty(err) {
		t.Fatalf("expected Empty, got %v", err)
	}
}

func TestXLSXGarbageIsParseFailure(t *testing.T) {
	p := writeFile(t, "fake.xlsx", "not a zip archive")
	if _, err := NewXLSX().Load([]string{p}); !IsParseFailure(err) {
		t.Fatalf("expected ParseFailure, got %v", err)
	}
}

func writeParquet(t *testing.T, n int) string {
	t.Helper()
	mem := memory.NewGoAllocator()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "t", Type: arrow.PrimitiveTypes.Float64},
		{Name: "count", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
		{Name: "host", Type: arrow.BinaryTypes.String},
	}, nil)
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	for i := 0; i < n; i++ {
		b.Field(0).(*array.Float64Builder).Append(float64(i) / 2)
		if i == 1 {
			b.Field(1).(*array.Int64Builder).AppendNull()
		} else {
			b.Field(1).(*array.Int64Builder).Append(int64(i * 10))
		}
		b.Field(2).(*array.StringBuilder).Append("h" + string(rune('a'+i)))
	}
	rec := b.NewRecord()
	defer rec.Release()
	tbl := array.NewTableFromRecords(schema, []arrow.Record{rec})
	defer tbl.Release()

	var buf bytes.Buffer
	if err := pqarrow.WriteTable(tbl, &buf, 1024, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps()); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	p := filepath.Join(t.TempDir(), "metrics.parquet")
	if err := os.WriteFile(p, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestParquetLoad(t *testing.T) {
	p := writeParquet(t, 3)
	tables, err := NewParquet().Load([]string{p})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tbl := tables[0]
	if got := strings.Join(tbl.Columns(), ","); got != "t,count,host" {
		t.Fatalf("columns = %s", got)
	}
	if tbl.Rows() != 3 {
		t.Fatalf("rows = %d", tbl.Rows())
	}
	counts, err := tbl.Float64s("count")
	if err != nil {
		t.Fatalf("count should be numeric: %v", err)
	}
	if counts[0] != 0 || !math.IsNaN(counts[1]) || counts[2] != 20 {
		t.Fatalf("count = %v", counts)
	}
	hosts, _ := tbl.Strings("host")
	if hosts[2] != "hc" {
		t.Fatalf("host = %v", hosts)
	}
}

func TestParquetNoRowsIsEmpty(t *testing.T) {
	p := writeParquet(t, 0)
	if _, err := NewParquet().Load([]string{p}); !IsEmpty(err) {
		t.Fatalf("expected Empty, got %v", err)
	}
}

func TestAutoDispatchKeepsOrder(t *testing.T) {
	pq := writeParquet(t, 2)
	txt := writeFile(t, "plain.dat", "t v\n0 1\n")
	book := writeWorkbook(t, [][]interface{}{{"t", "w"}, {0, 3}})
	tables, err := NewAuto().Load([]string{pq, txt, book})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	names := []string{tables[0].Name(), tables[1].Name(), tables[2].Name()}
	if strings.Join(names, ",") != "metrics,plain,book" {
		t.Fatalf("unexpected order %v", names)
	}
}
