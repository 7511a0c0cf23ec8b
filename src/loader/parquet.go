package loader

import (
	"context"
	"math"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/iafilius/GUIPlotter/src/dataset"
)

// parseParquet reads the whole file through an Arrow table. Integer and floating
// columns become numeric (nulls as NaN); everything else is kept as text.
func parseParquet(path string) ([]dataset.Column, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mem := memory.NewGoAllocator()
	pf, err := file.NewParquetReader(f, file.WithReadProps(parquet.NewReaderProperties(mem)))
	if err != nil {
		return nil, err
	}
	defer pf.Close()

	rdr, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, err
	}
	tbl, err := rdr.ReadTable(context.Background())
	if err != nil {
		return nil, err
	}
	defer tbl.Release()

	cols := make([]dataset.Column, 0, tbl.NumCols())
	for i := 0; i < int(tbl.NumCols()); i++ {
		field := tbl.Schema().Field(i)
		cols = append(cols, arrowColumn(field, tbl.Column(i).Data().Chunks()))
	}
	return cols, nil
}

func arrowColumn(field arrow.Field, chunks []arrow.Array) dataset.Column {
	if isNumericType(field.Type.ID()) {
		nums := []float64{}
		for _, arr := range chunks {
			for j := 0; j < arr.Len(); j++ {
				nums = append(nums, numericValue(arr, j))
			}
		}
		return dataset.Column{Name: field.Name, Numbers: nums}
	}
	text := []string{}
	for _, arr := range chunks {
		for j := 0; j < arr.Len(); j++ {
			if arr.IsNull(j) {
				text = append(text, "")
				continue
			}
			text = append(text, arr.ValueStr(j))
		}
	}
	return dataset.Column{Name: field.Name, Text: text}
}

func isNumericType(id arrow.Type) bool {
	switch id {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64,
		arrow.FLOAT32, arrow.FLOAT64:
		return true
	}
	return false
}

func numericValue(arr arrow.Array, j int) float64 {
	if arr.IsNull(j) {
		return math.NaN()
	}
	switch a := arr.(type) {
	case *array.Float64:
		return a.Value(j)
	case *array.Float32:
		return float64(a.Value(j))
	case *array.Int64:
		return float64(a.Value(j))
	case *array.Int32:
		return float64(a.Value(j))
	case *array.Int16:
		return float64(a.Value(j))
	case *array.Int8:
		return float64(a.Value(j))
	case *array.Uint64:
		return float64(a.Value(j))
	case *array.Uint32:
		return float64(a.Value(j))
	case *array.Uint16:
		return float64(a.Value(j))
	case *array.Uint8:
		return float64(a.Value(j))
	}
	return math.NaN()
}
