// Package loader turns data files into dataset tables. Each supported file format
// has its own TableLoader; callers pick one explicitly (or the extension-dispatching
// Auto loader).
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iafilius/GUIPlotter/src/dataset"
	"github.com/iafilius/GUIPlotter/src/logging"
)

// TableLoader loads one table per path, in input order. The first failing path
// aborts the whole call.
type TableLoader interface {
	Name() string
	Load(paths []string) ([]*dataset.Table, error)
}

// parseFunc reads one resolved file into typed columns. A nil column slice means the
// file had no header at all.
type parseFunc func(path string) ([]dataset.Column, error)

type fileLoader struct {
	name  string
	parse parseFunc
}

func (l *fileLoader) Name() string { return l.name }

func (l *fileLoader) Load(paths []string) ([]*dataset.Table, error) {
	return loadAll(paths, func(string) parseFunc { return l.parse })
}

// NewWhitespace returns the loader for whitespace-delimited text with a header line
// and #-comments.
func NewWhitespace() TableLoader { return &fileLoader{name: "whitespace", parse: parseWhitespaceFile} }

// NewXLSX returns the loader for the first sheet of an Excel workbook.
func NewXLSX() TableLoader { return &fileLoader{name: "xlsx", parse: parseXLSX} }

// NewParquet returns the loader for Parquet files.
func NewParquet() TableLoader { return &fileLoader{name: "parquet", parse: parseParquet} }

type autoLoader struct{}

// NewAuto returns a loader that picks the format per path from its extension:
// .xlsx and .parquet get their own readers, everything else is read as whitespace text.
func NewAuto() TableLoader { return autoLoader{} }

func (autoLoader) Name() string { return "auto" }

func (autoLoader) Load(paths []string) ([]*dataset.Table, error) {
	return loadAll(paths, parserForPath)
}

func parserForPath(path string) parseFunc {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return parseXLSX
	case ".parquet", ".pq":
		return parseParquet
	default:
		return parseWhitespaceFile
	}
}

// Names lists the loader names accepted by ByName.
func Names() []string { return []string{"auto", "whitespace", "xlsx", "parquet"} }

// ByName returns the loader registered under name.
func ByName(name string) (TableLoader, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return NewAuto(), nil
	case "whitespace", "text", "txt":
		return NewWhitespace(), nil
	case "xlsx", "excel":
		return NewXLSX(), nil
	case "parquet":
		return NewParquet(), nil
	}
	return nil, fmt.Errorf("unknown loader %q (want one of %s)", name, strings.Join(Names(), ", "))
}

// FileFilter lists the extensions offered by file dialogs.
func FileFilter() []string {
	return []string{".txt", ".dat", ".csv", ".tsv", ".xlsx", ".parquet"}
}

func loadAll(paths []string, pick func(string) parseFunc) ([]*dataset.Table, error) {
	defer logging.TimeTrack(time.Now(), fmt.Sprintf("load of %d file(s)", len(paths)))
	tables := make([]*dataset.Table, 0, len(paths))
	for _, p := range paths {
		abs, err := resolve(p)
		if err != nil {
			return nil, err
		}
		cols, err := pick(abs)(abs)
		if err != nil {
			return nil, &LoadError{Kind: ParseFailure, Path: abs, Detail: err.Error(), Err: err}
		}
		if len(cols) == 0 {
			return nil, &LoadError{Kind: ParseFailure, Path: abs, Detail: "no columns to parse from file"}
		}
		if cols[0].Len() == 0 {
			return nil, &LoadError{Kind: Empty, Path: abs}
		}
		tbl, err := dataset.NewTableFromColumns(abs, cols)
		if err != nil {
			return nil, &LoadError{Kind: ParseFailure, Path: abs, Detail: err.Error(), Err: err}
		}
		logging.Infof("loaded %s: %d rows, %d columns", abs, tbl.Rows(), len(cols))
		tables = append(tables, tbl)
	}
	return tables, nil
}

// resolve expands a leading ~ and makes p absolute, checking that it exists.
func resolve(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", &LoadError{Kind: ParseFailure, Path: p, Detail: err.Error(), Err: err}
	}
	st, err := os.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return "", &LoadError{Kind: NotFound, Path: abs, Err: err}
	}
	if err != nil {
		return "", &LoadError{Kind: ParseFailure, Path: abs, Detail: err.Error(), Err: err}
	}
	if st.IsDir() {
		return "", &LoadError{Kind: ParseFailure, Path: abs, Detail: "is a directory"}
	}
	return abs, nil
}
