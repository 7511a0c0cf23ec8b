package loader

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/iafilius/GUIPlotter/src/dataset"
)

// textLexer splits whitespace-delimited tables. A # starts a comment that runs to
// the end of the line; comments and horizontal whitespace are elided, so a line
// holding only a comment collapses into its line break.
var textLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\r\n]*`},
	{Name: "EOL", Pattern: `[\r\n]+`},
	{Name: "Whitespace", Pattern: `[ \t\f\v]+`},
	{Name: "Field", Pattern: `[^ \t\f\v\r\n#]+`},
})

type textDocument struct {
	Lines []*textLine `parser:"( @@ | EOL )*"`
}

type textLine struct {
	Pos    lexer.Position
	Fields []string `parser:"@Field+"`
}

var textParser = participle.MustBuild[textDocument](
	participle.Lexer(textLexer),
	participle.Elide("Comment", "Whitespace"),
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

func parseWhitespaceFile(path string) ([]dataset.Column, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseWhitespace(path, data)
}

// parseWhitespace returns nil columns when the input holds no header line.
func parseWhitespace(name string, data []byte) ([]dataset.Column, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("input is not valid UTF-8 (encoding mismatch)")
	}
	doc, err := textParser.ParseBytes(name, data)
	if err != nil {
		return nil, err
	}
	if len(doc.Lines) == 0 {
		return nil, nil
	}
	header := doc.Lines[0].Fields
	seen := make(map[string]int, len(header))
	for i, h := range header {
		if prev, dup := seen[h]; dup {
			return nil, fmt.Errorf("duplicate column name %q (columns %d and %d)", h, prev+1, i+1)
		}
		seen[h] = i
	}
	raw := make([][]string, len(header))
	for _, ln := range doc.Lines[1:] {
		if len(ln.Fields) != len(header) {
			return nil, fmt.Errorf("expected %d fields in line %d, saw %d", len(header), ln.Pos.Line, len(ln.Fields))
		}
		for j, f := range ln.Fields {
			raw[j] = append(raw[j], f)
		}
	}
	cols := make([]dataset.Column, len(header))
	for j, h := range header {
		cols[j] = dataset.ColumnFromStrings(h, raw[j])
	}
	return cols, nil
}
