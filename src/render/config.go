package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Config mirrors the plot form: every numeric field is kept as the text the user
// typed and only parsed when a chart is rendered.
type Config struct {
	XColumn string

	XLabel     string
	LeftLabel  string
	RightLabel string

	XScale     string
	LeftScale  string
	RightScale string

	XMin     string
	XMax     string
	LeftMin  string
	LeftMax  string
	RightMin string
	RightMax string

	XLog       bool
	LeftLog    bool
	RightLog   bool
	ShowLegend bool
}

const (
	defaultXLabel     = "X Axis"
	defaultLeftLabel  = "Left Axis"
	defaultRightLabel = "Right Axis"
)

// DefaultConfig is the state of a freshly opened form.
func DefaultConfig() Config {
	return Config{
		XLabel:     defaultXLabel,
		LeftLabel:  defaultLeftLabel,
		RightLabel: defaultRightLabel,
		XScale:     "1",
		LeftScale:  "1",
		RightScale: "1",
		ShowLegend: true,
	}
}

// ErrorKind classifies a RenderError.
type ErrorKind int

const (
	NoSeries ErrorKind = iota + 1
	NoXColumn
	InvalidNumber
)

func (k ErrorKind) String() string {
	switch k {
	case NoSeries:
		return "no series"
	case NoXColumn:
		return "no x column"
	case InvalidNumber:
		return "invalid number"
	default:
		return "unknown"
	}
}

// RenderError aborts a render before anything is drawn.
type RenderError struct {
	Kind  ErrorKind
	Field string
	Value string
}

func (e *RenderError) Error() string {
	switch e.Kind {
	case NoSeries:
		return "no series selected"
	case NoXColumn:
		return "no X column selected"
	case InvalidNumber:
		return fmt.Sprintf("invalid number for %s: %q", e.Field, e.Value)
	default:
		return "render failed"
	}
}

// settings is Config after parsing.
type settings struct {
	xScale, leftScale, rightScale float64
	x, left, right                Limits
}

func (c Config) parse() (settings, error) {
	var s settings
	var err error
	if s.xScale, err = parseScale("X axis scale", c.XScale); err != nil {
		return s, err
	}
	if s.leftScale, err = parseScale("Left axis scale", c.LeftScale); err != nil {
		return s, err
	}
	if s.rightScale, err = parseScale("Right axis scale", c.RightScale); err != nil {
		return s, err
	}
	bounds := []struct {
		field string
		text  string
		dst   **float64
	}{
		{"X axis minimum", c.XMin, &s.x.Min},
		{"X axis maximum", c.XMax, &s.x.Max},
		{"Left axis minimum", c.LeftMin, &s.left.Min},
		{"Left axis maximum", c.LeftMax, &s.left.Max},
		{"Right axis minimum", c.RightMin, &s.right.Min},
		{"Right axis maximum", c.RightMax, &s.right.Max},
	}
	for _, b := range bounds {
		if *b.dst, err = parseBound(b.field, b.text); err != nil {
			return s, err
		}
	}
	return s, nil
}

func parseScale(field, text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 1, nil
	}
	return parseNumber(field, text)
}

func parseBound(field, text string) (*float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	v, err := parseNumber(field, text)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseNumber(field, text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &RenderError{Kind: InvalidNumber, Field: field, Value: text}
	}
	return v, nil
}

func labelOr(text, fallback string) string {
	if t := strings.TrimSpace(text); t != "" {
		return t
	}
	return fallback
}
