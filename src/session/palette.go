package session

// defaultColors is the ten-color category palette, in cycle order.
var defaultColors = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Palette hands out colors round-robin. The zero value is not usable; build one
// with DefaultPalette or NewPalette.
type Palette struct {
	colors []string
	cursor int
}

// DefaultPalette returns a fresh palette positioned at its first color.
func DefaultPalette() *Palette { return NewPalette(defaultColors) }

// NewPalette copies colors; an empty list falls back to the default colors.
func NewPalette(colors []string) *Palette {
	if len(colors) == 0 {
		colors = defaultColors
	}
	return &Palette{colors: append([]string(nil), colors...)}
}

// Peek returns the color Next would return without advancing.
func (p *Palette) Peek() string { return p.colors[p.cursor] }

// Next returns the current color and advances the cursor, wrapping at the end.
func (p *Palette) Next() string {
	c := p.colors[p.cursor]
	p.cursor = (p.cursor + 1) % len(p.colors)
	return c
}

// Reset moves the cursor back to the first color.
func (p *Palette) Reset() { p.cursor = 0 }

// Len is the number of distinct colors before the cycle repeats.
func (p *Palette) Len() int { return len(p.colors) }
