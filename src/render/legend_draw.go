package render

import (
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	legendFontSize = 9.0
	legendPad      = 6
	legendSwatch   = 18
	legendGap      = 5
	legendInset    = 8
)

// legendRenderable draws lg inside the plot area at its chosen corner.
func legendRenderable(lg *Legend) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		if len(lg.Entries) == 0 {
			return
		}
		r.SetFont(defaults.GetFont())
		r.SetFontSize(legendFontSize)
		r.SetFontColor(drawing.ColorBlack)

		textW, rowH := 0, 0
		for _, e := range lg.Entries {
			tb := r.MeasureText(e.Label)
			if tb.Width() > textW {
				textW = tb.Width()
			}
			if tb.Height() > rowH {
				rowH = tb.Height()
			}
		}
		rowH += legendGap
		w := legendPad*2 + legendSwatch + legendGap + textW
		h := legendPad*2 + rowH*len(lg.Entries) - legendGap

		left, top := cb.Right-legendInset-w, cb.Top+legendInset
		switch lg.Placement {
		case UpperLeft:
			left = cb.Left + legendInset
		case LowerLeft:
			left, top = cb.Left+legendInset, cb.Bottom-legendInset-h
		case LowerRight:
			top = cb.Bottom - legendInset - h
		}

		r.SetFillColor(drawing.Color{R: 255, G: 255, B: 255, A: 220})
		r.SetStrokeColor(drawing.Color{R: 180, G: 180, B: 180, A: 255})
		r.SetStrokeWidth(1)
		r.MoveTo(left, top)
		r.LineTo(left+w, top)
		r.LineTo(left+w, top+h)
		r.LineTo(left, top+h)
		r.LineTo(left, top)
		r.Close()
		r.FillStroke()

		for i, e := range lg.Entries {
			base := top + legendPad + i*rowH + rowH - legendGap
			mid := base - (rowH-legendGap)/2
			r.SetStrokeColor(goColor(e.Color))
			r.SetStrokeWidth(2)
			r.MoveTo(left+legendPad, mid)
			r.LineTo(left+legendPad+legendSwatch, mid)
			r.Stroke()

			r.SetFontColor(drawing.ColorBlack)
			r.Text(e.Label, left+legendPad+legendSwatch+legendGap, base)
		}
	}
}
