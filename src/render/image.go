package render

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Placeholder is a neutral canvas of the given size with text written along its
// bottom edge. An empty text yields a plain canvas.
func Placeholder(w, h int, text string) image.Image {
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}
	return drawHint(blank(w, h), text)
}

func blank(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 18, G: 18, B: 18, A: 255}), image.Point{}, draw.Src)
	return img
}

// drawHint writes text near the bottom-left corner on a dark band.
func drawHint(img *image.RGBA, text string) image.Image {
	text = strings.TrimSpace(text)
	if text == "" {
		return img
	}
	b := img.Bounds()
	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: img, Src: image.NewUniform(color.RGBA{R: 235, G: 235, B: 235, A: 255}), Face: face}
	const pad = 6
	x, y := b.Min.X+8, b.Max.Y-6
	tw := dr.MeasureString(text).Ceil()
	band := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2).Intersect(b)
	draw.Draw(img, band, image.NewUniform(color.RGBA{A: 200}), image.Point{}, draw.Over)

	shadow := *dr
	shadow.Src = image.NewUniform(color.RGBA{A: 180})
	shadow.Dot = fixed.P(x+1, y+1)
	shadow.DrawString(text)

	dr.Dot = fixed.P(x, y)
	dr.DrawString(text)
	return img
}
