// Package raster draws a layout as a bitmap so boards can be previewed
// without a browser.
package raster

import (
	"image"
	"image/png"
	"io"

	"github.com/fogleman/gg"

	"github.com/manufosela/game-board/internal/colors"
	"github.com/manufosela/game-board/internal/domain"
)

// Preview size used when the caller asks for a non-positive one.
const (
	DefaultWidth  = 480
	DefaultHeight = 480
	maxSide       = 4096
	// grid lines closer than this are not drawn
	minLineGap = 2.0
)

type Rasterizer struct{}

func New() *Rasterizer { return &Rasterizer{} }

// Preview paints accepted placements in declaration order over a grid of
// evenly sized cells. Later placements paint over earlier ones.
func (r *Rasterizer) Preview(l domain.Layout, width, height int) image.Image {
	width, height = clampSide(width, DefaultWidth), clampSide(height, DefaultHeight)
	cfg := l.Config
	cfg.Normalize()

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	cw := float64(width) / float64(cfg.Columns)
	ch := float64(height) / float64(cfg.Rows)

	for _, res := range l.Accepted() {
		p := res.Placement
		dc.SetColor(colors.OrFallback(p.Color))
		dc.DrawRectangle(
			float64(p.ColStart-1)*cw,
			float64(p.RowStart-1)*ch,
			float64(p.ColEnd-p.ColStart)*cw,
			float64(p.RowEnd-p.RowStart)*ch,
		)
		dc.Fill()
	}

	// grid lines on top so spans stay readable
	dc.SetRGBA(0, 0, 0, 0.15)
	dc.SetLineWidth(1)
	if cw >= minLineGap {
		for c := 0; c <= cfg.Columns; c++ {
			x := float64(c) * cw
			dc.DrawLine(x, 0, x, float64(height))
		}
	}
	if ch >= minLineGap {
		for row := 0; row <= cfg.Rows; row++ {
			y := float64(row) * ch
			dc.DrawLine(0, y, float64(width), y)
		}
	}
	dc.Stroke()

	return dc.Image()
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func clampSide(v, def int) int {
	if v <= 0 {
		return def
	}
	if v > maxSide {
		return maxSide
	}
	return v
}
