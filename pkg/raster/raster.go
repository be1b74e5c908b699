// Package raster is a reference consumer for the path event stream: it
// rasterizes finished drawings into an alpha mask. A GPU tessellator
// would sit behind the same interface in a real renderer.
package raster

import (
	"image"

	"github.com/golang/freetype/raster"
	"golang.org/x/image/math/fixed"

	"github.com/novvoo/go-pathkit/pkg/graphics"
	"github.com/novvoo/go-pathkit/pkg/pdf"
	"github.com/novvoo/go-pathkit/pkg/shared"
)

// Canvas accumulates drawings into an alpha mask sized to a page.
type Canvas struct {
	width, height int
	mask          *image.Alpha
	rasterizer    *raster.Rasterizer
	texts         []pdf.Text
}

// New builds a canvas for a page of the given size in user units.
func New(width shared.PageWidth, height shared.PageHeight) *Canvas {
	w, h := int(width), int(height)
	r := raster.NewRasterizer(w, h)
	r.UseNonZeroWinding = true
	return &Canvas{
		width:      w,
		height:     h,
		mask:       image.NewAlpha(image.Rect(0, 0, w, h)),
		rasterizer: r,
	}
}

// Mask returns the accumulated coverage.
func (c *Canvas) Mask() *image.Alpha { return c.mask }

// Texts returns the recorded text placements.
func (c *Canvas) Texts() []pdf.Text { return c.texts }

// Draw rasterizes one finished drawing onto the mask.
func (c *Canvas) Draw(d graphics.PathDrawing) {
	path := c.buildPath(d.Events)
	if len(path) == 0 {
		return
	}

	c.rasterizer.Clear()
	if d.Kind == graphics.DrawFill {
		c.rasterizer.AddPath(path)
	} else {
		width := fixed.Int26_6(float32(d.Properties.LineWidth) * 64)
		if width <= 0 {
			width = 64
		}
		c.rasterizer.AddStroke(path, width, capper(d.Properties.LineCap), raster.RoundJoiner)
	}
	c.rasterizer.Rasterize(raster.NewAlphaOverPainter(c.mask))
}

// PlaceText records a text placement; glyphs are not rendered here.
func (c *Canvas) PlaceText(t pdf.Text) {
	c.texts = append(c.texts, t)
}

// buildPath converts an event sequence into a fixed-point raster path.
// Internal coordinates have their origin at the page's top centre, so
// both axes shift by half the page extent to land in device space.
func (c *Canvas) buildPath(events []graphics.PathEvent) raster.Path {
	var path raster.Path
	var first fixed.Point26_6
	for _, event := range events {
		switch v := event.(type) {
		case graphics.Begin:
			first = c.devicePoint(v.At)
			path.Start(first)
		case graphics.Line:
			path.Add1(c.devicePoint(v.To))
		case graphics.Quadratic:
			path.Add2(c.devicePoint(v.Ctrl), c.devicePoint(v.To))
		case graphics.Cubic:
			path.Add3(c.devicePoint(v.Ctrl1), c.devicePoint(v.Ctrl2), c.devicePoint(v.To))
		case graphics.End:
			if v.Close {
				path.Add1(c.devicePoint(v.First))
			}
		}
	}
	return path
}

func (c *Canvas) devicePoint(p graphics.Point) fixed.Point26_6 {
	x := p.X + float32(c.width)/2
	y := p.Y + float32(c.height)/2
	return fixed.Point26_6{
		X: fixed.Int26_6(x * 64),
		Y: fixed.Int26_6(y * 64),
	}
}

func capper(style shared.LineCap) raster.Capper {
	switch style {
	case shared.CapButt:
		return raster.ButtCapper
	case shared.CapRound:
		return raster.RoundCapper
	default:
		return raster.SquareCapper
	}
}
