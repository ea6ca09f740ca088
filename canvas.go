package vector3d

import (
	"image"
	"image/color"
)

// Canvas is the drawing surface the viewer renders onto. Points are whole
// screen pixels in drawing order; polygons are closed and convex.
type Canvas interface {
	Clear(clr color.RGBA)
	FillPolygon(points []image.Point, clr color.RGBA)
	StrokePolygon(points []image.Point, clr color.RGBA, width int)
}

// drawPolygon draws a filled polygon with an antialiased rim when edgeWidth
// is 0, or only its outline at edgeWidth otherwise.
func drawPolygon(c Canvas, clr color.RGBA, points []image.Point, edgeWidth int) {
	if len(points) < 3 {
		return
	}
	if edgeWidth == 0 {
		c.StrokePolygon(points, clr, 1)
		c.FillPolygon(points, clr)
		return
	}
	c.StrokePolygon(points, clr, edgeWidth)
}
