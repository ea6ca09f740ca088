package vector3d

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// ImageCanvas rasterizes onto an in-memory RGBA image. It needs no window and
// is used for snapshots and tests.
type ImageCanvas struct {
	Img *image.RGBA
	z   *vector.Rasterizer
}

func NewImageCanvas(width, height int) *ImageCanvas {
	return &ImageCanvas{
		Img: image.NewRGBA(image.Rect(0, 0, width, height)),
		z:   vector.NewRasterizer(width, height),
	}
}

func (c *ImageCanvas) Image() *image.RGBA { return c.Img }

func (c *ImageCanvas) Clear(clr color.RGBA) {
	draw.Draw(c.Img, c.Img.Bounds(), image.NewUniform(clr), image.Point{}, draw.Src)
}

func (c *ImageCanvas) FillPolygon(points []image.Point, clr color.RGBA) {
	if len(points) < 3 {
		return
	}
	b := c.Img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
	c.z.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		c.z.LineTo(float32(p.X), float32(p.Y))
	}
	c.z.ClosePath()
	c.z.Draw(c.Img, b, image.NewUniform(clr), image.Point{})
}

// StrokePolygon draws every edge as a quad of the given width centred on the
// edge.
func (c *ImageCanvas) StrokePolygon(points []image.Point, clr color.RGBA, width int) {
	if len(points) < 2 || width <= 0 {
		return
	}
	b := c.Img.Bounds()
	src := image.NewUniform(clr)
	half := float64(width) / 2
	prev := points[len(points)-1]
	for _, p := range points {
		dx, dy := float64(p.X-prev.X), float64(p.Y-prev.Y)
		l := math.Hypot(dx, dy)
		if l == 0 {
			prev = p
			continue
		}
		nx, ny := -dy/l*half, dx/l*half
		x0, y0 := float64(prev.X), float64(prev.Y)
		x1, y1 := float64(p.X), float64(p.Y)

		c.z.Reset(b.Dx(), b.Dy())
		c.z.MoveTo(float32(x0+nx), float32(y0+ny))
		c.z.LineTo(float32(x1+nx), float32(y1+ny))
		c.z.LineTo(float32(x1-nx), float32(y1-ny))
		c.z.LineTo(float32(x0-nx), float32(y0-ny))
		c.z.ClosePath()
		c.z.Draw(c.Img, b, src, image.Point{})
		prev = p
	}
}
