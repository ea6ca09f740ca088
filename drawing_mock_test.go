package vector3d

import (
	"image"
	"image/color"
)

type drawCall struct {
	op     string
	points []image.Point
	color  color.RGBA
	width  int
}

// recordingCanvas is a Canvas that remembers every call.
type recordingCanvas struct {
	calls []drawCall
}

func (c *recordingCanvas) Clear(clr color.RGBA) {
	c.calls = append(c.calls, drawCall{op: "clear", color: clr})
}

func (c *recordingCanvas) FillPolygon(points []image.Point, clr color.RGBA) {
	c.calls = append(c.calls, drawCall{op: "fill", points: append([]image.Point(nil), points...), color: clr})
}

func (c *recordingCanvas) StrokePolygon(points []image.Point, clr color.RGBA, width int) {
	c.calls = append(c.calls, drawCall{op: "stroke", points: append([]image.Point(nil), points...), color: clr, width: width})
}

func (c *recordingCanvas) ops(op string) []drawCall {
	var out []drawCall
	for _, call := range c.calls {
		if call.op == op {
			out = append(out, call)
		}
	}
	return out
}
