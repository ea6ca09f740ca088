package vector3d

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// EbitenCanvas draws onto an ebiten image, normally the screen handed to
// Game.Draw.
type EbitenCanvas struct {
	Screen *ebiten.Image
	// AntiAlias is passed to every DrawTriangles call.
	AntiAlias bool
}

func NewEbitenCanvas(screen *ebiten.Image) *EbitenCanvas {
	return &EbitenCanvas{Screen: screen, AntiAlias: true}
}

func (c *EbitenCanvas) Clear(clr color.RGBA) {
	c.Screen.Fill(clr)
}

func (c *EbitenCanvas) FillPolygon(points []image.Point, clr color.RGBA) {
	if len(points) < 3 {
		return
	}

	indices := make([]uint16, 0, (len(points)-2)*3)
	for i := 2; i < len(points); i++ {
		indices = append(indices, 0, uint16(i-1), uint16(i))
	}

	cr, cg, cb, ca := vertexColor(clr)
	vertices := make([]ebiten.Vertex, len(points))
	for i, p := range points {
		vertices[i] = ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = c.AntiAlias
	c.Screen.DrawTriangles(vertices, indices, whiteSub, op)
}

// StrokePolygon strokes the closed outline through vector.Path.
func (c *EbitenCanvas) StrokePolygon(points []image.Point, clr color.RGBA, width int) {
	if len(points) < 2 {
		return
	}

	var path vector.Path
	path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	strokeOp := &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinMiter,
	}
	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, strokeOp)

	cr, cg, cb, ca := vertexColor(clr)
	for i := range vertices {
		vertices[i].ColorR = cr
		vertices[i].ColorG = cg
		vertices[i].ColorB = cb
		vertices[i].ColorA = ca
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
	}

	c.Screen.DrawTriangles(vertices, indices, whiteSub, &ebiten.DrawTrianglesOptions{
		AntiAlias: c.AntiAlias,
	})
}

func vertexColor(clr color.RGBA) (r, g, b, a float32) {
	return float32(clr.R) / 255.0, float32(clr.G) / 255.0, float32(clr.B) / 255.0, float32(clr.A) / 255.0
}
