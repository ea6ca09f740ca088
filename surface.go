package vector3d

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Surface is one polygon face of an Object. Nodes index into the owner's node
// list; their winding defines the normal through the first three entries.
type Surface struct {
	ID        int
	Nodes     []int
	Color     color.RGBA
	BackColor color.RGBA
	// EdgeWidth 0 fills the polygon, anything greater draws only the outline
	// with that stroke width.
	EdgeWidth int
	ShowBack  bool

	zPos          float64
	normal        mgl64.Vec3
	normalLen     float64
	angleToViewer float64
	angleToLight  float64
	lightVector   mgl64.Vec3
	shade         float64
	backShade     float64
	visible       bool
}

func NewSurface(id int, nodes []int, col color.RGBA) *Surface {
	return &Surface{
		ID:        id,
		Nodes:     nodes,
		Color:     col,
		BackColor: col,
		shade:     1.0,
		backShade: 1.0,
		visible:   true,
	}
}

// Copy returns an independent copy of the surface, derived state included.
func (s *Surface) Copy() *Surface {
	c := *s
	c.Nodes = make([]int, len(s.Nodes))
	copy(c.Nodes, s.Nodes)
	return &c
}

func (s *Surface) ZPos() float64       { return s.zPos }
func (s *Surface) Shade() float64      { return s.shade }
func (s *Surface) BackShade() float64  { return s.backShade }
func (s *Surface) Visible() bool       { return s.visible }
func (s *Surface) FrontFacing() bool   { return s.angleToViewer > 0 }
func (s *Surface) SetVisible(vis bool) { s.visible = vis }

// surfaceNormal is (n0 - n1) × (n2 - n1).
func surfaceNormal(nodes *Matrix, idx []int) mgl64.Vec3 {
	if len(idx) < 3 {
		return mgl64.Vec3{}
	}
	n1 := nodes.Node(idx[1])
	a := nodes.Node(idx[2]).Sub(n1)
	b := nodes.Node(idx[0]).Sub(n1)
	return b.Cross(a)
}

func (s *Surface) updateZPos(nodes *Matrix) {
	if len(s.Nodes) == 0 {
		s.zPos = 0
		return
	}
	var sum float64
	for _, n := range s.Nodes {
		sum += nodes.Rows[n][2]
	}
	s.zPos = sum / float64(len(s.Nodes))
}

func (s *Surface) updateNormal(nodes *Matrix) {
	s.normal = surfaceNormal(nodes, s.Nodes)
}

// initNormalLen stores the normal length. Rotation keeps it constant, so it
// is computed once from the model-space nodes.
func (s *Surface) initNormalLen(nodes *Matrix) {
	s.normalLen = surfaceNormal(nodes, s.Nodes).Len()
}

// setAngleToViewer uses the sign of normal·viewer only, so the dot product
// stands in for the angle.
func (s *Surface) setAngleToViewer(viewer mgl64.Vec3) {
	if s.normalLen > 0 && viewer != (mgl64.Vec3{}) {
		s.angleToViewer = s.normal.Dot(viewer)
	} else {
		s.angleToViewer = 0
	}
	s.visible = s.angleToViewer > 0 || s.ShowBack
}

func (s *Surface) setAngleToLight(lightVector mgl64.Vec3) {
	s.lightVector = lightVector
	if s.normalLen > 0 && lightVector != (mgl64.Vec3{}) {
		s.angleToLight = s.normal.Dot(lightVector)
	} else {
		s.angleToLight = 0
	}
}

// lightRatio maps the light dot product onto [-1, 1] by the vector lengths.
func (s *Surface) lightRatio() float64 {
	l := s.normalLen * s.lightVector.Len()
	if l == 0 {
		return 0
	}
	return mgl64.Clamp(s.angleToLight/l, -1, 1)
}

func (s *Surface) updateShade(minShade float64) {
	if s.angleToLight <= 0 {
		s.shade = minShade
		return
	}
	s.shade = minShade + (1.0-minShade)*math.Asin(s.lightRatio())/(math.Pi/2)
}

func (s *Surface) updateBackShade(minShade float64) {
	if s.angleToLight >= 0 {
		s.backShade = minShade
		return
	}
	s.backShade = minShade + (1.0-minShade)*-math.Asin(s.lightRatio())/(math.Pi/2)
}

// DrawColor is the shaded colour for the side of the surface that faces the
// viewer.
func (s *Surface) DrawColor() color.RGBA {
	if s.ShowBack && !s.FrontFacing() {
		return shadeColor(s.BackColor, s.backShade)
	}
	return shadeColor(s.Color, s.shade)
}

func shadeColor(c color.RGBA, shade float64) color.RGBA {
	return color.RGBA{
		R: shadeChannel(c.R, shade),
		G: shadeChannel(c.G, shade),
		B: shadeChannel(c.B, shade),
		A: c.A,
	}
}

func shadeChannel(v uint8, shade float64) uint8 {
	return uint8(clamp(int(math.RoundToEven(float64(v)*shade)), 0, 255))
}
