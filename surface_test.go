package vector3d

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

// frontSquare is wound so that its normal points away from a viewer at the
// origin.
func frontSquare(z float64) *Matrix {
	return NewNodeMatrix([][3]float64{{-10, 10, z}, {10, 10, z}, {10, -10, z}, {-10, -10, z}})
}

func newTestSurface(nodes []int, showBack bool) *Surface {
	s := NewSurface(1, nodes, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	s.BackColor = color.RGBA{B: 200, A: 255}
	s.ShowBack = showBack
	return s
}

func TestSurfaceNormal(t *testing.T) {
	n := surfaceNormal(frontSquare(1000), []int{0, 1, 2, 3})
	assert.Equal(t, mgl64.Vec3{0, 0, 400}, n)
	assert.Equal(t, mgl64.Vec3{}, surfaceNormal(frontSquare(1000), []int{0, 1}))
}

func TestSurfaceFacing(t *testing.T) {
	nodes := frontSquare(1000)
	testCases := []struct {
		name        string
		order       []int
		showBack    bool
		wantVisible bool
		wantFront   bool
		wantColor   color.RGBA
	}{
		{"front facing", []int{0, 1, 2, 3}, false, true, true, color.RGBA{R: 200, G: 100, B: 50, A: 255}},
		{"back facing is culled", []int{3, 2, 1, 0}, false, false, false, color.RGBA{R: 200, G: 100, B: 50, A: 255}},
		{"back facing with show back", []int{3, 2, 1, 0}, true, true, false, color.RGBA{B: 200, A: 255}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSurface(tc.order, tc.showBack)
			s.initNormalLen(nodes)
			s.updateNormal(nodes)
			s.setAngleToViewer(nodes.Node(tc.order[1]))

			assert.Equal(t, tc.wantVisible, s.Visible())
			assert.Equal(t, tc.wantFront, s.FrontFacing())
			// shades are still 1, so colours come through unchanged
			assert.Equal(t, tc.wantColor, s.DrawColor())
		})
	}
}

func shadeFor(light mgl64.Vec3, minShade float64) float64 {
	nodes := frontSquare(1000)
	s := newTestSurface([]int{0, 1, 2, 3}, false)
	s.initNormalLen(nodes)
	s.updateNormal(nodes)
	s.setAngleToLight(light)
	s.updateShade(minShade)
	return s.Shade()
}

func TestSurfaceShade(t *testing.T) {
	const minShade = 0.2

	assert.InDelta(t, 1.0, shadeFor(mgl64.Vec3{0, 0, 1}, minShade), 1e-9)
	assert.InDelta(t, minShade+(1-minShade)*0.5, shadeFor(mgl64.Vec3{0, 1, 1}, minShade), 1e-9)
	assert.Equal(t, minShade, shadeFor(mgl64.Vec3{0, 0, -1}, minShade))
	assert.Equal(t, minShade, shadeFor(mgl64.Vec3{1, 0, 0}, minShade))

	// tilting the light away never brightens the surface
	prev := math.Inf(1)
	for deg := 0.0; deg <= 90; deg += 5 {
		r := mgl64.DegToRad(deg)
		s := shadeFor(mgl64.Vec3{0, math.Sin(r), math.Cos(r)}, minShade)
		assert.LessOrEqual(t, s, prev)
		assert.GreaterOrEqual(t, s, minShade-1e-12)
		prev = s
	}
}

func TestSurfaceBackShade(t *testing.T) {
	nodes := frontSquare(1000)
	s := newTestSurface([]int{0, 1, 2, 3}, true)
	s.initNormalLen(nodes)
	s.updateNormal(nodes)

	s.setAngleToLight(mgl64.Vec3{0, 0, -1})
	s.updateShade(0.3)
	s.updateBackShade(0.3)
	assert.Equal(t, 0.3, s.Shade())
	assert.InDelta(t, 1.0, s.BackShade(), 1e-9)

	s.setAngleToLight(mgl64.Vec3{0, 0, 1})
	s.updateBackShade(0.3)
	assert.Equal(t, 0.3, s.BackShade())
}

func TestSurfaceDegenerate(t *testing.T) {
	nodes := NewNodeMatrix([][3]float64{{0, 0, 100}, {10, 0, 100}, {20, 0, 100}})
	s := newTestSurface([]int{0, 1, 2}, false)
	s.initNormalLen(nodes)
	s.updateNormal(nodes)

	s.setAngleToViewer(nodes.Node(1))
	assert.False(t, s.Visible())

	s.setAngleToLight(mgl64.Vec3{})
	s.updateShade(0.25)
	assert.Equal(t, 0.25, s.Shade())
	assert.False(t, math.IsNaN(s.lightRatio()))
}

func TestShadeChannelRounding(t *testing.T) {
	testCases := []struct {
		v     uint8
		shade float64
		want  uint8
	}{
		{5, 0.5, 2},
		{7, 0.5, 4},
		{200, 1.0, 200},
		{255, 1.2, 255},
		{100, 0.15, 15},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, shadeChannel(tc.v, tc.shade), "%d × %v", tc.v, tc.shade)
	}
}

func TestSurfaceCopy(t *testing.T) {
	s := newTestSurface([]int{0, 1, 2}, false)
	c := s.Copy()
	c.Nodes[0] = 9
	c.Color = color.RGBA{}
	assert.Equal(t, 0, s.Nodes[0])
	assert.Equal(t, uint8(200), s.Color.R)
}
