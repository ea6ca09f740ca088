package vector3d

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGround(col color.RGBA) *Object {
	o := NewObject("ground", [][3]float64{
		{-30000, 0, 30000}, {30000, 0, 30000}, {30000, 0, -30000}, {-30000, 0, -30000},
	})
	o.AddSurface(NewSurface(0, []int{0, 1, 2, 3}, col))
	o.Kind = KindGround
	o.Finished()
	return o
}

func TestGroundColors(t *testing.T) {
	base := color.RGBA{R: 100, G: 200, B: 40, A: 255}
	bg := color.RGBA{A: 255}
	g := GroundSettings{FarZ: 64000, Shades: [2]float64{15, 100}, Bands: 16}

	colors := GroundColors(base, bg, g)
	require.Len(t, colors, 17)
	assert.Equal(t, bg, colors[0])
	assert.Equal(t, color.RGBA{R: 15, G: 30, B: 6, A: 255}, colors[1])
	assert.Equal(t, base, colors[16])
	for i := 2; i < len(colors); i++ {
		assert.GreaterOrEqual(t, colors[i].G, colors[i-1].G)
	}

	single := GroundColors(base, bg, GroundSettings{Shades: [2]float64{15, 100}, Bands: 1})
	assert.Equal(t, []color.RGBA{bg, base}, single)
}

func TestGroundRows(t *testing.T) {
	p := NewProjection(1280, 800, 0.7, 100)
	g := GroundSettings{FarZ: 64000, Shades: [2]float64{15, 100}, Bands: 16}
	viewer := NewAngleSet("viewer")

	o := newGround(color.RGBA{G: 200, A: 255})
	o.Angles = viewer
	o.Position = mgl64.Vec3{0, -300, 1500}
	o.Rotate(viewer)

	rows := o.GroundRows(p, g)
	require.Len(t, rows, 18)

	// the ground is below the viewer: the sky closes at the top corners
	assert.Equal(t, GroundRow{Left: Point{0, 0}, Right: Point{1280, 0}}, rows[0])

	for i, r := range rows[1:] {
		assert.InDelta(t, 0, r.Left.X, 1e-6, "row %d", i+1)
		assert.InDelta(t, 1280, r.Right.X, 1e-6, "row %d", i+1)
	}
	// the horizon sits just below the screen centre, nearer rows further down
	assert.Greater(t, rows[1].Left.Y, 400.0)
	assert.Less(t, rows[1].Left.Y, rows[17].Left.Y)
	assert.Greater(t, rows[17].Left.Y, 800.0)

	for i := 2; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i].Left.Y, rows[i-1].Left.Y, "row %d", i)
		assert.GreaterOrEqual(t, rows[i].Right.Y, rows[i-1].Right.Y, "row %d", i)
	}
}

func TestSkyRow(t *testing.T) {
	const w, h = 100.0, 80.0
	testCases := []struct {
		name      string
		far, next GroundRow
		want      GroundRow
	}{
		{
			name: "normal ground",
			far:  GroundRow{Point{0, 30}, Point{w, 40}},
			next: GroundRow{Point{0, 50}, Point{w, 60}},
			want: GroundRow{Point{0, 0}, Point{w, 0}},
		},
		{
			name: "horizon above the screen",
			far:  GroundRow{Point{0, -10}, Point{w, -20}},
			next: GroundRow{Point{0, 50}, Point{w, 60}},
			want: GroundRow{Point{0, -10}, Point{w, -20}},
		},
		{
			name: "upside down",
			far:  GroundRow{Point{0, 50}, Point{w, 40}},
			next: GroundRow{Point{0, 30}, Point{w, 20}},
			want: GroundRow{Point{0, h}, Point{w, h}},
		},
		{
			name: "upside down with horizon below the screen",
			far:  GroundRow{Point{0, 90}, Point{w, 95}},
			next: GroundRow{Point{0, 30}, Point{w, 20}},
			want: GroundRow{Point{0, 90}, Point{w, 95}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, skyRow(tc.far, tc.next, w, h))
		})
	}
}

func TestStretchRow(t *testing.T) {
	r := stretchRow(Point{10, 10}, Point{20, 20}, 100)
	assert.InDelta(t, 0, r.Left.X, 1e-9)
	assert.InDelta(t, 0, r.Left.Y, 1e-9)
	assert.InDelta(t, 100, r.Right.X, 1e-9)
	assert.InDelta(t, 100, r.Right.Y, 1e-9)
}

func TestHorizonPairInterpolates(t *testing.T) {
	o := NewObject("tilted", [][3]float64{{0, 0, 100}, {10, 0, 300}, {20, 10, 200}, {10, 0, 50}})
	o.rotatedNodes = o.Nodes().Copy()

	mid1, mid2 := o.horizonPair()
	// the far node is 1; neighbour 2 is farther than neighbour 0, so the mid
	// point of 1-2 is matched on 1-0
	assert.InDelta(t, mid1[2], mid2[2], 1e-9)
	assert.InDelta(t, 250, mid1[2], 1e-9)
	assert.GreaterOrEqual(t, mid1[1], mid2[1])
}

func TestViewerDrawsGroundInsteadOfClearing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Viewer.Rotate = [3]float64{}
	v := NewViewer(cfg)

	ground := newGround(color.RGBA{G: 200, A: 255})
	ground.Angles = v.Angles
	ground.Position = mgl64.Vec3{0, -300, 1500}
	v.AddObject(ground)
	v.SetGround(ground)
	v.Init()

	c := &recordingCanvas{}
	require.NoError(t, v.Frame(c))

	assert.Empty(t, c.ops("clear"))
	fills := c.ops("fill")
	require.NotEmpty(t, fills)
	assert.LessOrEqual(t, len(fills), cfg.Ground.Bands+1)
	assert.Equal(t, v.Background, fills[0].color)
	assert.Equal(t, v.GroundColors()[1], fills[1].color)
	for _, f := range fills {
		for _, p := range f.points {
			assert.True(t, p.Y >= 0 && p.Y <= 800, "y %d off screen", p.Y)
		}
	}
}

func TestGroundDrawnFirstInItsBand(t *testing.T) {
	v := newStillViewer()

	ground := newGround(color.RGBA{G: 200, A: 255})
	ground.Angles = v.Angles
	ground.Position = mgl64.Vec3{0, -300, 1500}
	v.AddObject(ground)
	v.SetGround(ground)

	// same band as the ground, but farther away than its position
	far := newCube("far", 100)
	far.Angles = v.Angles
	far.Position = mgl64.Vec3{0, 300, 5000}
	v.AddObject(far)
	v.Init()

	c := &recordingCanvas{}
	require.NoError(t, v.Frame(c))

	fills := c.ops("fill")
	require.NotEmpty(t, fills)
	assert.Equal(t, v.Background, fills[0].color)

	// ground colours have no red; the grey cube does
	cubeSeen := false
	for i, f := range fills {
		if f.color.R > 0 {
			cubeSeen = true
			continue
		}
		assert.False(t, cubeSeen, "ground band %d drawn over the cube", i)
	}
	assert.True(t, cubeSeen)
}
