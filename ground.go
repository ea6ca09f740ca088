package vector3d

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// GroundSettings controls how a ground object is split into bands.
type GroundSettings struct {
	// FarZ is the depth the horizon row is pushed out to.
	FarZ float64
	// Shades are the colour strengths in percent at FarZ and at depth 0.
	Shades [2]float64
	// Bands is the number of differently shaded ground strips.
	Bands int
}

// GroundRow is one horizontal edge of the ground: a left and a right screen
// point.
type GroundRow struct {
	Left, Right Point
}

// GroundColors builds the band colour ramp. Entry 0 is the background, used
// for the strip above the horizon. Entries 1..Bands fade from Shades[0]
// percent of base (far) to Shades[1] percent (near).
func GroundColors(base, background color.RGBA, g GroundSettings) []color.RGBA {
	colors := make([]color.RGBA, 0, g.Bands+1)
	colors = append(colors, background)
	for i := 0; i < g.Bands; i++ {
		var shade float64
		if g.Bands == 1 {
			shade = g.Shades[1] / 100
		} else {
			last := float64(g.Bands - 1)
			shade = (float64(i)/last*g.Shades[1] + (last-float64(i))/last*g.Shades[0]) / 100
		}
		colors = append(colors, shadeColor(base, shade))
	}
	return colors
}

// GroundRows computes the screen rows of the ground bands for a rotated flat
// object. Row 0 closes the sky, row 1 is the horizon at FarZ and the rest
// approach the viewer in square root steps. Every row but the sky row spans
// exactly [0, Width] in X. The result has Bands+2 rows.
func (o *Object) GroundRows(p Projection, g GroundSettings) []GroundRow {
	if o.rotatedNodes.Len() < 3 || g.Bands < 1 {
		return nil
	}
	mid1, mid2 := o.horizonPair()
	if mid1[2] == 0 || mid2[2] == 0 {
		return nil
	}
	mid1 = mid1.Mul(g.FarZ / mid1[2])
	mid2 = mid2.Mul(g.FarZ / mid2[2])

	// mirror through the position to get the near corners
	mid2Back := o.Position.Add(o.Position.Sub(mid1))
	mid1Back := o.Position.Add(o.Position.Sub(mid2))

	mult := (mid1[2]/2 - p.MinZ) / ((mid1[2] - mid1Back[2]) / 2)

	left := make([]mgl64.Vec3, g.Bands+1)
	right := make([]mgl64.Vec3, g.Bands+1)
	left[0], right[0] = mid1, mid2
	for i := 0; i < g.Bands; i++ {
		m := mult * math.Sqrt(float64(i+1)/float64(g.Bands))
		left[i+1] = mid1.Mul(1 - m).Add(mid1Back.Mul(m)).Mul(0.5)
		right[i+1] = mid2.Mul(1 - m).Add(mid2Back.Mul(m)).Mul(0.5)
	}

	rows := make([]GroundRow, g.Bands+2)
	for i := range left {
		l, r := p.projectFlat(left[i]), p.projectFlat(right[i])
		rows[i+1] = stretchRow(l, r, p.Width)
	}
	rows[0] = skyRow(rows[1], rows[2], p.Width, p.Height)
	return rows
}

// horizonPair returns two view-space points of equal depth on the far edge of
// the ground perimeter, the one with the larger Y first.
func (o *Object) horizonPair() (mgl64.Vec3, mgl64.Vec3) {
	nodes := o.rotatedNodes
	n := nodes.Len()
	maxZ := nodes.MaxColumn(2)
	idx := 0
	for i := 0; i < n; i++ {
		if nodes.Rows[i][2] == maxZ {
			idx = i
			break
		}
	}
	node := nodes.Node(idx)
	prev := nodes.Node((idx - 1 + n) % n)
	next := nodes.Node((idx + 1) % n)

	var mid1, mid2 mgl64.Vec3
	switch {
	case node[2] == prev[2]:
		mid1, mid2 = node, prev
	case node[2] == next[2]:
		mid1, mid2 = node, next
	case next[2] > prev[2]:
		mid1 = next.Add(node).Mul(0.5)
		mid2 = node.Add(prev.Sub(node).Mul((mid1[2] - node[2]) / (prev[2] - node[2])))
	default:
		mid1 = prev.Add(node).Mul(0.5)
		mid2 = node.Add(next.Sub(node).Mul((mid1[2] - node[2]) / (next[2] - node[2])))
	}
	if mid1[1] < mid2[1] {
		mid1, mid2 = mid2, mid1
	}
	return mid1, mid2
}

// stretchRow extends the line through l and r so that it meets x = 0 on the
// left and x = width on the right.
func stretchRow(l, r Point, width float64) GroundRow {
	dx, dy := r.X-l.X, r.Y-l.Y
	if dx == 0 {
		return GroundRow{Left: Point{0, l.Y}, Right: Point{width, r.Y}}
	}
	m := r.X / dx
	l = Point{X: r.X - m*dx, Y: r.Y - m*dy}
	dx, dy = r.X-l.X, r.Y-l.Y
	m = width / dx
	r = Point{X: l.X + m*dx, Y: l.Y + m*dy}
	return GroundRow{Left: l, Right: r}
}

// skyRow closes the strip above the horizon at the screen edge facing away
// from the ground. When the horizon is already off that edge the horizon row
// itself is used.
func skyRow(far, next GroundRow, width, height float64) GroundRow {
	var sky GroundRow
	if far.Left.Y < next.Left.Y {
		sky.Left = Point{0, 0}
		if far.Left.Y < 0 {
			sky.Left = far.Left
		}
	} else {
		sky.Left = Point{0, height}
		if far.Left.Y > height {
			sky.Left = far.Left
		}
	}
	if far.Right.Y < next.Right.Y {
		sky.Right = Point{width, 0}
		if far.Right.Y < 0 {
			sky.Right = far.Right
		}
	} else {
		sky.Right = Point{width, height}
		if far.Right.Y > height {
			sky.Right = far.Right
		}
	}
	return sky
}

// GroundBand returns the unclipped screen polygon of band i (0 is the sky
// strip) from the rows made by GroundRows.
func GroundBand(rows []GroundRow, i int) []Point {
	a, b := rows[i], rows[i+1]
	return []Point{a.Left, a.Right, b.Right, b.Left}
}
