package vector3d

import "github.com/go-gl/mathgl/mgl64"

// Point is a projected screen position before rounding.
type Point struct {
	X, Y float64
}

// Projection holds the constants of the perspective divide.
type Projection struct {
	Width  float64
	Height float64
	// ZScale multiplies x and y before dividing by depth.
	ZScale float64
	// MinZ is the nearest depth still drawn.
	MinZ float64
}

func NewProjection(width, height int, zScaleFactor, minZ float64) Projection {
	return Projection{
		Width:  float64(width),
		Height: float64(height),
		ZScale: float64(width) * zScaleFactor,
		MinZ:   minZ,
	}
}

func (p Projection) MidX() float64 { return p.Width / 2 }
func (p Projection) MidY() float64 { return p.Height / 2 }

// project is used for solid objects: (x, y)·zScale / -z + mid.
func (p Projection) project(v mgl64.Vec3) Point {
	return Point{
		X: (v[0]*p.ZScale)/(-v[2]) + p.MidX(),
		Y: (v[1]*p.ZScale)/(-v[2]) + p.MidY(),
	}
}

// projectFlat is used for flat objects and ground rows: -(x, y)·zScale / z + mid.
// It gives the same point as project.
func (p Projection) projectFlat(v mgl64.Vec3) Point {
	return Point{
		X: (-v[0]*p.ZScale)/v[2] + p.MidX(),
		Y: (-v[1]*p.ZScale)/v[2] + p.MidY(),
	}
}

// clipPolygonAgainstNearPlane walks the closed polygon and keeps the part at
// z >= minZ. An edge crossing the plane gets a synthetic node at z = minZ.
func clipPolygonAgainstNearPlane(nodes []mgl64.Vec3, minZ float64) []mgl64.Vec3 {
	clipped := make([]mgl64.Vec3, 0, len(nodes)+2)
	if len(nodes) == 0 {
		return clipped
	}
	prev := nodes[len(nodes)-1]
	for _, node := range nodes {
		if (node[2] < minZ && prev[2] >= minZ) || (node[2] >= minZ && prev[2] < minZ) {
			diff := node.Sub(prev)
			clipped = append(clipped, prev.Add(diff.Mul((minZ-prev[2])/diff[2])))
		}
		if node[2] >= minZ {
			clipped = append(clipped, node)
		}
		prev = node
	}
	return clipped
}
