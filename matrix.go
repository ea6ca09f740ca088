package vector3d

import "github.com/go-gl/mathgl/mgl64"

// Matrix holds row vectors. Node lists are stored as homogeneous (x, y, z, 1)
// rows; transform matrices are 4 rows of 3 columns where row 3 is the
// translation applied together with the rotation.
type Matrix struct {
	Rows [][]float64
}

func NewMatrix(capacity int) *Matrix {
	return &Matrix{
		Rows: make([][]float64, 0, capacity),
	}
}

// NewNodeMatrix builds a homogeneous node list from plain x, y, z triples.
func NewNodeMatrix(points [][3]float64) *Matrix {
	m := NewMatrix(len(points))
	for _, p := range points {
		m.AddRow([]float64{p[0], p[1], p[2], 1.0})
	}
	return m
}

// AffineMatrix stacks a rotation and a translation row so that TransformObj
// rotates and moves nodes in a single pass.
func AffineMatrix(rot mgl64.Mat3, pos mgl64.Vec3) *Matrix {
	m := NewMatrix(4)
	for i := 0; i < 3; i++ {
		m.AddRow([]float64{rot.At(i, 0), rot.At(i, 1), rot.At(i, 2)})
	}
	m.AddRow([]float64{pos[0], pos[1], pos[2]})
	return m
}

func (m *Matrix) AddRow(row []float64) {
	m.Rows = append(m.Rows, row)
}

func (m *Matrix) Len() int {
	return len(m.Rows)
}

// Node returns row i as a vector, dropping the homogeneous column.
func (m *Matrix) Node(i int) mgl64.Vec3 {
	r := m.Rows[i]
	return mgl64.Vec3{r[0], r[1], r[2]}
}

func (m *Matrix) SetNode(i int, v mgl64.Vec3) {
	r := m.Rows[i]
	r[0], r[1], r[2] = v[0], v[1], v[2]
}

// TransformObj writes src·m into dest, row by row. dest is resized to match
// src and keeps its homogeneous column at 1.
func (m *Matrix) TransformObj(src, dest *Matrix) {
	if len(dest.Rows) != len(src.Rows) {
		dest.Rows = make([][]float64, len(src.Rows))
		for i := range dest.Rows {
			dest.Rows[i] = make([]float64, 4)
		}
	}
	t := m.Rows
	for x := range src.Rows {
		sx, sy, sz := src.Rows[x][0], src.Rows[x][1], src.Rows[x][2]
		d := dest.Rows[x]
		d[0] = t[0][0]*sx + t[1][0]*sy + t[2][0]*sz + t[3][0]
		d[1] = t[0][1]*sx + t[1][1]*sy + t[2][1]*sz + t[3][1]
		d[2] = t[0][2]*sx + t[1][2]*sy + t[2][2]*sz + t[3][2]
		d[3] = 1.0
	}
}

// MinColumn returns the smallest value in column col. It returns 0 for an
// empty matrix.
func (m *Matrix) MinColumn(col int) float64 {
	if len(m.Rows) == 0 {
		return 0
	}
	v := m.Rows[0][col]
	for _, r := range m.Rows[1:] {
		if r[col] < v {
			v = r[col]
		}
	}
	return v
}

func (m *Matrix) MaxColumn(col int) float64 {
	if len(m.Rows) == 0 {
		return 0
	}
	v := m.Rows[0][col]
	for _, r := range m.Rows[1:] {
		if r[col] > v {
			v = r[col]
		}
	}
	return v
}

func (m *Matrix) Copy() *Matrix {
	c := &Matrix{Rows: make([][]float64, len(m.Rows))}
	for i, r := range m.Rows {
		c.Rows[i] = append([]float64(nil), r...)
	}
	return c
}
