package vector3d

import "github.com/go-gl/mathgl/mgl64"

// PositionRig moves a group of objects as one rigid body. Each object's
// position is a node of the rig; every frame the rig rotates those nodes
// about its origin, adds its own position and writes the results back.
type PositionRig struct {
	Name     string
	Angles   *AngleSet
	Position mgl64.Vec3

	nodes   *Matrix
	rotated *Matrix
	objects []*Object
}

// NewPositionRig snapshots the current positions of objs as rig nodes.
func NewPositionRig(name string, angles *AngleSet, pos mgl64.Vec3, objs []*Object) *PositionRig {
	r := &PositionRig{
		Name:     name,
		Angles:   angles,
		Position: pos,
		nodes:    NewMatrix(len(objs)),
		objects:  append([]*Object(nil), objs...),
	}
	for _, o := range objs {
		r.nodes.AddRow([]float64{o.Position[0], o.Position[1], o.Position[2], 1.0})
	}
	r.rotated = r.nodes.Copy()
	return r
}

func (r *PositionRig) Objects() []*Object { return r.objects }

// Rotate computes the rig's node positions for the current angle set.
func (r *PositionRig) Rotate() {
	rot := mgl64.Ident3()
	if r.Angles != nil {
		rot = r.Angles.RotationMatrix()
	}
	AffineMatrix(rot, r.Position).TransformObj(r.nodes, r.rotated)
}

// Apply writes the rotated nodes into the objects' positions.
func (r *PositionRig) Apply() {
	for i, o := range r.objects {
		o.Position = r.rotated.Node(i)
	}
}
