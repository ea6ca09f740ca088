package vector3d

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// ObjectKind selects how an object is clipped, shaded and drawn.
type ObjectKind int

const (
	// KindSolid objects have several surfaces, are projected node for node
	// and culled by surface facing.
	KindSolid ObjectKind = iota
	// KindFlat objects have exactly one surface and are clipped against the
	// near plane in 3D before projection.
	KindFlat
	// KindGround is the flat object drawn as depth shaded bands.
	KindGround
)

func (k ObjectKind) String() string {
	switch k {
	case KindFlat:
		return "flat"
	case KindGround:
		return "ground"
	default:
		return "solid"
	}
}

// Object is a rigid body made of nodes and surfaces.
type Object struct {
	Name     string
	Kind     ObjectKind
	Surfaces []*Surface
	// Angles spins the object in place. When it is the viewer's own set the
	// object only follows the viewer.
	Angles   *AngleSet
	Position mgl64.Vec3
	// Priority groups objects into draw bands; higher bands are drawn first.
	Priority int
	// MinShade is the shade of a surface lit at a grazing angle or not lit.
	MinShade float64

	nodes        *Matrix
	objRotated   *Matrix
	rotatedNodes *Matrix
	transNodes   []Point
	visible      bool
}

func NewObject(name string, nodes [][3]float64) *Object {
	n := NewNodeMatrix(nodes)
	return &Object{
		Name:         name,
		MinShade:     0.2,
		nodes:        n,
		objRotated:   n.Copy(),
		rotatedNodes: n.Copy(),
		visible:      true,
	}
}

func (o *Object) AddSurface(s *Surface) {
	o.Surfaces = append(o.Surfaces, s)
}

// Finished settles the object kind from its surface count and computes the
// per-surface constants. Call it once all surfaces are added.
func (o *Object) Finished() {
	if o.Kind != KindGround {
		o.Kind = kindForSurfaces(len(o.Surfaces))
	}
	for _, s := range o.Surfaces {
		s.updateZPos(o.nodes)
		s.updateNormal(o.nodes)
		s.initNormalLen(o.nodes)
	}
}

func kindForSurfaces(n int) ObjectKind {
	if n == 1 {
		return KindFlat
	}
	return KindSolid
}

func (o *Object) IsFlat() bool         { return o.Kind != KindSolid }
func (o *Object) Visible() bool        { return o.visible }
func (o *Object) Nodes() *Matrix       { return o.nodes }
func (o *Object) RotatedNodes() *Matrix { return o.rotatedNodes }
func (o *Object) TransNodes() []Point  { return o.transNodes }
func (o *Object) NodeCount() int       { return o.nodes.Len() }

// Depth is the view-space depth of the object position, used for sorting.
func (o *Object) Depth() float64 { return o.Position[2] }

// ObjectOption patches a field of a cloned object.
type ObjectOption func(*Object)

func WithName(name string) ObjectOption {
	return func(o *Object) { o.Name = name }
}

func WithPosition(pos mgl64.Vec3) ObjectOption {
	return func(o *Object) { o.Position = pos }
}

func WithAngles(a *AngleSet) ObjectOption {
	return func(o *Object) { o.Angles = a }
}

func WithPriority(p int) ObjectOption {
	return func(o *Object) { o.Priority = p }
}

func WithMinShade(m float64) ObjectOption {
	return func(o *Object) { o.MinShade = m }
}

// WithSurfaceStyle overrides the colours, edge width and back face flag of the
// surface with the given id.
func WithSurfaceStyle(id int, col, back color.RGBA, edgeWidth int, showBack bool) ObjectOption {
	return func(o *Object) {
		for _, s := range o.Surfaces {
			if s.ID == id {
				s.Color = col
				s.BackColor = back
				s.EdgeWidth = edgeWidth
				s.ShowBack = showBack
			}
		}
	}
}

// Clone deep-copies geometry and surfaces but shares the angle set, then
// applies the overrides in order. A clone of the ground is a plain flat
// object; only the viewer makes an object the ground.
func (o *Object) Clone(opts ...ObjectOption) *Object {
	c := &Object{
		Name:         o.Name,
		Kind:         kindForSurfaces(len(o.Surfaces)),
		Angles:       o.Angles,
		Position:     o.Position,
		Priority:     o.Priority,
		MinShade:     o.MinShade,
		nodes:        o.nodes.Copy(),
		objRotated:   o.objRotated.Copy(),
		rotatedNodes: o.rotatedNodes.Copy(),
		transNodes:   append([]Point(nil), o.transNodes...),
		visible:      o.visible,
	}
	c.Surfaces = make([]*Surface, len(o.Surfaces))
	for i, s := range o.Surfaces {
		c.Surfaces[i] = s.Copy()
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PreRotate bakes a rotation (degrees) into the model-space nodes.
func (o *Object) PreRotate(deg mgl64.Vec3) {
	AffineMatrix(EulerXYZ(deg), mgl64.Vec3{}).TransformObj(o.nodes, o.nodes)
}

// Rotate moves the nodes into view space. Own spin is applied about the
// origin first, then the viewer rotation and the position in one step.
func (o *Object) Rotate(viewer *AngleSet) {
	src := o.nodes
	if o.Angles != nil && o.Angles != viewer {
		AffineMatrix(o.Angles.RotationMatrix(), mgl64.Vec3{}).TransformObj(o.nodes, o.objRotated)
		src = o.objRotated
	}
	rot := mgl64.Ident3()
	if viewer != nil {
		rot = viewer.RotationMatrix()
	}
	AffineMatrix(rot, o.Position).TransformObj(src, o.rotatedNodes)
}

// UpdateVisiblePos rejects solid objects whose position is behind minZ.
func (o *Object) UpdateVisiblePos(minZ float64) {
	o.visible = o.IsFlat() || o.Position[2] >= minZ
}

// UpdateVisibleNodes needs every node of a solid object in front of minZ. A
// flat object stays visible while any node is in front, as it is clipped
// later.
func (o *Object) UpdateVisibleNodes(minZ float64) {
	if o.IsFlat() {
		o.visible = o.rotatedNodes.MaxColumn(2) >= minZ
	} else {
		o.visible = o.rotatedNodes.MinColumn(2) >= minZ
	}
}

// UpdateVisibleTrans rejects objects with fewer than three projected nodes or
// a projected bounding box fully off screen.
func (o *Object) UpdateVisibleTrans(width, height float64) {
	if len(o.transNodes) < 3 {
		o.visible = false
		return
	}
	minX, maxX := o.transNodes[0].X, o.transNodes[0].X
	minY, maxY := o.transNodes[0].Y, o.transNodes[0].Y
	for _, p := range o.transNodes[1:] {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	o.visible = !(maxX < 0 || minX > width || maxY < 0 || minY > height)
}

// Transform projects the rotated nodes. Flat objects are first clipped to the
// near plane, so their transNodes follow the surface winding rather than the
// node indices.
func (o *Object) Transform(p Projection) {
	o.transNodes = o.transNodes[:0]
	if o.IsFlat() {
		for _, s := range o.Surfaces {
			s.SetVisible(true)
			poly := make([]mgl64.Vec3, len(s.Nodes))
			for i, n := range s.Nodes {
				poly[i] = o.rotatedNodes.Node(n)
			}
			for _, v := range clipPolygonAgainstNearPlane(poly, p.MinZ) {
				o.transNodes = append(o.transNodes, p.projectFlat(v))
			}
		}
		return
	}
	for i := range o.rotatedNodes.Rows {
		o.transNodes = append(o.transNodes, p.project(o.rotatedNodes.Node(i)))
	}
}

// UpdateSurfaces computes depth, normal, facing and shade of every surface
// against the light position (view space).
func (o *Object) UpdateSurfaces(light mgl64.Vec3) {
	for _, s := range o.Surfaces {
		s.updateZPos(o.rotatedNodes)
		s.SetVisible(true)
		s.updateNormal(o.rotatedNodes)
	}
	for _, s := range o.Surfaces {
		if len(s.Nodes) < 2 {
			s.SetVisible(false)
			continue
		}
		s.setAngleToViewer(o.rotatedNodes.Node(s.Nodes[1]))
	}
	for _, s := range o.Surfaces {
		if !s.Visible() {
			continue
		}
		if o.MinShade < 1.0 {
			s.setAngleToLight(o.rotatedNodes.Node(s.Nodes[1]).Sub(light))
			s.updateShade(o.MinShade)
			if s.ShowBack {
				s.updateBackShade(o.MinShade)
			}
		} else {
			s.shade, s.backShade = 1.0, 1.0
		}
	}
}

// SortSurfacesByZPos puts the most distant surface first.
func (o *Object) SortSurfacesByZPos() {
	sort.SliceStable(o.Surfaces, func(i, j int) bool {
		return o.Surfaces[i].zPos > o.Surfaces[j].zPos
	})
}

// SurfacePoints returns the projected nodes of a solid object's surface.
func (o *Object) SurfacePoints(s *Surface) []Point {
	pts := make([]Point, len(s.Nodes))
	for i, n := range s.Nodes {
		pts[i] = o.transNodes[n]
	}
	return pts
}
