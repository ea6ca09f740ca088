package vector3d

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Viewer owns a scene and renders it frame by frame: angle sets advance, the
// position rig moves the objects, objects are rotated, culled, shaded and
// finally drawn band by band onto a Canvas.
type Viewer struct {
	Objects   []*Object
	AngleSets []*AngleSet
	// Angles is the viewer's own rotation, applied to every object.
	Angles *AngleSet
	Rig    *PositionRig
	Ground *Object

	Light      mgl64.Vec3
	Background color.RGBA
	Projection Projection
	GroundCfg  GroundSettings

	groundColors []color.RGBA
	priorities   []int
	state        State
	frames       int
}

func NewViewer(cfg Config) *Viewer {
	v := &Viewer{
		Angles:     NewAngleSet("viewer"),
		Light:      mgl64.Vec3(cfg.Render.Light),
		Background: cfg.Render.background(),
		Projection: NewProjection(cfg.Window.Width, cfg.Window.Height, cfg.Render.ZScaleFactor, cfg.Render.MinZ),
		GroundCfg: GroundSettings{
			FarZ:   cfg.Ground.FarZ,
			Shades: cfg.Ground.Shades,
			Bands:  cfg.Ground.Bands,
		},
	}
	v.Angles.Rotate = mgl64.Vec3(cfg.Viewer.Rotate)
	v.AngleSets = append(v.AngleSets, v.Angles)
	return v
}

// SetViewerAngles replaces the viewer rotation. The set is registered if it
// is not known yet.
func (v *Viewer) SetViewerAngles(a *AngleSet) {
	for i, as := range v.AngleSets {
		if as == v.Angles {
			v.AngleSets = append(v.AngleSets[:i], v.AngleSets[i+1:]...)
			break
		}
	}
	v.Angles = a
	v.AddAngleSet(a)
}

func (v *Viewer) AddAngleSet(a *AngleSet) {
	for _, as := range v.AngleSets {
		if as == a {
			return
		}
	}
	v.AngleSets = append(v.AngleSets, a)
}

// AngleSet finds a registered angle set by name.
func (v *Viewer) AngleSet(name string) *AngleSet {
	for _, as := range v.AngleSets {
		if as.Name == name {
			return as
		}
	}
	return nil
}

// AddObject registers an object and its priority band.
func (v *Viewer) AddObject(o *Object) {
	v.Objects = append(v.Objects, o)
	for _, p := range v.priorities {
		if p == o.Priority {
			return
		}
	}
	v.priorities = append(v.priorities, o.Priority)
	sort.Sort(sort.Reverse(sort.IntSlice(v.priorities)))
}

// Object finds an object by name.
func (v *Viewer) Object(name string) *Object {
	for _, o := range v.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// SetGround marks o as the ground and builds the band colours from its
// surface colour.
func (v *Viewer) SetGround(o *Object) {
	o.Kind = KindGround
	v.Ground = o
	base := v.Background
	if len(o.Surfaces) > 0 {
		base = o.Surfaces[0].Color
	}
	v.groundColors = GroundColors(base, v.Background, v.GroundCfg)
}

func (v *Viewer) GroundColors() []color.RGBA { return v.groundColors }

// Frames is the number of frames computed so far.
func (v *Viewer) Frames() int { return v.frames }

// Priorities returns the priority bands, highest first.
func (v *Viewer) Priorities() []int { return v.priorities }

// Init computes the per-surface constants of every object. Call it once the
// scene is complete.
func (v *Viewer) Init() {
	for _, o := range v.Objects {
		o.Finished()
	}
	if v.Ground != nil {
		v.Ground.Kind = KindGround
	}
}

// Frame runs one full frame onto c. A paused viewer draws nothing.
func (v *Viewer) Frame(c Canvas) error {
	switch v.state {
	case StateTerminated:
		return ErrTerminated
	case StatePaused:
		return nil
	}
	v.Rotate()
	v.Calculate()
	v.Display(c)
	return nil
}

// Rotate advances all angle sets, moves the rig and runs the visibility
// cascade of every object.
func (v *Viewer) Rotate() {
	v.frames++
	for _, a := range v.AngleSets {
		a.Advance()
		a.UpdateRotationMatrix()
	}

	if v.Rig != nil {
		v.Rig.Rotate()
		v.Rig.Apply()
	}

	p := v.Projection
	for _, o := range v.Objects {
		o.UpdateVisiblePos(p.MinZ)
		if !o.Visible() {
			continue
		}
		o.Rotate(v.Angles)
		o.UpdateVisibleNodes(p.MinZ)
		if !o.Visible() {
			continue
		}
		o.Transform(p)
		o.UpdateVisibleTrans(p.Width, p.Height)
	}
}

// Calculate updates surface depth, facing and shading of the visible objects.
// The ground has no shading of its own.
func (v *Viewer) Calculate() {
	for _, o := range v.Objects {
		if !o.Visible() || o == v.Ground {
			continue
		}
		o.UpdateSurfaces(v.Light)
	}
}

// SortObjects orders objects by priority, then by depth, both descending.
func (v *Viewer) SortObjects() {
	sort.SliceStable(v.Objects, func(i, j int) bool {
		a, b := v.Objects[i], v.Objects[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.Depth() > b.Depth()
	})
}

// Display draws the visible objects. The background is cleared unless the
// ground is drawn, as its sky band covers the screen. It returns the number
// of polygons submitted to c.
func (v *Viewer) Display(c Canvas) int {
	p := v.Projection
	if v.frames == 0 {
		c.Clear(v.Background)
		return 0
	}

	var groundRows []GroundRow
	if v.Ground != nil && v.Ground.Visible() {
		groundRows = v.Ground.GroundRows(p, v.GroundCfg)
	}
	if groundRows == nil {
		c.Clear(v.Background)
	}

	v.SortObjects()

	drawn := 0
	draw := func(clr color.RGBA, pts []Point, cropX bool, edgeWidth int) {
		nodes := cropEdges(pts, p.Width, p.Height, cropX, true)
		if len(nodes) < 3 {
			return
		}
		drawPolygon(c, clr, nodes, edgeWidth)
		drawn++
	}

	for _, prio := range v.priorities {
		// the sky band covers the screen above the horizon, so the ground
		// goes down before anything else in its band
		if groundRows != nil && v.Ground.Priority == prio {
			edge := 0
			if len(v.Ground.Surfaces) > 0 {
				edge = v.Ground.Surfaces[0].EdgeWidth
			}
			for i := 0; i < len(groundRows)-1 && i < len(v.groundColors); i++ {
				draw(v.groundColors[i], GroundBand(groundRows, i), false, edge)
			}
		}
		for _, o := range v.Objects {
			if !o.Visible() || o.Priority != prio || o == v.Ground {
				continue
			}
			switch {
			case o.IsFlat():
				s := o.Surfaces[0]
				if s.Visible() {
					draw(s.DrawColor(), o.TransNodes(), true, s.EdgeWidth)
				}
			default:
				o.SortSurfacesByZPos()
				for _, s := range o.Surfaces {
					if s.Visible() {
						draw(s.DrawColor(), o.SurfacePoints(s), true, s.EdgeWidth)
					}
				}
			}
		}
	}
	return drawn
}
