package vector3d

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownAngles     = errors.New("unknown angle set")
	ErrUnknownCopySource = errors.New("unknown copy source")
	ErrUnknownSurface    = errors.New("unknown surface")
	ErrBadNodeRef        = errors.New("node reference out of range")
	ErrNoSurfaces        = errors.New("object has no surfaces")
	ErrBadColor          = errors.New("colour needs three components")
)

// SceneFile is the YAML layout of a scene. Depth values (node and object z)
// are written with the viewer looking into +z and are negated on load.
type SceneFile struct {
	Angles  []AnglesDef `yaml:"angles"`
	Objects []ObjectDef `yaml:"objects"`
	Rig     *RigDef     `yaml:"rig"`

	// dir resolves relative mesh paths.
	dir string
}

type AnglesDef struct {
	Name   string      `yaml:"name"`
	Base   [3]float64  `yaml:"base"`
	Rotate *[3]float64 `yaml:"rotate"`
}

type ObjectDef struct {
	Name     string `yaml:"name"`
	CopyFrom string `yaml:"copyfrom"`
	Ground   bool   `yaml:"ground"`
	// Prio and Position left out of a copy keep the source's values.
	Prio     *int        `yaml:"prio"`
	Position *[3]float64 `yaml:"position"`
	Angles   string      `yaml:"angles"`
	// InitAngles is a rotation baked into the nodes on load.
	InitAngles [3]float64 `yaml:"initangles"`
	MinShade   *float64   `yaml:"minshade"`

	Color     []int `yaml:"color"`
	BackColor []int `yaml:"backcolor"`
	EdgeWidth int   `yaml:"edgewidth"`
	ShowBack  bool  `yaml:"showback"`

	Nodes    [][3]float64 `yaml:"nodes"`
	Surfaces []SurfaceDef `yaml:"surfaces"`

	// Mesh names a .ply or .dxf file that supplies nodes and surfaces in
	// place of Nodes. Its coordinates are used as is, without the z flip.
	// Face i becomes surface i, which Surfaces can then override by id.
	Mesh        string  `yaml:"mesh"`
	MeshScale   float64 `yaml:"meshscale"`
	MeshCentre  bool    `yaml:"meshcentre"`
	MeshReverse bool    `yaml:"meshreverse"`
}

type SurfaceDef struct {
	ID        int   `yaml:"id"`
	Nodes     []int `yaml:"nodes"`
	Color     []int `yaml:"color"`
	BackColor []int `yaml:"backcolor"`
	EdgeWidth *int  `yaml:"edgewidth"`
	ShowBack  *bool `yaml:"showback"`
}

type RigDef struct {
	Name     string      `yaml:"name"`
	Angles   string      `yaml:"angles"`
	Position *[3]float64 `yaml:"position"`
}

const (
	defaultMinShade = 0.3
	defaultRigZ     = 1500.0
)

var defaultColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}

// LoadSceneFile reads a YAML scene and builds a ready to run Viewer.
func LoadSceneFile(path string, cfg Config) (*Viewer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene %s: %w", path, err)
	}
	defer f.Close()

	v, err := loadScene(f, cfg, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return v, nil
}

// LoadScene reads a YAML scene from r. Mesh paths are relative to the
// working directory.
func LoadScene(r io.Reader, cfg Config) (*Viewer, error) {
	return loadScene(r, cfg, "")
}

func loadScene(r io.Reader, cfg Config, dir string) (*Viewer, error) {
	sf := SceneFile{dir: dir}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return sf.Build(cfg)
}

// Build turns the decoded file into a Viewer.
func (sf *SceneFile) Build(cfg Config) (*Viewer, error) {
	v := NewViewer(cfg)

	for _, ad := range sf.Angles {
		a := NewAngleSet(ad.Name)
		a.Base = mgl64.Vec3(ad.Base)
		if ad.Rotate != nil {
			a.Rotate = mgl64.Vec3(*ad.Rotate)
		}
		if ad.Name == "viewer" {
			if ad.Rotate == nil {
				a.Rotate = mgl64.Vec3(cfg.Viewer.Rotate)
			}
			v.SetViewerAngles(a)
			continue
		}
		v.AddAngleSet(a)
	}

	for i := range sf.Objects {
		od := &sf.Objects[i]
		o, err := od.build(v, sf.dir)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", od.Name, err)
		}
		v.AddObject(o)
		if od.Ground {
			v.SetGround(o)
		}
	}

	if sf.Rig != nil {
		rig, err := sf.Rig.build(v)
		if err != nil {
			return nil, fmt.Errorf("rig %q: %w", sf.Rig.Name, err)
		}
		v.Rig = rig
	}

	v.Init()
	log.Printf("Loaded scene: %d angle sets, %d objects", len(v.AngleSets), len(v.Objects))
	return v, nil
}

func (od *ObjectDef) build(v *Viewer, dir string) (*Object, error) {
	angles := v.Angles
	if od.Angles != "" {
		angles = v.AngleSet(od.Angles)
		if angles == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAngles, od.Angles)
		}
	}
	var pos mgl64.Vec3
	if od.Position != nil {
		pos = mgl64.Vec3{od.Position[0], od.Position[1], -od.Position[2]}
	}

	if od.CopyFrom != "" {
		return od.buildCopy(v, angles, pos)
	}

	col, err := rgbaOr(od.Color, defaultColor)
	if err != nil {
		return nil, err
	}
	back, err := rgbaOr(od.BackColor, col)
	if err != nil {
		return nil, err
	}

	var mesh *Mesh
	nodes := make([][3]float64, len(od.Nodes))
	for i, n := range od.Nodes {
		nodes[i] = [3]float64{n[0], n[1], -n[2]}
	}
	if od.Mesh != "" {
		if len(od.Nodes) > 0 {
			return nil, fmt.Errorf("%w: nodes and mesh both given", ErrBadMesh)
		}
		if mesh, err = od.loadMesh(dir); err != nil {
			return nil, err
		}
		nodes = mesh.Nodes
	}
	o := NewObject(od.Name, nodes)
	o.Angles = angles
	o.Position = pos
	if od.Prio != nil {
		o.Priority = *od.Prio
	}
	o.MinShade = defaultMinShade
	if od.MinShade != nil {
		o.MinShade = *od.MinShade
	}
	if od.InitAngles != [3]float64{} {
		o.PreRotate(mgl64.Vec3(od.InitAngles))
	}

	if mesh != nil {
		for i, f := range mesh.Faces {
			s := NewSurface(i, append([]int(nil), f.Nodes...), col)
			s.BackColor = back
			if f.Colored {
				s.Color = f.Color
				if od.BackColor == nil {
					s.BackColor = f.Color
				}
			}
			s.EdgeWidth = od.EdgeWidth
			s.ShowBack = od.ShowBack
			o.AddSurface(s)
		}
		if err := overrideSurfaces(o, od.Surfaces); err != nil {
			return nil, err
		}
		return o, nil
	}

	if len(od.Surfaces) == 0 {
		return nil, ErrNoSurfaces
	}
	for _, sd := range od.Surfaces {
		for _, n := range sd.Nodes {
			if n < 0 || n >= len(nodes) {
				return nil, fmt.Errorf("surface %d: %w: %d of %d", sd.ID, ErrBadNodeRef, n, len(nodes))
			}
		}
		s := NewSurface(sd.ID, append([]int(nil), sd.Nodes...), col)
		s.BackColor = back
		s.EdgeWidth = od.EdgeWidth
		s.ShowBack = od.ShowBack
		if err := sd.apply(s); err != nil {
			return nil, fmt.Errorf("surface %d: %w", sd.ID, err)
		}
		o.AddSurface(s)
	}
	return o, nil
}

// buildCopy clones a previously defined object. Geometry is inherited as is;
// surfaces listed in the definition override the source surface of the same
// id.
func (od *ObjectDef) buildCopy(v *Viewer, angles *AngleSet, pos mgl64.Vec3) (*Object, error) {
	src := v.Object(od.CopyFrom)
	if src == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCopySource, od.CopyFrom)
	}
	opts := []ObjectOption{WithName(od.Name)}
	if od.Position != nil {
		opts = append(opts, WithPosition(pos))
	}
	if od.Prio != nil {
		opts = append(opts, WithPriority(*od.Prio))
	}
	if od.Angles != "" {
		opts = append(opts, WithAngles(angles))
	}
	if od.MinShade != nil {
		opts = append(opts, WithMinShade(*od.MinShade))
	}
	o := src.Clone(opts...)
	if od.InitAngles != [3]float64{} {
		o.PreRotate(mgl64.Vec3(od.InitAngles))
	}

	if err := overrideSurfaces(o, od.Surfaces); err != nil {
		return nil, err
	}
	return o, nil
}

func (od *ObjectDef) loadMesh(dir string) (*Mesh, error) {
	path := od.Mesh
	if dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	m, err := LoadMeshFile(path)
	if err != nil {
		return nil, err
	}
	if od.MeshCentre {
		m.Centre()
	}
	if od.MeshScale != 0 {
		m.Scale(od.MeshScale)
	}
	if od.MeshReverse {
		m.Reverse()
	}
	log.Printf("Mesh %s: %d nodes, %d faces", path, len(m.Nodes), len(m.Faces))
	return m, nil
}

// overrideSurfaces applies surface definitions to the existing surfaces with
// the same id.
func overrideSurfaces(o *Object, defs []SurfaceDef) error {
	for _, sd := range defs {
		var target *Surface
		for _, s := range o.Surfaces {
			if s.ID == sd.ID {
				target = s
				break
			}
		}
		if target == nil {
			return fmt.Errorf("%w: %d", ErrUnknownSurface, sd.ID)
		}
		if err := sd.apply(target); err != nil {
			return fmt.Errorf("surface %d: %w", sd.ID, err)
		}
	}
	return nil
}

func (sd *SurfaceDef) apply(s *Surface) error {
	col, err := rgbaOr(sd.Color, s.Color)
	if err != nil {
		return err
	}
	back, err := rgbaOr(sd.BackColor, s.BackColor)
	if err != nil {
		return err
	}
	s.Color, s.BackColor = col, back
	if sd.EdgeWidth != nil {
		s.EdgeWidth = *sd.EdgeWidth
	}
	if sd.ShowBack != nil {
		s.ShowBack = *sd.ShowBack
	}
	return nil
}

func (rd *RigDef) build(v *Viewer) (*PositionRig, error) {
	var angles *AngleSet
	if rd.Angles != "" {
		angles = v.AngleSet(rd.Angles)
		if angles == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAngles, rd.Angles)
		}
	}
	pos := mgl64.Vec3{0, 0, defaultRigZ}
	if rd.Position != nil {
		pos = mgl64.Vec3(*rd.Position)
	}
	return NewPositionRig(rd.Name, angles, pos, v.Objects), nil
}

func rgbaOr(c []int, def color.RGBA) (color.RGBA, error) {
	if c == nil {
		return def, nil
	}
	if len(c) != 3 {
		return def, fmt.Errorf("%w: %v", ErrBadColor, c)
	}
	return color.RGBA{
		R: uint8(clamp(c[0], 0, 255)),
		G: uint8(clamp(c[1], 0, 255)),
		B: uint8(clamp(c[2], 0, 255)),
		A: 255,
	}, nil
}
