package vector3d

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	ErrBadMesh         = errors.New("malformed mesh")
	ErrUnknownMeshType = errors.New("unknown mesh format")
)

// Mesh is polygon geometry read from a model file. Faces are wound
// counter-clockwise seen from outside, which is the winding surfaces expect.
type Mesh struct {
	Nodes [][3]float64
	Faces []MeshFace
}

type MeshFace struct {
	Nodes []int
	Color color.RGBA
	// Colored is set when the file gave the face a colour.
	Colored bool
}

// LoadMeshFile reads a .ply (ascii) or .dxf file.
func LoadMeshFile(path string) (*Mesh, error) {
	var read func(io.Reader) (*Mesh, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ply":
		read = ReadPLY
	case ".dxf":
		read = ReadDXF
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMeshType, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open mesh file %s: %w", path, err)
	}
	defer f.Close()

	m, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("error parsing mesh file %s: %w", path, err)
	}
	return m, nil
}

type plyHeader struct {
	vertexCount, faceCount int
	vertexProps            map[string]int
	faceColor              bool
}

func readPLYHeader(sc *bufio.Scanner) (*plyHeader, error) {
	if !sc.Scan() || strings.TrimSpace(sc.Text()) != "ply" {
		return nil, fmt.Errorf("%w: missing ply magic", ErrBadMesh)
	}
	h := &plyHeader{vertexProps: make(map[string]int)}
	var element string
	for sc.Scan() {
		parts := strings.Fields(sc.Text())
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "format":
			if len(parts) < 2 || parts[1] != "ascii" {
				return nil, fmt.Errorf("%w: only ascii ply is supported", ErrBadMesh)
			}
		case "element":
			if len(parts) != 3 {
				return nil, fmt.Errorf("%w: bad element line %q", ErrBadMesh, sc.Text())
			}
			n, err := strconv.Atoi(parts[2])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: bad element count %q", ErrBadMesh, parts[2])
			}
			element = parts[1]
			switch element {
			case "vertex":
				h.vertexCount = n
			case "face":
				h.faceCount = n
			default:
				return nil, fmt.Errorf("%w: unsupported element %q", ErrBadMesh, element)
			}
		case "property":
			name := parts[len(parts)-1]
			switch element {
			case "vertex":
				h.vertexProps[name] = len(h.vertexProps)
			case "face":
				if name == "red" || name == "diffuse_red" {
					h.faceColor = true
				}
			}
		case "end_header":
			return h, nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: missing end_header", ErrBadMesh)
}

// ReadPLY parses an ascii PLY file with vertex and face elements. Face
// colours come from the face itself, else from the average of its vertex
// colours.
func ReadPLY(r io.Reader) (*Mesh, error) {
	sc := bufio.NewScanner(r)
	h, err := readPLYHeader(sc)
	if err != nil {
		return nil, err
	}

	col := func(names ...string) int {
		for _, n := range names {
			if i, ok := h.vertexProps[n]; ok {
				return i
			}
		}
		return -1
	}
	ix, iy, iz := col("x"), col("y"), col("z")
	if ix < 0 || iy < 0 || iz < 0 {
		return nil, fmt.Errorf("%w: vertex needs x, y and z", ErrBadMesh)
	}
	ir, ig, ib := col("red", "diffuse_red"), col("green", "diffuse_green"), col("blue", "diffuse_blue")
	vertexColor := ir >= 0 && ig >= 0 && ib >= 0

	m := &Mesh{Nodes: make([][3]float64, 0, h.vertexCount)}
	colors := make([]color.RGBA, 0, h.vertexCount)
	for i := 0; i < h.vertexCount; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: unexpected end of file while reading vertices", ErrBadMesh)
		}
		parts := strings.Fields(sc.Text())
		if len(parts) < len(h.vertexProps) {
			return nil, fmt.Errorf("%w: vertex %d has %d values", ErrBadMesh, i, len(parts))
		}
		var n [3]float64
		for axis, j := range [3]int{ix, iy, iz} {
			if n[axis], err = strconv.ParseFloat(parts[j], 64); err != nil {
				return nil, fmt.Errorf("%w: vertex %d: %v", ErrBadMesh, i, err)
			}
		}
		m.Nodes = append(m.Nodes, n)
		if vertexColor {
			c, err := parseRGB(parts[ir], parts[ig], parts[ib])
			if err != nil {
				return nil, fmt.Errorf("%w: vertex %d: %v", ErrBadMesh, i, err)
			}
			colors = append(colors, c)
		}
	}

	for i := 0; i < h.faceCount; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: unexpected end of file while reading faces", ErrBadMesh)
		}
		parts := strings.Fields(sc.Text())
		if len(parts) == 0 {
			return nil, fmt.Errorf("%w: empty face %d", ErrBadMesh, i)
		}
		count, err := strconv.Atoi(parts[0])
		if err != nil || count < 3 {
			return nil, fmt.Errorf("%w: face %d has bad vertex count %q", ErrBadMesh, i, parts[0])
		}
		want := count + 1
		if h.faceColor {
			want += 3
		}
		if len(parts) < want {
			return nil, fmt.Errorf("%w: face %d has %d values, want %d", ErrBadMesh, i, len(parts), want)
		}

		f := MeshFace{Nodes: make([]int, count)}
		for j := range f.Nodes {
			idx, err := strconv.Atoi(parts[j+1])
			if err != nil || idx < 0 || idx >= len(m.Nodes) {
				return nil, fmt.Errorf("face %d: %w: %s of %d", i, ErrBadNodeRef, parts[j+1], len(m.Nodes))
			}
			f.Nodes[j] = idx
		}

		switch {
		case h.faceColor:
			c, err := parseRGB(parts[count+1], parts[count+2], parts[count+3])
			if err != nil {
				return nil, fmt.Errorf("%w: face %d: %v", ErrBadMesh, i, err)
			}
			f.Color, f.Colored = c, true
		case vertexColor:
			var r, g, b int
			for _, idx := range f.Nodes {
				r += int(colors[idx].R)
				g += int(colors[idx].G)
				b += int(colors[idx].B)
			}
			f.Color = color.RGBA{R: uint8(r / count), G: uint8(g / count), B: uint8(b / count), A: 255}
			f.Colored = true
		}
		m.Faces = append(m.Faces, f)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("error reading from PLY source: %w", err)
	}
	if len(m.Faces) == 0 {
		return nil, fmt.Errorf("%w: no faces", ErrBadMesh)
	}
	return m, nil
}

func parseRGB(r, g, b string) (color.RGBA, error) {
	var c [3]uint8
	for i, s := range [3]string{r, g, b} {
		v, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return color.RGBA{}, err
		}
		c[i] = uint8(v)
	}
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}, nil
}

// ReadDXF collects the 3DFACE entities of a DXF file. Corners shared between
// faces become one node. A face whose last two corners coincide is a
// triangle.
func ReadDXF(r io.Reader) (*Mesh, error) {
	sc := bufio.NewScanner(r)
	m := &Mesh{}
	index := make(map[[3]float64]int)

	var (
		inFace  bool
		corners [4][3]float64
	)
	for line := 1; sc.Scan(); line += 2 {
		code, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad group code %q", ErrBadMesh, line, sc.Text())
		}
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: line %d: group code without value", ErrBadMesh, line)
		}
		value := strings.TrimSpace(sc.Text())

		if code == 0 {
			if inFace {
				m.addFace(index, corners)
			}
			inFace = value == "3DFACE"
			corners = [4][3]float64{}
			continue
		}
		// 10..13, 20..23 and 30..33 are x, y and z of corners 0..3.
		if !inFace || code < 10 || code > 33 || code%10 > 3 {
			continue
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: could not parse float value %q", ErrBadMesh, line+1, value)
		}
		corners[code%10][code/10-1] = v
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("error reading from DXF source: %w", err)
	}
	if inFace {
		m.addFace(index, corners)
	}
	if len(m.Faces) == 0 {
		return nil, fmt.Errorf("%w: no 3DFACE entities", ErrBadMesh)
	}
	return m, nil
}

func (m *Mesh) addFace(index map[[3]float64]int, corners [4][3]float64) {
	f := MeshFace{}
	for _, c := range corners {
		i, ok := index[c]
		if !ok {
			i = len(m.Nodes)
			index[c] = i
			m.Nodes = append(m.Nodes, c)
		}
		if n := len(f.Nodes); n > 0 && f.Nodes[n-1] == i {
			continue
		}
		f.Nodes = append(f.Nodes, i)
	}
	if len(f.Nodes) > 1 && f.Nodes[0] == f.Nodes[len(f.Nodes)-1] {
		f.Nodes = f.Nodes[:len(f.Nodes)-1]
	}
	if len(f.Nodes) >= 3 {
		m.Faces = append(m.Faces, f)
	}
}

// Centre moves the nodes so the middle of their bounding box is the origin.
func (m *Mesh) Centre() {
	if len(m.Nodes) == 0 {
		return
	}
	lo, hi := m.Nodes[0], m.Nodes[0]
	for _, n := range m.Nodes {
		for a := 0; a < 3; a++ {
			lo[a] = math.Min(lo[a], n[a])
			hi[a] = math.Max(hi[a], n[a])
		}
	}
	for i := range m.Nodes {
		for a := 0; a < 3; a++ {
			m.Nodes[i][a] -= (lo[a] + hi[a]) / 2
		}
	}
}

func (m *Mesh) Scale(f float64) {
	for i := range m.Nodes {
		for a := 0; a < 3; a++ {
			m.Nodes[i][a] *= f
		}
	}
}

// Reverse flips the winding of every face.
func (m *Mesh) Reverse() {
	for _, f := range m.Faces {
		for i, j := 0, len(f.Nodes)-1; i < j; i, j = i+1, j-1 {
			f.Nodes[i], f.Nodes[j] = f.Nodes[j], f.Nodes[i]
		}
	}
}
