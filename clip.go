package vector3d

import (
	"image"
	"math"
)

// cropEdges clips a closed polygon to the screen rectangle [0,width]×[0,height].
// X and Y are clipped in two separate passes; either can be skipped. Points
// keep their walk order and are rounded to whole pixels at the end. Fewer than
// three points means there is nothing to draw.
func cropEdges(nodes []Point, width, height float64, cropX, cropY bool) []image.Point {
	if len(nodes) > 2 {
		limits := [2]float64{width, height}
		for axis := 0; axis < 2; axis++ {
			if (axis == 0 && !cropX) || (axis == 1 && !cropY) {
				continue
			}
			nodes = cropAxis(nodes, axis, limits[axis])
			if len(nodes) < 3 {
				break
			}
		}
	}
	out := make([]image.Point, len(nodes))
	for i, n := range nodes {
		out[i] = image.Point{X: int(math.Floor(n.X + 0.5)), Y: int(math.Floor(n.Y + 0.5))}
	}
	return out
}

func coord(p Point, axis int) float64 {
	if axis == 0 {
		return p.X
	}
	return p.Y
}

// crossAt returns the point on prev→node where the given axis equals v.
func crossAt(prev, node Point, axis int, v float64) Point {
	dx, dy := node.X-prev.X, node.Y-prev.Y
	t := (v - coord(prev, axis)) / coord(Point{dx, dy}, axis)
	return Point{X: prev.X + dx*t, Y: prev.Y + dy*t}
}

func cropAxis(nodes []Point, axis int, max float64) []Point {
	cropped := make([]Point, 0, len(nodes)+4)
	prev := nodes[len(nodes)-1]
	for _, node := range nodes {
		c, pc := coord(node, axis), coord(prev, axis)
		// entering from outside: crossing point comes before the node
		if c >= 0 && pc < 0 {
			cropped = append(cropped, crossAt(prev, node, axis, 0))
		}
		if c <= max && pc > max {
			cropped = append(cropped, crossAt(prev, node, axis, max))
		}
		// leaving the screen
		if c < 0 && pc >= 0 {
			cropped = append(cropped, crossAt(prev, node, axis, 0))
		}
		if c > max && pc <= max {
			cropped = append(cropped, crossAt(prev, node, axis, max))
		}
		if c >= 0 && c <= max {
			cropped = append(cropped, node)
		}
		prev = node
	}
	return cropped
}
