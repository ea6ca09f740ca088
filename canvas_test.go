package vector3d

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrawPolygon(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	square := []image.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}

	testCases := []struct {
		name      string
		points    []image.Point
		edgeWidth int
		wantOps   []string
		wantWidth int
	}{
		{"filled polygon gets a thin rim and a fill", square, 0, []string{"stroke", "fill"}, 1},
		{"edge width draws outline only", square, 3, []string{"stroke"}, 3},
		{"two points draw nothing", square[:2], 0, nil, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := &recordingCanvas{}
			drawPolygon(c, red, tc.points, tc.edgeWidth)

			var ops []string
			for _, call := range c.calls {
				ops = append(ops, call.op)
				assert.Equal(t, red, call.color)
			}
			assert.Equal(t, tc.wantOps, ops)
			if strokes := c.ops("stroke"); len(strokes) > 0 {
				assert.Equal(t, tc.wantWidth, strokes[0].width)
			}
		})
	}
}
