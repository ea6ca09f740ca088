package vector3d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 800, cfg.Window.Height)
	assert.Equal(t, 16, cfg.Ground.Bands)
	assert.Equal(t, [3]float64{400, 800, -500}, cfg.Render.Light)

	v := NewViewer(cfg)
	assert.InDelta(t, 896, v.Projection.ZScale, 1e-9)
	assert.Equal(t, 100.0, v.Projection.MinZ)
}

func TestParseConfigOverlaysDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("[window]\nwidth = 800\n\n[render]\nbackground = [10, 20, 30]\n"))
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 800, cfg.Window.Height)
	assert.Equal(t, [3]uint8{10, 20, 30}, cfg.Render.Background)
	assert.Equal(t, uint8(255), cfg.Render.background().A)
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name string
		toml string
	}{
		{"zero width", "[window]\nwidth = 0\n"},
		{"no fps", "[window]\nfps = 0\n"},
		{"no bands", "[ground]\nbands = 0\n"},
		{"negative min z", "[render]\nmin_z = -1.0\n"},
		{"ground nearer than min z", "[ground]\nfar_z = 50.0\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tc.toml))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("testdata/viewer.toml")
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 400, cfg.Window.Height)
	assert.Equal(t, 12, cfg.Ground.Bands)
	assert.Equal(t, [3]float64{0, 0.25, 0}, cfg.Viewer.Rotate)

	def, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), def)

	_, err = LoadConfig("testdata/missing.toml")
	assert.Error(t, err)

	_, err = ParseConfig([]byte("[window\n"))
	assert.Error(t, err)
}
