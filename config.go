package vector3d

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the viewer settings. Zero values are never used directly; a
// Config starts from DefaultConfig and a TOML file overrides what it sets.
type Config struct {
	Window WindowConfig `toml:"window"`
	Render RenderConfig `toml:"render"`
	Ground GroundConfig `toml:"ground"`
	Viewer ViewerConfig `toml:"viewer"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	FPS    int    `toml:"fps"`
}

type RenderConfig struct {
	// ZScaleFactor times the window width gives the projection scale.
	ZScaleFactor float64    `toml:"zscale_factor"`
	MinZ         float64    `toml:"min_z"`
	Light        [3]float64 `toml:"light"`
	Background   [3]uint8   `toml:"background"`
}

type GroundConfig struct {
	FarZ   float64    `toml:"far_z"`
	Shades [2]float64 `toml:"shades"`
	Bands  int        `toml:"bands"`
}

type ViewerConfig struct {
	// Rotate is the per-frame increment of the viewer angles, in degrees.
	Rotate [3]float64 `toml:"rotate"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Vector3D",
			Width:  1280,
			Height: 800,
			FPS:    60,
		},
		Render: RenderConfig{
			ZScaleFactor: 0.7,
			MinZ:         100,
			Light:        [3]float64{400, 800, -500},
		},
		Ground: GroundConfig{
			FarZ:   64000,
			Shades: [2]float64{15, 100},
			Bands:  16,
		},
		Viewer: ViewerConfig{
			Rotate: [3]float64{0, 0.5, 0},
		},
	}
}

func (r RenderConfig) background() color.RGBA {
	return color.RGBA{R: r.Background[0], G: r.Background[1], B: r.Background[2], A: 255}
}

var ErrInvalidConfig = errors.New("invalid config")

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Window.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalidConfig, c.Window.FPS)
	case c.Render.ZScaleFactor <= 0:
		return fmt.Errorf("%w: zscale_factor %v", ErrInvalidConfig, c.Render.ZScaleFactor)
	case c.Render.MinZ <= 0:
		return fmt.Errorf("%w: min_z %v", ErrInvalidConfig, c.Render.MinZ)
	case c.Ground.Bands <= 0:
		return fmt.Errorf("%w: ground bands %d", ErrInvalidConfig, c.Ground.Bands)
	case c.Ground.FarZ <= c.Render.MinZ:
		return fmt.Errorf("%w: ground far_z %v not beyond min_z", ErrInvalidConfig, c.Ground.FarZ)
	}
	return nil
}

// ParseConfig overlays TOML data on the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadConfig reads a TOML file. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(data)
}
