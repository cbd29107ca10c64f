package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-prims/engine/camera"
	"github.com/Carmen-Shannon/oxy-prims/engine/mesh"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read by the demo when no -config flag is given.
const DefaultPath = "oxy-prims.yaml"

// Present modes accepted in the renderer section.
const (
	PresentModeVSync    = "vsync"
	PresentModeUncapped = "uncapped"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full demo configuration. Every section falls back to Default for keys the file
// leaves out.
type Config struct {
	Window    WindowConfig   `yaml:"window"`
	Renderer  RendererConfig `yaml:"renderer"`
	Camera    CameraConfig   `yaml:"camera"`
	Mesh      MeshConfig     `yaml:"mesh"`
	Input     InputConfig    `yaml:"input"`
	Profiling bool           `yaml:"profiling"`
}

type WindowConfig struct {
	Title        string `yaml:"title"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	MaxDimension int    `yaml:"max_dimension"`
}

type RendererConfig struct {
	PresentMode   string        `yaml:"present_mode"`
	MSAA          int           `yaml:"msaa"`
	FrameLimit    float64       `yaml:"frame_limit"`
	ForceSoftware bool          `yaml:"force_software"`
	ClearColor    [4]float64    `yaml:"clear_color"`
	Outline       OutlineConfig `yaml:"outline"`
}

type OutlineConfig struct {
	Enabled bool       `yaml:"enabled"`
	Scale   float32    `yaml:"scale"`
	Color   [4]float32 `yaml:"color"`
}

type CameraConfig struct {
	Variant     string  `yaml:"variant"`
	Distance    float32 `yaml:"distance"`
	DistanceMin float32 `yaml:"distance_min"`
	DistanceMax float32 `yaml:"distance_max"`
	MouseSpeed  float32 `yaml:"mouse_speed"`
	ZoomSpeed   float32 `yaml:"zoom_speed"`
	PanSpeed    float32 `yaml:"pan_speed"`
	FovDegrees  float32 `yaml:"fov_degrees"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
}

type MeshConfig struct {
	SphereDivisions  int `yaml:"sphere_divisions"`
	InstanceCapacity int `yaml:"instance_capacity"`
}

type InputConfig struct {
	PinchZoomScale float32 `yaml:"pinch_zoom_scale"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:        "oxy-prims",
			Width:        1280,
			Height:       720,
			MaxDimension: 2048,
		},
		Renderer: RendererConfig{
			PresentMode: PresentModeVSync,
			MSAA:        4,
			ClearColor:  [4]float64{0.1, 0.1, 0.1, 1},
			Outline: OutlineConfig{
				Enabled: true,
				Scale:   1.005,
				Color:   [4]float32{1, 1, 1, 1},
			},
		},
		Camera: CameraConfig{
			Variant:     string(camera.VariantEuler),
			Distance:    camera.DefaultDistance,
			DistanceMin: camera.DefaultDistanceMin,
			DistanceMax: camera.DefaultDistanceMax,
			MouseSpeed:  camera.DefaultMouseSpeed,
			ZoomSpeed:   camera.DefaultZoomSpeed,
			PanSpeed:    camera.DefaultPanSpeed,
			FovDegrees:  60,
			Near:        camera.DefaultNear,
			Far:         camera.DefaultFar,
		},
		Mesh: MeshConfig{
			SphereDivisions:  mesh.DefaultSphereDivisions,
			InstanceCapacity: mesh.DefaultInstanceCapacity,
		},
		Input: InputConfig{
			PinchZoomScale: 0.2,
		},
	}
}

// Load reads the YAML file at path over the defaults and validates the result.
// A missing file yields Default(); keys absent from the file keep their default values.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Config: the loaded configuration
//   - error: a read, parse or validation error
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.fillBlanks()
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// fillBlanks restores defaults for settings a file may blank out explicitly.
func (c *Config) fillBlanks() {
	if c.Window.Title == "" {
		c.Window.Title = Default().Window.Title
	}
	if c.Camera.Variant == "" {
		c.Camera.Variant = Default().Camera.Variant
	}
}

// Save writes the configuration as YAML, creating the parent directory if needed.
//
// Parameters:
//   - path: the destination file
//
// Returns:
//   - error: a marshal or write error
func (c Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first setting outside its allowed range, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.MaxDimension < 0 {
		return invalid("window max_dimension %d must not be negative", c.Window.MaxDimension)
	}

	switch c.Renderer.PresentMode {
	case PresentModeVSync, PresentModeUncapped:
	default:
		return invalid("renderer present_mode %q must be %q or %q", c.Renderer.PresentMode, PresentModeVSync, PresentModeUncapped)
	}
	if c.Renderer.MSAA != 1 && c.Renderer.MSAA != 4 {
		return invalid("renderer msaa %d must be 1 or 4", c.Renderer.MSAA)
	}
	if c.Renderer.FrameLimit < 0 {
		return invalid("renderer frame_limit %g must not be negative", c.Renderer.FrameLimit)
	}
	if c.Renderer.Outline.Scale <= 0 {
		return invalid("renderer outline scale %g must be positive", c.Renderer.Outline.Scale)
	}

	if _, err := camera.ParseVariant(c.Camera.Variant); err != nil {
		return fmt.Errorf("%w: camera: %w", ErrInvalidConfig, err)
	}
	if c.Camera.DistanceMin <= 0 || c.Camera.DistanceMax < c.Camera.DistanceMin {
		return invalid("camera distance bounds [%g, %g] must satisfy 0 < min <= max", c.Camera.DistanceMin, c.Camera.DistanceMax)
	}
	if c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180 {
		return invalid("camera fov_degrees %g must be in (0, 180)", c.Camera.FovDegrees)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return invalid("camera near %g and far %g must satisfy 0 < near < far", c.Camera.Near, c.Camera.Far)
	}

	if c.Mesh.SphereDivisions < 2 {
		return invalid("mesh sphere_divisions %d: %v", c.Mesh.SphereDivisions, mesh.ErrInvalidDivisions)
	}
	if c.Mesh.InstanceCapacity <= 0 {
		return invalid("mesh instance_capacity %d must be positive", c.Mesh.InstanceCapacity)
	}
	return nil
}
