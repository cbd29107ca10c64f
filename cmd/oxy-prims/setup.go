package main

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-prims/config"
	"github.com/Carmen-Shannon/oxy-prims/engine/camera"
	"github.com/Carmen-Shannon/oxy-prims/engine/command"
	"github.com/Carmen-Shannon/oxy-prims/engine/mesh"
	"github.com/Carmen-Shannon/oxy-prims/engine/renderer"
	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

// loadConfig reads the config file and applies the -camera override.
func loadConfig(path, cameraVariant string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if cameraVariant != "" {
		cfg.Camera.Variant = cameraVariant
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("-camera %q: %w", cameraVariant, err)
		}
	}
	return cfg, nil
}

func rendererOptions(cfg config.Config, store mesh.Store) []renderer.RendererBuilderOption {
	present := renderer.PresentModeVSync
	if cfg.Renderer.PresentMode == config.PresentModeUncapped {
		present = renderer.PresentModeUncapped
	}
	msaa := renderer.MSAA4x
	if cfg.Renderer.MSAA == 1 {
		msaa = renderer.MSAAOff
	}
	c := cfg.Renderer.ClearColor

	return []renderer.RendererBuilderOption{
		renderer.WithStore(store),
		renderer.WithPresentMode(present),
		renderer.WithMSAA(msaa),
		renderer.WithClearColor(wgpu.Color{R: c[0], G: c[1], B: c[2], A: c[3]}),
		renderer.WithOutline(cfg.Renderer.Outline.Enabled),
		renderer.WithOutlineStyle(cfg.Renderer.Outline.Scale, cfg.Renderer.Outline.Color),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
	}
}

func cameraOptions(cfg config.Config) []camera.CameraBuilderOption {
	cc := cfg.Camera
	return []camera.CameraBuilderOption{
		camera.WithDistance(cc.Distance),
		camera.WithDistanceBounds(cc.DistanceMin, cc.DistanceMax),
		camera.WithMouseSpeed(cc.MouseSpeed),
		camera.WithZoomSpeed(cc.ZoomSpeed),
		camera.WithPanSpeed(cc.PanSpeed),
		camera.WithFov(cc.FovDegrees * math32.Pi / 180),
		camera.WithNear(cc.Near),
		camera.WithFar(cc.Far),
	}
}

// initialScene is a white sphere at the origin with a small cube on each positive axis,
// colored red, green and blue for X, Y and Z.
func initialScene() []command.DrawCommand {
	return []command.DrawCommand{
		command.NewDrawCommand(mesh.MeshTypeSphere,
			command.WithScale(0.5),
			command.WithColorU8(255, 255, 255, 255),
		),
		command.NewDrawCommand(mesh.MeshTypeCube,
			command.WithPosition([3]float32{4, 0, 0}),
			command.WithScale(0.1),
			command.WithColorU8(255, 0, 0, 255),
		),
		command.NewDrawCommand(mesh.MeshTypeCube,
			command.WithPosition([3]float32{0, 4, 0}),
			command.WithScale(0.1),
			command.WithColorU8(0, 255, 0, 255),
		),
		command.NewDrawCommand(mesh.MeshTypeCube,
			command.WithPosition([3]float32{0, 0, 4}),
			command.WithScale(0.1),
			command.WithColorU8(0, 0, 255, 255),
		),
	}
}
