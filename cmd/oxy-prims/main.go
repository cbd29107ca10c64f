package main

import (
	"flag"
	"log"

	"github.com/Carmen-Shannon/oxy-prims/config"
	"github.com/Carmen-Shannon/oxy-prims/engine"
	"github.com/Carmen-Shannon/oxy-prims/engine/camera"
	"github.com/Carmen-Shannon/oxy-prims/engine/input"
	"github.com/Carmen-Shannon/oxy-prims/engine/mesh"
	"github.com/Carmen-Shannon/oxy-prims/engine/renderer"
	"github.com/Carmen-Shannon/oxy-prims/engine/window"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config file")
	cameraVariant := flag.String("camera", "", "camera variant override: euler or quaternion")
	flag.Parse()

	if err := run(*configPath, *cameraVariant); err != nil {
		log.Fatalf("[Main] %v", err)
	}
}

// run builds every engine component and blocks until the window closes.
// Failures are returned so deferred releases still run.
func run(configPath, cameraVariant string) error {
	cfg, err := loadConfig(configPath, cameraVariant)
	if err != nil {
		return err
	}

	variant, err := camera.ParseVariant(cfg.Camera.Variant)
	if err != nil {
		return err
	}
	cam, err := camera.New(variant, cameraOptions(cfg)...)
	if err != nil {
		return err
	}

	// ── Window ──────────────────────────────────────────────────────
	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithMaxSurfaceDimension(cfg.Window.MaxDimension),
	)

	// ── Meshes + Renderer ───────────────────────────────────────────
	store := mesh.NewStore(
		mesh.WithSphereDivisions(cfg.Mesh.SphereDivisions),
		mesh.WithInstanceCapacity(cfg.Mesh.InstanceCapacity),
	)
	r := renderer.NewRenderer(renderer.BackendTypeWGPU, win, rendererOptions(cfg, store)...)
	defer r.Release()

	// ── Input ───────────────────────────────────────────────────────
	ctrl := input.NewController(cam, input.WithPinchZoomScale(cfg.Input.PinchZoomScale))

	// ── Engine ──────────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithCamera(cam),
		engine.WithInput(ctrl),
		engine.WithProfiling(cfg.Profiling),
		engine.WithFrameLimit(cfg.Renderer.FrameLimit),
	)

	scene := initialScene()
	eng.SetRenderCallback(func(_ float32, frame renderer.Renderer) {
		frame.Submit(scene...)
	})

	log.Printf("[Main] Starting oxy-prims with the %s camera", variant)
	eng.Run()
	return nil
}
