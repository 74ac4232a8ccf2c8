// Package viewer implements the terrain viewer application loop.
package viewer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/terraview/internal/config"
	"github.com/Faultbox/terraview/internal/engine/camera"
	"github.com/Faultbox/terraview/internal/engine/debug"
	"github.com/Faultbox/terraview/internal/engine/input"
	"github.com/Faultbox/terraview/internal/engine/renderer"
	"github.com/Faultbox/terraview/internal/engine/terrain"
	"github.com/Faultbox/terraview/internal/engine/window"
	"github.com/Faultbox/terraview/pkg/formats"
)

// Viewer is the main application instance. Everything runs on one control
// thread: loading, mesh building and every redraw.
type Viewer struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.Orbit

	grid *terrain.HeightGrid
	mesh *terrain.Mesh
	mode terrain.ColorMode

	width  int
	height int

	dragging   bool
	lastMouseX int
	lastMouseY int
}

// New creates the viewer, loads the configured heightmap and uploads the
// initial mesh.
func New(cfg *config.Config) (*Viewer, error) {
	slog.Info("initializing viewer",
		"heightmap", cfg.Terrain.Heightmap,
		"divisor", cfg.Terrain.Divisor,
		"mode", cfg.Terrain.ColorMode,
	)

	v := &Viewer{
		cfg:    cfg,
		mode:   parseColorMode(cfg.Terrain.ColorMode),
		width:  cfg.Display.Width,
		height: cfg.Display.Height,
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "TerraView",
		Width:      cfg.Display.Width,
		Height:     cfg.Display.Height,
		Fullscreen: cfg.Display.Fullscreen,
		VSync:      cfg.Display.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the OpenGL context the window just created.
	v.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Display.Width,
		Height: cfg.Display.Height,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()
	v.camera = camera.NewOrbit()

	if err := v.loadTerrain(); err != nil {
		v.renderer.Close()
		v.window.Close()
		return nil, err
	}

	b := v.mesh.Bounds
	v.camera.FitToBounds(mgl32.Vec3(b.Min), mgl32.Vec3(b.Max))

	slog.Info("viewer initialized")
	return v, nil
}

// loadTerrain reads the heightmap from disk and rebuilds grid and mesh.
// Called at startup and again on the reset key.
func (v *Viewer) loadTerrain() error {
	bmp, err := formats.ParseBMPFile(v.cfg.Terrain.Heightmap)
	if err != nil {
		return fmt.Errorf("loading heightmap: %w", err)
	}

	v.grid = terrain.BuildHeightGrid(bmp, v.cfg.Terrain.Divisor)
	slog.Info("heightmap loaded",
		"width", v.grid.Width,
		"height", v.grid.Height,
		"min", v.grid.Min,
		"max", v.grid.Max,
	)

	v.rebuildMesh()
	return nil
}

// rebuildMesh regenerates the mesh from the current grid and color mode and
// uploads it. The grid and mesh are immutable values, so "reset" is simply
// calling the builders again.
func (v *Viewer) rebuildMesh() {
	opts := terrain.MeshOptions{Mode: v.mode}
	if c := v.cfg.Terrain.FlatColor; len(c) == 4 {
		opts.FlatColor = [4]float32{c[0], c[1], c[2], c[3]}
	}

	v.mesh = terrain.BuildMesh(v.grid, opts)
	v.renderer.UploadMesh(v.mesh)
}

// Run starts the main loop. The loop is the host-owned redraw driver: poll
// input, update the camera, draw, swap.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	slog.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}

		for _, event := range v.input.Events() {
			v.handleEvent(event)
		}
		v.updateCamera(dt)

		v.renderer.Begin()
		v.renderer.Draw(v.viewProj(), v.mode == terrain.ColorLit)
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			slog.Debug("fps", "count", frameCount, "dt", fmt.Sprintf("%.2fms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	slog.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handleEvent(event input.Event) {
	switch event.Type {
	case input.EventWindowResize:
		v.width = event.Width
		v.height = event.Height
		v.renderer.Resize(event.Width, event.Height)

	case input.EventKeyDown:
		v.handleKey(event.Key)

	case input.EventMouseDown:
		if event.Button == sdl.BUTTON_LEFT {
			v.dragging = true
			v.lastMouseX = event.MouseX
			v.lastMouseY = event.MouseY
		}

	case input.EventMouseUp:
		if event.Button == sdl.BUTTON_LEFT {
			v.dragging = false
		}

	case input.EventMouseMove:
		if v.dragging {
			dx := float32(event.MouseX - v.lastMouseX)
			dy := float32(event.MouseY - v.lastMouseY)
			v.camera.HandleDrag(dx, dy)
			v.lastMouseX = event.MouseX
			v.lastMouseY = event.MouseY
		}

	case input.EventMouseWheel:
		v.camera.HandleZoom(event.WheelY)
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false

	case sdl.SCANCODE_R:
		// Reset: re-read the file and rebuild everything.
		if err := v.loadTerrain(); err != nil {
			slog.Error("reload failed, keeping current terrain", "error", err)
			return
		}
		b := v.mesh.Bounds
		v.camera.FitToBounds(mgl32.Vec3(b.Min), mgl32.Vec3(b.Max))

	case sdl.SCANCODE_1:
		v.setMode(terrain.ColorFlat)
	case sdl.SCANCODE_2:
		v.setMode(terrain.ColorHeightBands)
	case sdl.SCANCODE_3:
		v.setMode(terrain.ColorLit)

	case sdl.SCANCODE_F:
		on := v.renderer.ToggleWireframe()
		slog.Info("wireframe toggled", "on", on)

	case sdl.SCANCODE_F12:
		pixels := v.renderer.ReadPixels(v.width, v.height)
		path, err := debug.SaveScreenshot(v.cfg.Terrain.ScreenshotDir, pixels, v.width, v.height)
		if err != nil {
			slog.Error("screenshot failed", "error", err)
			return
		}
		slog.Info("screenshot saved", "path", path)
	}
}

func (v *Viewer) setMode(mode terrain.ColorMode) {
	if mode == v.mode {
		return
	}
	v.mode = mode
	v.rebuildMesh()
}

// updateCamera applies held-key panning.
func (v *Viewer) updateCamera(dt float64) {
	var forward, right float32
	if v.input.IsKeyHeld(sdl.SCANCODE_W) {
		forward += 1
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_S) {
		forward -= 1
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_D) {
		right += 1
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_A) {
		right -= 1
	}
	if forward != 0 || right != 0 {
		// Pan speed is frame-rate independent.
		scale := float32(dt * 60)
		v.camera.HandlePan(forward*scale, right*scale)
	}
}

func (v *Viewer) viewProj() mgl32.Mat4 {
	aspect := float32(v.width) / float32(v.height)
	proj := mgl32.Perspective(mgl32.DegToRad(60), aspect, 0.1, 10000)
	return proj.Mul4(v.camera.ViewMatrix())
}

// parseColorMode maps a config string to a ColorMode, defaulting to bands.
func parseColorMode(s string) terrain.ColorMode {
	switch s {
	case "flat":
		return terrain.ColorFlat
	case "lit":
		return terrain.ColorLit
	default:
		return terrain.ColorHeightBands
	}
}
