// cheiftan - Terminal 3D Model Viewer
// View OBJ and GLB files in your terminal, rendered by the software
// rasterizer.
//
// Controls:
//
//	Mouse drag  - Rotate model (yaw/pitch)
//	Scroll      - Zoom in/out
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	Q/E         - Roll left/right
//	Space       - Apply random impulse
//	R           - Reset rotation
//	T           - Toggle texture on/off
//	F           - Toggle depth fog
//	X           - Toggle wireframe mode (x-ray)
//	?           - Toggle HUD overlay (FPS, triangle/pixel stats)
//	+/-         - Adjust zoom
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/RubenTipparach/cheiftan-engine/pkg/math3d"
	"github.com/RubenTipparach/cheiftan-engine/pkg/models"
	"github.com/RubenTipparach/cheiftan-engine/pkg/render"
)

var (
	texturePath = flag.String("texture", "", "Path to texture image (PNG/JPG)")
	targetFPS   = flag.Int("fps", 60, "Target FPS")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cheiftan - Terminal 3D Model Viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: cheiftan [options] [model.obj|model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Rotate model\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Pitch and yaw\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Roll left/right\n")
		fmt.Fprintf(os.Stderr, "  Space       - Random spin\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  T           - Toggle texture\n")
		fmt.Fprintf(os.Stderr, "  F           - Toggle fog\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// RotationAxis tracks position and velocity for one rotation axis with spring decay
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// NewRotationAxis creates an axis with harmonica spring for smooth velocity decay
func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and decays velocity toward 0 using spring
func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// RotationState holds rotation with harmonica spring physics
type RotationState struct {
	Pitch, Yaw, Roll RotationAxis
	fps              int
}

func NewRotationState(fps int) *RotationState {
	return &RotationState{
		Pitch: NewRotationAxis(fps),
		Yaw:   NewRotationAxis(fps),
		Roll:  NewRotationAxis(fps),
		fps:   fps,
	}
}

func (r *RotationState) Update() {
	r.Pitch.Update()
	r.Yaw.Update()
	r.Roll.Update()
}

func (r *RotationState) ApplyImpulse(pitch, yaw, roll float64) {
	r.Pitch.Velocity += pitch
	r.Yaw.Velocity += yaw
	r.Roll.Velocity += roll
}

func (r *RotationState) Reset() {
	r.Pitch = NewRotationAxis(r.fps)
	r.Yaw = NewRotationAxis(r.fps)
	r.Roll = NewRotationAxis(r.fps)
}

// RenderMode controls how the mesh is drawn
type RenderMode int

const (
	RenderModeTextured  RenderMode = iota // Textured with per-vertex lighting
	RenderModeWireframe                   // Wireframe only
)

// ViewState holds all view-related settings (UI state, not library code)
type ViewState struct {
	TextureEnabled bool
	RenderMode     RenderMode
	FogEnabled     bool
	LightDir       math3d.Vec3
	ShowHUD        bool
}

// NewViewState creates default view state
func NewViewState() *ViewState {
	return &ViewState{
		TextureEnabled: true,
		RenderMode:     RenderModeTextured,
		LightDir:       math3d.V3(0.5, 1, -0.3).Normalize(),
	}
}

// HUD renders an overlay with model info and frame stats
type HUD struct {
	filename  string
	polyCount int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD
func NewHUD(filename string, polyCount int) *HUD {
	return &HUD{
		filename:  filename,
		polyCount: polyCount,
		fpsTime:   time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the HUD overlay directly to the terminal
func (h *HUD) Render(width, height int, viewState *ViewState, stats render.FrameStats) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows (so toggling off works)
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	if !viewState.ShowHUD {
		return
	}

	// Top left: FPS
	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	// Top middle: filename
	titleCol := max((width-len(h.filename)-2)/2, 1)
	fmt.Printf("%s%s%s%s %s %s", moveTo(1, titleCol), bold, bgBlack, fgWhite, h.filename, reset)

	// Top right: polygon count
	polyCol := max(width-12, 1)
	fmt.Printf("%s%s%s%s %d polys %s", moveTo(1, polyCol), bgBlack, fgCyan, bold, h.polyCount, reset)

	// Bottom: frame stats from the renderer
	statLine := fmt.Sprintf(" drawn %d  culled %d  clipped %d  pixels %d ",
		stats.TrianglesDrawn, stats.TrianglesCulled, stats.TrianglesClipped, stats.PixelsDrawn)
	fmt.Print(moveTo(height, 1) + bgBlack + fgWhite + statLine + reset)
}

// fallbackCube builds a unit cube mesh used when no model path is given.
func fallbackCube() *models.Mesh {
	mesh := models.NewMesh("cube")

	// Six faces, four vertices each, counter-clockwise seen from outside.
	faces := []struct {
		corners [4]math3d.Vec3
		normal  math3d.Vec3
	}{
		{[4]math3d.Vec3{{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1}}, math3d.V3(0, 0, -1)},
		{[4]math3d.Vec3{{X: 1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}}, math3d.V3(0, 0, 1)},
		{[4]math3d.Vec3{{X: -1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: 1}}, math3d.V3(-1, 0, 0)},
		{[4]math3d.Vec3{{X: 1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: -1}}, math3d.V3(1, 0, 0)},
		{[4]math3d.Vec3{{X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1}}, math3d.V3(0, 1, 0)},
		{[4]math3d.Vec3{{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: -1}}, math3d.V3(0, -1, 0)},
	}

	uvCorners := [4]math3d.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

	for _, f := range faces {
		base := len(mesh.Vertices)
		for i, c := range f.corners {
			mesh.Vertices = append(mesh.Vertices, models.MeshVertex{
				Position: c,
				Normal:   f.normal,
				UV:       uvCorners[i],
			})
		}
		mesh.Faces = append(mesh.Faces,
			models.Face{V: [3]int{base, base + 1, base + 2}, Material: -1},
			models.Face{V: [3]int{base, base + 2, base + 3}, Material: -1},
		)
	}

	mesh.CalculateBounds()
	return mesh
}

func loadModel(modelPath string) (*models.Mesh, *render.Texture, error) {
	if modelPath == "" {
		return fallbackCube(), nil, nil
	}

	ext := strings.ToLower(filepath.Ext(modelPath))
	switch ext {
	case ".glb", ".gltf":
		var embeddedImg image.Image
		mesh, embeddedImg, err := models.LoadGLBWithTexture(modelPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load model: %w", err)
		}
		var tex *render.Texture
		if embeddedImg != nil {
			tex = render.TextureFromImage(embeddedImg)
		}
		return mesh, tex, nil
	case ".obj":
		mesh, err := models.LoadOBJ(modelPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load model: %w", err)
		}
		return mesh, nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported format: %s (use .obj or .glb)", ext)
	}
}

func run(modelPath string) error {
	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	// Create renderer and presenter
	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	renderer, err := render.New(fbWidth, fbHeight)
	if err != nil {
		return err
	}

	// Create camera
	camera := render.NewCamera()
	camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))
	camera.SetFOV(math.Pi / 3)
	camera.SetClipPlanes(0.1, 100)
	camera.SetPosition(math3d.V3(0, 0, -5))
	camera.LookAt(math3d.V3(0, 0, 0))

	// Load model and texture
	mesh, texture, err := loadModel(modelPath)
	if err != nil {
		return err
	}

	if *texturePath != "" {
		loaded, err := render.LoadTexture(*texturePath)
		if err != nil {
			fmt.Printf("Warning: could not load texture: %v\n", err)
		} else {
			texture = loaded
		}
	}
	if texture == nil {
		texture = render.NewCheckerTexture(64, 64, 8, render.RGB(200, 200, 200), render.RGB(100, 100, 100))
	}

	// Center and scale model to a 2-unit box
	mesh.CalculateBounds()
	center := mesh.Center()
	size := mesh.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim > 0 {
		scale := 2.0 / maxDim
		transform := math3d.Scale(math3d.V3(scale, scale, scale)).Mul(math3d.Translate(center.Scale(-1)))
		mesh.Transform(transform)
	}

	hud := NewHUD(filepath.Base(mesh.Name), mesh.TriangleCount())

	// Initialize rotation and view state
	rotation := NewRotationState(*targetFPS)
	viewState := NewViewState()

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Input state
	inputTorque := struct{ pitch, yaw, roll float64 }{}
	const torqueStrength = 3.0

	var mouseDown bool
	var lastMouseX, lastMouseY int
	cameraZ := -5.0

	// Event handler
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				termRenderer = render.NewTerminalRenderer(term, width, height)
				fbWidth, fbHeight = termRenderer.FramebufferSize()
				renderer, _ = render.New(fbWidth, fbHeight)
				camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("q"):
					inputTorque.roll = -torqueStrength
				case ev.MatchString("r"):
					rotation.Reset()
					cameraZ = -5.0
					camera.SetPosition(math3d.V3(0, 0, cameraZ))
				case ev.MatchString("w", "up"):
					inputTorque.pitch = -torqueStrength
				case ev.MatchString("s", "down"):
					inputTorque.pitch = torqueStrength
				case ev.MatchString("a", "left"):
					inputTorque.yaw = -torqueStrength
				case ev.MatchString("d", "right"):
					inputTorque.yaw = torqueStrength
				case ev.MatchString("e"):
					inputTorque.roll = torqueStrength
				case ev.MatchString("space"):
					rotation.ApplyImpulse(
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
					)
				case ev.MatchString("+", "="):
					cameraZ = math.Min(-1, cameraZ+0.5)
					camera.SetPosition(math3d.V3(0, 0, cameraZ))
				case ev.MatchString("-", "_"):
					cameraZ = math.Max(-20, cameraZ-0.5)
					camera.SetPosition(math3d.V3(0, 0, cameraZ))
				case ev.MatchString("t"):
					viewState.TextureEnabled = !viewState.TextureEnabled
				case ev.MatchString("f"):
					viewState.FogEnabled = !viewState.FogEnabled
				case ev.MatchString("x"):
					if viewState.RenderMode == RenderModeWireframe {
						viewState.RenderMode = RenderModeTextured
					} else {
						viewState.RenderMode = RenderModeWireframe
					}
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					viewState.ShowHUD = !viewState.ShowHUD
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
					inputTorque.pitch = 0
				case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
					inputTorque.yaw = 0
				case ev.MatchString("q"), ev.MatchString("e"):
					inputTorque.roll = 0
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					rotation.ApplyImpulse(float64(dy)*0.03, float64(dx)*0.03, 0)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					cameraZ = math.Min(-1, cameraZ+0.5)
				case uv.MouseWheelDown:
					cameraZ = math.Max(-20, cameraZ-0.5)
				}
				camera.SetPosition(math3d.V3(0, 0, cameraZ))
			}
		}
	}()

	// Main loop
	targetDuration := time.Second / time.Duration(*targetFPS)
	lastFrame := time.Now()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	light := &render.DirectionalLight{Direction: viewState.LightDir, Ambient: 0.3}
	flatTexture := render.NewSolidTexture(4, 4, render.RGB(200, 200, 200))

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		if dt > 0.1 {
			dt = 0.1
		}

		// Apply input torque and decay it (key release events unreliable)
		rotation.ApplyImpulse(
			inputTorque.pitch*dt,
			inputTorque.yaw*dt,
			inputTorque.roll*dt,
		)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9
		inputTorque.roll *= 0.9

		// Update springs (harmonica handles timing internally)
		rotation.Update()

		// Build model transform
		transform := math3d.RotateX(rotation.Pitch.Position).
			Mul(math3d.RotateY(rotation.Yaw.Position)).
			Mul(math3d.RotateZ(rotation.Roll.Position))

		// Render
		renderer.ClearBuffers()
		renderer.SetFog(viewState.FogEnabled, 3, 12, 20, 20, 40)

		switch {
		case viewState.RenderMode == RenderModeWireframe:
			wf := render.NewWireframe(camera, renderer.Framebuffer())
			wf.DrawGrid(-1.5, 6, 0.5, render.RGB(50, 50, 60))
			wf.DrawMesh(mesh, transform, render.RGB(0, 255, 128))
			wf.DrawAxes(transform, 1.5)
			wf.DrawPoint(viewState.LightDir.Scale(2), 0.2, render.ColorYellow)
		case viewState.TextureEnabled:
			if err := renderer.DrawMesh(mesh, transform, camera, texture, light); err != nil {
				cleanup()
				return err
			}
		default:
			if err := renderer.DrawMesh(mesh, transform, camera, flatTexture, light); err != nil {
				cleanup()
				return err
			}
		}

		// Display
		termRenderer.Render(renderer.Framebuffer())
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		hud.UpdateFPS()
		hud.Render(width, height, viewState, renderer.Stats())

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
