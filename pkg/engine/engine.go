package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"skyline/internal/logger"
	"skyline/internal/util"
	"skyline/pkg/config"
	"skyline/pkg/heightfield"
)

const (
	horizonSpeed = 120.0 // rows per second
	heightSpeed  = 200.0 // world units per second
	zoomStep     = 0.9
)

// Engine is the interactive viewer: it owns the window, the height field
// registry and the render loop
type Engine struct {
	window    *glfw.Window
	config    *config.Config
	logger    *logger.Logger
	input     *InputHandler
	presenter *Presenter
	registry  *heightfield.Registry
	terrain   heightfield.Handle
	camera    *Camera
	renderer  *Renderer

	angle     float64
	radius    float64
	eye       float64
	orbiting  bool
	isRunning bool
	frameRate int
	lastTitle time.Time
}

// NewEngine opens the viewer window and builds the initial terrain
func NewEngine(cfg *config.Config, log *logger.Logger) (*Engine, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	// Set window hints
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Graphics.Width, cfg.Graphics.Height, "Skyline", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %v", err)
	}

	window.MakeContextCurrent()
	if cfg.Graphics.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	presenter, err := NewPresenter(cfg.Screen.Width, cfg.Screen.Height)
	if err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, err
	}

	e := &Engine{
		window:    window,
		config:    cfg,
		logger:    log.Named("viewer"),
		input:     NewInputHandler(window),
		presenter: presenter,
		registry:  heightfield.NewRegistry(),
		camera:    NewOrbitCamera(cfg.Camera, cfg.Screen),
		angle:     cfg.Camera.AngleDegrees,
		radius:    cfg.Camera.OrbitRadius,
		eye:       cfg.Camera.Height,
		orbiting:  cfg.Camera.OrbitSpeed != 0,
		frameRate: cfg.Graphics.FrameRate,
	}

	field, err := e.loadTerrain(cfg.Terrain.Seed)
	if err != nil {
		e.cleanup()
		return nil, err
	}

	e.renderer, err = NewRenderer(field, e.camera, cfg.Render, log)
	if err != nil {
		e.cleanup()
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}

	return e, nil
}

// loadTerrain builds a field, registers it and releases the previous one
func (e *Engine) loadTerrain(seed int64) (*heightfield.HeightField, error) {
	field, err := BuildField(e.config, seed, e.logger.Named("terrain"))
	if err != nil {
		return nil, err
	}

	previous := e.terrain
	e.terrain = e.registry.Add(field)
	if previous != 0 {
		if err := e.registry.Release(previous); err != nil {
			e.logger.Warnf("Failed to release terrain %d: %v", previous, err)
		}
	}
	instrumentHeightFields(e.registry.Len())
	return field, nil
}

// Run starts the main loop and returns when the window closes
func (e *Engine) Run() {
	e.isRunning = true
	lastUpdate := time.Now()

	for e.isRunning && !e.window.ShouldClose() {
		currentTime := time.Now()
		deltaTime := currentTime.Sub(lastUpdate).Seconds()
		lastUpdate = currentTime

		glfw.PollEvents()
		e.input.Update()
		e.processInput(deltaTime)

		stats := e.renderer.Render()
		width, height := e.window.GetFramebufferSize()
		e.presenter.Present(e.renderer.Frame(), width, height)
		e.window.SwapBuffers()
		e.updateTitle(stats, currentTime)

		// Cap the frame rate
		if e.frameRate > 0 {
			frameTime := time.Since(currentTime)
			targetFrameTime := time.Second / time.Duration(e.frameRate)
			if frameTime < targetFrameTime {
				time.Sleep(targetFrameTime - frameTime)
			}
		}
	}

	e.cleanup()
}

// processInput applies held keys to the camera and handles one-shot keys
func (e *Engine) processInput(dt float64) {
	in := e.input

	if in.IsKeyPressed(glfw.KeyEscape) {
		e.isRunning = false
		return
	}
	if in.IsKeyPressed(glfw.KeySpace) {
		e.orbiting = !e.orbiting
	}
	if in.IsKeyPressed(glfw.KeyT) {
		e.logger.Infof("Traversal: %s", e.renderer.ToggleTraversal())
	}
	if in.IsKeyPressed(glfw.KeyR) {
		field, err := e.loadTerrain(rand.Int63())
		if err != nil {
			e.logger.Errorf("Failed to regenerate terrain: %v", err)
		} else {
			e.renderer.SetField(field)
		}
	}
	if in.IsKeyPressed(glfw.KeyL) {
		e.logger.Infof("Log level: %s", toggleDebug(e.logger))
	}
	if in.IsKeyPressed(glfw.KeyP) {
		path := fmt.Sprintf("skyline-%d.png", time.Now().Unix())
		if err := e.renderer.Frame().WritePNG(path); err != nil {
			e.logger.Errorf("Failed to save snapshot: %v", err)
		} else {
			e.logger.Infof("Snapshot saved to %s", path)
		}
	}

	speed := e.config.Camera.OrbitSpeed
	if speed == 0 {
		speed = 30
	}
	if e.orbiting {
		e.angle += e.config.Camera.OrbitSpeed * dt
	}
	e.angle = util.WrapDegrees(e.angle + in.Axis(glfw.KeyLeft, glfw.KeyRight)*speed*3*dt)
	e.eye += in.Axis(glfw.KeyPageDown, glfw.KeyPageUp) * heightSpeed * dt

	half := 0.5 * float64(e.camera.Height)
	e.camera.Horizon = util.Clamp(e.camera.Horizon+in.Axis(glfw.KeyUp, glfw.KeyDown)*horizonSpeed*dt, -2*half, 2*half)

	if wheel := in.GetMouseWheelDelta(); wheel != 0 {
		for ; wheel > 0; wheel-- {
			e.radius *= zoomStep
		}
		for ; wheel < 0; wheel++ {
			e.radius /= zoomStep
		}
	}

	e.camera.Orbit(e.radius, e.eye, e.angle)
}

// toggleDebug flips log between DEBUG and INFO and returns the new level
func toggleDebug(log *logger.Logger) logger.LogLevel {
	if log.Level() == logger.DEBUG {
		log.SetLevel("info")
	} else {
		log.SetLevel("debug")
	}
	return log.Level()
}

// updateTitle refreshes the window title about twice a second
func (e *Engine) updateTitle(stats FrameStats, now time.Time) {
	if now.Sub(e.lastTitle) < 500*time.Millisecond {
		return
	}
	e.lastTitle = now

	fps := 0.0
	if stats.Duration > 0 {
		fps = 1 / stats.Duration.Seconds()
	}
	e.window.SetTitle(fmt.Sprintf("Skyline - %s - %.0f fps render - %d events",
		stats.Traversal, fps, stats.Events))
}

// cleanup performs necessary cleanup before exiting
func (e *Engine) cleanup() {
	e.logger.Info("Shutting down viewer...")
	if e.terrain != 0 {
		if err := e.registry.Release(e.terrain); err == nil {
			instrumentHeightFields(e.registry.Len())
		}
		e.terrain = 0
	}
	e.presenter.Close()
	e.window.Destroy()
	glfw.Terminate()
}
