package engine

import (
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"

	"Hollowmere/internal/audio"
	"Hollowmere/internal/behaviour"
	"Hollowmere/internal/config"
	"Hollowmere/internal/input"
	"Hollowmere/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// maxFixedSteps bounds how many fixed updates a single frame may run.
const maxFixedSteps = 5

// Engine owns the window and drives a BehaviourManager with a fixed-step
// accumulator, followed by the per-frame update and the audio update.
type Engine struct {
	Width      int32
	Height     int32
	Title      string
	ClearColor [3]float32

	manager  *behaviour.BehaviourManager
	input    *input.State
	audio    audio.Engine
	bindings map[input.Action]string

	fixedStep    float64
	maxFrameTime float64
	accumulator  float64

	window           *glfw.Window
	poller           *input.GLFWPoller
	closers          []io.Closer
	onRenderCallback func(deltaTime float64) // Optional callback after the frame is cleared
	closed           bool
}

func New(cfg config.GameConfig, manager *behaviour.BehaviourManager, state *input.State, engine audio.Engine) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	bindings, err := cfg.ActionBindings()
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return &Engine{
		Width:        cfg.Window.Width,
		Height:       cfg.Window.Height,
		Title:        cfg.Window.Title,
		ClearColor:   cfg.ClearColor,
		manager:      manager,
		input:        state,
		audio:        engine,
		bindings:     bindings,
		fixedStep:    float64(cfg.FixedTimestep),
		maxFrameTime: float64(cfg.MaxFrameTime),
	}, nil
}

// OnClose registers c to be closed, in reverse order, by Close.
func (e *Engine) OnClose(c io.Closer) {
	e.closers = append(e.closers, c)
}

// SetOnRenderCallback sets a callback that will be called each frame after the clear
func (e *Engine) SetOnRenderCallback(callback func(deltaTime float64)) {
	e.onRenderCallback = callback
}

// Tick advances the game by frameTime seconds and returns how many fixed
// steps ran. frameTime is clamped to the configured max frame time; a
// backlog beyond maxFixedSteps is dropped.
func (e *Engine) Tick(frameTime float64) int {
	if frameTime < 0 {
		frameTime = 0
	}
	if frameTime > e.maxFrameTime {
		frameTime = e.maxFrameTime
	}

	e.accumulator += frameTime
	steps := 0
	for e.accumulator >= e.fixedStep && steps < maxFixedSteps {
		e.manager.UpdateAllFixed(float32(e.fixedStep))
		e.accumulator -= e.fixedStep
		steps++
	}
	if e.accumulator >= e.fixedStep {
		logger.Log.Debug("Dropping fixed-step backlog",
			zap.Float64("backlog", e.accumulator),
			zap.Int("steps", steps))
		e.accumulator = math.Mod(e.accumulator, e.fixedStep)
	}

	e.manager.UpdateAll(float32(frameTime))

	e.syncListener()
	e.audio.Update()
	return steps
}

// syncListener places the audio listener on the main camera, or on the
// first enabled camera when none is marked main.
func (e *Engine) syncListener() {
	var found *behaviour.CameraComponent
	for _, obj := range e.manager.Components().GetAllGameObjects() {
		if obj.Destroyed() || !obj.ActiveInHierarchy() {
			continue
		}
		cam, ok := behaviour.ComponentOf[*behaviour.CameraComponent](obj)
		if !ok || !cam.GetEnabled() {
			continue
		}
		if cam.IsMain {
			found = cam
			break
		}
		if found == nil {
			found = cam
		}
	}
	if found == nil {
		return
	}
	t := found.GetGameObject().Transform
	e.audio.SetListener(audio.Listener{Position: t.WorldPosition(), Forward: t.Forward()})
}

// RunHeadless runs frames fixed-length frames without a window.
func (e *Engine) RunHeadless(frames int) {
	logger.Log.Info("Running headless", zap.Int("frames", frames))
	for i := 0; i < frames; i++ {
		e.input.Advance()
		e.Tick(e.fixedStep)
	}
}

// Run opens the window and blocks until it is closed.
func (e *Engine) Run() error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("engine: init glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(int(e.Width), int(e.Height), e.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("engine: create window: %w", err)
	}
	e.window = window
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return fmt.Errorf("engine: init OpenGL: %w", err)
	}
	glfw.SwapInterval(1)
	applyTitleBar(window, e.ClearColor)
	gl.ClearColor(e.ClearColor[0], e.ClearColor[1], e.ClearColor[2], 1.0)

	e.poller = input.NewGLFWPoller(window, e.input)
	for action, key := range e.bindings {
		if err := e.poller.Bind(action, key); err != nil {
			logger.Log.Warn("Ignoring key binding", zap.Error(err))
		}
	}
	logger.Log.Info("Window ready",
		zap.Int32("width", e.Width),
		zap.Int32("height", e.Height),
		zap.Int("bindings", len(e.bindings)))

	e.renderLoop()
	return nil
}

func (e *Engine) renderLoop() {
	lastTime := glfw.GetTime()
	for !e.window.ShouldClose() {
		currentTime := glfw.GetTime()
		deltaTime := currentTime - lastTime
		lastTime = currentTime

		glfw.PollEvents()
		e.poller.Poll()

		width, height := e.window.GetFramebufferSize()
		if int32(width) != e.Width || int32(height) != e.Height {
			e.Width, e.Height = int32(width), int32(height)
		}
		gl.Viewport(0, 0, e.Width, e.Height)

		e.Tick(deltaTime)

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		if e.onRenderCallback != nil {
			e.onRenderCallback(deltaTime)
		}
		e.window.SwapBuffers()
	}
}

// GetWindow returns the GLFW window, nil until Run has created it
func (e *Engine) GetWindow() *glfw.Window {
	return e.window
}

// Close releases registered closers, the audio engine and the scene. It is
// safe to call more than once.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	e.manager.Components().Clear()
	e.manager.Clear()
	if err := e.audio.Close(); err != nil {
		errs = append(errs, err)
	}
	err := errors.Join(errs...)
	if err != nil {
		logger.Log.Warn("Engine shutdown reported errors", zap.Error(err))
	}
	return err
}
