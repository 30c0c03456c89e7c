package engine

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-fpcam/engine/profiler"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/window"
)

// Updater is advanced once per engine tick. camera.FirstPersonController satisfies it.
type Updater interface {
	Update()
}

// engine implements the Engine interface.
// Coordinates the tick, frame, and window threads.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window
	logger *slog.Logger

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate atomic.Int64 // nanoseconds per tick
	tickCallback   func(deltaTime float32)
	frameCallback  func(deltaTime float32)
	resizeCallback func(width, height int)

	updatersMu sync.Mutex
	updaters   []Updater

	ticks    atomic.Uint64
	maxTicks uint64 // 0 = run until quit

	frameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It orchestrates the tick loop, frame loop, and window management.
type Engine interface {
	// Window returns the underlying window, or nil when running headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	// Updaters and the tick callback run at this rate.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick, after all updaters.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetFrameCallback registers the function called each frame of the frame loop.
	// Use this for presentation work such as reading the camera pose.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetFrameCallback(callback func(deltaTime float32))

	// SetResizeCallback registers the function called when the window framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving the new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the frame loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetFrameLimit(fps float64)

	// AddUpdater registers u to be advanced once per tick, in registration order.
	//
	// Parameters:
	//   - u: the updater
	AddUpdater(u Updater)

	// Ticks returns the number of ticks completed since Run started.
	//
	// Returns:
	//   - uint64: tick count
	Ticks() uint64

	// Run starts the engine loops. With a window it must be called from the thread that created the window
	// and blocks until the window closes or Quit is called; the window is closed on return.
	// Headless it blocks until Quit is called or the tick limit is reached.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		logger:          slog.Default(),
	}
	e.engineTickRate.Store(int64(time.Second / 60))

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			e.logger.Debug("window resized", "width", width, "height", height)
			if e.resizeCallback != nil {
				e.resizeCallback(width, height)
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	e.running.Store(true)
	e.logger.Info("engine starting", "tick_rate", e.tickRate(), "headless", e.window == nil)
	e.profiler.Reset()
	e.handle()

	if e.window != nil {
		// the window is only touched from the thread that created it
		e.window.SetUpdateCallback(func() {
			select {
			case <-e.quitChannel:
				_ = e.window.Close()
			default:
			}
		})
		e.window.ProcessMessages()
		e.signalQuit()
		_ = e.window.Close()
	} else {
		<-e.quitChannel
	}

	e.wg.Wait()
	e.logger.Info("engine stopped", "ticks", e.ticks.Load())
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
	})
}

// handle launches the tick, frame, and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(3)
	go e.handleEngine()
	go e.handleFrame()
	go e.handleQuit()
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Advances every updater then fires the tick callback, and listens for dynamic rate changes
// via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.tickRate())
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			e.updatersMu.Lock()
			updaters := append([]Updater(nil), e.updaters...)
			e.updatersMu.Unlock()
			for _, u := range updaters {
				u.Update()
			}

			if e.tickCallback != nil {
				e.tickCallback(dt)
			}

			if n := e.ticks.Add(1); e.maxTicks > 0 && n >= e.maxTicks {
				e.signalQuit()
				return
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate.Store(int64(newRate))
		}
	}
}

// handleFrame runs the uncapped (or frame-limited) frame loop in its own goroutine.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleFrame() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("frame goroutine recovered from panic", "panic", r)
			e.signalQuit()
		}
	}()

	lastFrame := time.Now()
	idle := e.tickRate()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastFrame).Seconds())
			lastFrame = now

			if e.frameCallback != nil {
				e.frameCallback(dt)
			}

			if e.profilingEnabled.Load() {
				e.profiler.Tick()
			}

			limit := e.frameLimit
			if limit <= 0 && e.frameCallback == nil {
				// nothing to present; yield at the tick rate instead of spinning
				limit = idle
			}
			if limit > 0 {
				if remaining := limit - time.Since(lastFrame); remaining > 0 {
					select {
					case <-e.quitChannel:
						return
					case <-time.After(remaining):
					}
				}
			}
		}
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	if e.running.Load() {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate.Store(int64(newRate))
	}
}

// tickRate returns the current duration of one tick.
func (e *engine) tickRate() time.Duration {
	return time.Duration(e.engineTickRate.Load())
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetFrameCallback(callback func(deltaTime float32)) {
	e.frameCallback = callback
}

func (e *engine) SetResizeCallback(callback func(width, height int)) {
	e.resizeCallback = callback
}

func (e *engine) SetFrameLimit(fps float64) {
	e.frameLimit = frameDuration(fps)
}

func (e *engine) AddUpdater(u Updater) {
	if u == nil {
		return
	}
	e.updatersMu.Lock()
	e.updaters = append(e.updaters, u)
	e.updatersMu.Unlock()
}

func (e *engine) Ticks() uint64 {
	return e.ticks.Load()
}

// frameDuration converts a frames-per-second cap to a minimum frame duration. Non-positive means uncapped.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
