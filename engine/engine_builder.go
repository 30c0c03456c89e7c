package engine

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-fpcam/engine/profiler"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler (nil keeps the default)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate.Store(int64(time.Duration(float64(time.Second) / fps)))
	}
}

// WithMaxTicks stops the engine after n ticks. 0 runs until Quit or window close.
//
// Parameters:
//   - n: tick limit
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMaxTicks(n uint64) EngineBuilderOption {
	return func(e *engine) {
		e.maxTicks = n
	}
}

// WithWindow sets the window the engine runs. Without a window the engine runs headless.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithUpdater registers an updater during engine construction.
//
// Parameters:
//   - u: the updater, typically a camera.FirstPersonController
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithUpdater(u Updater) EngineBuilderOption {
	return func(e *engine) {
		if u != nil {
			e.updaters = append(e.updaters, u)
		}
	}
}

// WithFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the frame loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.frameLimit = frameDuration(fps)
	}
}

// WithLogger sets the engine logger. Defaults to slog.Default().
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
