package window

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-fpcam/common"
)

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar. An empty title keeps the default.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = common.Coalesce(title, w.title)
	}
}

// WithWidth sets the initial window width.
//
// Parameters:
//   - width: initial width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
	}
}

// WithHeight sets the initial window height.
//
// Parameters:
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.height = height
	}
}

// WithClickToLock enables or disables requesting pointer lock on a left click.
//
// Parameters:
//   - enabled: true to lock on click (default)
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithClickToLock(enabled bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.clickToLock = enabled
	}
}

// WithEscapeUnlocks controls whether Escape releases pointer lock before closing the window.
// When disabled, Escape is delivered to listeners like any other key.
//
// Parameters:
//   - enabled: true to reserve Escape (default)
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithEscapeUnlocks(enabled bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.escapeUnlocks = enabled
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) WindowBuilderOption {
	return func(w *engineWindow) {
		if logger != nil {
			w.logger = logger
		}
	}
}
