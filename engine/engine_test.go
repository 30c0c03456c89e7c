package engine

import (
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

type countingUpdater struct{ n atomic.Int64 }

func (c *countingUpdater) Update() { c.n.Add(1) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func runWithTimeout(t *testing.T, e Engine, timeout time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		e.Quit()
		t.Fatal("engine did not stop in time")
	}
}

func TestHeadlessEngineStopsAfterMaxTicks(t *testing.T) {
	u := &countingUpdater{}
	var callbacks atomic.Int64
	e := NewEngine(
		WithLogger(quietLogger()),
		WithTickRate(500),
		WithMaxTicks(5),
		WithUpdater(u),
	)
	e.SetTickCallback(func(dt float32) {
		if dt <= 0 {
			t.Errorf("tick delta = %v, want > 0", dt)
		}
		callbacks.Add(1)
	})

	runWithTimeout(t, e, 5*time.Second)

	if got := e.Ticks(); got != 5 {
		t.Errorf("Ticks() = %d, want 5", got)
	}
	if got := u.n.Load(); got != 5 {
		t.Errorf("updater ran %d times, want 5", got)
	}
	if got := callbacks.Load(); got != 5 {
		t.Errorf("tick callback ran %d times, want 5", got)
	}
}

func TestQuitStopsHeadlessEngine(t *testing.T) {
	e := NewEngine(WithLogger(quietLogger()), WithTickRate(1000))
	var frames atomic.Int64
	e.SetFrameCallback(func(float32) {
		if frames.Add(1) == 3 {
			e.Quit()
		}
	})
	e.SetFrameLimit(1000)

	runWithTimeout(t, e, 5*time.Second)
	e.Quit()

	if frames.Load() < 3 {
		t.Errorf("frames = %d, want >= 3", frames.Load())
	}
}

func TestAddUpdaterIgnoresNil(t *testing.T) {
	e := NewEngine(WithLogger(quietLogger())).(*engine)
	e.AddUpdater(nil)
	e.AddUpdater(&countingUpdater{})
	if len(e.updaters) != 1 {
		t.Errorf("updaters = %d, want 1", len(e.updaters))
	}
	if e.Window() != nil {
		t.Error("engine without window should be headless")
	}
}

func TestTickRateAndFrameLimit(t *testing.T) {
	tests := []struct {
		fps  float64
		tick time.Duration
		cap  time.Duration
	}{
		{fps: 0, tick: time.Second / 60, cap: 0},
		{fps: -5, tick: time.Second / 60, cap: 0},
		{fps: 120, tick: time.Second / 120, cap: time.Second / 120},
		{fps: 144, tick: time.Duration(float64(time.Second) / 144), cap: time.Duration(float64(time.Second) / 144)},
	}
	for _, tt := range tests {
		e := NewEngine(WithLogger(quietLogger()), WithTickRate(tt.fps), WithFrameLimit(tt.fps)).(*engine)
		if e.tickRate() != tt.tick {
			t.Errorf("fps %v: tick rate = %v, want %v", tt.fps, e.tickRate(), tt.tick)
		}
		if e.frameLimit != tt.cap {
			t.Errorf("fps %v: frame limit = %v, want %v", tt.fps, e.frameLimit, tt.cap)
		}
		e.SetTickRate(tt.fps)
		if e.tickRate() != tt.tick {
			t.Errorf("fps %v: SetTickRate = %v, want %v", tt.fps, e.tickRate(), tt.tick)
		}
	}
}

func TestSetTickRateWhileRunning(t *testing.T) {
	e := NewEngine(WithLogger(quietLogger()), WithTickRate(500)).(*engine)
	e.SetTickCallback(func(float32) {
		switch e.Ticks() {
		case 0:
			e.SetTickRate(1000)
		case 10:
			e.Quit()
		}
	})

	runWithTimeout(t, e, 5*time.Second)

	if got := e.tickRate(); got != time.Second/1000 {
		t.Errorf("tick rate after live change = %v, want %v", got, time.Second/1000)
	}
}

func TestProfilerToggle(t *testing.T) {
	e := NewEngine(WithLogger(quietLogger()), WithProfiling(true)).(*engine)
	if !e.profilingEnabled.Load() {
		t.Error("WithProfiling(true) not applied")
	}
	e.DisableProfiler()
	if e.profilingEnabled.Load() {
		t.Error("DisableProfiler had no effect")
	}
	e.EnableProfiler()
	if !e.profilingEnabled.Load() {
		t.Error("EnableProfiler had no effect")
	}
}
