package profiler

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type stepClock struct{ t time.Time }

func (c *stepClock) now() time.Time         { return c.t }
func (c *stepClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTickReportsAtInterval(t *testing.T) {
	clk := &stepClock{t: time.Unix(100, 0)}
	var buf bytes.Buffer
	p := NewProfiler(
		WithClock(clk.now),
		WithInterval(time.Second),
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
	)

	frames := []time.Duration{100, 100, 300, 100, 200, 200}
	var reported []bool
	for _, ms := range frames {
		clk.advance(ms * time.Millisecond)
		reported = append(reported, p.Tick())
	}

	for i, r := range reported[:len(reported)-1] {
		if r {
			t.Errorf("tick %d reported before the interval elapsed", i)
		}
	}
	if !reported[len(reported)-1] {
		t.Fatal("final tick should report")
	}

	s := p.Last()
	if s.FPS < 5.99 || s.FPS > 6.01 {
		t.Errorf("FPS = %v, want 6", s.FPS)
	}
	if s.WorstFrame != 300*time.Millisecond {
		t.Errorf("WorstFrame = %v, want 300ms", s.WorstFrame)
	}
	if !strings.Contains(buf.String(), "fps=") {
		t.Errorf("log output missing fps: %q", buf.String())
	}
}

func TestTickResetsWorstFrame(t *testing.T) {
	clk := &stepClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithClock(clk.now), WithInterval(500*time.Millisecond),
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))

	clk.advance(500 * time.Millisecond)
	if !p.Tick() {
		t.Fatal("expected report")
	}
	for range 5 {
		clk.advance(100 * time.Millisecond)
		p.Tick()
	}
	if got := p.Last().WorstFrame; got != 100*time.Millisecond {
		t.Errorf("WorstFrame = %v, want 100ms", got)
	}
}

func TestOptionsIgnoreInvalid(t *testing.T) {
	p := NewProfiler(WithInterval(0), WithInterval(-time.Second), WithLogger(nil), WithClock(nil))
	if p.updateInterval != time.Second {
		t.Errorf("updateInterval = %v, want 1s", p.updateInterval)
	}
	if p.logger == nil || p.now == nil {
		t.Error("nil options should keep defaults")
	}
}
