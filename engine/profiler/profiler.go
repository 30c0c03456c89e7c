package profiler

import (
	"log/slog"
	"runtime"
	"time"
)

// Profiler tracks frame rate, worst frame time, and memory statistics for performance monitoring.
// Outputs stats to the logger at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	lastFrame      time.Time
	worstFrame     time.Duration
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	now    func() time.Time
	logger *slog.Logger
	last   Stats
}

// Stats is the summary produced at the end of each reporting interval.
type Stats struct {
	FPS         float64
	WorstFrame  time.Duration
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often stats are reported. Non-positive values are ignored.
//
// Parameters:
//   - d: reporting interval (default 1s)
//
// Returns:
//   - ProfilerOption: option function to apply
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithLogger sets the logger stats are written to. Defaults to slog.Default().
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - ProfilerOption: option function to apply
func WithLogger(logger *slog.Logger) ProfilerOption {
	return func(p *Profiler) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithClock replaces time.Now.
//
// Parameters:
//   - now: the clock function
//
// Returns:
//   - ProfilerOption: option function to apply
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
		logger:         slog.Default(),
	}
	for _, opt := range options {
		opt(p)
	}
	p.Reset()
	return p
}

// Reset restarts the reporting interval from the current time.
func (p *Profiler) Reset() {
	t := p.now()
	p.frameCount = 0
	p.worstFrame = 0
	p.lastTime = t
	p.lastFrame = t
}

// Last returns the stats from the most recent completed interval.
//
// Returns:
//   - Stats: zero value until the first interval completes
func (p *Profiler) Last() Stats {
	return p.last
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	if frame := currentTime.Sub(p.lastFrame); frame > p.worstFrame {
		p.worstFrame = frame
	}
	p.lastFrame = currentTime

	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	s := Stats{
		FPS:        float64(p.frameCount) / elapsed.Seconds(),
		WorstFrame: p.worstFrame,
		HeapMB:     float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:      float64(p.memStats.Sys) / 1024 / 1024,
		GCCount:    p.memStats.NumGC,
	}
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	s.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	if s.GCCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if s.GCCount-startIdx > 256 {
			startIdx = s.GCCount - 256
		}
		for i := startIdx; i < s.GCCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > s.MaxPauseUs {
				s.MaxPauseUs = pause
			}
		}
	}

	p.logger.Info("profiler",
		"fps", s.FPS,
		"worst_frame", s.WorstFrame,
		"heap_mb", s.HeapMB,
		"alloc_rate_mb_s", s.AllocRateMB,
		"gc", s.GCCount,
		"gc_last_pause_us", s.LastPauseUs,
		"gc_max_pause_us", s.MaxPauseUs,
		"sys_mb", s.SysMB,
	)

	p.last = s
	p.frameCount = 0
	p.worstFrame = 0
	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
