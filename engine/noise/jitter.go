package noise

// Default jitter parameters.
const (
	DefaultStep = 0.006
)

// DefaultPhases are the starting cursors for the three axes. They are far enough apart on the lattice that
// the axes sway independently.
var DefaultPhases = [3]float64{0, 1000, 2000}

// Jitter samples a Source at three independently advancing cursors to produce slow per-axis sway.
// Cursors only ever grow; Source is defined over all reals so there is no wrap-around.
type Jitter struct {
	src    Source
	phases [3]float64
	step   float64
}

// NewJitter creates a Jitter over src starting at phases and advancing each cursor by step per sample.
//
// Parameters:
//   - src: the noise source
//   - phases: initial cursor per axis (x, y, z)
//   - step: cursor increment per Sample call
//
// Returns:
//   - *Jitter: the sampler
func NewJitter(src Source, phases [3]float64, step float64) *Jitter {
	return &Jitter{
		src:    src,
		phases: phases,
		step:   step,
	}
}

// Sample returns one value in [0, 1) per axis, then advances every cursor by the step.
//
// Returns:
//   - [3]float32: x, y, z noise values
func (j *Jitter) Sample() [3]float32 {
	var out [3]float32
	for i := range j.phases {
		out[i] = j.src.Noise(j.phases[i])
		j.phases[i] += j.step
	}
	return out
}

// Phases returns the current cursor positions.
func (j *Jitter) Phases() [3]float64 {
	return j.phases
}

// Step returns the cursor increment.
func (j *Jitter) Step() float64 {
	return j.step
}
