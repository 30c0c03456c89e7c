// Package noise provides band-limited pseudo-random sources and the per-axis jitter sampler built on them.
package noise

import (
	"math"
	"math/rand/v2"
)

// Source produces smooth pseudo-random values in [0, 1) from a scalar input.
// Nearby inputs produce nearby outputs, so sampling at slowly advancing positions yields continuous motion.
type Source interface {
	// Noise samples the source at position x. Defined for all real x.
	//
	// Parameters:
	//   - x: sample position
	//
	// Returns:
	//   - float32: value in [0, 1)
	Noise(x float64) float32
}

const (
	// perlinSize is the lattice mask; the lattice holds perlinSize+1 random values.
	perlinSize = 4095
)

// Perlin is classic lattice value noise with cosine interpolation and octave summation, the same
// construction used by Processing/p5 noise(). With the default falloff of 0.5 the octave weights sum to
// less than one, so output stays in [0, 1).
type Perlin struct {
	lattice [perlinSize + 1]float64
	octaves int
	falloff float64
}

var _ Source = &Perlin{}

// NewPerlin creates a Perlin source seeded deterministically from seed.
// Two sources built from the same seed and options produce identical sequences.
//
// Parameters:
//   - seed: lattice seed
//   - options: functional options to configure octaves and falloff
//
// Returns:
//   - *Perlin: the configured source
func NewPerlin(seed uint64, options ...PerlinOption) *Perlin {
	p := &Perlin{
		octaves: 4,
		falloff: 0.5,
	}
	for _, opt := range options {
		opt(p)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := range p.lattice {
		p.lattice[i] = rng.Float64()
	}
	return p
}

// Octaves returns the number of summed octaves.
func (p *Perlin) Octaves() int {
	return p.octaves
}

// Falloff returns the per-octave amplitude multiplier.
func (p *Perlin) Falloff() float64 {
	return p.falloff
}

func (p *Perlin) Noise(x float64) float32 {
	if x < 0 {
		x = -x
	}

	xi := int(math.Floor(x))
	xf := x - float64(xi)

	var r float64
	amp := 0.5
	for o := 0; o < p.octaves; o++ {
		of := xi
		rxf := scaledCosine(xf)

		n1 := p.lattice[of&perlinSize]
		n1 += rxf * (p.lattice[(of+1)&perlinSize] - n1)

		r += n1 * amp
		amp *= p.falloff

		xi <<= 1
		xf *= 2
		if xf >= 1 {
			xi++
			xf--
		}
	}

	// Weights sum below one for falloff <= 0.5, but a larger falloff can reach it.
	out := float32(r)
	if out >= 1 {
		out = math.Nextafter32(1, 0)
	}
	return out
}

// scaledCosine maps [0, 1] to [0, 1] along half a cosine wave, easing lattice interpolation.
func scaledCosine(i float64) float64 {
	return 0.5 * (1.0 - math.Cos(i*math.Pi))
}
