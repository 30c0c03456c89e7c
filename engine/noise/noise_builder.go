package noise

// PerlinOption is a functional option for configuring a Perlin source.
type PerlinOption func(*Perlin)

// WithOctaves sets how many octaves are summed. Values < 1 are treated as 1.
//
// Parameters:
//   - octaves: number of octaves
//
// Returns:
//   - PerlinOption: functional option to set the octave count
func WithOctaves(octaves int) PerlinOption {
	return func(p *Perlin) {
		p.octaves = max(octaves, 1)
	}
}

// WithFalloff sets the amplitude multiplier applied per octave.
//
// Parameters:
//   - falloff: multiplier in (0, 1); values outside that range are ignored
//
// Returns:
//   - PerlinOption: functional option to set the falloff
func WithFalloff(falloff float64) PerlinOption {
	return func(p *Perlin) {
		if falloff > 0 && falloff < 1 {
			p.falloff = falloff
		}
	}
}
