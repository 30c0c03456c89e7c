package input

// StateOption is a functional option for configuring a State.
type StateOption func(*State)

// WithBindings replaces the default key bindings. A nil or empty map keeps the defaults.
//
// Parameters:
//   - b: key code to action map
//
// Returns:
//   - StateOption: functional option to set the bindings
func WithBindings(b Bindings) StateOption {
	return func(s *State) {
		if len(b) == 0 {
			return
		}
		s.bindings = make(Bindings, len(b))
		for k, v := range b {
			s.bindings[k] = v
		}
	}
}

// WithBinding adds or replaces a single key binding on top of the current bindings.
//
// Parameters:
//   - code: key code
//   - a: action to bind
//
// Returns:
//   - StateOption: functional option to add the binding
func WithBinding(code uint32, a Action) StateOption {
	return func(s *State) {
		s.bindings[code] = a
	}
}
