// Package input tracks which movement actions are held and whether pointer capture is active.
package input

import "github.com/Carmen-Shannon/oxy-fpcam/common"

// Action identifies a movement intent that one or more physical keys can drive.
type Action int

const (
	ActionNone Action = iota
	ActionForward
	ActionBackward
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
)

var actionNames = map[Action]string{
	ActionNone:     "none",
	ActionForward:  "forward",
	ActionBackward: "backward",
	ActionLeft:     "left",
	ActionRight:    "right",
	ActionUp:       "up",
	ActionDown:     "down",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "unknown"
}

// ActionByName resolves an action from its lowercase name.
//
// Parameters:
//   - name: one of forward, backward, left, right, up, down
//
// Returns:
//   - Action: the action
//   - bool: false if the name is not an action
func ActionByName(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name && a != ActionNone {
			return a, true
		}
	}
	return ActionNone, false
}

// Bindings maps key codes to actions. Several keys may share an action.
type Bindings map[uint32]Action

// DefaultBindings returns WASD plus arrow keys for planar movement and R/F for up/down.
//
// Returns:
//   - Bindings: a fresh map the caller may modify
func DefaultBindings() Bindings {
	return Bindings{
		common.KeyW:     ActionForward,
		common.KeyUp:    ActionForward,
		common.KeyS:     ActionBackward,
		common.KeyDown:  ActionBackward,
		common.KeyA:     ActionLeft,
		common.KeyLeft:  ActionLeft,
		common.KeyD:     ActionRight,
		common.KeyRight: ActionRight,
		common.KeyR:     ActionUp,
		common.KeyF:     ActionDown,
	}
}

// Flags is a snapshot of the held movement actions.
type Flags struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Up       bool
	Down     bool
}

// Any reports whether any planar movement action is held.
func (f Flags) Any() bool {
	return f.Forward || f.Backward || f.Left || f.Right
}

// State holds movement flags and the pointer-capture flag.
// It has no failure modes: unmapped keys are ignored and repeated presses are idempotent.
// A release clears its action even if another key bound to the same action is still down.
type State struct {
	bindings Bindings
	flags    Flags
	locked   bool
}

// NewState creates a State with the default bindings unless overridden by options.
//
// Parameters:
//   - options: functional options to configure the state
//
// Returns:
//   - *State: the new state with all flags cleared and unlocked
func NewState(options ...StateOption) *State {
	s := &State{
		bindings: DefaultBindings(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// SetKey records a press or release of code.
//
// Parameters:
//   - code: platform key code
//   - pressed: true on key-down, false on key-up
//
// Returns:
//   - Action: the action the key maps to, or ActionNone if unmapped
func (s *State) SetKey(code uint32, pressed bool) Action {
	a, ok := s.bindings[code]
	if !ok {
		return ActionNone
	}
	switch a {
	case ActionForward:
		s.flags.Forward = pressed
	case ActionBackward:
		s.flags.Backward = pressed
	case ActionLeft:
		s.flags.Left = pressed
	case ActionRight:
		s.flags.Right = pressed
	case ActionUp:
		s.flags.Up = pressed
	case ActionDown:
		s.flags.Down = pressed
	}
	return a
}

// SetLocked records the pointer-capture state reported by the platform.
func (s *State) SetLocked(locked bool) {
	s.locked = locked
}

// Locked reports whether pointer capture is active.
func (s *State) Locked() bool {
	return s.locked
}

// Flags returns a copy of the held movement actions.
func (s *State) Flags() Flags {
	return s.flags
}

// Bindings returns a copy of the key bindings.
func (s *State) Bindings() Bindings {
	cp := make(Bindings, len(s.bindings))
	for k, v := range s.bindings {
		cp[k] = v
	}
	return cp
}
