package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/Carmen-Shannon/oxy-fpcam/common"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScript = errors.New("invalid script")

// Script event types.
const (
	EventKeyDown = "key_down"
	EventKeyUp   = "key_up"
	EventPointer = "pointer"
	EventLock    = "lock"
	EventUnlock  = "unlock"
)

const (
	DefaultScriptFrames = 60
	DefaultScriptDt     = 1.0 / 60
)

// Script describes a headless replay: a fixed number of frames at a fixed step, with input events
// delivered before the update of the frame they name.
type Script struct {
	Name   string     `yaml:"name"`
	Frames int        `yaml:"frames"`
	Dt     float64    `yaml:"dt"`
	Start  [3]float32 `yaml:"start"`
	Yaw    float32    `yaml:"yaw"`
	Pitch  float32    `yaml:"pitch"`
	Locked bool       `yaml:"locked"`
	Events []Event    `yaml:"events"`
}

type Event struct {
	Frame   int        `yaml:"frame"`
	Type    string     `yaml:"type"`
	Key     string     `yaml:"key,omitempty"`
	Pointer [2]float32 `yaml:"pointer,omitempty"`
}

// DefaultScript walks forward from (0, 50, 0) for one second while falling toward the ground.
func DefaultScript() *Script {
	return &Script{
		Name:   "walk-forward",
		Frames: DefaultScriptFrames,
		Dt:     DefaultScriptDt,
		Start:  [3]float32{0, 50, 0},
		Locked: true,
		Events: []Event{
			{Frame: 0, Type: EventKeyDown, Key: "W"},
		},
	}
}

// LoadScript reads a YAML script on top of DefaultScript's frame count and step, validates it,
// and sorts its events by frame.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := &Script{Frames: DefaultScriptFrames, Dt: DefaultScriptDt}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

func (s *Script) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks frame bounds and event payloads, then orders events by frame. Events on the same
// frame keep their file order.
func (s *Script) Validate() error {
	if s.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive", ErrInvalidScript)
	}
	if s.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive", ErrInvalidScript)
	}
	for i, ev := range s.Events {
		if ev.Frame < 0 || ev.Frame >= s.Frames {
			return fmt.Errorf("%w: event %d frame %d outside [0, %d)", ErrInvalidScript, i, ev.Frame, s.Frames)
		}
		switch ev.Type {
		case EventKeyDown, EventKeyUp:
			if _, ok := common.KeyByName(ev.Key); !ok {
				return fmt.Errorf("%w: event %d unknown key %q", ErrInvalidScript, i, ev.Key)
			}
		case EventPointer, EventLock, EventUnlock:
		default:
			return fmt.Errorf("%w: event %d unknown type %q", ErrInvalidScript, i, ev.Type)
		}
	}
	sort.SliceStable(s.Events, func(i, j int) bool {
		return s.Events[i].Frame < s.Events[j].Frame
	})
	return nil
}

// KeyCode resolves the event's key name.
func (e Event) KeyCode() uint32 {
	code, _ := common.KeyByName(e.Key)
	return code
}

// Clone returns a copy whose events can be reordered without affecting s.
func (s *Script) Clone() *Script {
	cp := *s
	cp.Events = append([]Event(nil), s.Events...)
	return &cp
}
