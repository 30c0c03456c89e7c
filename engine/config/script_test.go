package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-fpcam/common"
)

func TestDefaultScript(t *testing.T) {
	s := DefaultScript()
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
	if s.Start != [3]float32{0, 50, 0} || !s.Locked || s.Frames != 60 {
		t.Errorf("script = %+v", s)
	}
	if s.Events[0].KeyCode() != common.KeyW {
		t.Errorf("first event key = %d", s.Events[0].KeyCode())
	}
}

func TestLoadScript(t *testing.T) {
	path := writeFile(t, "walk.yaml", `
name: strafe
frames: 30
start: [1, 20, -3]
events:
  - {frame: 10, type: key_up, key: D}
  - {frame: 0, type: lock}
  - {frame: 0, type: key_down, key: D}
  - {frame: 5, type: pointer, pointer: [12, -4]}
`)
	s, err := LoadScript(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "strafe" || s.Frames != 30 || s.Dt != DefaultScriptDt {
		t.Errorf("script = %+v", s)
	}
	if s.Start != [3]float32{1, 20, -3} {
		t.Errorf("start = %v", s.Start)
	}
	wantTypes := []string{EventLock, EventKeyDown, EventPointer, EventKeyUp}
	for i, ev := range s.Events {
		if ev.Type != wantTypes[i] {
			t.Errorf("event %d type = %s, want %s", i, ev.Type, wantTypes[i])
		}
	}
	if s.Events[2].Pointer != [2]float32{12, -4} {
		t.Errorf("pointer = %v", s.Events[2].Pointer)
	}
}

func TestScriptValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Script)
	}{
		{"zero frames", func(s *Script) { s.Frames = 0 }},
		{"zero dt", func(s *Script) { s.Dt = 0 }},
		{"event past end", func(s *Script) { s.Events = []Event{{Frame: 60, Type: EventLock}} }},
		{"negative frame", func(s *Script) { s.Events = []Event{{Frame: -1, Type: EventLock}} }},
		{"unknown type", func(s *Script) { s.Events = []Event{{Type: "jump"}} }},
		{"unknown key", func(s *Script) { s.Events = []Event{{Type: EventKeyDown, Key: "??"}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultScript()
			tt.mutate(s)
			if err := s.Validate(); !errors.Is(err, ErrInvalidScript) {
				t.Errorf("err = %v, want ErrInvalidScript", err)
			}
		})
	}
}

func TestScriptSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	s := DefaultScript()
	s.Yaw = 0.5
	if err := s.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := LoadScript(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Yaw != 0.5 || got.Frames != s.Frames || len(got.Events) != 1 {
		t.Errorf("loaded = %+v", got)
	}
}
