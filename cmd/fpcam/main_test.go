package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-fpcam/engine/config"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/playback"
	"github.com/go-gl/mathgl/mgl32"
)

func TestPrintSummaries(t *testing.T) {
	script := config.DefaultScript()
	results := [][]playback.Sample{
		{{Position: mgl32.Vec3{0, 10, -3}, Velocity: mgl32.Vec3{0, 0, -5}}},
	}
	var buf bytes.Buffer
	printSummaries(&buf, script, []uint64{42}, mgl32.Vec3{0, 50, 0}, results)

	out := buf.String()
	for _, want := range []string{"walk-forward", "SEED", "42", "-40.000", "3.000", "10.000"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRefuseOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fpcam.yaml")

	force = false
	if err := refuseOverwrite(path); err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := refuseOverwrite(path); err == nil {
		t.Error("existing file should be refused")
	}
	force = true
	defer func() { force = false }()
	if err := refuseOverwrite(path); err != nil {
		t.Errorf("--force: %v", err)
	}
}

func TestLoadConfigWithPreset(t *testing.T) {
	configFile, preset = "", "still"
	defer func() { preset = "" }()
	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Controller.JitterAmplitude != 0 {
		t.Errorf("preset not applied: %+v", cfg.Controller)
	}

	preset = "missing"
	if _, err := loadConfig(); err == nil {
		t.Error("unknown preset should fail")
	}
}
