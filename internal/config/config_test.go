package config

import (
	"math"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Bodies) != 1 {
		t.Fatalf("expected 1 default body, got %d", len(cfg.Bodies))
	}
	if cfg.Bodies[0].Period <= 0 {
		t.Error("period should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidateRejectsBadBodies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bodies[0].Period = -1

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative period")
	}

	cfg = DefaultConfig()
	cfg.Bodies[0].Eccentricity = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for eccentricity >= 1")
	}

	cfg = DefaultConfig()
	cfg.Sweep.Samples = 1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for single-sample sweep")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system.yaml")

	cfg := DefaultConfig()
	cfg.Bodies = append(cfg.Bodies, BodyConfig{Period: 2.0, Radius: 0.02, Inclination: 1.5})
	cfg.Sweep.Samples = 50

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(loaded.Bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(loaded.Bodies))
	}
	if loaded.Bodies[1].Period != 2.0 {
		t.Errorf("expected period 2.0, got %f", loaded.Bodies[1].Period)
	}
	if loaded.Sweep.Samples != 50 {
		t.Errorf("expected 50 samples, got %d", loaded.Sweep.Samples)
	}
}

func TestSystemConstruction(t *testing.T) {
	cfg := GetPreset("trappist-like")
	if cfg == nil {
		t.Fatal("expected trappist-like preset")
	}

	sys, err := cfg.System()
	if err != nil {
		t.Fatalf("System: %v", err)
	}
	if sys.Len() != 3 {
		t.Errorf("expected 3 bodies, got %d", sys.Len())
	}
}

func TestGetPresetNotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestTimesGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sweep = SweepConfig{Start: 0, Stop: 1, Samples: 5}

	times := cfg.Times()
	if times.Dim(0) != 5 {
		t.Fatalf("expected 5 samples, got %d", times.Dim(0))
	}
	vs := times.Values()
	if vs[0] != 0 || math.Abs(vs[4]-1.0) > 1e-12 {
		t.Errorf("grid endpoints wrong: %v", vs)
	}
	if math.Abs(vs[1]-0.25) > 1e-12 {
		t.Errorf("grid spacing wrong: %v", vs)
	}
}
