package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadOverridesAndValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ocrprep.yaml")
	data := []byte("output: out\nmin_area: 25\nworkers: -3\njpeg_quality: 400\ninterpolation: nearest\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OutputDir != "out" {
		t.Errorf("Expected output out, got %s", cfg.OutputDir)
	}
	if cfg.MinArea != 25 {
		t.Errorf("Expected min_area 25, got %d", cfg.MinArea)
	}
	if cfg.Workers != 1 {
		t.Errorf("Expected workers clamped to 1, got %d", cfg.Workers)
	}
	if cfg.JPEGQuality != 95 {
		t.Errorf("Expected quality reset to 95, got %d", cfg.JPEGQuality)
	}
	if cfg.Interpolation != "nearest" {
		t.Errorf("Expected nearest, got %s", cfg.Interpolation)
	}
	// Untouched fields keep their defaults.
	if cfg.Margin != 3 || cfg.PatchSize != 32 || cfg.LastIndex != 20 {
		t.Errorf("Defaults lost: %+v", cfg)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("min_area: [1, 2"), 0644)

	cfg, err := Load(path)
	if err == nil {
		t.Error("Expected parse error, got nil")
	}
	if cfg == nil || cfg.MinArea != 10 {
		t.Errorf("Expected defaults alongside the error, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := DefaultConfig()
	cfg.InputPath = "scans/page.pdf"
	cfg.WriteManifest = true

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}
