package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/driftfield/field"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Field.BaseCount != 120 || cfg.Field.Opacity != 0.5 || !cfg.Field.Link {
		t.Errorf("unexpected field defaults: %+v", cfg.Field)
	}
	if cfg.Derived.Broadphase != field.BroadphasePairwise {
		t.Errorf("expected pairwise broadphase, got %v", cfg.Derived.Broadphase)
	}
	if cfg.Derived.Background != (color.RGBA{R: 0x0b, G: 0x0d, B: 0x17, A: 255}) {
		t.Errorf("unexpected background %+v", cfg.Derived.Background)
	}
	if cfg.Derived.LayerAlpha != 153 {
		t.Errorf("expected layer alpha 153, got %d", cfg.Derived.LayerAlpha)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("field:\n  opacity: 1.7\n  link: false\n  broadphase: grid\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	// Untouched keys keep their defaults.
	if cfg.Field.BaseCount != 120 {
		t.Errorf("expected base_count default, got %d", cfg.Field.BaseCount)
	}
	if cfg.Field.Opacity != 1 {
		t.Errorf("expected opacity clamped to 1, got %f", cfg.Field.Opacity)
	}

	opts := cfg.FieldOptions()
	if opts.Link || opts.Broadphase != field.BroadphaseGrid || opts.Opacity != 1 {
		t.Errorf("unexpected options %+v", opts)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"bad broadphase": "field:\n  broadphase: quadtree\n",
		"bad colour":     "screen:\n  background: teal\n",
		"zero width":     "screen:\n  width: 0\n",
		"negative count": "field:\n  base_count: -1\n",
		"not yaml":       "field: [",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(body), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Field.BaseCount = 250

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}
	if loaded.Field.BaseCount != 250 {
		t.Errorf("expected base_count 250, got %d", loaded.Field.BaseCount)
	}
}

func TestInitAndCfg(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatal(err)
	}
	if Cfg().Screen.TargetFPS != 60 {
		t.Errorf("expected 60 fps, got %d", Cfg().Screen.TargetFPS)
	}
}

func TestFieldOptionsUseDerivedBroadphase(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Derived.Broadphase = field.BroadphaseGrid

	opts := cfg.FieldOptions()
	if opts.Broadphase != field.BroadphaseGrid {
		t.Errorf("expected derived grid broadphase, got %v", opts.Broadphase)
	}
	if opts.BaseCount != cfg.Field.BaseCount || opts.Opacity != cfg.Field.Opacity || opts.Link != cfg.Field.Link {
		t.Errorf("options %+v do not match field section %+v", opts, cfg.Field)
	}
}
