package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"slantededge/pkg/mtf"
)

// TestDefaultConfig verifies the default thresholds and empty region set.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Edge.Width != mtf.EdgeWidth {
		t.Errorf("Expected default edge width %d, got %d", mtf.EdgeWidth, cfg.Edge.Width)
	}
	if cfg.Edge.MinAngle != mtf.DefaultMinAngle || cfg.Edge.MaxAngle != mtf.DefaultMaxAngle {
		t.Errorf("Expected default angles [%g, %g], got [%g, %g]",
			mtf.DefaultMinAngle, mtf.DefaultMaxAngle, cfg.Edge.MinAngle, cfg.Edge.MaxAngle)
	}
	for _, corner := range mtf.Corners {
		if len(cfg.Bounds(corner)) != 0 {
			t.Errorf("Expected region %s deselected by default", corner)
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

// TestConfigRoundTrip verifies saving and reloading a configuration.
func TestConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SetBounds(mtf.Center, []int{500, 1200, 800, 1600})
	cfg.SetBounds(mtf.TopLeft, []int{0, 200, 0, 200})
	cfg.Edge.Width = 75

	path := filepath.Join(t.TempDir(), "mtf.yaml")
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if !reflect.DeepEqual(loaded.Bounds(mtf.Center), []int{500, 1200, 800, 1600}) {
		t.Errorf("Center bounds mismatch: %v", loaded.Bounds(mtf.Center))
	}
	if !reflect.DeepEqual(loaded.Bounds(mtf.TopLeft), []int{0, 200, 0, 200}) {
		t.Errorf("Top-left bounds mismatch: %v", loaded.Bounds(mtf.TopLeft))
	}
	if len(loaded.Bounds(mtf.BottomRight)) != 0 {
		t.Errorf("Expected bottom-right to stay deselected, got %v", loaded.Bounds(mtf.BottomRight))
	}
	if loaded.Edge.Width != 75 {
		t.Errorf("Expected edge width 75, got %d", loaded.Edge.Width)
	}
	if loaded.Edge.MinAngle != cfg.Edge.MinAngle || loaded.Edge.MaxAngle != cfg.Edge.MaxAngle {
		t.Errorf("Angle thresholds changed on round trip: [%g, %g]", loaded.Edge.MinAngle, loaded.Edge.MaxAngle)
	}
}

// TestLoadConfigMissingFile verifies defaults when the file doesn't exist.
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Expected defaults for missing file, got error %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Error("Expected default config for missing file")
	}
}

// TestLoadConfigRejectsMalformedBounds verifies validation of region bounds.
func TestLoadConfigRejectsMalformedBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := "regions:\n  center: [1, 2, 3]\nedge:\n  width: 99\n  minAngle: 78\n  maxAngle: 88\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected error for a 3-element region entry")
	}
}

// TestValidateThresholds verifies threshold checks.
func TestValidateThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Edge.Width = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for zero edge width")
	}

	cfg = DefaultConfig()
	cfg.Edge.MinAngle = 88
	cfg.Edge.MaxAngle = 78
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for an empty angle interval")
	}
}

// TestRegionList verifies conversion to analyzer regions in canonical order.
func TestRegionList(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SetBounds(mtf.Center, []int{500, 1200, 800, 1600})

	regions := cfg.RegionList()
	if len(regions) != len(mtf.Corners) {
		t.Fatalf("Expected %d regions, got %d", len(mtf.Corners), len(regions))
	}

	center := regions[0]
	if center.Corner != mtf.Center {
		t.Errorf("Expected first region to be center, got %s", center.Corner)
	}
	want := mtf.Region{Corner: mtf.Center, MinRow: 500, MaxRow: 1200, MinCol: 800, MaxCol: 1600}
	if center != want {
		t.Errorf("Expected %+v, got %+v", want, center)
	}
	for _, region := range regions[1:] {
		if !region.Empty() {
			t.Errorf("Expected region %s to be empty", region.Corner)
		}
	}
}
