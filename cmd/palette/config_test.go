package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "palette.yaml"))
	if err != nil {
		t.Fatalf("loadConfig on missing file: %v", err)
	}
	want := defaultConfig()
	if cfg.TileRenderSize != want.TileRenderSize || cfg.GridCols != want.GridCols ||
		cfg.GridRows != want.GridRows {
		t.Fatalf("missing config should use defaults, got %+v", cfg)
	}
	if cfg.PageSize != want.GridCols*want.GridRows {
		t.Fatalf("default page size = %d, want %d", cfg.PageSize, want.GridCols*want.GridRows)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.yaml")
	content := `
tile_render_size: 32
grid_cols: 8
search_roots:
  - custom/tilesets
metadata: custom/meta.json
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.TileRenderSize != 32 || cfg.GridCols != 8 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.GridRows != 5 {
		t.Errorf("unset grid_rows should default to 5, got %d", cfg.GridRows)
	}
	if cfg.PageSize != 8*5 {
		t.Errorf("page size should default to grid size, got %d", cfg.PageSize)
	}
	if len(cfg.SearchRoots) != 1 || cfg.SearchRoots[0] != "custom/tilesets" {
		t.Errorf("search roots = %v", cfg.SearchRoots)
	}
	if cfg.Metadata != "custom/meta.json" {
		t.Errorf("metadata = %q", cfg.Metadata)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.yaml")
	if err := os.WriteFile(path, []byte("grid_cols: [nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}
