package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls panel geometry and tileset discovery. Every field has a
// working default so the config file is optional.
type Config struct {
	TileRenderSize int      `yaml:"tile_render_size"`
	GridCols       int      `yaml:"grid_cols"`
	GridRows       int      `yaml:"grid_rows"`
	Padding        int      `yaml:"padding"`
	Gutter         int      `yaml:"gutter"`
	PageSize       int      `yaml:"page_size"`
	SearchRoots    []string `yaml:"search_roots"`
	Metadata       string   `yaml:"metadata"`
}

func defaultConfig() Config {
	return Config{
		TileRenderSize: 48,
		GridCols:       5,
		GridRows:       5,
		Padding:        8,
		Gutter:         4,
		SearchRoots:    []string{"maps", "imgs/tiled_tilesets"},
		Metadata:       "maps/tileset_metadata.json",
	}
}

// loadConfig reads a palette.yaml, filling defaults for anything unset. A
// missing file just yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.PageSize = cfg.GridCols * cfg.GridRows
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.TileRenderSize <= 0 {
		cfg.TileRenderSize = 48
	}
	if cfg.GridCols <= 0 {
		cfg.GridCols = 5
	}
	if cfg.GridRows <= 0 {
		cfg.GridRows = 5
	}
	if cfg.Padding <= 0 {
		cfg.Padding = 8
	}
	if cfg.Gutter <= 0 {
		cfg.Gutter = 4
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = cfg.GridCols * cfg.GridRows
	}
	if len(cfg.SearchRoots) == 0 {
		cfg.SearchRoots = defaultConfig().SearchRoots
	}
	if cfg.Metadata == "" {
		cfg.Metadata = defaultConfig().Metadata
	}
	return cfg, nil
}
