// tmxprop round-trips a TMX map file: it reads the map, optionally adds or
// replaces a map-level property, writes the result, and re-loads the
// written file with the game's map loader to make sure it stays loadable.
package main

import (
	"flag"
	"log"
	"path/filepath"
	"strings"

	"github.com/Open-Games-Studios-OGS/rpg-tactical-fantasy-game/tiled"
)

func main() {
	input := flag.String("input", "", "Path to the source TMX file")
	output := flag.String("output", "", "Output path (defaults to in-place)")
	property := flag.String("property", "", "Map-level property to set, as key=value")
	flag.Parse()

	if *input == "" {
		log.Fatal("tmxprop: -input is required")
	}

	out := *output
	if out == "" {
		out = *input
	} else if !filepath.IsAbs(out) {
		// Keep tileset-relative paths valid by resolving relative outputs
		// next to the input map.
		out = filepath.Join(filepath.Dir(*input), out)
	}

	m, err := tiled.LoadMap(*input)
	if err != nil {
		log.Fatalf("tmxprop: %v", err)
	}

	if *property != "" {
		key, value, ok := strings.Cut(*property, "=")
		if !ok || key == "" {
			log.Fatalf("tmxprop: -property must be key=value, got %q", *property)
		}
		m.SetProperty(key, value)
	}

	if err := m.WriteFile(out); err != nil {
		log.Fatalf("tmxprop: %v", err)
	}

	// The written file must still open with the game loader.
	if _, err := tiled.LoadMap(out); err != nil {
		log.Fatalf("tmxprop: written map failed to reload: %v", err)
	}
	log.Printf("Wrote TMX to %s", out)
}
