package tiled

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMap(t *testing.T) {
	m, err := LoadMap(filepath.Join("testdata", "map.tmx"))
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if m.Width != 4 || m.Height != 3 {
		t.Errorf("map size = %dx%d, want 4x3", m.Width, m.Height)
	}
	if got, ok := m.Property("music"); !ok || got != "battle_theme" {
		t.Errorf("music property = %q (%v), want battle_theme", got, ok)
	}
	if len(m.Tilesets) != 1 || m.Tilesets[0].FirstGID != 1 {
		t.Fatalf("tilesets = %+v, want one with firstgid 1", m.Tilesets)
	}
	if len(m.Layers) != 1 || m.Layers[0].Name != "ground" {
		t.Fatalf("layers = %+v, want one named ground", m.Layers)
	}
	if m.Layers[0].Data.Encoding != "csv" {
		t.Errorf("layer encoding = %q, want csv", m.Layers[0].Data.Encoding)
	}
	if len(m.ObjectGroups) != 1 {
		t.Fatalf("expected 1 object group, got %d", len(m.ObjectGroups))
	}
}

func TestSetPropertyRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"new_property", "weather", "rain"},
		{"replace_existing", "music", "village_theme"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, err := LoadMap(filepath.Join("testdata", "map.tmx"))
			if err != nil {
				t.Fatalf("LoadMap: %v", err)
			}
			m.SetProperty(c.key, c.value)

			out := filepath.Join(t.TempDir(), "out.tmx")
			if err := m.WriteFile(out); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}

			// The written file must reload with the same loader the game uses
			// and keep the property.
			reloaded, err := LoadMap(out)
			if err != nil {
				t.Fatalf("reload written map: %v", err)
			}
			if got, ok := reloaded.Property(c.key); !ok || got != c.value {
				t.Fatalf("reloaded property %s = %q (%v), want %q", c.key, got, ok, c.value)
			}
		})
	}
}

func TestRoundTripKeepsLayerData(t *testing.T) {
	m, err := LoadMap(filepath.Join("testdata", "map.tmx"))
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	m.SetProperty("weather", "rain")

	out := filepath.Join(t.TempDir(), "out.tmx")
	if err := m.WriteFile(out); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	reloaded, err := LoadMap(out)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}

	want := strings.TrimSpace(string(m.Layers[0].Data.Raw))
	got := strings.TrimSpace(string(reloaded.Layers[0].Data.Raw))
	if got != want {
		t.Fatalf("layer data changed across round-trip:\nwant %q\ngot  %q", want, got)
	}
	if len(reloaded.ObjectGroups) != len(m.ObjectGroups) {
		t.Fatalf("object groups lost: %d -> %d", len(m.ObjectGroups), len(reloaded.ObjectGroups))
	}
}

func TestSetPropertyOnMapWithoutProperties(t *testing.T) {
	m := &Map{Orientation: "orthogonal", Width: 1, Height: 1, TileWidth: 8, TileHeight: 8}
	m.SetProperty("key", "value")
	if got, ok := m.Property("key"); !ok || got != "value" {
		t.Fatalf("property = %q (%v), want value", got, ok)
	}

	out := filepath.Join(t.TempDir(), "bare.tmx")
	if err := m.WriteFile(out); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read written map: %v", err)
	}
	if !strings.HasPrefix(string(data), "<?xml") {
		t.Fatalf("written map missing XML declaration: %q", string(data)[:20])
	}
}
