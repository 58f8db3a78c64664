package tileset

import (
	"image"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"
)

// fakeCache builds a cache with one tileset of n property-less tiles.
func fakeCache(name string, n int) Cache {
	tiles := make([]*TileEntry, n)
	for i := range tiles {
		tiles[i] = &TileEntry{
			Tileset:    name,
			LocalID:    i,
			Image:      image.NewNRGBA(image.Rect(0, 0, 1, 1)),
			Properties: make(map[string]string),
		}
	}
	return Cache{name: &Data{Info: Info{Name: name, TileCount: n}, Tiles: tiles}}
}

func TestIDRangeJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want IDRange
	}{
		{"single_int", "7", IDRange{7, 7}},
		{"pair", "[5, 8]", IDRange{5, 8}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var r IDRange
			if err := r.UnmarshalJSON([]byte(c.in)); err != nil {
				t.Fatalf("unmarshal %q: %v", c.in, err)
			}
			if r != c.want {
				t.Fatalf("got %+v, want %+v", r, c.want)
			}
		})
	}

	t.Run("malformed", func(t *testing.T) {
		var r IDRange
		if err := r.UnmarshalJSON([]byte(`"x"`)); err == nil {
			t.Fatal("expected error for malformed id entry")
		}
	})
}

func TestApplyCategories(t *testing.T) {
	cache := fakeCache("terrain", 12)
	md := Metadata{
		"terrain": {
			Categories: []Category{
				{Name: "water", IDs: []IDRange{{5, 8}}},
				{Name: "deep", IDs: []IDRange{{8, 8}, {2, 2}}},
			},
		},
	}

	md.Apply(cache)

	tiles := cache["terrain"].Tiles
	for _, id := range []int{5, 6, 7} {
		if got := tiles[id].Properties["category"]; got != "water" {
			t.Errorf("tile %d category = %q, want water", id, got)
		}
	}
	// Tile 8 is in both categories; names are joined sorted.
	if got := tiles[8].Properties["category"]; got != "deep,water" {
		t.Errorf("tile 8 category = %q, want deep,water", got)
	}
	if got := tiles[2].Properties["category"]; got != "deep" {
		t.Errorf("tile 2 category = %q, want deep", got)
	}
	for _, id := range []int{0, 1, 3, 4, 9, 10, 11} {
		if _, ok := tiles[id].Properties["category"]; ok {
			t.Errorf("tile %d should have no category", id)
		}
	}

	t.Run("idempotent", func(t *testing.T) {
		before := make(map[int]map[string]string)
		for _, tile := range tiles {
			props := make(map[string]string, len(tile.Properties))
			for k, v := range tile.Properties {
				props[k] = v
			}
			before[tile.LocalID] = props
		}

		md.Apply(cache)

		for _, tile := range tiles {
			if !reflect.DeepEqual(tile.Properties, before[tile.LocalID]) {
				t.Fatalf("tile %d changed on second apply: %v -> %v",
					tile.LocalID, before[tile.LocalID], tile.Properties)
			}
		}
	})
}

func TestApplyProperties(t *testing.T) {
	cache := fakeCache("terrain", 3)
	cache["terrain"].Tiles[1].Properties["kind"] = "grass"

	md := Metadata{
		"terrain": {
			Properties: map[string]map[string]string{
				"1": {"kind": "mud", "cost": "2"},
				"2": {"cost": "3"},
			},
		},
		"absent": {
			Properties: map[string]map[string]string{"0": {"x": "y"}},
		},
	}

	md.Apply(cache)

	tiles := cache["terrain"].Tiles
	if tiles[1].Properties["kind"] != "mud" {
		t.Errorf("metadata should override tsx property, got %q", tiles[1].Properties["kind"])
	}
	if tiles[1].Properties["cost"] != "2" || tiles[2].Properties["cost"] != "3" {
		t.Errorf("cost overlay wrong: %v %v", tiles[1].Properties, tiles[2].Properties)
	}
	if len(tiles[0].Properties) != 0 {
		t.Errorf("tile 0 should be untouched, got %v", tiles[0].Properties)
	}
}

func TestMetadataFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata.json")

	t.Run("missing_file", func(t *testing.T) {
		md, err := LoadMetadata(path)
		if err != nil {
			t.Fatalf("LoadMetadata on missing file: %v", err)
		}
		if len(md) != 0 {
			t.Fatalf("expected empty metadata, got %v", md)
		}
	})

	md := Metadata{
		"terrain": {
			Categories: []Category{{Name: "water", IDs: []IDRange{{5, 8}, {11, 11}}}},
			Properties: map[string]map[string]string{"0": {"kind": "grass"}},
		},
	}
	if err := SaveMetadata(path, md); err != nil {
		t.Fatalf("SaveMetadata: %v", err)
	}
	loaded, err := LoadMetadata(path)
	if err != nil {
		t.Fatalf("LoadMetadata: %v", err)
	}
	if !reflect.DeepEqual(loaded, md) {
		t.Fatalf("round-trip mismatch:\nwant %+v\ngot  %+v", md, loaded)
	}

	// Applying loaded metadata must behave like the original; spot-check a
	// range edge and the single-id entry.
	cache := fakeCache("terrain", 12)
	loaded.Apply(cache)
	for _, id := range []int{5, 8, 11} {
		if got := cache["terrain"].Tiles[id].Properties["category"]; got != "water" {
			t.Errorf("tile %s category = %q, want water", strconv.Itoa(id), got)
		}
	}
}
