package tileset

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Metadata is the editor-only side-file, keyed by tileset name. It overlays
// categories and per-tile properties onto loaded tilesets without touching
// the .tsx files.
type Metadata map[string]TilesetMeta

// TilesetMeta holds the overlay for one tileset.
type TilesetMeta struct {
	Categories []Category                   `json:"categories,omitempty"`
	Properties map[string]map[string]string `json:"properties,omitempty"`
}

// Category names a group of tiles by id entries.
type Category struct {
	Name string    `json:"name"`
	IDs  []IDRange `json:"ids"`
}

// IDRange is an inclusive tile-id range. The JSON form is either a single
// int or a two-element [start, end] array.
type IDRange struct {
	Start int
	End   int
}

func (r *IDRange) UnmarshalJSON(data []byte) error {
	var single int
	if err := json.Unmarshal(data, &single); err == nil {
		r.Start, r.End = single, single
		return nil
	}
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("tileset: id entry must be an int or [start, end]: %s", data)
	}
	r.Start, r.End = pair[0], pair[1]
	return nil
}

func (r IDRange) MarshalJSON() ([]byte, error) {
	if r.Start == r.End {
		return json.Marshal(r.Start)
	}
	return json.Marshal([2]int{r.Start, r.End})
}

// Contains reports whether the range covers the tile id.
func (r IDRange) Contains(id int) bool {
	return id >= r.Start && id <= r.End
}

// LoadMetadata reads a metadata side-file. A missing file is not an error;
// it yields empty metadata.
func LoadMetadata(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Metadata{}, nil
		}
		return nil, fmt.Errorf("tileset: read metadata %s: %w", path, err)
	}
	var md Metadata
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("tileset: parse metadata %s: %w", path, err)
	}
	return md, nil
}

// SaveMetadata writes the metadata side-file as indented JSON.
func SaveMetadata(path string, md Metadata) error {
	data, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return fmt.Errorf("tileset: marshal metadata: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("tileset: write metadata %s: %w", path, err)
	}
	return nil
}

// Apply overlays the metadata onto the cache. Per-tile properties are
// merged in, and each categorized tile gets a "category" property holding
// the sorted, comma-joined category names. Applying the same metadata
// twice leaves the cache unchanged.
func (md Metadata) Apply(cache Cache) {
	for tilesetName, meta := range md {
		data, ok := cache[tilesetName]
		if !ok {
			continue
		}

		catsByID := make(map[int]map[string]struct{})
		for _, cat := range meta.Categories {
			if cat.Name == "" {
				continue
			}
			for _, r := range cat.IDs {
				for id := r.Start; id <= r.End; id++ {
					if catsByID[id] == nil {
						catsByID[id] = make(map[string]struct{})
					}
					catsByID[id][cat.Name] = struct{}{}
				}
			}
		}

		for _, tile := range data.Tiles {
			if props, ok := meta.Properties[strconv.Itoa(tile.LocalID)]; ok {
				for k, v := range props {
					tile.Properties[k] = v
				}
			}
			if cats, ok := catsByID[tile.LocalID]; ok {
				names := make([]string, 0, len(cats))
				for name := range cats {
					names = append(names, name)
				}
				sort.Strings(names)
				tile.Properties["category"] = strings.Join(names, ",")
			}
		}
	}
}
