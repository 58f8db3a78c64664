// Package palette models the tile-browsing panel: which tileset is active,
// which page is shown, and which filter narrows the visible tiles.
package palette

import (
	"fmt"
	"strings"

	"github.com/Open-Games-Studios-OGS/rpg-tactical-fantasy-game/tileset"
)

// Filter narrows the tiles shown by the palette.
type Filter func(*tileset.TileEntry) bool

// Model is the palette paging/filtering state over a tileset cache.
type Model struct {
	cache       tileset.Cache
	tilesetName string
	pageSize    int
	pageIndex   int
	filter      Filter
}

const defaultPageSize = 25

// NewModel builds a model over the cache. A non-positive page size falls
// back to the default.
func NewModel(cache tileset.Cache, pageSize int) *Model {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Model{cache: cache, pageSize: pageSize}
}

// SetCache swaps the underlying cache, keeping the active tileset when it
// still exists. The page resets either way.
func (m *Model) SetCache(cache tileset.Cache) {
	m.cache = cache
	m.pageIndex = 0
	if _, ok := cache[m.tilesetName]; !ok {
		m.tilesetName = ""
	}
}

// SetTileset activates a tileset by name and resets the page.
func (m *Model) SetTileset(name string) error {
	if _, ok := m.cache[name]; !ok {
		return fmt.Errorf("palette: unknown tileset %q", name)
	}
	m.tilesetName = name
	m.pageIndex = 0
	return nil
}

// TilesetName returns the active tileset name, empty if none.
func (m *Model) TilesetName() string {
	return m.tilesetName
}

// TilesetNames returns the selectable tileset names, sorted.
func (m *Model) TilesetNames() []string {
	return m.cache.Names()
}

// SetFilter installs (or clears, with nil) the tile filter and resets the
// page.
func (m *Model) SetFilter(f Filter) {
	m.filter = f
	m.pageIndex = 0
}

// ActiveTiles returns the filtered tiles of the active tileset.
func (m *Model) ActiveTiles() []*tileset.TileEntry {
	if m.tilesetName == "" {
		return nil
	}
	data, ok := m.cache[m.tilesetName]
	if !ok {
		return nil
	}
	if m.filter == nil {
		return data.Tiles
	}
	var tiles []*tileset.TileEntry
	for _, t := range data.Tiles {
		if m.filter(t) {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// PageCount returns ceil(len(ActiveTiles) / pageSize); zero when empty.
func (m *Model) PageCount() int {
	total := len(m.ActiveTiles())
	if total == 0 {
		return 0
	}
	return (total + m.pageSize - 1) / m.pageSize
}

// PageIndex returns the current page, always within [0, PageCount-1] when
// any page exists.
func (m *Model) PageIndex() int {
	return m.pageIndex
}

// PageSize returns the number of tiles per page.
func (m *Model) PageSize() int {
	return m.pageSize
}

// SetPage clamps index into the valid page range.
func (m *Model) SetPage(index int) {
	last := m.PageCount() - 1
	if index > last {
		index = last
	}
	if index < 0 {
		index = 0
	}
	m.pageIndex = index
}

// PageTiles returns the tiles of the current page.
func (m *Model) PageTiles() []*tileset.TileEntry {
	tiles := m.ActiveTiles()
	start := m.pageIndex * m.pageSize
	if start >= len(tiles) {
		return nil
	}
	end := start + m.pageSize
	if end > len(tiles) {
		end = len(tiles)
	}
	return tiles[start:end]
}

// NextPage advances one page, stopping at the last.
func (m *Model) NextPage() {
	if m.pageIndex+1 < m.PageCount() {
		m.pageIndex++
	}
}

// PrevPage goes back one page, stopping at the first.
func (m *Model) PrevPage() {
	if m.pageIndex > 0 {
		m.pageIndex--
	}
}

// HasProperty matches tiles that carry the property key at all.
func HasProperty(key string) Filter {
	return func(t *tileset.TileEntry) bool {
		_, ok := t.Properties[key]
		return ok
	}
}

// PropertyEquals matches tiles whose property key has exactly the value.
func PropertyEquals(key, value string) Filter {
	return func(t *tileset.TileEntry) bool {
		return t.Properties[key] == value
	}
}

// HasProperties matches tiles with at least one property.
func HasProperties() Filter {
	return func(t *tileset.TileEntry) bool {
		return len(t.Properties) > 0
	}
}

// Animated matches tiles flagged as animated in the tileset.
func Animated() Filter {
	return func(t *tileset.TileEntry) bool {
		return t.Animated
	}
}

// Category matches tiles tagged with the named category, case-insensitively.
func Category(name string) Filter {
	want := strings.ToLower(name)
	return func(t *tileset.TileEntry) bool {
		value := t.Properties["category"]
		if value == "" {
			return false
		}
		for _, part := range strings.Split(value, ",") {
			if strings.ToLower(strings.TrimSpace(part)) == want {
				return true
			}
		}
		return false
	}
}
