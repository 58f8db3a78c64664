// Package tileset loads Tiled .tsx tilesets for the level editor: it parses
// the tileset XML, slices per-tile images from the sheet, and keeps the
// result in a cache keyed by tileset name for fast palette access.
package tileset

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/Open-Games-Studios-OGS/rpg-tactical-fantasy-game/tiled"
)

var (
	// ErrMissingImageSource marks a tileset whose <image> has no source path.
	ErrMissingImageSource = errors.New("tileset image source missing")
	// ErrNoTiles marks a tileset with neither a sheet image nor tile images.
	ErrNoTiles = errors.New("tileset has no <image> and no tile images")
)

// LoadError reports a tileset (or one of its images) that could not be
// loaded. Callers surface the message to the user; there is no retry.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("tileset: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Info holds the metadata of a loaded tileset.
type Info struct {
	Name       string
	Path       string
	ImagePath  string // empty for collection tilesets
	TileWidth  int
	TileHeight int
	Margin     int
	Spacing    int
	Columns    int
	TileCount  int
}

// TileEntry is a single sliced tile with its editor-visible properties.
type TileEntry struct {
	Tileset    string
	LocalID    int
	Image      image.Image
	Properties map[string]string
	Animated   bool
}

// Data is a fully loaded tileset.
type Data struct {
	Info  Info
	Tiles []*TileEntry
}

// Cache maps tileset name to loaded data.
type Cache map[string]*Data

// Load loads a .tsx tileset and slices its tiles. Sheet tilesets are cut
// using the margin/spacing grid; collection tilesets (per-tile images) are
// loaded tile by tile and scaled to the tileset's tile size.
func Load(tsxPath string) (*Data, error) {
	ts, err := tiled.LoadTileset(tsxPath)
	if err != nil {
		return nil, &LoadError{Path: tsxPath, Err: err}
	}

	name := ts.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(tsxPath), filepath.Ext(tsxPath))
	}

	props := make(map[int]map[string]string)
	animated := make(map[int]bool)
	for i := range ts.Tiles {
		tile := &ts.Tiles[i]
		if tile.ID < 0 {
			continue
		}
		props[tile.ID] = tile.PropertyMap()
		animated[tile.ID] = tile.Animated()
	}

	if ts.Image != nil {
		return loadSheet(tsxPath, name, ts, props, animated)
	}
	return loadCollection(tsxPath, name, ts, props, animated)
}

func loadSheet(tsxPath, name string, ts *tiled.Tileset, props map[int]map[string]string, animated map[int]bool) (*Data, error) {
	if ts.Image.Source == "" {
		return nil, &LoadError{Path: tsxPath, Err: ErrMissingImageSource}
	}
	imagePath := filepath.Join(filepath.Dir(tsxPath), filepath.FromSlash(ts.Image.Source))
	sheet, err := decodeImage(imagePath)
	if err != nil {
		return nil, err
	}

	cols := ts.Columns
	count := ts.TileCount
	if count == 0 {
		// Derive the tile count from the image when the attribute is absent.
		if cols <= 0 {
			cols = max(1, sheet.Bounds().Dx()/ts.TileWidth)
		}
		rows := max(1, sheet.Bounds().Dy()/ts.TileHeight)
		count = cols * rows
	}
	if cols <= 0 {
		cols = 1
	}

	info := Info{
		Name:       name,
		Path:       tsxPath,
		ImagePath:  imagePath,
		TileWidth:  ts.TileWidth,
		TileHeight: ts.TileHeight,
		Margin:     ts.Margin,
		Spacing:    ts.Spacing,
		Columns:    cols,
		TileCount:  count,
	}

	tiles := make([]*TileEntry, 0, count)
	for id := 0; id < count; id++ {
		col := id % cols
		row := id / cols
		x := info.Margin + col*(info.TileWidth+info.Spacing)
		y := info.Margin + row*(info.TileHeight+info.Spacing)

		dst := image.NewNRGBA(image.Rect(0, 0, info.TileWidth, info.TileHeight))
		draw.Draw(dst, dst.Bounds(), sheet, image.Pt(x, y), draw.Src)

		tiles = append(tiles, &TileEntry{
			Tileset:    name,
			LocalID:    id,
			Image:      dst,
			Properties: tileProps(props, id),
			Animated:   animated[id],
		})
	}
	return &Data{Info: info, Tiles: tiles}, nil
}

func loadCollection(tsxPath, name string, ts *tiled.Tileset, props map[int]map[string]string, animated map[int]bool) (*Data, error) {
	var tiles []*TileEntry
	for i := range ts.Tiles {
		tile := &ts.Tiles[i]
		if tile.ID < 0 || tile.Image == nil || tile.Image.Source == "" {
			continue
		}
		imagePath := filepath.Join(filepath.Dir(tsxPath), filepath.FromSlash(tile.Image.Source))
		img, err := decodeImage(imagePath)
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, &TileEntry{
			Tileset:    name,
			LocalID:    tile.ID,
			Image:      scaleTo(img, ts.TileWidth, ts.TileHeight),
			Properties: tileProps(props, tile.ID),
			Animated:   animated[tile.ID],
		})
	}
	if len(tiles) == 0 {
		return nil, &LoadError{Path: tsxPath, Err: ErrNoTiles}
	}
	sort.Slice(tiles, func(i, j int) bool { return tiles[i].LocalID < tiles[j].LocalID })

	cols := ts.Columns
	if cols <= 0 {
		cols = len(tiles)
	}
	info := Info{
		Name:       name,
		Path:       tsxPath,
		TileWidth:  ts.TileWidth,
		TileHeight: ts.TileHeight,
		Columns:    cols,
		TileCount:  len(tiles),
	}
	return &Data{Info: info, Tiles: tiles}, nil
}

func tileProps(props map[int]map[string]string, id int) map[string]string {
	if p, ok := props[id]; ok {
		return p
	}
	return make(map[string]string)
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return img, nil
}

// scaleTo resizes img to w x h unless it already matches.
func scaleTo(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// LoadAll loads every tileset path into a cache keyed by tileset name.
func LoadAll(tsxPaths []string) (Cache, error) {
	cache := make(Cache, len(tsxPaths))
	for _, p := range tsxPaths {
		data, err := Load(p)
		if err != nil {
			return nil, err
		}
		cache[data.Info.Name] = data
	}
	return cache, nil
}

// Names returns the cached tileset names in sorted order.
func (c Cache) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Discover walks root for .tsx files. A missing root yields no paths.
func Discover(root string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".tsx") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
