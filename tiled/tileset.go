package tiled

import (
	"encoding/xml"
	"fmt"
	"os"
)

// Tileset is the root element of a .tsx file.
type Tileset struct {
	XMLName    xml.Name `xml:"tileset"`
	Name       string   `xml:"name,attr"`
	TileWidth  int      `xml:"tilewidth,attr"`
	TileHeight int      `xml:"tileheight,attr"`
	TileCount  int      `xml:"tilecount,attr"`
	Columns    int      `xml:"columns,attr"`
	Margin     int      `xml:"margin,attr"`
	Spacing    int      `xml:"spacing,attr"`
	Image      *Image   `xml:"image"`
	Tiles      []Tile   `xml:"tile"`
}

// Image references a tileset or per-tile image source.
type Image struct {
	Source string `xml:"source,attr"`
	Width  int    `xml:"width,attr,omitempty"`
	Height int    `xml:"height,attr,omitempty"`
}

// Tile is a per-tile entry inside a tileset. Collection tilesets carry the
// tile image here instead of a single sheet on the tileset element.
type Tile struct {
	ID         int         `xml:"id,attr"`
	Properties *Properties `xml:"properties"`
	Image      *Image      `xml:"image"`
	Animation  *Animation  `xml:"animation"`
}

// Animation is a list of animation frames on a tile.
type Animation struct {
	Frames []Frame `xml:"frame"`
}

// Frame is a single animation frame.
type Frame struct {
	TileID   int `xml:"tileid,attr"`
	Duration int `xml:"duration,attr"`
}

// Animated reports whether the tile declares an animation.
func (t *Tile) Animated() bool {
	return t.Animation != nil && len(t.Animation.Frames) > 0
}

// PropertyMap returns the tile's properties as a plain map. Missing
// properties yield an empty, non-nil map.
func (t *Tile) PropertyMap() map[string]string {
	return t.Properties.toMap()
}

// ParseTileset decodes TSX data.
func ParseTileset(data []byte) (*Tileset, error) {
	var ts Tileset
	if err := xml.Unmarshal(data, &ts); err != nil {
		return nil, fmt.Errorf("tiled: parse tileset: %w", err)
	}
	return &ts, nil
}

// LoadTileset reads and decodes a .tsx file.
func LoadTileset(path string) (*Tileset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tiled: read tileset %s: %w", path, err)
	}
	ts, err := ParseTileset(data)
	if err != nil {
		return nil, fmt.Errorf("tiled: tileset %s: %w", path, err)
	}
	return ts, nil
}
