package tiled

import (
	"encoding/xml"
	"fmt"
	"os"
)

// Map is the root element of a .tmx file. Layer data and object groups are
// kept verbatim so a loaded map can be written back without re-encoding
// content this package does not model.
type Map struct {
	XMLName      xml.Name      `xml:"map"`
	Version      string        `xml:"version,attr"`
	TiledVersion string        `xml:"tiledversion,attr,omitempty"`
	Orientation  string        `xml:"orientation,attr"`
	RenderOrder  string        `xml:"renderorder,attr,omitempty"`
	Width        int           `xml:"width,attr"`
	Height       int           `xml:"height,attr"`
	TileWidth    int           `xml:"tilewidth,attr"`
	TileHeight   int           `xml:"tileheight,attr"`
	Infinite     int           `xml:"infinite,attr,omitempty"`
	NextLayerID  int           `xml:"nextlayerid,attr,omitempty"`
	NextObjectID int           `xml:"nextobjectid,attr,omitempty"`
	Properties   *Properties   `xml:"properties"`
	Tilesets     []TilesetRef  `xml:"tileset"`
	Layers       []Layer       `xml:"layer"`
	ObjectGroups []ObjectGroup `xml:"objectgroup"`
}

// TilesetRef is a <tileset> reference on a map. External tilesets carry a
// source path; inline tilesets keep their children verbatim.
type TilesetRef struct {
	FirstGID int    `xml:"firstgid,attr"`
	Source   string `xml:"source,attr,omitempty"`
	Raw      []byte `xml:",innerxml"`
}

// Layer is a tile layer. The encoded tile payload stays untouched.
type Layer struct {
	ID      int       `xml:"id,attr,omitempty"`
	Name    string    `xml:"name,attr"`
	Width   int       `xml:"width,attr"`
	Height  int       `xml:"height,attr"`
	Visible *int      `xml:"visible,attr,omitempty"`
	Opacity *float64  `xml:"opacity,attr,omitempty"`
	Data    LayerData `xml:"data"`
}

// LayerData holds the encoded tile stream of a layer.
type LayerData struct {
	Encoding    string `xml:"encoding,attr,omitempty"`
	Compression string `xml:"compression,attr,omitempty"`
	Raw         []byte `xml:",innerxml"`
}

// ObjectGroup is an <objectgroup> kept verbatim.
type ObjectGroup struct {
	ID   int    `xml:"id,attr,omitempty"`
	Name string `xml:"name,attr,omitempty"`
	Raw  []byte `xml:",innerxml"`
}

// ParseMap decodes TMX data.
func ParseMap(data []byte) (*Map, error) {
	var m Map
	if err := xml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("tiled: parse map: %w", err)
	}
	return &m, nil
}

// LoadMap reads and decodes a .tmx file. This is the same loader the game
// uses, so a file that passes here is a file the game can open.
func LoadMap(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tiled: read map %s: %w", path, err)
	}
	m, err := ParseMap(data)
	if err != nil {
		return nil, fmt.Errorf("tiled: map %s: %w", path, err)
	}
	return m, nil
}

// Property returns the value of a map-level property.
func (m *Map) Property(name string) (string, bool) {
	return m.Properties.get(name)
}

// SetProperty adds or replaces a map-level property.
func (m *Map) SetProperty(name, value string) {
	if m.Properties == nil {
		m.Properties = &Properties{}
	}
	m.Properties.set(name, value)
}

// WriteFile writes the map back to disk as indented XML.
func (m *Map) WriteFile(path string) error {
	data, err := xml.MarshalIndent(m, "", " ")
	if err != nil {
		return fmt.Errorf("tiled: marshal map: %w", err)
	}
	out := append([]byte(xml.Header), data...)
	out = append(out, '\n')
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("tiled: write map %s: %w", path, err)
	}
	return nil
}
