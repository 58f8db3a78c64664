package tiled

import "encoding/xml"

// Properties is a <properties> element on a map, tileset, or tile.
type Properties struct {
	XMLName xml.Name   `xml:"properties"`
	List    []Property `xml:"property"`
}

// Property is a single name/value pair.
type Property struct {
	Name  string `xml:"name,attr"`
	Type  string `xml:"type,attr,omitempty"`
	Value string `xml:"value,attr"`
}

func (p *Properties) toMap() map[string]string {
	m := make(map[string]string)
	if p == nil {
		return m
	}
	for _, prop := range p.List {
		if prop.Name != "" {
			m[prop.Name] = prop.Value
		}
	}
	return m
}

// get returns the value of the named property and whether it exists.
func (p *Properties) get(name string) (string, bool) {
	if p == nil {
		return "", false
	}
	for _, prop := range p.List {
		if prop.Name == name {
			return prop.Value, true
		}
	}
	return "", false
}

// set adds or replaces the named property.
func (p *Properties) set(name, value string) {
	for i := range p.List {
		if p.List[i].Name == name {
			p.List[i].Value = value
			return
		}
	}
	p.List = append(p.List, Property{Name: name, Value: value})
}
