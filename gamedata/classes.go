// Package gamedata loads and normalizes the game's class-definition data.
package gamedata

import (
	"encoding/json"
	"fmt"
	"os"
)

// ClassesPath is the default location of the class-definition file.
const ClassesPath = "data/classes.json"

// StatsUp holds per-level stat-growth rolls. The JSON keys keep the game's
// short names ("def" for defense, "str" for strength, "res" for resistance).
type StatsUp struct {
	HP  []int `json:"hp"`
	Def []int `json:"def"`
	Res []int `json:"res"`
	Str []int `json:"str"`
}

// Class is a normalized class entry: optional fields are defaulted and
// skill names are resolved to Skill values.
type Class struct {
	Constitution int
	Move         int
	Skills       []Skill
	StatsUp      StatsUp
}

// classEntry mirrors the raw JSON shape, where constitution, move, and
// skills may all be absent.
type classEntry struct {
	Constitution *int     `json:"constitution"`
	Move         *int     `json:"move"`
	Skills       []string `json:"skills"`
	StatsUp      StatsUp  `json:"stats_up"`
}

// LoadClasses reads a classes.json file and returns class name to
// normalized entry. Missing constitution/move default to 0, missing growth
// lists become empty slices, and skills are always non-nil.
func LoadClasses(path string) (map[string]Class, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gamedata: read classes %s: %w", path, err)
	}

	var raw map[string]classEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("gamedata: parse classes %s: %w", path, err)
	}

	classes := make(map[string]Class, len(raw))
	for name, entry := range raw {
		c := Class{StatsUp: entry.StatsUp}
		if entry.Constitution != nil {
			c.Constitution = *entry.Constitution
		}
		if entry.Move != nil {
			c.Move = *entry.Move
		}
		if c.StatsUp.HP == nil {
			c.StatsUp.HP = []int{}
		}
		if c.StatsUp.Def == nil {
			c.StatsUp.Def = []int{}
		}
		if c.StatsUp.Res == nil {
			c.StatsUp.Res = []int{}
		}
		if c.StatsUp.Str == nil {
			c.StatsUp.Str = []int{}
		}
		c.Skills = make([]Skill, 0, len(entry.Skills))
		for _, nature := range entry.Skills {
			c.Skills = append(c.Skills, GetSkill(nature))
		}
		classes[name] = c
	}
	return classes, nil
}
