package gamedata

import "strings"

// Skill is a class skill resolved from its nature name in the data files.
type Skill struct {
	Nature        string
	FormattedName string
	Description   string
}

// skillDescriptions maps skill natures to their in-game description.
// Natures absent here still resolve; they just carry no description.
var skillDescriptions = map[string]string{
	"steal":            "Can steal an item from an enemy instead of attacking.",
	"parry":            "Has a chance to nullify an incoming physical attack.",
	"distance_attack":  "Can attack from two tiles away.",
	"night_vision":     "Ignores the accuracy penalty at night.",
	"active_regen":     "Recovers a small amount of HP at the start of each turn.",
	"critically_aware": "Deals increased damage when attacking from behind.",
}

// GetSkill resolves a skill nature into a Skill value.
func GetSkill(nature string) Skill {
	return Skill{
		Nature:        nature,
		FormattedName: formatSkillName(nature),
		Description:   skillDescriptions[nature],
	}
}

func formatSkillName(nature string) string {
	words := strings.Split(nature, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
