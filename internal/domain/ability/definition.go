package ability

import (
	"bytes"
	"encoding/json"

	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
)

// Definition is the JSON resource an Ability is built from
type Definition struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Type        string `json:"type,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
	Kind        Kind   `json:"kind,omitempty"`
	Script      string `json:"script,omitempty"`

	Activateable bool `json:"activateable,omitempty"`
	Fixed        bool `json:"fixed,omitempty"`
	Mode         bool `json:"mode,omitempty"`
	Cancelable   bool `json:"cancelable,omitempty"`

	ActionPointCost            int    `json:"action_point_cost,omitempty"`
	ActionPointCostDescription string `json:"action_point_cost_description,omitempty"`
	Cooldown                   int    `json:"cooldown,omitempty"`

	ActionType string `json:"action_type,omitempty"`
	GroupType  string `json:"group_type,omitempty"`
	RangeType  string `json:"range_type,omitempty"`
	AIPower    int    `json:"ai_power,omitempty"`
	AIPriority *int   `json:"ai_priority,omitempty"`

	Prereqs  []PrereqDefinition `json:"prereqs,omitempty"`
	Upgrades map[string]string  `json:"upgrades,omitempty"`

	SpellLevel      int   `json:"spell_level,omitempty"`
	SpellResistance *bool `json:"spell_resistance,omitempty"`
}

// PrereqDefinition is one requirement in a Definition
type PrereqDefinition struct {
	Type      PrereqType `json:"type"`
	Ability   string     `json:"ability,omitempty"`
	Attribute string     `json:"attribute,omitempty"`
	Value     int        `json:"value,omitempty"`
}

// ParseDefinitions decodes a resource holding either one definition or an
// array of them
func ParseDefinitions(data []byte) ([]*Definition, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, rpgerr.Validation("empty ability resource")
	}

	if trimmed[0] == '[' {
		var defs []*Definition
		if err := json.Unmarshal(trimmed, &defs); err != nil {
			return nil, rpgerr.WrapWithCode(err, rpgerr.CodeValidation, "failed to decode ability list")
		}
		return defs, nil
	}

	def := &Definition{}
	if err := json.Unmarshal(trimmed, def); err != nil {
		return nil, rpgerr.WrapWithCode(err, rpgerr.CodeValidation, "failed to decode ability")
	}
	return []*Definition{def}, nil
}
