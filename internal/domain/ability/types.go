package ability

import (
	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
)

// ActionType describes what an ability does, for AI categorization
type ActionType int

const (
	ActionBuff ActionType = iota
	ActionHeal
	ActionDebuff
	ActionDamage
	ActionSummon
	ActionTactical
)

var actionTypeNames = []string{"Buff", "Heal", "Debuff", "Damage", "Summon", "Tactical"}

// ActionTypes lists every action type in ordinal order
var ActionTypes = []ActionType{ActionBuff, ActionHeal, ActionDebuff, ActionDamage, ActionSummon, ActionTactical}

func (t ActionType) String() string {
	if t < 0 || int(t) >= len(actionTypeNames) {
		return "Unknown"
	}
	return actionTypeNames[t]
}

// ParseActionType converts a name such as "Buff" into an ActionType
func ParseActionType(name string) (ActionType, error) {
	i, err := parseOrdinal("action type", actionTypeNames, name)
	return ActionType(i), err
}

// GroupType describes how many targets an ability affects
type GroupType int

const (
	GroupSingle GroupType = iota
	GroupMultiple
)

var groupTypeNames = []string{"Single", "Multiple"}

// GroupTypes lists every group type in ordinal order
var GroupTypes = []GroupType{GroupSingle, GroupMultiple}

func (t GroupType) String() string {
	if t < 0 || int(t) >= len(groupTypeNames) {
		return "Unknown"
	}
	return groupTypeNames[t]
}

// ParseGroupType converts a name such as "Multiple" into a GroupType
func ParseGroupType(name string) (GroupType, error) {
	i, err := parseOrdinal("group type", groupTypeNames, name)
	return GroupType(i), err
}

// RangeType describes the reach of an ability, ordered by increasing distance
type RangeType int

const (
	RangePersonal RangeType = iota
	RangeTouch
	RangeShort
	RangeLong
)

var rangeTypeNames = []string{"Personal", "Touch", "Short", "Long"}

// RangeTypes lists every range type in ordinal order
var RangeTypes = []RangeType{RangePersonal, RangeTouch, RangeShort, RangeLong}

func (t RangeType) String() string {
	if t < 0 || int(t) >= len(rangeTypeNames) {
		return "Unknown"
	}
	return rangeTypeNames[t]
}

// ParseRangeType converts a name such as "Touch" into a RangeType
func ParseRangeType(name string) (RangeType, error) {
	i, err := parseOrdinal("range type", rangeTypeNames, name)
	return RangeType(i), err
}

// Kind tags spells apart from other abilities
type Kind string

const (
	KindAbility Kind = "ability"
	KindSpell   Kind = "spell"
)

func parseOrdinal(what string, names []string, name string) (int, error) {
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}
	return -1, rpgerr.InvalidArgumentf("unknown %s %q", what, name).WithMeta("value", name)
}
