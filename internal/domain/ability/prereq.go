package ability

import (
	"fmt"

	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
)

// PrereqType is the kind of check a prerequisite performs
type PrereqType string

const (
	PrereqAbility   PrereqType = "ability"
	PrereqLevel     PrereqType = "level"
	PrereqAttribute PrereqType = "attribute"
)

// Subject is what prerequisites are evaluated against
type Subject interface {
	Owner
	Level() int
	Attribute(name string) int
}

// Prereq is a single requirement
type Prereq struct {
	Type      PrereqType
	Ability   string
	Attribute string
	Value     int
}

// Met reports whether s satisfies the requirement
func (p Prereq) Met(s Subject) bool {
	switch p.Type {
	case PrereqAbility:
		return s.HasAbility(p.Ability)
	case PrereqLevel:
		return s.Level() >= p.Value
	case PrereqAttribute:
		return s.Attribute(p.Attribute) >= p.Value
	default:
		return false
	}
}

func (p Prereq) String() string {
	switch p.Type {
	case PrereqAbility:
		return "ability " + p.Ability
	case PrereqLevel:
		return fmt.Sprintf("level %d", p.Value)
	default:
		return fmt.Sprintf("%s %d", p.Attribute, p.Value)
	}
}

// PrereqList holds every requirement of an ability; all must hold
type PrereqList struct {
	prereqs []Prereq
}

func newPrereqList(defs []PrereqDefinition) (PrereqList, error) {
	list := PrereqList{}
	for _, d := range defs {
		p := Prereq{Type: d.Type, Ability: d.Ability, Attribute: d.Attribute, Value: d.Value}
		switch d.Type {
		case PrereqAbility:
			if d.Ability == "" {
				return list, rpgerr.Validation("ability prereq requires an ability id")
			}
		case PrereqLevel:
		case PrereqAttribute:
			if d.Attribute == "" {
				return list, rpgerr.Validation("attribute prereq requires an attribute")
			}
		default:
			return list, rpgerr.Validationf("unknown prereq type %q", d.Type)
		}
		list.prereqs = append(list.prereqs, p)
	}
	return list, nil
}

// Met reports whether s satisfies every requirement
func (l PrereqList) Met(s Subject) bool {
	for _, p := range l.prereqs {
		if !p.Met(s) {
			return false
		}
	}
	return true
}

// All returns a copy of the requirements
func (l PrereqList) All() []Prereq {
	return append([]Prereq(nil), l.prereqs...)
}

// Len returns the number of requirements
func (l PrereqList) Len() int { return len(l.prereqs) }
