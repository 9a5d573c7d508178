package bonus

import (
	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
)

// Type represents what a bonus modifies
type Type string

const (
	TypeAttack             Type = "attack"
	TypeDamage             Type = "damage"
	TypeArmorClass         Type = "armor_class"
	TypeMovement           Type = "movement"
	TypeSpellResistance    Type = "spell_resistance"
	TypeSilence            Type = "silence"
	TypeMentalResistance   Type = "mental_resistance"
	TypePhysicalResistance Type = "physical_resistance"
	TypeReflexResistance   Type = "reflex_resistance"
	TypeActionPoint        Type = "action_point"
	TypeConcealment        Type = "concealment"
)

var allTypes = []Type{
	TypeAttack, TypeDamage, TypeArmorClass, TypeMovement, TypeSpellResistance,
	TypeSilence, TypeMentalResistance, TypePhysicalResistance, TypeReflexResistance,
	TypeActionPoint, TypeConcealment,
}

// ParseType converts a script supplied name into a Type
func ParseType(name string) (Type, error) {
	for _, t := range allTypes {
		if string(t) == name {
			return t, nil
		}
	}
	return "", rpgerr.InvalidArgumentf("unknown bonus type %q", name)
}

// StackType controls how bonuses of the same type combine
type StackType string

const (
	StackTypeStackable   StackType = "stackable"
	StackTypeEnhancement StackType = "enhancement"
	StackTypeMorale      StackType = "morale"
)

// Bonus is a single modifier. Negative values are penalties.
type Bonus struct {
	Type      Type      `json:"type"`
	StackType StackType `json:"stack_type,omitempty"`
	Value     int       `json:"value"`
}

// List is an ordered collection of bonuses carried by an effect
type List struct {
	bonuses []Bonus
}

// NewList creates a list holding the given bonuses
func NewList(bonuses ...Bonus) *List {
	l := &List{}
	for _, b := range bonuses {
		l.Add(b)
	}
	return l
}

// Add appends a bonus
func (l *List) Add(b Bonus) {
	if b.StackType == "" {
		b.StackType = StackTypeStackable
	}
	l.bonuses = append(l.bonuses, b)
}

// AddBonus appends a positive modifier
func (l *List) AddBonus(t Type, value int) {
	l.Add(Bonus{Type: t, Value: abs(value)})
}

// AddPenalty appends a negative modifier
func (l *List) AddPenalty(t Type, value int) {
	l.Add(Bonus{Type: t, Value: -abs(value)})
}

// All returns a copy of every bonus in insertion order
func (l *List) All() []Bonus {
	if l == nil {
		return nil
	}
	return append([]Bonus(nil), l.bonuses...)
}

// Len returns the number of bonuses
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.bonuses)
}

// OfType returns the bonuses of the given type
func (l *List) OfType(t Type) []Bonus {
	if l == nil {
		return nil
	}

	var out []Bonus
	for _, b := range l.bonuses {
		if b.Type == t {
			out = append(out, b)
		}
	}
	return out
}

// HasType reports whether any bonus of the type is present
func (l *List) HasType(t Type) bool {
	return len(l.OfType(t)) > 0
}

// Total sums bonuses of a type. Stackable bonuses add up; for every
// other stack type only the best bonus and the worst penalty count.
func (l *List) Total(t Type) int {
	total := 0
	best := map[StackType]int{}
	worst := map[StackType]int{}

	for _, b := range l.OfType(t) {
		if b.StackType == StackTypeStackable {
			total += b.Value
			continue
		}
		if b.Value > best[b.StackType] {
			best[b.StackType] = b.Value
		}
		if b.Value < worst[b.StackType] {
			worst[b.StackType] = b.Value
		}
	}

	for _, v := range best {
		total += v
	}
	for _, v := range worst {
		total += v
	}
	return total
}

// Copy returns an independent list
func (l *List) Copy() *List {
	if l == nil {
		return &List{}
	}
	return &List{bonuses: append([]Bonus(nil), l.bonuses...)}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
