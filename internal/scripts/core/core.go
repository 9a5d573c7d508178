// Package core holds the scripts shipped with the engine. Ability scripts
// receive the slot being used as their last argument; effect scripts
// receive the effect.
package core

import (
	"github.com/KirkDiggler/tactics-engine/internal/domain/ability"
	"github.com/KirkDiggler/tactics-engine/internal/domain/creature"
	"github.com/KirkDiggler/tactics-engine/internal/domain/effect"
	"github.com/KirkDiggler/tactics-engine/internal/domain/grid"
	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"github.com/KirkDiggler/tactics-engine/internal/script"
)

// Script IDs
const (
	FireballID         = "fireball"
	BlessID            = "bless"
	DivineAuraID       = "divine-aura"
	DivineAuraEffectID = "divine-aura-effect"
	StanceID           = "stance"
	RegenerationID     = "regeneration"
)

// Scripts returns a fresh copy of every built-in script
func Scripts() []*script.Script {
	return []*script.Script{
		fireball(),
		bless(),
		divineAura(),
		divineAuraEffect(),
		stance(),
		regeneration(),
	}
}

// Register adds the built-in scripts to reg
func Register(reg *script.Registry) error {
	for _, sc := range Scripts() {
		if err := reg.Register(sc); err != nil {
			return rpgerr.Wrapf(err, "failed to register script %s", sc.ID)
		}
	}
	return nil
}

// NewEffect creates an effect carrying the hooks of a registered script,
// for permanent effects a creature is built with
func NewEffect(reg *script.Registry, scriptID, title string) (*effect.Effect, error) {
	sc, ok := reg.Get(scriptID)
	if !ok {
		return nil, rpgerr.NotFoundf("script %s not found", scriptID)
	}
	return effect.New(&effect.Config{Title: title, Script: sc}), nil
}

func slotArg(args []any) (*creature.AbilitySlot, error) {
	if len(args) == 0 {
		return nil, rpgerr.InvalidArgument("missing slot argument")
	}
	slot, ok := args[len(args)-1].(*creature.AbilitySlot)
	if !ok || slot == nil {
		return nil, rpgerr.InvalidArgumentf("expected a slot, got %T", args[len(args)-1])
	}
	return slot, nil
}

func effectArg(args []any) (*effect.Effect, error) {
	if len(args) == 0 {
		return nil, rpgerr.InvalidArgument("missing effect argument")
	}
	e, ok := args[len(args)-1].(*effect.Effect)
	if !ok || e == nil {
		return nil, rpgerr.InvalidArgumentf("expected an effect, got %T", args[len(args)-1])
	}
	return e, nil
}

// reach is how far from its user a slot can target
func reach(slot *creature.AbilitySlot) int {
	r, ok := slot.Ability().UpgradedRangeType(slot.Creature())
	if !ok {
		return 1
	}
	switch r {
	case ability.RangePersonal:
		return 0
	case ability.RangeTouch:
		return 1
	case ability.RangeShort:
		return 3
	default:
		return 8
	}
}

// inReach returns the creatures around the slot's user that pass keep,
// the user included
func inReach(slot *creature.AbilitySlot, keep func(user, c *creature.Creature) bool) []*creature.Creature {
	user := slot.Creature()
	limit := reach(slot)

	var out []*creature.Creature
	for _, c := range append([]*creature.Creature{user}, user.Visible()...) {
		if grid.Distance(user.Position(), c.Position()) > limit {
			continue
		}
		if keep(user, c) {
			out = append(out, c)
		}
	}
	return out
}

func friendly(user, c *creature.Creature) bool { return c == user || user.IsAllyOf(c) }

func hostile(user, c *creature.Creature) bool { return !friendly(user, c) }

func positions(cs []*creature.Creature) []grid.Point {
	out := make([]grid.Point, len(cs))
	for i, c := range cs {
		out[i] = c.Position()
	}
	return out
}

func creatureAt(cs []*creature.Creature, p grid.Point) *creature.Creature {
	for _, c := range cs {
		if c.Position() == p {
			return c
		}
	}
	return nil
}

func casterLevel(c *creature.Creature) int {
	return max(1, c.Level())
}
