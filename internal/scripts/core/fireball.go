package core

import (
	"fmt"
	"strconv"

	"github.com/KirkDiggler/tactics-engine/internal/domain/ability"
	"github.com/KirkDiggler/tactics-engine/internal/domain/creature"
	"github.com/KirkDiggler/tactics-engine/internal/domain/grid"
	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"github.com/KirkDiggler/tactics-engine/internal/script"
	"github.com/KirkDiggler/tactics-engine/internal/ui"
)

// fireball targets a hostile in reach and burns it, or everything next to
// it once upgraded to hit multiple targets
func fireball() *script.Script {
	return &script.Script{
		ID: FireballID,
		Hooks: map[script.FunctionType]script.Func{
			script.OnActivate: func(engine script.Engine, args ...any) error {
				slot, err := slotArg(args)
				if err != nil {
					return err
				}

				foes := inReach(slot, hostile)
				if len(foes) == 0 {
					engine.Messages().AddMessage(fmt.Sprintf("%s has no target for %s", slot.Creature().Name(), slot.Ability().Name()))
					return nil
				}

				engine.Targeters().Begin(&ui.Targeter{
					Title:     slot.Ability().Name(),
					AbilityID: slot.AbilityID(),
					Points:    positions(foes),
					OnTarget: func(p grid.Point) error {
						return burn(engine, slot, p)
					},
				})
				return nil
			},
		},
	}
}

func burn(engine script.Engine, slot *creature.AbilitySlot, at grid.Point) error {
	caster := slot.Creature()
	slot.Activate()

	radius := 0
	if g, ok := slot.Ability().UpgradedGroupType(caster); ok && g == ability.GroupMultiple {
		radius = 1
	}

	dice := min(10, 1+slot.Ability().SpellLevelFor(caster)+casterLevel(caster)/2)
	roll, err := engine.Dice().Roll(dice, 6, 0)
	if err != nil {
		return rpgerr.Wrapf(err, "failed to roll damage for %s", slot.AbilityID())
	}

	for _, c := range append([]*creature.Creature{caster}, caster.Visible()...) {
		if grid.Distance(c.Position(), at) > radius {
			continue
		}
		c.TakeDamage(roll.Total)
		engine.Messages().AddMessage(fmt.Sprintf("%s takes %d fire damage", c.Name(), roll.Total))
		engine.Messages().AddFadeAway(strconv.Itoa(roll.Total), c.Position(), "red")
	}
	return nil
}
