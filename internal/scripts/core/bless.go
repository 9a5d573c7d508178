package core

import (
	"fmt"

	"github.com/KirkDiggler/tactics-engine/internal/domain/bonus"
	"github.com/KirkDiggler/tactics-engine/internal/domain/grid"
	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"github.com/KirkDiggler/tactics-engine/internal/script"
	"github.com/KirkDiggler/tactics-engine/internal/ui"
)

func bless() *script.Script {
	return &script.Script{
		ID: BlessID,
		Hooks: map[script.FunctionType]script.Func{
			script.OnActivate: func(engine script.Engine, args ...any) error {
				slot, err := slotArg(args)
				if err != nil {
					return err
				}

				friends := inReach(slot, friendly)
				engine.Targeters().Begin(&ui.Targeter{
					Title:     slot.Ability().Name(),
					AbilityID: slot.AbilityID(),
					Points:    positions(friends),
					OnTarget: func(p grid.Point) error {
						target := creatureAt(friends, p)
						if target == nil {
							return rpgerr.NotFoundf("nobody to bless at %s", p)
						}

						slot.Activate()
						level := casterLevel(slot.Creature())

						e := slot.CreateEffect("")
						e.SetDuration(3 + level/4)
						e.Bonuses().Add(bonus.Bonus{Type: bonus.TypeAttack, StackType: bonus.StackTypeMorale, Value: 1 + level/4})
						e.Bonuses().Add(bonus.Bonus{Type: bonus.TypeMentalResistance, StackType: bonus.StackTypeMorale, Value: 5 + level})
						target.ApplyEffect(e)

						engine.Messages().AddMessage(fmt.Sprintf("%s is blessed", target.Name()))
						return nil
					},
				})
				return nil
			},
		},
	}
}
