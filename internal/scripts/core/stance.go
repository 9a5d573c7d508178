package core

import (
	"fmt"

	"github.com/KirkDiggler/tactics-engine/internal/domain/bonus"
	"github.com/KirkDiggler/tactics-engine/internal/domain/creature"
	"github.com/KirkDiggler/tactics-engine/internal/domain/grid"
	"github.com/KirkDiggler/tactics-engine/internal/script"
	"github.com/KirkDiggler/tactics-engine/internal/ui"
)

// Stance menu entries
const (
	StanceAttack = "Attack"
	StanceDefend = "Defend"
)

// stance asks which stance to take, then trades armor for accuracy or the
// other way round until cancelled
func stance() *script.Script {
	return &script.Script{
		ID: StanceID,
		Hooks: map[script.FunctionType]script.Func{
			script.OnActivate: func(engine script.Engine, args ...any) error {
				slot, err := slotArg(args)
				if err != nil {
					return err
				}

				entry := func(name string) ui.Entry {
					return ui.Entry{
						Text: name,
						Callback: func() error {
							return chooseStance(engine, slot, name)
						},
					}
				}
				return engine.Menu().Dispatch(ui.Show{Level: ui.Level{
					Title:   slot.Ability().Name(),
					Entries: []ui.Entry{entry(StanceAttack), entry(StanceDefend)},
				}})
			},
			script.OnDeactivate: func(engine script.Engine, args ...any) error {
				slot, err := slotArg(args)
				if err != nil {
					return err
				}
				slot.Deactivate()
				return nil
			},
		},
	}
}

func chooseStance(engine script.Engine, slot *creature.AbilitySlot, name string) error {
	user := slot.Creature()
	if !user.Position().Valid() {
		takeStance(engine, slot, name)
		return nil
	}

	engine.Targeters().Begin(&ui.Targeter{
		Title:     fmt.Sprintf("%s: %s", slot.Ability().Name(), name),
		AbilityID: slot.AbilityID(),
		Points:    []grid.Point{user.Position()},
		OnTarget: func(grid.Point) error {
			takeStance(engine, slot, name)
			return nil
		},
	})
	return nil
}

func takeStance(engine script.Engine, slot *creature.AbilitySlot, name string) {
	user := slot.Creature()
	slot.Activate()

	shift := 2 + casterLevel(user)/4
	up, down := bonus.TypeAttack, bonus.TypeArmorClass
	if name == StanceDefend {
		up, down = down, up
	}

	e := slot.CreateEffect("")
	e.SetRemoveOnDeactivate(true)
	e.Bonuses().AddBonus(up, shift)
	e.Bonuses().AddPenalty(down, shift)
	user.ApplyEffect(e)

	engine.Messages().AddMessage(fmt.Sprintf("%s takes the %s stance", user.Name(), name))
}
