package core

import (
	"fmt"

	"github.com/KirkDiggler/tactics-engine/internal/domain/bonus"
	"github.com/KirkDiggler/tactics-engine/internal/domain/creature"
	"github.com/KirkDiggler/tactics-engine/internal/domain/effect"
	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"github.com/KirkDiggler/tactics-engine/internal/script"
)

// DivineAuraRadius is how far the aura reaches from its caster
const DivineAuraRadius = 2

// divineAura is the mode that projects the aura around its caster
func divineAura() *script.Script {
	return &script.Script{
		ID: DivineAuraID,
		Hooks: map[script.FunctionType]script.Func{
			script.OnActivate: func(engine script.Engine, args ...any) error {
				slot, err := slotArg(args)
				if err != nil {
					return err
				}
				caster := slot.Creature()

				slot.SetActiveRoundsLeft(3 + casterLevel(caster)/3)
				slot.Activate()

				aura := slot.CreateAura(DivineAuraEffectID, DivineAuraRadius)
				aura.SetRemoveOnDeactivate(true)
				caster.ApplyEffect(aura)
				return nil
			},
			script.OnDeactivate: func(engine script.Engine, args ...any) error {
				slot, err := slotArg(args)
				if err != nil {
					return err
				}
				slot.Deactivate()
				engine.Messages().AddMessage(fmt.Sprintf("%s's divine aura fades", slot.Creature().Name()))
				return nil
			},
		},
	}
}

// divineAuraEffect inspires allies entering the aura and weakens foes
func divineAuraEffect() *script.Script {
	return &script.Script{
		ID: DivineAuraEffectID,
		Hooks: map[script.FunctionType]script.Func{
			script.OnTargetEnter: func(engine script.Engine, args ...any) error {
				aura, target, slot, err := auraArgs(args)
				if err != nil {
					return err
				}
				caster := slot.Creature()
				level := casterLevel(caster)

				child := slot.CreateEffect("")
				child.SetDuration(slot.ActiveRoundsLeft())
				child.SetRemoveOnDeactivate(true)

				sign := 1
				if hostile(caster, target) {
					sign = -1
				}
				for _, b := range []bonus.Bonus{
					{Type: bonus.TypeAttack, Value: 5 + level},
					{Type: bonus.TypeDamage, Value: 10 + 2*level},
					{Type: bonus.TypeMentalResistance, Value: 10 + level},
					{Type: bonus.TypePhysicalResistance, Value: 10 + level},
					{Type: bonus.TypeReflexResistance, Value: 10 + level},
				} {
					b.StackType = bonus.StackTypeMorale
					b.Value *= sign
					child.Bonuses().Add(b)
				}

				aura.Aura().AddChild(target.ID(), child)
				target.ApplyEffect(child)
				return nil
			},
			script.OnTargetExit: func(engine script.Engine, args ...any) error {
				aura, target, _, err := auraArgs(args)
				if err != nil {
					return err
				}
				if child := aura.Aura().RemoveChild(target.ID()); child != nil {
					target.RemoveEffect(child)
				}
				return nil
			},
		},
	}
}

func auraArgs(args []any) (aura *effect.Effect, target *creature.Creature, slot *creature.AbilitySlot, err error) {
	e, err := effectArg(args)
	if err != nil {
		return nil, nil, nil, err
	}
	if !e.IsAura() {
		return nil, nil, nil, rpgerr.InvalidArgumentf("effect %s is not an aura", e.ID())
	}
	if len(args) < 2 {
		return nil, nil, nil, rpgerr.InvalidArgument("missing aura target")
	}
	target, ok := args[0].(*creature.Creature)
	if !ok {
		return nil, nil, nil, rpgerr.InvalidArgumentf("expected a creature, got %T", args[0])
	}
	slot, ok = e.Slot().(*creature.AbilitySlot)
	if !ok {
		return nil, nil, nil, rpgerr.InvalidArgumentf("aura %s has no slot", e.ID())
	}
	return e, target, slot, nil
}
