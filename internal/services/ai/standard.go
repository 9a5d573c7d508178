package ai

import (
	"log"
	"math"

	"github.com/KirkDiggler/tactics-engine/internal/domain/ability"
	"github.com/KirkDiggler/tactics-engine/internal/domain/creature"
	"github.com/KirkDiggler/tactics-engine/internal/domain/grid"
	"github.com/KirkDiggler/tactics-engine/internal/script"
	abilitysvc "github.com/KirkDiggler/tactics-engine/internal/services/ability"
)

// TurnResult describes what an AI turn did
type TurnResult struct {
	// Activated lists the ability IDs used, in order
	Activated []string
	// Fallback is set when the creature had nothing useful to activate and
	// should act through basic movement and attacks instead
	Fallback bool
}

// Standard uses damage, debuff, buff and heal abilities until AP runs out
type Standard struct {
	abilities abilitysvc.Service
	engine    script.Engine
}

// StandardConfig holds the collaborators of the standard AI
type StandardConfig struct {
	Abilities abilitysvc.Service
	Engine    script.Engine
}

// NewStandard creates the standard AI
func NewStandard(cfg *StandardConfig) *Standard {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Abilities == nil {
		panic("ability service is required")
	}
	if cfg.Engine == nil {
		panic("engine is required")
	}
	return &Standard{abilities: cfg.Abilities, engine: cfg.Engine}
}

type plan struct {
	actionType   string
	sortFurthest bool
}

// RunTurn plays parent's turn against the creatures it can see
func (s *Standard) RunTurn(parent *creature.Creature, visible []*creature.Creature) (*TurnResult, error) {
	result := &TurnResult{}

	set := NewSlotSet(&SlotSetConfig{
		Slots:     parent.SlotsByType(),
		Abilities: s.abilities,
		Engine:    s.engine,
	})

	var friends, foes []*creature.Creature
	for _, c := range visible {
		if c == nil || c == parent || c.IsDead() {
			continue
		}
		if parent.IsAllyOf(c) {
			friends = append(friends, c)
		} else {
			foes = append(foes, c)
		}
	}

	wounded := mostWounded(append([]*creature.Creature{parent}, friends...))

	var plans []plan
	if wounded != nil {
		plans = append(plans, plan{actionType: ability.ActionHeal.String()})
	}
	if shortestDistance(parent, friends) > shortestDistance(parent, foes) {
		plans = append(plans,
			plan{ability.ActionDamage.String(), true},
			plan{ability.ActionDebuff.String(), true},
			plan{ability.ActionBuff.String(), false},
		)
	} else {
		plans = append(plans,
			plan{ability.ActionBuff.String(), false},
			plan{ability.ActionDamage.String(), true},
			plan{ability.ActionDebuff.String(), true},
		)
	}

	names := make([]string, len(plans))
	for i, p := range plans {
		names[i] = p.actionType
	}
	remaining, err := set.NumAbilitiesOfActionType(names...)
	if err != nil {
		return nil, err
	}
	if remaining == 0 {
		result.Fallback = true
		return result, nil
	}

	for _, p := range plans {
		list, err := set.WithActionType(p.actionType)
		if err != nil {
			return nil, err
		}
		if list.IsEmpty() {
			continue
		}
		if p.sortFurthest {
			if err := set.SortByRangeType(list, OrderFurthest); err != nil {
				return nil, err
			}
		}

		for _, slot := range list.Slots() {
			if !slot.CanActivate() {
				log.Printf("AI: %s cannot activate %s, ending turn", parent.Name(), slot.AbilityID())
				return result, nil
			}

			target := chooseTarget(parent, slot, friends, foes, wounded)
			if target == nil {
				continue
			}

			done, err := s.tryActivate(set, slot, target)
			if err != nil {
				log.Printf("AI: %s failed to use %s: %v", parent.Name(), slot.AbilityID(), err)
				continue
			}
			result.Activated = append(result.Activated, slot.AbilityID())
			remaining--
			if done {
				return result, nil
			}
		}
	}

	result.Fallback = remaining == 0
	return result, nil
}

// tryActivate aims slot at target, or at the first point the targeter
// offers. It reports whether the turn should end.
func (s *Standard) tryActivate(set *SlotSet, slot ability.Slot, target *creature.Creature) (bool, error) {
	targeter, err := set.ActivateAndGetTargeter(slot)
	if err != nil {
		return false, err
	}
	if targeter == nil {
		return true, nil
	}

	targeters := s.engine.Targeters()
	switch {
	case targeter.Allows(target.Position()):
		return false, targeters.Select(target.Position())
	case len(targeter.Points) > 0:
		return false, targeters.Select(targeter.Points[0])
	default:
		targeters.End()
		return false, nil
	}
}

func chooseTarget(parent *creature.Creature, slot ability.Slot, friends, foes []*creature.Creature, wounded *creature.Creature) *creature.Creature {
	a := slot.Ability()
	if r, ok := a.UpgradedRangeType(parent); ok && r == ability.RangePersonal {
		return parent
	}

	t, _ := a.ActionType()
	switch t {
	case ability.ActionDamage, ability.ActionDebuff:
		return closest(parent, foes)
	case ability.ActionHeal:
		return wounded
	default:
		if c := closest(parent, friends); c != nil {
			return c
		}
		return parent
	}
}

func closest(parent *creature.Creature, candidates []*creature.Creature) *creature.Creature {
	var best *creature.Creature
	bestDist := math.MaxInt
	for _, c := range candidates {
		if d := grid.Distance(parent.Position(), c.Position()); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func shortestDistance(parent *creature.Creature, candidates []*creature.Creature) int {
	if c := closest(parent, candidates); c != nil {
		return grid.Distance(parent.Position(), c.Position())
	}
	return math.MaxInt
}

// mostWounded returns the creature furthest below half its hit points
func mostWounded(candidates []*creature.Creature) *creature.Creature {
	var worst *creature.Creature
	for _, c := range candidates {
		if c.MaxHP() <= 0 || c.HP()*2 >= c.MaxHP() {
			continue
		}
		if worst == nil || c.HP()*worst.MaxHP() < worst.HP()*c.MaxHP() {
			worst = c
		}
	}
	return worst
}
