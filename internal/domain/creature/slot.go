package creature

import (
	"log"
	"slices"

	"github.com/KirkDiggler/tactics-engine/internal/domain/ability"
	"github.com/KirkDiggler/tactics-engine/internal/domain/effect"
)

// AbilitySlot is a readied ability of a creature. It tracks cooldown, mode
// activity and the effects it created.
type AbilitySlot struct {
	ability           *ability.Ability
	parent            *Creature
	fixed             bool
	active            bool
	cooldownRemaining int
	activeRoundsLeft  int
	effects           []*effect.Effect
}

func newSlot(a *ability.Ability, parent *Creature, fixed bool) *AbilitySlot {
	return &AbilitySlot{ability: a, parent: parent, fixed: fixed}
}

func (s *AbilitySlot) Ability() *ability.Ability { return s.ability }
func (s *AbilitySlot) AbilityID() string         { return s.ability.ID() }
func (s *AbilitySlot) Parent() ability.Activator { return s.parent }
func (s *AbilitySlot) Creature() *Creature       { return s.parent }
func (s *AbilitySlot) Fixed() bool               { return s.fixed }
func (s *AbilitySlot) IsActive() bool            { return s.active }
func (s *AbilitySlot) CooldownRemaining() int    { return s.cooldownRemaining }
func (s *AbilitySlot) ActiveRoundsLeft() int     { return s.activeRoundsLeft }

// CanActivate reports whether the slot can be used right now
func (s *AbilitySlot) CanActivate() bool {
	if !s.ability.Activateable() || s.active || s.cooldownRemaining > 0 {
		return false
	}
	if s.parent.IsDead() {
		return false
	}
	return s.parent.timer.CanPerformAction(s.ability.ActionPointCost())
}

// CanDeactivate reports whether an active mode may be cancelled
func (s *AbilitySlot) CanDeactivate() bool {
	return s.active && s.ability.Mode() && s.ability.Cancelable()
}

// Activate pays for the ability and starts its cooldown. Modes stay active
// until deactivated or their rounds run out.
func (s *AbilitySlot) Activate() {
	s.ability.Activate(s.parent, s.parent.engine.Messages())
	s.cooldownRemaining = s.ability.Cooldown()
	if s.ability.Mode() {
		s.active = true
	}
}

// SetActiveRoundsLeft limits how long an active mode lasts. Zero means
// until cancelled.
func (s *AbilitySlot) SetActiveRoundsLeft(rounds int) {
	s.activeRoundsLeft = rounds
}

// Deactivate ends a mode and removes the effects it created that are
// flagged remove-on-deactivate
func (s *AbilitySlot) Deactivate() {
	s.active = false
	s.activeRoundsLeft = 0

	for _, e := range slices.Clone(s.effects) {
		if e.RemoveOnDeactivate() {
			s.removeEffect(e)
		}
	}
}

// CreateEffect builds an effect owned by this slot with the hooks of the
// named script. The effect still has to be applied to a target.
func (s *AbilitySlot) CreateEffect(scriptID string) *effect.Effect {
	return s.newEffect(scriptID, nil)
}

// CreateAura is CreateEffect for an aura projecting radius hexes around
// whoever it is applied to
func (s *AbilitySlot) CreateAura(scriptID string, radius int) *effect.Effect {
	return s.newEffect(scriptID, &effect.AuraConfig{Radius: radius})
}

func (s *AbilitySlot) newEffect(scriptID string, aura *effect.AuraConfig) *effect.Effect {
	cfg := &effect.Config{
		Title: s.ability.Name(),
		Slot:  s,
		Aura:  aura,
		IDs:   s.parent.ids,
	}
	if scriptID != "" && s.parent.scripts != nil {
		sc, ok := s.parent.scripts.Get(scriptID)
		if ok {
			cfg.Script = sc
		} else {
			log.Printf("AbilitySlot: script %s for %s not found", scriptID, s.ability.ID())
		}
	}

	e := effect.New(cfg)
	s.effects = append(s.effects, e)
	return e
}

// Effects returns the effects this slot created that are still tracked
func (s *AbilitySlot) Effects() []*effect.Effect {
	return slices.Clone(s.effects)
}

// ElapseRounds advances cooldown, timed effects created by the slot and the
// remaining rounds of an active mode
func (s *AbilitySlot) ElapseRounds(rounds int) {
	s.cooldownRemaining = max(0, s.cooldownRemaining-rounds)

	for _, e := range slices.Clone(s.effects) {
		if e.RoundsRemaining() <= 0 {
			continue
		}
		e.ElapseRounds(rounds)
		if e.RoundsRemaining() < 1 {
			s.removeEffect(e)
		}
	}

	if s.active && s.activeRoundsLeft > 0 {
		s.activeRoundsLeft -= rounds
		if s.activeRoundsLeft < 1 {
			s.Deactivate()
		}
	}
}

func (s *AbilitySlot) removeEffect(e *effect.Effect) {
	s.effects = slices.DeleteFunc(s.effects, func(x *effect.Effect) bool { return x == e })
	if holder, ok := e.Target().(effect.Entity); ok {
		holder.RemoveEffect(e)
	}
}

// track adopts an effect bound to this slot outside CreateEffect, such as
// one restored from a save or copied by Clone
func (s *AbilitySlot) track(e *effect.Effect) {
	if !slices.Contains(s.effects, e) {
		s.effects = append(s.effects, e)
	}
}

func (s *AbilitySlot) forget(e *effect.Effect) {
	s.effects = slices.DeleteFunc(s.effects, func(x *effect.Effect) bool { return x == e })
}
