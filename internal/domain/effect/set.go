package effect

import (
	"iter"
	"log"
	"slices"

	"github.com/KirkDiggler/tactics-engine/internal/domain/ability"
	"github.com/KirkDiggler/tactics-engine/internal/domain/bonus"
	"github.com/KirkDiggler/tactics-engine/internal/domain/grid"
	"github.com/KirkDiggler/tactics-engine/internal/script"
)

// Area keeps aura placement on the grid in sync with the sets that own the
// auras. A nil Area means the owner is not placed and auras are not shown.
type Area interface {
	ApplyAura(aura *Effect, points []grid.Point)
	MoveAura(aura *Effect, points []grid.Point)
	RemoveEffect(e *Effect)
}

// Entity owns a Set. Expired effects are removed through it so the
// entity's own removal bookkeeping runs.
type Entity interface {
	RemoveEffect(e *Effect)
}

// Set is the per-entity store of active effects. Effects without hooks are
// kept apart from effects with hooks so dispatch only walks the latter.
// Every aura is also present in one of the two lists.
type Set struct {
	engine     script.Engine
	noScript   []*Effect
	withScript []*Effect
	auras      []*Effect
	// generation changes on every add and remove
	generation uint64
}

// NewSet creates an empty set whose hooks run against engine
func NewSet(engine script.Engine) *Set {
	return &Set{engine: engine}
}

// Engine returns the engine hooks are called with
func (s *Set) Engine() script.Engine { return s.engine }

// Size returns the number of effects
func (s *Set) Size() int {
	return len(s.noScript) + len(s.withScript)
}

// Generation returns the mutation counter
func (s *Set) Generation() uint64 { return s.generation }

// Contains reports whether e is in the set
func (s *Set) Contains(e *Effect) bool {
	return slices.Contains(s.noScript, e) || slices.Contains(s.withScript, e)
}

// All iterates every effect, hookless effects first. The iteration works
// on a snapshot so callers may mutate the set while ranging.
func (s *Set) All() iter.Seq[*Effect] {
	snapshot := s.Effects()
	return slices.Values(snapshot)
}

// Effects returns every effect, hookless effects first
func (s *Set) Effects() []*Effect {
	all := make([]*Effect, 0, s.Size())
	all = append(all, s.noScript...)
	return append(all, s.withScript...)
}

// Auras returns the auras in the set
func (s *Set) Auras() []*Effect {
	return slices.Clone(s.auras)
}

// Add stores e and fires onEffectApplied on every effect with hooks, so
// existing effects can react to the newcomer. An aura is placed in area.
func (s *Set) Add(e *Effect, area Area) {
	if e == nil {
		return
	}

	if e.IsAura() {
		s.auras = append(s.auras, e)
		if area != nil {
			points := e.CurrentAffectedPoints()
			e.aura.place(points)
			area.ApplyAura(e, points)
		}
	}

	if e.HasHooks() {
		s.withScript = append(s.withScript, e)
	} else {
		s.noScript = append(s.noScript, e)
	}
	s.generation++

	s.ExecuteOnAll(script.OnEffectApplied, e)
}

// Remove drops e. Removing an effect that is not present is a no-op.
func (s *Set) Remove(e *Effect, area Area) {
	if e == nil {
		return
	}

	if i := slices.Index(s.auras, e); i >= 0 {
		s.auras = slices.Delete(s.auras, i, i+1)
		if area != nil {
			area.RemoveEffect(e)
		}
	}

	removed := false
	if i := slices.Index(s.noScript, e); i >= 0 {
		s.noScript = slices.Delete(s.noScript, i, i+1)
		removed = true
	} else if i := slices.Index(s.withScript, e); i >= 0 {
		s.withScript = slices.Delete(s.withScript, i, i+1)
		removed = true
	}
	if removed {
		s.generation++
	}
}

// ElapseRounds counts down effects timed by the set. Effects with zero
// rounds remaining and effects owned by an ability slot are skipped; the
// slot times those itself. Expired effects are removed through parent.
func (s *Set) ElapseRounds(parent Entity, rounds int) {
	s.elapse(&s.noScript, parent, rounds)
	s.elapse(&s.withScript, parent, rounds)
}

func (s *Set) elapse(list *[]*Effect, parent Entity, rounds int) {
	elapsed := make(map[*Effect]struct{})

	for i := 0; i < len(*list); i++ {
		e := (*list)[i]
		if _, done := elapsed[e]; done {
			continue
		}
		elapsed[e] = struct{}{}

		if e.roundsRemaining == 0 || e.slot != nil {
			continue
		}

		e.ElapseRounds(rounds)
		if e.roundsRemaining >= 1 {
			continue
		}

		gen := s.generation
		parent.RemoveEffect(e)
		if s.generation != gen {
			// the list moved under us; rescan, skipping what was already counted down
			i = -1
		}
	}
}

// ExecuteOnAll runs hook fn on every effect declaring it, passing args
// followed by the effect. Each effect runs at most once per call. When a
// hook adds or removes effects the scan restarts from the beginning.
func (s *Set) ExecuteOnAll(fn script.FunctionType, args ...any) {
	executed := make(map[*Effect]struct{})

	for i := 0; i < len(s.withScript); i++ {
		e := s.withScript[i]
		if _, done := executed[e]; done {
			continue
		}
		executed[e] = struct{}{}

		gen := s.generation
		if err := e.Execute(s.engine, fn, args...); err != nil {
			log.Printf("EffectSet: %s hook of effect %s (%s) failed: %v", fn, e.id, e.title, err)
		}
		if s.generation != gen {
			i = -1
		}
	}
}

// DispellableEffects returns effects created by a slot whose ability is an
// activateable spell of level one or more that spell resistance applies to
func (s *Set) DispellableEffects() []*Effect {
	var out []*Effect
	for _, e := range s.Effects() {
		if dispellable(e) {
			out = append(out, e)
		}
	}
	return out
}

func dispellable(e *Effect) bool {
	if e.slot == nil {
		return false
	}
	a := e.slot.Ability()
	if a == nil || !a.Activateable() {
		return false
	}
	if a.SpellLevel() <= 0 {
		return false
	}
	if a.Kind() != ability.KindSpell {
		return false
	}
	return a.SpellResistance()
}

// EffectCreatedBySlot returns the first effect created by a slot holding
// abilityID, searching hookless effects first. Nil when none matches.
func (s *Set) EffectCreatedBySlot(abilityID string) *Effect {
	for _, e := range s.Effects() {
		if e.slot != nil && e.slot.AbilityID() == abilityID {
			return e
		}
	}
	return nil
}

// BonusesOfType collects bonuses of type t with a value of zero or more
func (s *Set) BonusesOfType(t bonus.Type) *bonus.List {
	return s.collect(t, func(v int) bool { return v >= 0 })
}

// PenaltiesOfType collects bonuses of type t with a value of zero or less.
// A zero bonus is reported by both this and BonusesOfType.
func (s *Set) PenaltiesOfType(t bonus.Type) *bonus.List {
	return s.collect(t, func(v int) bool { return v <= 0 })
}

func (s *Set) collect(t bonus.Type, keep func(int) bool) *bonus.List {
	out := bonus.NewList()
	for _, e := range s.Effects() {
		for _, b := range e.bonuses.OfType(t) {
			if keep(b.Value) {
				out.Add(b)
			}
		}
	}
	return out
}

// EffectsWithBonusesOfType returns effects carrying at least one bonus of t
func (s *Set) EffectsWithBonusesOfType(t bonus.Type) []*Effect {
	var out []*Effect
	for _, e := range s.Effects() {
		if e.bonuses.HasType(t) {
			out = append(out, e)
		}
	}
	return out
}

// MoveAuras recomputes the points of every aura and relocates it in area.
// Called whenever the owner moves.
func (s *Set) MoveAuras(area Area) {
	for _, e := range s.auras {
		points := e.CurrentAffectedPoints()
		e.aura.place(points)
		if area != nil {
			area.MoveAura(e, points)
		}
	}
}

// PlaceAuras registers every aura with area, used after a set is loaded
// or its owner enters an area
func (s *Set) PlaceAuras(area Area) {
	if area == nil {
		return
	}
	for _, e := range s.auras {
		points := e.CurrentAffectedPoints()
		e.aura.place(points)
		area.ApplyAura(e, points)
	}
}

// OffsetAnimationPositions shifts every effect animation
func (s *Set) OffsetAnimationPositions(dx, dy int) {
	for _, e := range s.Effects() {
		e.OffsetAnimationPositions(dx, dy)
	}
}

// EndAllAnimations stops every effect animation
func (s *Set) EndAllAnimations() {
	for _, e := range s.Effects() {
		e.EndAnimations()
	}
}

// Clear removes every effect without running hooks or touching an area
func (s *Set) Clear() {
	s.noScript = nil
	s.withScript = nil
	s.auras = nil
	s.generation++
}

// Copy deep copies the set. Every effect is copied and the aura list
// refers to the copies.
func (s *Set) Copy() *Set {
	c := NewSet(s.engine)
	copies := make(map[*Effect]*Effect, s.Size())

	for _, e := range s.noScript {
		ce := e.Copy()
		copies[e] = ce
		c.noScript = append(c.noScript, ce)
	}
	for _, e := range s.withScript {
		ce := e.Copy()
		copies[e] = ce
		c.withScript = append(c.withScript, ce)
	}
	for _, a := range s.auras {
		ca, ok := copies[a]
		if !ok {
			ca = a.Copy()
		}
		c.auras = append(c.auras, ca)
	}
	return c
}
