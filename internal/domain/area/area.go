// Package area tracks where auras and creatures are on an area's grid and
// tells auras when creatures walk in or out of them.
package area

import (
	"log"
	"maps"
	"slices"

	"github.com/KirkDiggler/tactics-engine/internal/domain/bonus"
	"github.com/KirkDiggler/tactics-engine/internal/domain/effect"
	"github.com/KirkDiggler/tactics-engine/internal/domain/grid"
	"github.com/KirkDiggler/tactics-engine/internal/script"
)

// Occupant is a creature standing in the area
type Occupant interface {
	ID() string
	Position() grid.Point
}

// Area places effects on grid points. Auras fire onTargetEnter and
// onTargetExit with the occupant as argument when their coverage changes.
type Area struct {
	id        string
	engine    script.Engine
	placed    map[*effect.Effect]map[grid.Point]struct{}
	order     []*effect.Effect
	inside    map[*effect.Effect]map[string]struct{}
	occupants map[string]Occupant
}

// New creates an empty area
func New(id string, engine script.Engine) *Area {
	return &Area{
		id:        id,
		engine:    engine,
		placed:    make(map[*effect.Effect]map[grid.Point]struct{}),
		inside:    make(map[*effect.Effect]map[string]struct{}),
		occupants: make(map[string]Occupant),
	}
}

// ID returns the area identifier
func (a *Area) ID() string { return a.id }

// ApplyAura places e on points
func (a *Area) ApplyAura(e *effect.Effect, points []grid.Point) {
	if _, exists := a.placed[e]; !exists {
		a.order = append(a.order, e)
	}
	a.placed[e] = toSet(points)
	a.refresh(e)
}

// MoveAura relocates e to points. An effect not yet placed is applied.
func (a *Area) MoveAura(e *effect.Effect, points []grid.Point) {
	a.ApplyAura(e, points)
}

// RemoveEffect takes e off the grid; every occupant inside it exits
func (a *Area) RemoveEffect(e *effect.Effect) {
	if _, exists := a.placed[e]; !exists {
		return
	}
	for _, id := range slices.Sorted(maps.Keys(a.inside[e])) {
		a.fire(e, script.OnTargetExit, a.occupants[id])
	}
	delete(a.placed, e)
	delete(a.inside, e)
	a.order = slices.DeleteFunc(a.order, func(x *effect.Effect) bool { return x == e })
}

// HasEffect reports whether e is placed
func (a *Area) HasEffect(e *effect.Effect) bool {
	_, ok := a.placed[e]
	return ok
}

// Effects returns the placed effects in placement order
func (a *Area) Effects() []*effect.Effect {
	return slices.Clone(a.order)
}

// PointsOf returns the points e covers, sorted
func (a *Area) PointsOf(e *effect.Effect) []grid.Point {
	points := slices.Collect(maps.Keys(a.placed[e]))
	slices.SortFunc(points, grid.Compare)
	return points
}

// EffectsAt returns the effects covering p in placement order
func (a *Area) EffectsAt(p grid.Point) []*effect.Effect {
	var out []*effect.Effect
	for _, e := range a.order {
		if _, ok := a.placed[e][p]; ok {
			out = append(out, e)
		}
	}
	return out
}

// BonusAt totals bonuses of type t granted by effects covering p
func (a *Area) BonusAt(t bonus.Type, p grid.Point) int {
	total := 0
	for _, e := range a.EffectsAt(p) {
		total += e.Bonuses().Total(t)
	}
	return total
}

// AddOccupant registers a creature and lets auras covering it react
func (a *Area) AddOccupant(o Occupant) {
	a.occupants[o.ID()] = o
	a.OccupantMoved(o)
}

// RemoveOccupant unregisters a creature; it exits every aura it was in
func (a *Area) RemoveOccupant(id string) {
	o, ok := a.occupants[id]
	if !ok {
		return
	}
	for _, e := range slices.Clone(a.order) {
		if _, in := a.inside[e][id]; in {
			delete(a.inside[e], id)
			a.fire(e, script.OnTargetExit, o)
		}
	}
	delete(a.occupants, id)
}

// Occupant returns a registered creature by ID
func (a *Area) Occupant(id string) (Occupant, bool) {
	o, ok := a.occupants[id]
	return o, ok
}

// OccupantAt returns the creature standing on p, if any
func (a *Area) OccupantAt(p grid.Point) (Occupant, bool) {
	for _, id := range slices.Sorted(maps.Keys(a.occupants)) {
		if o := a.occupants[id]; o.Position() == p {
			return o, true
		}
	}
	return nil, false
}

// Occupants returns every registered creature sorted by ID
func (a *Area) Occupants() []Occupant {
	out := make([]Occupant, 0, len(a.occupants))
	for _, id := range slices.Sorted(maps.Keys(a.occupants)) {
		out = append(out, a.occupants[id])
	}
	return out
}

// OccupantMoved re-evaluates aura membership after o changed position
func (a *Area) OccupantMoved(o Occupant) {
	if _, ok := a.occupants[o.ID()]; !ok {
		return
	}
	for _, e := range slices.Clone(a.order) {
		if !a.HasEffect(e) {
			continue
		}
		a.update(e, o)
	}
}

func (a *Area) refresh(e *effect.Effect) {
	for _, o := range a.Occupants() {
		if !a.HasEffect(e) {
			return
		}
		a.update(e, o)
	}
	for id := range a.inside[e] {
		if _, ok := a.occupants[id]; !ok {
			delete(a.inside[e], id)
		}
	}
}

func (a *Area) update(e *effect.Effect, o Occupant) {
	_, covered := a.placed[e][o.Position()]
	inside := a.inside[e]
	_, was := inside[o.ID()]

	switch {
	case covered && !was:
		if inside == nil {
			inside = make(map[string]struct{})
			a.inside[e] = inside
		}
		inside[o.ID()] = struct{}{}
		a.fire(e, script.OnTargetEnter, o)
	case !covered && was:
		delete(inside, o.ID())
		a.fire(e, script.OnTargetExit, o)
	}
}

func (a *Area) fire(e *effect.Effect, fn script.FunctionType, o Occupant) {
	if o == nil {
		return
	}
	if err := e.Execute(a.engine, fn, o); err != nil {
		log.Printf("Area: %s hook of %s for %s failed: %v", fn, e.Title(), o.ID(), err)
	}
}

func toSet(points []grid.Point) map[grid.Point]struct{} {
	set := make(map[grid.Point]struct{}, len(points))
	for _, p := range points {
		set[p] = struct{}{}
	}
	return set
}
