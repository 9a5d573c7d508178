package effect

import (
	"maps"
	"slices"

	"github.com/KirkDiggler/tactics-engine/internal/domain/grid"
)

// AuraConfig describes the area an aura covers
type AuraConfig struct {
	Radius int
}

// Aura is the component that makes an effect project onto the points
// around its target. Effects an aura applies to creatures standing inside
// it are tracked as children keyed by creature ID.
type Aura struct {
	radius   int
	points   []grid.Point
	children map[string]*Effect
}

func newAura(cfg *AuraConfig) *Aura {
	return &Aura{
		radius:   max(cfg.Radius, 0),
		children: make(map[string]*Effect),
	}
}

// Radius returns the reach of the aura in hex steps
func (a *Aura) Radius() int { return a.radius }

// Points returns the points the aura was last placed on
func (a *Aura) Points() []grid.Point { return slices.Clone(a.points) }

func (a *Aura) place(points []grid.Point) {
	a.points = slices.Clone(points)
}

// AddChild records an effect applied to the creature with the given ID
func (a *Aura) AddChild(creatureID string, child *Effect) {
	a.children[creatureID] = child
}

// Child returns the effect applied to the creature, if any
func (a *Aura) Child(creatureID string) (*Effect, bool) {
	child, ok := a.children[creatureID]
	return child, ok
}

// RemoveChild forgets and returns the effect applied to the creature
func (a *Aura) RemoveChild(creatureID string) *Effect {
	child := a.children[creatureID]
	delete(a.children, creatureID)
	return child
}

// ChildIDs returns the IDs of creatures currently holding a child effect
func (a *Aura) ChildIDs() []string {
	return slices.Sorted(maps.Keys(a.children))
}

// copy keeps the placement but not the children, which belong to other
// creatures' sets
func (a *Aura) copy() *Aura {
	return &Aura{
		radius:   a.radius,
		points:   slices.Clone(a.points),
		children: make(map[string]*Effect),
	}
}
