package ability

import (
	"github.com/KirkDiggler/tactics-engine/internal/domain/grid"
	"github.com/KirkDiggler/tactics-engine/internal/script"
)

// Owner answers whether a creature possesses an ability. Upgrade
// resolution only needs this query.
type Owner interface {
	HasAbility(id string) bool
}

// Timer is the action point economy of a turn
type Timer interface {
	CanPerformAction(cost int) bool
	PerformAction(cost int) bool
	AP() int
}

// Activator is a creature able to use abilities
type Activator interface {
	Owner
	ID() string
	Name() string
	Position() grid.Point
	Timer() Timer
	// ExecuteOnEffects dispatches fn on every effect the activator carries
	ExecuteOnEffects(fn script.FunctionType, args ...any)
}

// Slot is a creature's readied instance of an ability
type Slot interface {
	Ability() *Ability
	AbilityID() string
	Parent() Activator
	CanActivate() bool
	CanDeactivate() bool
}

// Lookup resolves abilities by ID; the Ruleset implements it
type Lookup interface {
	Ability(id string) *Ability
}
