package effect_test

import (
	mockdice "github.com/KirkDiggler/tactics-engine/internal/dice/mock"
	"github.com/KirkDiggler/tactics-engine/internal/domain/ability"
	"github.com/KirkDiggler/tactics-engine/internal/domain/effect"
	"github.com/KirkDiggler/tactics-engine/internal/domain/grid"
	"github.com/KirkDiggler/tactics-engine/internal/events"
	"github.com/KirkDiggler/tactics-engine/internal/script"
	"github.com/KirkDiggler/tactics-engine/internal/uuid"
)

func newEngine() *script.GameEngine {
	return script.NewGameEngine(&script.GameEngineConfig{
		Dice:     mockdice.NewManualMockRoller(),
		Messages: events.NewBusMessenger(events.NewBus()),
	})
}

type target struct {
	id  string
	pos grid.Point
}

func (t *target) ID() string           { return t.id }
func (t *target) Position() grid.Point { return t.pos }

type slot struct {
	a *ability.Ability
}

func (s *slot) Ability() *ability.Ability { return s.a }
func (s *slot) AbilityID() string         { return s.a.ID() }
func (s *slot) Parent() ability.Activator { return nil }
func (s *slot) CanActivate() bool         { return true }
func (s *slot) CanDeactivate() bool       { return false }

type areaCall struct {
	op     string
	effect *effect.Effect
	points []grid.Point
}

type fakeArea struct {
	calls []areaCall
	auras map[*effect.Effect][]grid.Point
}

func newFakeArea() *fakeArea {
	return &fakeArea{auras: make(map[*effect.Effect][]grid.Point)}
}

func (a *fakeArea) ApplyAura(e *effect.Effect, points []grid.Point) {
	a.calls = append(a.calls, areaCall{"apply", e, points})
	a.auras[e] = points
}

func (a *fakeArea) MoveAura(e *effect.Effect, points []grid.Point) {
	a.calls = append(a.calls, areaCall{"move", e, points})
	a.auras[e] = points
}

func (a *fakeArea) RemoveEffect(e *effect.Effect) {
	a.calls = append(a.calls, areaCall{"remove", e, nil})
	delete(a.auras, e)
}

// entity removes effects the way a creature does
type entity struct {
	set     *effect.Set
	area    effect.Area
	removed []*effect.Effect
}

func (en *entity) RemoveEffect(e *effect.Effect) {
	en.removed = append(en.removed, e)
	en.set.Remove(e, en.area)
}

// stubbornEntity never removes anything
type stubbornEntity struct{ calls int }

func (s *stubbornEntity) RemoveEffect(*effect.Effect) { s.calls++ }

func ids() uuid.Generator { return &uuid.Sequence{Prefix: "fx-"} }

func hooked(title string, fn script.FunctionType, f script.Func) *effect.Effect {
	e := effect.New(&effect.Config{Title: title, IDs: ids()})
	e.SetHook(fn, f)
	return e
}
