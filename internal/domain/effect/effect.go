// Package effect holds the temporary modifications applied to creatures and
// the per-creature Set that stores them and dispatches their hooks.
package effect

import (
	"maps"

	"github.com/KirkDiggler/tactics-engine/internal/domain/ability"
	"github.com/KirkDiggler/tactics-engine/internal/domain/bonus"
	"github.com/KirkDiggler/tactics-engine/internal/domain/grid"
	"github.com/KirkDiggler/tactics-engine/internal/script"
	"github.com/KirkDiggler/tactics-engine/internal/uuid"
)

// Target is the entity an effect is applied to
type Target interface {
	ID() string
	Position() grid.Point
}

// Effect is a mutable modification owned by exactly one Set
type Effect struct {
	id                 string
	title              string
	scriptID           string
	hooks              map[script.FunctionType]script.Func
	bonuses            *bonus.List
	slot               ability.Slot
	target             Target
	roundsRemaining    int
	removeOnDeactivate bool
	animations         []*Animation
	aura               *Aura
	ids                uuid.Generator
}

// Config describes a new effect
type Config struct {
	// ID is generated when empty
	ID                 string
	Title              string
	Script             *script.Script
	Slot               ability.Slot
	Target             Target
	Duration           int
	RemoveOnDeactivate bool
	Bonuses            []bonus.Bonus
	// Aura turns the effect into an aura projecting around its target
	Aura *AuraConfig
	IDs  uuid.Generator
}

// New creates an effect. Hooks are copied from the script so later
// changes to the effect never leak into the shared script.
func New(cfg *Config) *Effect {
	if cfg == nil {
		cfg = &Config{}
	}

	ids := cfg.IDs
	if ids == nil {
		ids = uuid.NewGoogleUUIDGenerator()
	}

	e := &Effect{
		id:                 cfg.ID,
		title:              cfg.Title,
		hooks:              make(map[script.FunctionType]script.Func),
		bonuses:            bonus.NewList(cfg.Bonuses...),
		slot:               cfg.Slot,
		target:             cfg.Target,
		roundsRemaining:    cfg.Duration,
		removeOnDeactivate: cfg.RemoveOnDeactivate,
		ids:                ids,
	}
	if e.id == "" {
		e.id = ids.New()
	}
	if cfg.Script != nil {
		e.scriptID = cfg.Script.ID
		maps.Copy(e.hooks, cfg.Script.Hooks)
	}
	if cfg.Aura != nil {
		e.aura = newAura(cfg.Aura)
	}
	return e
}

func (e *Effect) ID() string               { return e.id }
func (e *Effect) Title() string            { return e.title }
func (e *Effect) ScriptID() string         { return e.scriptID }
func (e *Effect) Bonuses() *bonus.List     { return e.bonuses }
func (e *Effect) Slot() ability.Slot       { return e.slot }
func (e *Effect) Target() Target           { return e.target }
func (e *Effect) RoundsRemaining() int     { return e.roundsRemaining }
func (e *Effect) RemoveOnDeactivate() bool { return e.removeOnDeactivate }

// SetTarget records the entity the effect is applied to
func (e *Effect) SetTarget(t Target) { e.target = t }

// SetSlot records the ability slot that created the effect
func (e *Effect) SetSlot(s ability.Slot) { e.slot = s }

// SetDuration sets the rounds remaining. Zero means the effect is not
// timed by the Set.
func (e *Effect) SetDuration(rounds int) { e.roundsRemaining = rounds }

// SetRemoveOnDeactivate marks the effect for removal when its mode ends
func (e *Effect) SetRemoveOnDeactivate(v bool) { e.removeOnDeactivate = v }

// ElapseRounds decrements the rounds remaining
func (e *Effect) ElapseRounds(rounds int) { e.roundsRemaining -= rounds }

// IsPermanent reports whether the effect is rebuilt from its creature's
// definition rather than saved
func (e *Effect) IsPermanent() bool {
	return e.roundsRemaining == 0 && !e.removeOnDeactivate
}

// SetHook registers fn for a hook type
func (e *Effect) SetHook(fn script.FunctionType, f script.Func) {
	e.hooks[fn] = f
}

// HasHooks reports whether the effect declares any hook
func (e *Effect) HasHooks() bool { return len(e.hooks) > 0 }

// HookCount returns the number of declared hooks
func (e *Effect) HookCount() int { return len(e.hooks) }

// Has reports whether the effect declares fn
func (e *Effect) Has(fn script.FunctionType) bool {
	_, ok := e.hooks[fn]
	return ok
}

// Execute runs hook fn with the effect appended as the last argument. A
// hook the effect does not declare is a no-op.
func (e *Effect) Execute(engine script.Engine, fn script.FunctionType, args ...any) error {
	hook, ok := e.hooks[fn]
	if !ok {
		return nil
	}
	callArgs := make([]any, 0, len(args)+1)
	callArgs = append(callArgs, args...)
	callArgs = append(callArgs, e)
	return hook(engine, callArgs...)
}

// IsAura reports whether the effect projects onto nearby points
func (e *Effect) IsAura() bool { return e.aura != nil }

// Aura returns the aura component or nil
func (e *Effect) Aura() *Aura { return e.aura }

// CurrentAffectedPoints computes the points the aura covers around its
// target right now. Non auras and unplaced targets cover nothing.
func (e *Effect) CurrentAffectedPoints() []grid.Point {
	if e.aura == nil || e.target == nil {
		return nil
	}
	center := e.target.Position()
	if !center.Valid() {
		return nil
	}
	return grid.WithinRadius(center, e.aura.radius)
}

// Animations returns the running animations
func (e *Effect) Animations() []*Animation {
	return append([]*Animation(nil), e.animations...)
}

// AddAnimation attaches an animation handle
func (e *Effect) AddAnimation(a *Animation) {
	e.animations = append(e.animations, a)
}

// OffsetAnimationPositions shifts every animation by a screen offset
func (e *Effect) OffsetAnimationPositions(dx, dy int) {
	for _, a := range e.animations {
		a.Offset(dx, dy)
	}
}

// EndAnimations stops every animation
func (e *Effect) EndAnimations() {
	for _, a := range e.animations {
		a.End()
	}
}

// Copy returns a new effect with its own identity, bonuses and aura state.
// Hooks, slot and target are shared; animations are not copied.
func (e *Effect) Copy() *Effect {
	c := &Effect{
		id:                 e.ids.New(),
		title:              e.title,
		scriptID:           e.scriptID,
		hooks:              maps.Clone(e.hooks),
		bonuses:            e.bonuses.Copy(),
		slot:               e.slot,
		target:             e.target,
		roundsRemaining:    e.roundsRemaining,
		removeOnDeactivate: e.removeOnDeactivate,
		ids:                e.ids,
	}
	if e.aura != nil {
		c.aura = e.aura.copy()
	}
	return c
}

// Animation is a visual attached to an effect, positioned in screen space
type Animation struct {
	Sprite  string
	X, Y    int
	Running bool
}

// Offset moves the animation
func (a *Animation) Offset(dx, dy int) {
	a.X += dx
	a.Y += dy
}

// End stops the animation
func (a *Animation) End() {
	a.Running = false
}
