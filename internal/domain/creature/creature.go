// Package creature holds the runtime state of a combatant: the abilities it
// owns, the slots it has readied, its effects and its turn budget.
package creature

import (
	"log"
	"maps"
	"slices"

	"github.com/KirkDiggler/tactics-engine/internal/domain/ability"
	"github.com/KirkDiggler/tactics-engine/internal/domain/area"
	"github.com/KirkDiggler/tactics-engine/internal/domain/bonus"
	"github.com/KirkDiggler/tactics-engine/internal/domain/effect"
	"github.com/KirkDiggler/tactics-engine/internal/domain/grid"
	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"github.com/KirkDiggler/tactics-engine/internal/script"
	"github.com/KirkDiggler/tactics-engine/internal/uuid"
)

// Area is the grid a creature stands on
type Area interface {
	effect.Area
	ID() string
	AddOccupant(o area.Occupant)
	RemoveOccupant(id string)
	OccupantMoved(o area.Occupant)
	Occupants() []area.Occupant
}

// Creature is a combatant
type Creature struct {
	id         string
	name       string
	faction    string
	level      int
	attributes map[string]int
	hp         int
	maxHP      int
	position   grid.Point

	abilities map[string]*ability.Ability
	slots     map[string][]*AbilitySlot

	effects  *effect.Set
	timer    *Timer
	area     Area
	template *Creature

	engine  script.Engine
	scripts *script.Registry
	ids     uuid.Generator
}

// Config holds what a new creature needs
type Config struct {
	ID         string
	Name       string
	Faction    string
	Level      int
	Attributes map[string]int
	MaxHP      int
	Engine     script.Engine
	// Scripts resolves the scripts of effects created by slots
	Scripts *script.Registry
	IDs     uuid.Generator
}

// New creates an unplaced creature at full health
func New(cfg *Config) *Creature {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Engine == nil {
		panic("engine is required")
	}

	c := &Creature{
		id:         cfg.ID,
		name:       cfg.Name,
		faction:    cfg.Faction,
		level:      cfg.Level,
		attributes: maps.Clone(cfg.Attributes),
		hp:         cfg.MaxHP,
		maxHP:      cfg.MaxHP,
		position:   grid.Invalid,
		abilities:  make(map[string]*ability.Ability),
		slots:      make(map[string][]*AbilitySlot),
		effects:    effect.NewSet(cfg.Engine),
		engine:     cfg.Engine,
		scripts:    cfg.Scripts,
		ids:        cfg.IDs,
	}
	if c.ids == nil {
		c.ids = uuid.NewGoogleUUIDGenerator()
	}
	if c.id == "" {
		c.id = c.ids.New()
	}
	if c.name == "" {
		c.name = c.id
	}
	if c.attributes == nil {
		c.attributes = make(map[string]int)
	}
	c.timer = NewTimer(func() int { return c.Stat(bonus.TypeActionPoint) })
	return c
}

func (c *Creature) ID() string                { return c.id }
func (c *Creature) Name() string              { return c.name }
func (c *Creature) Faction() string           { return c.faction }
func (c *Creature) Level() int                { return c.level }
func (c *Creature) Attribute(name string) int { return c.attributes[name] }
func (c *Creature) HP() int                   { return c.hp }
func (c *Creature) MaxHP() int                { return c.maxHP }
func (c *Creature) Position() grid.Point      { return c.position }
func (c *Creature) Effects() *effect.Set      { return c.effects }
func (c *Creature) Timer() ability.Timer      { return c.timer }
func (c *Creature) ActionTimer() *Timer       { return c.timer }
func (c *Creature) Engine() script.Engine     { return c.engine }
func (c *Creature) Template() *Creature       { return c.template }

// IsDead reports whether hit points are exhausted
func (c *Creature) IsDead() bool { return c.maxHP > 0 && c.hp <= 0 }

// IsAllyOf reports whether both creatures fight for the same side
func (c *Creature) IsAllyOf(other *Creature) bool {
	return other != nil && c.faction != "" && c.faction == other.faction
}

// TakeDamage lowers hit points, never below zero
func (c *Creature) TakeDamage(amount int) {
	c.hp = max(0, c.hp-max(0, amount))
}

// Heal raises hit points, never above the maximum
func (c *Creature) Heal(amount int) {
	c.hp = min(c.maxHP, c.hp+max(0, amount))
}

// Stat totals bonuses and penalties of type t from active effects
func (c *Creature) Stat(t bonus.Type) int {
	return c.effects.BonusesOfType(t).Total(t) + c.effects.PenaltiesOfType(t).Total(t)
}

// HasAbility reports whether the creature owns the ability
func (c *Creature) HasAbility(id string) bool {
	_, ok := c.abilities[id]
	return ok
}

// Abilities returns the owned abilities sorted by ID
func (c *Creature) Abilities() []*ability.Ability {
	out := make([]*ability.Ability, 0, len(c.abilities))
	for _, id := range slices.Sorted(maps.Keys(c.abilities)) {
		out = append(out, c.abilities[id])
	}
	return out
}

// AddAbility gives the creature an ability. Activateable abilities are
// readied into a slot; a fixed ability never gets more than one.
func (c *Creature) AddAbility(a *ability.Ability) {
	if a == nil {
		return
	}
	c.abilities[a.ID()] = a

	if !a.Activateable() {
		return
	}
	if a.Fixed() && c.SlotFor(a.ID()) != nil {
		return
	}
	c.addSlot(newSlot(a, c, a.Fixed()))
}

// ReadyAbility readies another slot of an owned, non fixed ability
func (c *Creature) ReadyAbility(id string) (*AbilitySlot, error) {
	a, ok := c.abilities[id]
	if !ok {
		return nil, rpgerr.NotFoundf("%s does not own ability %s", c.name, id)
	}
	if !a.Activateable() {
		return nil, rpgerr.InvalidArgumentf("ability %s is not activateable", id)
	}
	if a.Fixed() {
		return nil, rpgerr.InvalidArgumentf("ability %s is fixed to a single slot", id)
	}
	s := newSlot(a, c, false)
	c.addSlot(s)
	return s, nil
}

func (c *Creature) addSlot(s *AbilitySlot) {
	typ := s.ability.Type()
	c.slots[typ] = append(c.slots[typ], s)
}

// SlotFor returns the first slot holding the ability, nil when none
func (c *Creature) SlotFor(abilityID string) *AbilitySlot {
	for _, typ := range slices.Sorted(maps.Keys(c.slots)) {
		for _, s := range c.slots[typ] {
			if s.AbilityID() == abilityID {
				return s
			}
		}
	}
	return nil
}

// slotOrNil keeps a missing slot a nil interface rather than a typed nil
func (c *Creature) slotOrNil(abilityID string) ability.Slot {
	if s := c.SlotFor(abilityID); s != nil {
		return s
	}
	return nil
}

// Slots returns every readied slot, grouped by ability type
func (c *Creature) Slots() []*AbilitySlot {
	var out []*AbilitySlot
	for _, typ := range slices.Sorted(maps.Keys(c.slots)) {
		out = append(out, c.slots[typ]...)
	}
	return out
}

// SlotsByType returns the readied slots keyed by ability type
func (c *Creature) SlotsByType() map[string][]ability.Slot {
	out := make(map[string][]ability.Slot, len(c.slots))
	for typ, slots := range c.slots {
		list := make([]ability.Slot, len(slots))
		for i, s := range slots {
			list[i] = s
		}
		out[typ] = list
	}
	return out
}

// ExecuteOnEffects dispatches fn on the creature's effects
func (c *Creature) ExecuteOnEffects(fn script.FunctionType, args ...any) {
	c.effects.ExecuteOnAll(fn, args...)
}

// placedArea returns the area auras should be synced with, nil when the
// creature is not standing anywhere
func (c *Creature) placedArea() effect.Area {
	if c.area == nil || !c.position.Valid() {
		return nil
	}
	return c.area
}

// ApplyEffect targets e at the creature, runs its onApply hook and stores it
func (c *Creature) ApplyEffect(e *effect.Effect) {
	e.SetTarget(c)
	if err := e.Execute(c.engine, script.OnApply); err != nil {
		log.Printf("Creature: onApply of %s on %s failed: %v", e.Title(), c.name, err)
	}
	for _, a := range e.Animations() {
		a.Running = true
	}
	c.effects.Add(e, c.placedArea())
}

// RemoveEffect runs onRemove, stops animations and drops e
func (c *Creature) RemoveEffect(e *effect.Effect) {
	if err := e.Execute(c.engine, script.OnRemove); err != nil {
		log.Printf("Creature: onRemove of %s on %s failed: %v", e.Title(), c.name, err)
	}
	e.EndAnimations()
	c.effects.Remove(e, c.placedArea())

	if s, ok := e.Slot().(*AbilitySlot); ok {
		s.forget(e)
	}
}

// Area returns the area the creature stands in, nil when unplaced
func (c *Creature) Area() Area { return c.area }

// EnterArea places the creature and its auras in a
func (c *Creature) EnterArea(a Area, at grid.Point) {
	if c.area != nil {
		c.LeaveArea()
	}
	c.area = a
	c.position = at
	a.AddOccupant(c)
	c.effects.PlaceAuras(c.placedArea())
}

// LeaveArea takes the creature and its auras off the grid
func (c *Creature) LeaveArea() {
	if c.area == nil {
		return
	}
	for _, aura := range c.effects.Auras() {
		c.area.RemoveEffect(aura)
	}
	c.area.RemoveOccupant(c.id)
	c.area = nil
	c.position = grid.Invalid
}

// SetPosition moves the creature; its auras follow
func (c *Creature) SetPosition(p grid.Point) {
	c.position = p
	if c.area == nil {
		return
	}
	c.effects.MoveAuras(c.placedArea())
	c.area.OccupantMoved(c)
}

// Visible returns the other living creatures sharing the creature's area
func (c *Creature) Visible() []*Creature {
	if c.area == nil {
		return nil
	}
	var out []*Creature
	for _, o := range c.area.Occupants() {
		other, ok := o.(*Creature)
		if !ok || other == c || other.IsDead() {
			continue
		}
		out = append(out, other)
	}
	return out
}

// NewTurn refills the action points
func (c *Creature) NewTurn() {
	c.timer.Reset()
}

// ElapseRounds advances timed effects, slot cooldowns and fires
// onRoundElapsed on the creature's effects
func (c *Creature) ElapseRounds(rounds int) {
	c.effects.ElapseRounds(c, rounds)
	for _, s := range c.Slots() {
		s.ElapseRounds(rounds)
	}
	c.effects.ExecuteOnAll(script.OnRoundElapsed, c, rounds)
}

// Clone instantiates a new creature from this one. Effects are deep copied
// and retargeted, slots are readied fresh, and the clone remembers its
// template so permanent effects can be rebuilt after a load.
func (c *Creature) Clone(id string) *Creature {
	clone := New(&Config{
		ID:         id,
		Name:       c.name,
		Faction:    c.faction,
		Level:      c.level,
		Attributes: c.attributes,
		MaxHP:      c.maxHP,
		Engine:     c.engine,
		Scripts:    c.scripts,
		IDs:        c.ids,
	})
	clone.template = c
	if c.template != nil {
		clone.template = c.template
	}

	for _, a := range c.Abilities() {
		clone.AddAbility(a)
	}

	clone.effects = c.effects.Copy()
	for _, e := range clone.effects.Effects() {
		e.SetTarget(clone)
		if s, ok := e.Slot().(*AbilitySlot); ok && s.parent == c {
			e.SetSlot(clone.slotOrNil(s.AbilityID()))
		}
	}
	clone.adoptSlotEffects()
	return clone
}

// adoptSlotEffects hands every effect bound to one of the creature's own
// slots back to that slot, so the slot expires and deactivates it
func (c *Creature) adoptSlotEffects() {
	for _, e := range c.effects.Effects() {
		if s, ok := e.Slot().(*AbilitySlot); ok && s.parent == c {
			s.track(e)
		}
	}
}

// SaveEffects returns the saved form of the creature's effects
func (c *Creature) SaveEffects() *effect.SetData {
	return c.effects.Save()
}

// RestoreEffects replaces the creature's effects with saved data, then
// rebuilds the template's permanent effects, which are never saved.
func (c *Creature) RestoreEffects(data *effect.SetData, refs *effect.RefTable) error {
	for _, s := range c.Slots() {
		for _, e := range s.Effects() {
			if e.Target() == effect.Target(c) {
				s.forget(e)
			}
		}
	}

	err := c.effects.Load(data, refs, &effect.LoadContext{
		Scripts: c.scripts,
		Slots:   c.slotOrNil,
		Target:  c,
		IDs:     c.ids,
	})
	if err != nil {
		return rpgerr.Wrapf(err, "failed to restore effects of %s", c.id)
	}
	c.adoptSlotEffects()

	if c.template != nil {
		for _, e := range c.template.effects.Effects() {
			if !e.IsPermanent() {
				continue
			}
			cp := e.Copy()
			cp.SetTarget(c)
			c.effects.Add(cp, nil)
		}
	}

	c.effects.PlaceAuras(c.placedArea())
	return nil
}
