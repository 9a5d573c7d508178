// Package ability holds the immutable ability templates shared by every
// creature of a ruleset, the Ruleset that owns them and the contracts a
// creature must satisfy to activate them.
package ability

import (
	"fmt"
	"log"
	"maps"
	"slices"
	"strconv"

	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"github.com/KirkDiggler/tactics-engine/internal/events"
	"github.com/KirkDiggler/tactics-engine/internal/script"
)

// Ability is an immutable power template. Exactly one instance exists per
// ID within a Ruleset.
type Ability struct {
	id          string
	name        string
	typ         string
	icon        string
	description string
	kind        Kind
	scriptID    string

	activateable bool
	fixed        bool
	mode         bool
	cancelable   bool

	apCost            int
	apCostDescription string
	cooldown          int

	actionType *ActionType
	groupType  *GroupType
	rangeType  *RangeType
	aiPower    int
	aiPriority int

	prereqs    PrereqList
	upgrades   map[string]string
	upgradeIDs []string

	spellLevel      int
	spellResistance bool

	lookup Lookup
}

// New builds an Ability from its definition. lookup resolves upgrade
// abilities at query time and may be nil when the ability has no upgrades.
// Inconsistent flag combinations are logged and kept as given.
func New(def *Definition, lookup Lookup) (*Ability, error) {
	if def == nil {
		return nil, rpgerr.InvalidArgument("definition cannot be nil")
	}
	if def.ID == "" {
		return nil, rpgerr.Validation("ability id is required")
	}
	if def.ActionPointCost < 0 {
		return nil, rpgerr.Validationf("ability %s: negative action point cost", def.ID)
	}
	if def.Cooldown < 0 {
		return nil, rpgerr.Validationf("ability %s: negative cooldown", def.ID)
	}
	if def.SpellLevel < 0 {
		return nil, rpgerr.Validationf("ability %s: negative spell level", def.ID)
	}

	kind := def.Kind
	switch kind {
	case "":
		kind = KindAbility
	case KindAbility, KindSpell:
	default:
		return nil, rpgerr.Validationf("ability %s: unknown kind %q", def.ID, def.Kind)
	}

	a := &Ability{
		id:                def.ID,
		name:              def.Name,
		typ:               def.Type,
		icon:              def.Icon,
		description:       def.Description,
		kind:              kind,
		scriptID:          def.Script,
		activateable:      def.Activateable,
		fixed:             def.Fixed,
		mode:              def.Mode,
		cancelable:        def.Cancelable,
		apCost:            def.ActionPointCost,
		apCostDescription: def.ActionPointCostDescription,
		cooldown:          def.Cooldown,
		aiPower:           def.AIPower,
		aiPriority:        1,
		upgrades:          make(map[string]string, len(def.Upgrades)),
		spellLevel:        def.SpellLevel,
		spellResistance:   true,
		lookup:            lookup,
	}

	if a.name == "" {
		a.name = a.id
	}
	if a.typ == "" {
		a.typ = defaultTypeName(kind)
	}
	if a.apCostDescription == "" {
		a.apCostDescription = strconv.Itoa(a.apCost / 100)
	}
	if def.AIPriority != nil {
		a.aiPriority = *def.AIPriority
	}
	if kind == KindSpell && def.SpellResistance != nil {
		a.spellResistance = *def.SpellResistance
	}

	if def.ActionType != "" {
		t, err := ParseActionType(def.ActionType)
		if err != nil {
			return nil, rpgerr.WrapWithCode(err, rpgerr.CodeValidation, "ability "+def.ID)
		}
		a.actionType = &t
	}
	if def.GroupType != "" {
		t, err := ParseGroupType(def.GroupType)
		if err != nil {
			return nil, rpgerr.WrapWithCode(err, rpgerr.CodeValidation, "ability "+def.ID)
		}
		a.groupType = &t
	}
	if def.RangeType != "" {
		t, err := ParseRangeType(def.RangeType)
		if err != nil {
			return nil, rpgerr.WrapWithCode(err, rpgerr.CodeValidation, "ability "+def.ID)
		}
		a.rangeType = &t
	}

	prereqs, err := newPrereqList(def.Prereqs)
	if err != nil {
		return nil, rpgerr.Wrapf(err, "ability %s", def.ID)
	}
	a.prereqs = prereqs

	for id, text := range def.Upgrades {
		if id == "" {
			return nil, rpgerr.Validationf("ability %s: upgrade with empty id", def.ID)
		}
		if id == def.ID {
			return nil, rpgerr.Validationf("ability %s: lists itself as an upgrade", def.ID)
		}
		a.upgrades[id] = text
	}
	a.upgradeIDs = slices.Sorted(maps.Keys(a.upgrades))

	a.logWarnings()
	return a, nil
}

func defaultTypeName(k Kind) string {
	if k == KindSpell {
		return "Spell"
	}
	return "Ability"
}

func (a *Ability) logWarnings() {
	if !a.activateable && a.mode {
		log.Printf("Ability: %s is not activateable, mode flag will have no effect", a.id)
	}
	if (!a.activateable || !a.mode) && a.cancelable {
		log.Printf("Ability: %s is not an activateable mode, cancelable flag will have no effect", a.id)
	}
	if !a.activateable && a.fixed {
		log.Printf("Ability: %s is not activateable, fixed flag will have no effect", a.id)
	}
	if a.kind == KindSpell && a.scriptID == "" {
		log.Printf("Ability: spell %s has no script", a.id)
	}
}

func (a *Ability) ID() string                         { return a.id }
func (a *Ability) Name() string                       { return a.name }
func (a *Ability) Type() string                       { return a.typ }
func (a *Ability) Icon() string                       { return a.icon }
func (a *Ability) Description() string                { return a.description }
func (a *Ability) Kind() Kind                         { return a.kind }
func (a *Ability) ScriptID() string                   { return a.scriptID }
func (a *Ability) Activateable() bool                 { return a.activateable }
func (a *Ability) Fixed() bool                        { return a.fixed }
func (a *Ability) Mode() bool                         { return a.mode }
func (a *Ability) Cancelable() bool                   { return a.cancelable }
func (a *Ability) ActionPointCost() int               { return a.apCost }
func (a *Ability) ActionPointCostDescription() string { return a.apCostDescription }
func (a *Ability) Cooldown() int                      { return a.cooldown }
func (a *Ability) AIPower() int                       { return a.aiPower }
func (a *Ability) AIPriority() int                    { return a.aiPriority }
func (a *Ability) Prereqs() PrereqList                { return a.prereqs }
func (a *Ability) SpellLevel() int                    { return a.spellLevel }

// IsSpell reports whether the ability is tagged as a spell
func (a *Ability) IsSpell() bool { return a.kind == KindSpell }

// SpellResistance reports whether spell resistance applies. Always false
// for abilities that are not spells.
func (a *Ability) SpellResistance() bool {
	return a.kind == KindSpell && a.spellResistance
}

// ActionType returns the base action type, false when undefined
func (a *Ability) ActionType() (ActionType, bool) {
	if a.actionType == nil {
		return 0, false
	}
	return *a.actionType, true
}

// GroupType returns the base group type, false when undefined
func (a *Ability) GroupType() (GroupType, bool) {
	if a.groupType == nil {
		return 0, false
	}
	return *a.groupType, true
}

// RangeType returns the base range type, false when undefined
func (a *Ability) RangeType() (RangeType, bool) {
	if a.rangeType == nil {
		return 0, false
	}
	return *a.rangeType, true
}

// Upgrades returns a copy of the upgrade map, ability ID to description
func (a *Ability) Upgrades() map[string]string {
	return maps.Clone(a.upgrades)
}

// UpgradeIDs returns the upgrade ability IDs, sorted
func (a *Ability) UpgradeIDs() []string {
	return slices.Clone(a.upgradeIDs)
}

// ownedUpgrades returns the direct upgrade abilities the owner possesses
func (a *Ability) ownedUpgrades(owner Owner) []*Ability {
	if owner == nil || a.lookup == nil {
		return nil
	}

	var owned []*Ability
	for _, id := range a.upgradeIDs {
		if !owner.HasAbility(id) {
			continue
		}
		if up := a.lookup.Ability(id); up != nil {
			owned = append(owned, up)
		}
	}
	return owned
}

// UpgradedRangeType returns the highest range type of this ability and the
// upgrades the owner possesses. A nil owner yields the base value.
func (a *Ability) UpgradedRangeType(owner Owner) (RangeType, bool) {
	best, ok := a.RangeType()
	if !ok {
		return 0, false
	}
	for _, up := range a.ownedUpgrades(owner) {
		if v, defined := up.RangeType(); defined && v > best {
			best = v
		}
	}
	return best, true
}

// UpgradedGroupType returns the highest group type of this ability and the
// upgrades the owner possesses
func (a *Ability) UpgradedGroupType(owner Owner) (GroupType, bool) {
	best, ok := a.GroupType()
	if !ok {
		return 0, false
	}
	for _, up := range a.ownedUpgrades(owner) {
		if v, defined := up.GroupType(); defined && v > best {
			best = v
		}
	}
	return best, true
}

// UpgradedAIPower returns the highest AI power of this ability and the
// upgrades the owner possesses
func (a *Ability) UpgradedAIPower(owner Owner) int {
	best := a.aiPower
	for _, up := range a.ownedUpgrades(owner) {
		best = max(best, up.aiPower)
	}
	return best
}

// SpellLevelFor returns the highest spell level of this ability and the
// upgrades the owner possesses
func (a *Ability) SpellLevelFor(owner Owner) int {
	best := a.spellLevel
	for _, up := range a.ownedUpgrades(owner) {
		best = max(best, up.spellLevel)
	}
	return best
}

// UpgradeDescriptions lists the description of every owned upgrade
func (a *Ability) UpgradeDescriptions(owner Owner) []string {
	var out []string
	for _, up := range a.ownedUpgrades(owner) {
		out = append(out, fmt.Sprintf("%s: %s", up.name, a.upgrades[up.id]))
	}
	return out
}

// MeetsPrereqs reports whether the subject satisfies every prerequisite
func (a *Ability) MeetsPrereqs(s Subject) bool {
	return a.prereqs.Met(s)
}

type eventEmitter interface {
	Emit(event events.Event)
}

// Activate runs the bookkeeping shared by every activation: the parent's
// effects see onAbilityActivated, the UI is told, and the action point
// cost is paid. Targeting is not handled here.
func (a *Ability) Activate(parent Activator, msgs events.Messenger) {
	parent.ExecuteOnEffects(script.OnAbilityActivated, a, parent)

	if msgs != nil {
		msgs.AddMessage(fmt.Sprintf("%s uses %s", parent.Name(), a.name))
		msgs.AddFadeAway(a.name, parent.Position(), "green")

		if emitter, ok := msgs.(eventEmitter); ok {
			emitter.Emit(&events.AbilityActivatedEvent{
				BaseEvent: events.BaseEvent{Type: events.EventTypeAbilityActivated},
				ActorName: parent.Name(),
				AbilityID: a.id,
				APCost:    a.apCost,
			})
		}
	}

	parent.Timer().PerformAction(a.apCost)
}

func (a *Ability) String() string {
	return a.id
}
