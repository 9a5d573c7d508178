// Package ai indexes a creature's usable abilities for one decision and
// drives them through the same activation path a player uses.
package ai

import (
	"log"
	"slices"
	"sort"

	"github.com/KirkDiggler/tactics-engine/internal/domain/ability"
	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"github.com/KirkDiggler/tactics-engine/internal/script"
	abilitysvc "github.com/KirkDiggler/tactics-engine/internal/services/ability"
	"github.com/KirkDiggler/tactics-engine/internal/ui"
)

// Sort orders accepted by SortByRangeType and SortByGroupType
const (
	OrderClosest  = "CLOSEST"
	OrderFurthest = "FURTHEST"
	OrderSingle   = "SINGLE"
	OrderMultiple = "MULTIPLE"
)

// SlotList is a handle on one bucket of a SlotSet. Removing from it or
// sorting it changes the bucket itself.
type SlotList struct {
	slots    []ability.Slot
	readOnly bool
}

var emptyList = &SlotList{readOnly: true}

// Len returns the number of slots
func (l *SlotList) Len() int { return len(l.slots) }

// IsEmpty reports whether the list has no slots
func (l *SlotList) IsEmpty() bool { return len(l.slots) == 0 }

// Get returns the slot at i
func (l *SlotList) Get(i int) ability.Slot { return l.slots[i] }

// Slots returns a snapshot of the list
func (l *SlotList) Slots() []ability.Slot {
	return slices.Clone(l.slots)
}

// Remove drops slot from the list, reporting whether it was present
func (l *SlotList) Remove(slot ability.Slot) bool {
	if l.readOnly {
		return false
	}
	i := slices.Index(l.slots, slot)
	if i < 0 {
		return false
	}
	l.slots = slices.Delete(l.slots, i, i+1)
	return true
}

// RemoveAt drops the slot at i
func (l *SlotList) RemoveAt(i int) {
	if l.readOnly || i < 0 || i >= len(l.slots) {
		return
	}
	l.slots = slices.Delete(l.slots, i, i+1)
}

func (l *SlotList) add(slot ability.Slot) {
	l.slots = append(l.slots, slot)
}

func (l *SlotList) sortStable(less func(a, b ability.Slot) int) {
	if l.readOnly {
		return
	}
	slices.SortStableFunc(l.slots, less)
}

// SlotSet groups the slots a creature can use right now by action, group
// and range type. Build one per decision and throw it away afterwards.
type SlotSet struct {
	byAction map[ability.ActionType]*SlotList
	byGroup  map[ability.GroupType]*SlotList
	byRange  map[ability.RangeType]*SlotList

	abilities abilitysvc.Service
	engine    script.Engine
}

// SlotSetConfig holds what a SlotSet is built from
type SlotSetConfig struct {
	// Slots is the creature's readied slots keyed by ability type
	Slots     map[string][]ability.Slot
	Abilities abilitysvc.Service
	Engine    script.Engine
}

// NewSlotSet indexes every slot that can be activated or deactivated.
// Group and range use the values as upgraded by the slot's owner; each
// bucket is ordered by upgraded AI power, strongest first.
func NewSlotSet(cfg *SlotSetConfig) *SlotSet {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Abilities == nil {
		panic("ability service is required")
	}
	if cfg.Engine == nil {
		panic("engine is required")
	}

	s := &SlotSet{
		byAction:  make(map[ability.ActionType]*SlotList),
		byGroup:   make(map[ability.GroupType]*SlotList),
		byRange:   make(map[ability.RangeType]*SlotList),
		abilities: cfg.Abilities,
		engine:    cfg.Engine,
	}

	types := make([]string, 0, len(cfg.Slots))
	for t := range cfg.Slots {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, t := range types {
		for _, slot := range cfg.Slots[t] {
			if slot == nil || slot.Ability() == nil {
				continue
			}
			if !slot.CanActivate() && !slot.CanDeactivate() {
				continue
			}
			s.index(slot)
		}
	}

	for _, l := range s.byAction {
		l.sortStable(byPowerDesc)
	}
	for _, l := range s.byGroup {
		l.sortStable(byPowerDesc)
	}
	for _, l := range s.byRange {
		l.sortStable(byPowerDesc)
	}

	return s
}

func (s *SlotSet) index(slot ability.Slot) {
	a := slot.Ability()
	owner := slot.Parent()

	if t, ok := a.ActionType(); ok {
		bucket(s.byAction, t).add(slot)
	}
	if t, ok := a.UpgradedGroupType(owner); ok {
		bucket(s.byGroup, t).add(slot)
	}
	if t, ok := a.UpgradedRangeType(owner); ok {
		bucket(s.byRange, t).add(slot)
	}
}

func bucket[K comparable](m map[K]*SlotList, k K) *SlotList {
	l, ok := m[k]
	if !ok {
		l = &SlotList{}
		m[k] = l
	}
	return l
}

func lookup[K comparable](m map[K]*SlotList, k K) *SlotList {
	if l, ok := m[k]; ok {
		return l
	}
	return emptyList
}

func power(slot ability.Slot) int {
	return slot.Ability().UpgradedAIPower(slot.Parent())
}

func byPowerDesc(a, b ability.Slot) int {
	return power(b) - power(a)
}

// NumAbilitiesOfActionType sums the bucket sizes of the named action
// types. Absent buckets count zero; unknown names are an error.
func (s *SlotSet) NumAbilitiesOfActionType(names ...string) (int, error) {
	total := 0
	for _, name := range names {
		t, err := ability.ParseActionType(name)
		if err != nil {
			return 0, err
		}
		if l, ok := s.byAction[t]; ok {
			total += l.Len()
		}
	}
	return total, nil
}

// WithActionType returns the live bucket for the named action type
func (s *SlotSet) WithActionType(name string) (*SlotList, error) {
	t, err := ability.ParseActionType(name)
	if err != nil {
		return nil, err
	}
	return lookup(s.byAction, t), nil
}

// WithGroupType returns the live bucket for the named group type
func (s *SlotSet) WithGroupType(name string) (*SlotList, error) {
	t, err := ability.ParseGroupType(name)
	if err != nil {
		return nil, err
	}
	return lookup(s.byGroup, t), nil
}

// WithRangeType returns the live bucket for the named range type
func (s *SlotSet) WithRangeType(name string) (*SlotList, error) {
	t, err := ability.ParseRangeType(name)
	if err != nil {
		return nil, err
	}
	return lookup(s.byRange, t), nil
}

// WithActionTypes merges the buckets of several action types into a new
// list ordered by upgraded AI power. The result is not backed by the set.
func (s *SlotSet) WithActionTypes(names ...string) (*SlotList, error) {
	merged := &SlotList{}
	for _, name := range names {
		l, err := s.WithActionType(name)
		if err != nil {
			return nil, err
		}
		for _, slot := range l.slots {
			if !slices.Contains(merged.slots, slot) {
				merged.add(slot)
			}
		}
	}
	merged.sortStable(byPowerDesc)
	return merged, nil
}

// SortByRangeType orders list by upgraded range, CLOSEST or FURTHEST
// first. Slots without a range go last.
func (s *SlotSet) SortByRangeType(list *SlotList, order string) error {
	var sense int
	switch order {
	case OrderClosest:
		sense = 1
	case OrderFurthest:
		sense = -1
	default:
		return rpgerr.InvalidArgumentf("range sort order must be %s or %s, got %q", OrderClosest, OrderFurthest, order).
			WithMeta("order", order)
	}
	if list == nil {
		return nil
	}

	list.sortStable(func(a, b ability.Slot) int {
		ra, okA := a.Ability().UpgradedRangeType(a.Parent())
		rb, okB := b.Ability().UpgradedRangeType(b.Parent())
		return compareOrdinal(int(ra), okA, int(rb), okB, sense)
	})
	return nil
}

// SortByGroupType orders list by upgraded group, SINGLE or MULTIPLE
// first. Slots without a group go last.
func (s *SlotSet) SortByGroupType(list *SlotList, order string) error {
	var sense int
	switch order {
	case OrderSingle:
		sense = 1
	case OrderMultiple:
		sense = -1
	default:
		return rpgerr.InvalidArgumentf("group sort order must be %s or %s, got %q", OrderSingle, OrderMultiple, order).
			WithMeta("order", order)
	}
	if list == nil {
		return nil
	}

	list.sortStable(func(a, b ability.Slot) int {
		ga, okA := a.Ability().UpgradedGroupType(a.Parent())
		gb, okB := b.Ability().UpgradedGroupType(b.Parent())
		return compareOrdinal(int(ga), okA, int(gb), okB, sense)
	})
	return nil
}

func compareOrdinal(a int, okA bool, b int, okB bool, sense int) int {
	switch {
	case okA && okB:
		return sense * (a - b)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}

// ActivateAndGetTargeter activates slot and returns the targeter it
// started. A menu opened instead is answered with a random entry.
func (s *SlotSet) ActivateAndGetTargeter(slot ability.Slot) (*ui.Targeter, error) {
	return s.activate(slot, "", false)
}

// ActivateAndGetTargeterWithSelection is ActivateAndGetTargeter choosing
// the menu entry labelled selection, or a random one when none matches.
func (s *SlotSet) ActivateAndGetTargeterWithSelection(slot ability.Slot, selection string) (*ui.Targeter, error) {
	return s.activate(slot, selection, true)
}

func (s *SlotSet) activate(slot ability.Slot, selection string, wantSelection bool) (*ui.Targeter, error) {
	if slot == nil {
		return nil, rpgerr.InvalidArgument("slot cannot be nil")
	}

	targeters := s.engine.Targeters()

	if slot.CanActivate() || slot.CanDeactivate() {
		if err := s.abilities.Activate(slot); err != nil {
			return nil, err
		}
	} else {
		log.Printf("AI: %s is neither activateable nor deactivatable", slot.AbilityID())
	}

	if t := targeters.Current(); t != nil {
		return t, nil
	}

	menu := s.engine.Menu()
	if !menu.IsOpen() && !menu.IsOpening() {
		return nil, nil
	}

	if err := menu.Dispatch(ui.HidePopup{}); err != nil {
		return nil, err
	}

	level, ok := menu.LowestLevel()
	if !ok || len(level.Entries) == 0 {
		log.Printf("AI: %s opened a menu without entries", slot.AbilityID())
		return targeters.Current(), nil
	}

	index := -1
	if wantSelection {
		index = slices.Index(level.Texts(), selection)
	}
	if index < 0 {
		index = s.engine.Dice().Rand(0, len(level.Entries)-1)
	}

	if err := menu.Dispatch(ui.SelectEntry{Index: index}); err != nil {
		return nil, rpgerr.Wrapf(err, "menu selection for %s failed", slot.AbilityID())
	}

	return targeters.Current(), nil
}
