package effect

import (
	"github.com/KirkDiggler/tactics-engine/internal/domain/ability"
	"github.com/KirkDiggler/tactics-engine/internal/domain/bonus"
	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"github.com/KirkDiggler/tactics-engine/internal/script"
	"github.com/KirkDiggler/tactics-engine/internal/uuid"
)

// Data is the saved form of an effect
type Data struct {
	Ref                string        `json:"ref"`
	Title              string        `json:"title,omitempty"`
	Script             string        `json:"script,omitempty"`
	Slot               string        `json:"slot,omitempty"`
	RoundsRemaining    int           `json:"rounds_remaining,omitempty"`
	RemoveOnDeactivate bool          `json:"remove_on_deactivate,omitempty"`
	Bonuses            []bonus.Bonus `json:"bonuses,omitempty"`
	Aura               *AuraData     `json:"aura,omitempty"`
}

// AuraData is the saved form of an aura component
type AuraData struct {
	Radius int `json:"radius"`
}

// SetData is the saved form of a Set. Auras are stored as refs into the
// two effect lists.
type SetData struct {
	NoActiveScript   []*Data  `json:"noActiveScript,omitempty"`
	WithActiveScript []*Data  `json:"withActiveScript,omitempty"`
	Auras            []string `json:"auras,omitempty"`
}

// Empty reports whether there is nothing to restore
func (d *SetData) Empty() bool {
	return d == nil || (len(d.NoActiveScript) == 0 && len(d.WithActiveScript) == 0 && len(d.Auras) == 0)
}

// Save returns the effect's saved form
func (e *Effect) Save() *Data {
	d := &Data{
		Ref:                e.id,
		Title:              e.title,
		Script:             e.scriptID,
		RoundsRemaining:    e.roundsRemaining,
		RemoveOnDeactivate: e.removeOnDeactivate,
		Bonuses:            e.bonuses.All(),
	}
	if e.slot != nil {
		d.Slot = e.slot.AbilityID()
	}
	if e.aura != nil {
		d.Aura = &AuraData{Radius: e.aura.radius}
	}
	return d
}

// Save returns the set's saved form. Permanent effects are left out; they
// are rebuilt from the owner's definition.
func (s *Set) Save() *SetData {
	data := &SetData{}
	for _, e := range s.noScript {
		if !e.IsPermanent() {
			data.NoActiveScript = append(data.NoActiveScript, e.Save())
		}
	}
	for _, e := range s.withScript {
		if !e.IsPermanent() {
			data.WithActiveScript = append(data.WithActiveScript, e.Save())
		}
	}
	for _, a := range s.auras {
		if !a.IsPermanent() {
			data.Auras = append(data.Auras, a.id)
		}
	}
	return data
}

// RefTable maps save refs to loaded effects. One table is shared by every
// set loaded from the same save.
type RefTable struct {
	effects map[string]*Effect
}

// NewRefTable creates an empty table
func NewRefTable() *RefTable {
	return &RefTable{effects: make(map[string]*Effect)}
}

// Add records e under ref
func (t *RefTable) Add(ref string, e *Effect) {
	t.effects[ref] = e
}

// Effect resolves a ref
func (t *RefTable) Effect(ref string) (*Effect, bool) {
	e, ok := t.effects[ref]
	return e, ok
}

// LoadContext supplies what a saved effect needs to be rebound
type LoadContext struct {
	Scripts *script.Registry
	// Slots resolves the owner's slot for an ability ID; may return nil
	Slots  func(abilityID string) ability.Slot
	Target Target
	IDs    uuid.Generator
}

// LoadEffect rebuilds an effect from its saved form
func LoadEffect(d *Data, lc *LoadContext) (*Effect, error) {
	if d == nil || d.Ref == "" {
		return nil, rpgerr.Validation("saved effect requires a ref")
	}

	cfg := &Config{
		ID:                 d.Ref,
		Title:              d.Title,
		Target:             lc.Target,
		Duration:           d.RoundsRemaining,
		RemoveOnDeactivate: d.RemoveOnDeactivate,
		Bonuses:            d.Bonuses,
		IDs:                lc.IDs,
	}
	if d.Aura != nil {
		cfg.Aura = &AuraConfig{Radius: d.Aura.Radius}
	}

	if d.Script != "" {
		if lc.Scripts == nil {
			return nil, rpgerr.Internalf("effect %s: no script registry to bind %s", d.Ref, d.Script)
		}
		s, ok := lc.Scripts.Get(d.Script)
		if !ok {
			return nil, rpgerr.NotFoundf("effect %s: script %s not found", d.Ref, d.Script)
		}
		cfg.Script = s
	}

	if d.Slot != "" && lc.Slots != nil {
		cfg.Slot = lc.Slots(d.Slot)
	}

	return New(cfg), nil
}

// Load replaces the contents of the set with saved data. Loaded effects are
// recorded in refs and aura refs are resolved through it; an aura must be
// one of this set's own effects. Auras are not placed in an area; see
// PlaceAuras.
func (s *Set) Load(data *SetData, refs *RefTable, lc *LoadContext) error {
	s.Clear()
	if data == nil {
		return nil
	}
	if refs == nil {
		refs = NewRefTable()
	}
	if lc == nil {
		lc = &LoadContext{}
	}

	for _, d := range data.NoActiveScript {
		e, err := LoadEffect(d, lc)
		if err != nil {
			return err
		}
		refs.Add(d.Ref, e)
		s.noScript = append(s.noScript, e)
	}
	for _, d := range data.WithActiveScript {
		e, err := LoadEffect(d, lc)
		if err != nil {
			return err
		}
		refs.Add(d.Ref, e)
		s.withScript = append(s.withScript, e)
	}
	for _, ref := range data.Auras {
		e, ok := refs.Effect(ref)
		if !ok {
			return rpgerr.NotFoundf("aura %s not found", ref)
		}
		if !e.IsAura() {
			return rpgerr.Validationf("effect %s is not an aura", ref)
		}
		if !s.Contains(e) {
			return rpgerr.Validationf("aura %s belongs to another effect set", ref)
		}
		s.auras = append(s.auras, e)
	}
	return nil
}
