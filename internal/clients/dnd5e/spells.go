package dnd5e

import (
	"strings"

	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	apiDnd5e "github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"
)

// Spell is the part of an SRD spell the importer maps onto abilities
type Spell struct {
	Key           string
	Name          string
	Level         int // 0 for cantrips
	School        string
	Range         string
	Duration      string
	Concentration bool
	Classes       []string

	// DamageType is set when the spell deals damage
	DamageType string
	HasDamage  bool
	// SaveType names the saving throw a target makes, if any
	SaveType string
	// AreaType is set for cones, spheres, lines and the like
	AreaType string
	AreaSize int // In feet
}

// SpellReference names a spell without its details
type SpellReference struct {
	Key  string
	Name string
}

// GetSpell retrieves a spell by key
func (c *client) GetSpell(key string) (*Spell, error) {
	if key == "" {
		return nil, rpgerr.InvalidArgument("spell key is required")
	}

	apiSpell, err := c.client.GetSpell(key)
	if err != nil {
		return nil, rpgerr.Wrapf(err, "failed to get spell %s", key)
	}
	if apiSpell == nil {
		return nil, rpgerr.NotFoundf("spell %s not found", key)
	}

	return convertSpell(apiSpell), nil
}

// ListSpellsByClass lists all spells available to a class
func (c *client) ListSpellsByClass(classKey string) ([]*SpellReference, error) {
	if classKey == "" {
		return nil, rpgerr.InvalidArgument("class key is required")
	}

	refs, err := c.client.ListSpells(&apiDnd5e.ListSpellsInput{
		Class: classKey,
	})
	if err != nil {
		return nil, rpgerr.Wrapf(err, "failed to list spells for class %s", classKey)
	}

	result := make([]*SpellReference, 0, len(refs))
	for _, ref := range refs {
		if ref == nil || ref.Key == "" {
			continue
		}
		result = append(result, &SpellReference{Key: ref.Key, Name: ref.Name})
	}
	return result, nil
}

func convertSpell(apiSpell *entities.Spell) *Spell {
	spell := &Spell{
		Key:           apiSpell.Key,
		Name:          apiSpell.Name,
		Level:         apiSpell.SpellLevel,
		Range:         apiSpell.Range,
		Duration:      apiSpell.Duration,
		Concentration: apiSpell.Concentration,
		Classes:       extractClassKeys(apiSpell.SpellClasses),
	}

	if apiSpell.SpellSchool != nil {
		spell.School = apiSpell.SpellSchool.Name
	}

	if apiSpell.SpellDamage != nil {
		spell.HasDamage = true
		if apiSpell.SpellDamage.SpellDamageType != nil {
			spell.DamageType = apiSpell.SpellDamage.SpellDamageType.Name
		}
	}

	if apiSpell.DC != nil && apiSpell.DC.DCType != nil {
		spell.SaveType = strings.ToLower(apiSpell.DC.DCType.Name)
	}

	if apiSpell.AreaOfEffect != nil {
		spell.AreaType = apiSpell.AreaOfEffect.Type
		spell.AreaSize = apiSpell.AreaOfEffect.Size
	}

	return spell
}

func extractClassKeys(refs []*entities.ReferenceItem) []string {
	keys := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref != nil {
			keys = append(keys, ref.Key)
		}
	}
	return keys
}
