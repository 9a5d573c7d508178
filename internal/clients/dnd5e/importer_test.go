package dnd5e_test

import (
	"errors"
	"testing"

	"github.com/KirkDiggler/tactics-engine/internal/clients/dnd5e"
	mockdnd5e "github.com/KirkDiggler/tactics-engine/internal/clients/dnd5e/mock"
	"github.com/KirkDiggler/tactics-engine/internal/domain/ability"
	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestImporter_Definition(t *testing.T) {
	importer := dnd5e.NewImporter(&dnd5e.ImporterConfig{
		Client:  mockdnd5e.NewMockClient(gomock.NewController(t)),
		Scripts: map[string]string{"fireball": "fireball"},
	})

	tests := []struct {
		name       string
		spell      *dnd5e.Spell
		wantAction string
		wantGroup  string
		wantRange  string
		wantScript string
		wantPower  int
	}{
		{
			name:       "area damage",
			spell:      &dnd5e.Spell{Key: "fireball", Name: "Fireball", Level: 3, Range: "150 feet", HasDamage: true, SaveType: "dex", AreaType: "sphere", AreaSize: 20},
			wantAction: "Damage", wantGroup: "Multiple", wantRange: "Long", wantScript: "fireball", wantPower: 40,
		},
		{
			name:       "healing touch",
			spell:      &dnd5e.Spell{Key: "cure-wounds", Name: "Cure Wounds", Level: 1, Range: "Touch"},
			wantAction: "Heal", wantGroup: "Single", wantRange: "Touch", wantPower: 20,
		},
		{
			name:       "saving throw without damage",
			spell:      &dnd5e.Spell{Key: "hold-person", Name: "Hold Person", Level: 2, Range: "60 feet", SaveType: "wis"},
			wantAction: "Debuff", wantGroup: "Single", wantRange: "Long", wantPower: 30,
		},
		{
			name:       "self cone",
			spell:      &dnd5e.Spell{Key: "burning-hands", Name: "Burning Hands", Level: 1, Range: "Self", HasDamage: true, AreaType: "cone"},
			wantAction: "Damage", wantGroup: "Multiple", wantRange: "Personal", wantPower: 20,
		},
		{
			name:       "short range buff",
			spell:      &dnd5e.Spell{Key: "bless", Name: "Bless", Level: 1, Range: "30 feet"},
			wantAction: "Buff", wantGroup: "Single", wantRange: "Short", wantPower: 20,
		},
		{
			name:       "cantrip with unknown range",
			spell:      &dnd5e.Spell{Key: "message", Name: "Message", Range: "Varies"},
			wantAction: "Buff", wantGroup: "Single", wantPower: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := importer.Definition(tt.spell)
			require.NoError(t, err)

			assert.Equal(t, tt.spell.Name, def.ID)
			assert.Equal(t, ability.KindSpell, def.Kind)
			assert.True(t, def.Activateable)
			assert.Equal(t, dnd5e.SpellActionPointCost, def.ActionPointCost)
			assert.Equal(t, tt.spell.Level, def.SpellLevel)
			assert.Equal(t, tt.wantAction, def.ActionType)
			assert.Equal(t, tt.wantGroup, def.GroupType)
			assert.Equal(t, tt.wantRange, def.RangeType)
			assert.Equal(t, tt.wantScript, def.Script)
			assert.Equal(t, tt.wantPower, def.AIPower)

			// every imported definition must load into a ruleset
			_, err = ability.NewRuleset().Register(def)
			assert.NoError(t, err)
		})
	}
}

func TestImporter_DefinitionRejectsBadSpells(t *testing.T) {
	importer := dnd5e.NewImporter(&dnd5e.ImporterConfig{Client: mockdnd5e.NewMockClient(gomock.NewController(t))})

	_, err := importer.Definition(nil)
	assert.True(t, rpgerr.IsInvalidArgument(err))

	_, err = importer.Definition(&dnd5e.Spell{Key: "nameless"})
	assert.True(t, rpgerr.IsValidation(err))
}

func TestImporter_ImportSpell(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mockdnd5e.NewMockClient(ctrl)
	importer := dnd5e.NewImporter(&dnd5e.ImporterConfig{Client: client})

	client.EXPECT().GetSpell("magic-missile").Return(&dnd5e.Spell{
		Key: "magic-missile", Name: "Magic Missile", Level: 1, Range: "120 feet", HasDamage: true,
	}, nil)

	def, err := importer.ImportSpell("magic-missile")
	require.NoError(t, err)
	assert.Equal(t, "Magic Missile", def.ID)
	assert.Equal(t, "Level 1 spell. Range: 120 feet", def.Description)

	client.EXPECT().GetSpell("missing").Return(nil, rpgerr.NotFound("spell missing not found"))
	_, err = importer.ImportSpell("missing")
	assert.True(t, rpgerr.IsNotFound(err))
}

func TestImporter_ImportClass(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mockdnd5e.NewMockClient(ctrl)
	importer := dnd5e.NewImporter(&dnd5e.ImporterConfig{Client: client, Concurrency: 2})

	client.EXPECT().ListSpellsByClass("wizard").Return([]*dnd5e.SpellReference{
		{Key: "fireball", Name: "Fireball"},
		{Key: "broken", Name: "Broken"},
		{Key: "shield", Name: "Shield"},
		{Key: "acid-splash", Name: "Acid Splash"},
	}, nil)
	client.EXPECT().GetSpell("fireball").Return(&dnd5e.Spell{Key: "fireball", Name: "Fireball", Level: 3, HasDamage: true}, nil)
	client.EXPECT().GetSpell("broken").Return(nil, errors.New("boom"))
	client.EXPECT().GetSpell("shield").Return(&dnd5e.Spell{Key: "shield", Name: "Shield", Level: 1, Range: "Self"}, nil)
	client.EXPECT().GetSpell("acid-splash").Return(&dnd5e.Spell{Key: "acid-splash", Name: "Acid Splash", Range: "60 feet", HasDamage: true}, nil)

	defs, err := importer.ImportClass("wizard")
	require.NoError(t, err)

	ids := make([]string, len(defs))
	for i, d := range defs {
		ids[i] = d.ID
	}
	assert.Equal(t, []string{"Acid Splash", "Shield", "Fireball"}, ids)
}

func TestImporter_ImportClassListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mockdnd5e.NewMockClient(ctrl)
	importer := dnd5e.NewImporter(&dnd5e.ImporterConfig{Client: client})

	client.EXPECT().ListSpellsByClass("bard").Return(nil, rpgerr.Internal("upstream unavailable"))

	_, err := importer.ImportClass("bard")
	assert.True(t, rpgerr.IsInternal(err))
}

func TestNewImporter_RequiresClient(t *testing.T) {
	assert.Panics(t, func() { dnd5e.NewImporter(nil) })
	assert.Panics(t, func() { dnd5e.NewImporter(&dnd5e.ImporterConfig{}) })
}
