package core_test

import (
	"testing"

	mockdice "github.com/KirkDiggler/tactics-engine/internal/dice/mock"
	"github.com/KirkDiggler/tactics-engine/internal/domain/ability"
	"github.com/KirkDiggler/tactics-engine/internal/domain/area"
	"github.com/KirkDiggler/tactics-engine/internal/domain/bonus"
	"github.com/KirkDiggler/tactics-engine/internal/domain/creature"
	"github.com/KirkDiggler/tactics-engine/internal/domain/grid"
	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"github.com/KirkDiggler/tactics-engine/internal/events"
	"github.com/KirkDiggler/tactics-engine/internal/script"
	"github.com/KirkDiggler/tactics-engine/internal/scripts/core"
	abilitysvc "github.com/KirkDiggler/tactics-engine/internal/services/ability"
	"github.com/KirkDiggler/tactics-engine/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type arena struct {
	roller  *mockdice.ManualMockRoller
	engine  *script.GameEngine
	scripts *script.Registry
	rules   *ability.Ruleset
	area    *area.Area
	service abilitysvc.Service
}

func newArena(t *testing.T) *arena {
	t.Helper()
	roller := mockdice.NewManualMockRoller()
	a := &arena{
		roller:  roller,
		scripts: script.NewRegistry(),
		rules:   ability.NewRuleset(),
		engine: script.NewGameEngine(&script.GameEngineConfig{
			Dice:     roller,
			Messages: events.NewBusMessenger(events.NewBus()),
		}),
	}
	require.NoError(t, core.Register(a.scripts))
	a.area = area.New("arena", a.engine)
	a.service = abilitysvc.NewService(&abilitysvc.ServiceConfig{Engine: a.engine, Scripts: a.scripts})

	for _, def := range []*ability.Definition{
		{ID: "Fireball", Kind: ability.KindSpell, Script: core.FireballID, Activateable: true, SpellLevel: 3,
			ActionType: "Damage", GroupType: "Single", RangeType: "Long", ActionPointCost: 3000,
			Upgrades: map[string]string{"Greater Fireball": "engulfs everything around the target"}},
		{ID: "Greater Fireball", GroupType: "Multiple"},
		{ID: "Bless", Kind: ability.KindSpell, Script: core.BlessID, Activateable: true, SpellLevel: 1,
			ActionType: "Buff", RangeType: "Short"},
		{ID: "Divine Aura", Script: core.DivineAuraID, Activateable: true, Mode: true, Cancelable: true,
			ActionType: "Buff", RangeType: "Personal"},
		{ID: "Stance", Script: core.StanceID, Activateable: true, Mode: true, Cancelable: true,
			ActionType: "Buff", RangeType: "Personal"},
	} {
		_, err := a.rules.Register(def)
		require.NoError(t, err)
	}
	return a
}

func (a *arena) spawn(id, faction string, at grid.Point, abilities ...string) *creature.Creature {
	c := creature.New(&creature.Config{
		ID:      id,
		Name:    id,
		Faction: faction,
		Level:   4,
		MaxHP:   40,
		Engine:  a.engine,
		Scripts: a.scripts,
	})
	for _, id := range abilities {
		c.AddAbility(a.rules.Ability(id))
	}
	c.EnterArea(a.area, at)
	return c
}

func TestRegister(t *testing.T) {
	reg := script.NewRegistry()
	require.NoError(t, core.Register(reg))
	assert.Equal(t, []string{
		core.BlessID, core.DivineAuraID, core.DivineAuraEffectID,
		core.FireballID, core.RegenerationID, core.StanceID,
	}, reg.List())

	assert.True(t, rpgerr.IsAlreadyExists(core.Register(reg)))

	_, err := core.NewEffect(reg, "bogus", "Bogus")
	assert.True(t, rpgerr.IsNotFound(err))
}

func TestFireball(t *testing.T) {
	tests := []struct {
		name       string
		upgraded   bool
		wantGoblin int
	}{
		{name: "single target", wantGoblin: 40},
		{name: "upgraded to multiple", upgraded: true, wantGoblin: 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newArena(t)
			abilities := []string{"Fireball"}
			if tt.upgraded {
				abilities = append(abilities, "Greater Fireball")
			}
			mage := a.spawn("mage", "party", grid.Point{X: 0, Y: 0}, abilities...)
			ally := a.spawn("ally", "party", grid.Point{X: 1, Y: 0})
			orc := a.spawn("orc", "horde", grid.Point{X: 3, Y: 0})
			goblin := a.spawn("goblin", "horde", grid.Point{X: 3, Y: 1})

			require.NoError(t, a.service.Activate(mage.SlotFor("Fireball")))
			targeter := a.engine.Targeters().Current()
			require.NotNil(t, targeter)
			assert.ElementsMatch(t, []grid.Point{orc.Position(), goblin.Position()}, targeter.Points)

			// 1 + spell level 3 + level 4 / 2
			a.roller.SetRolls([]int{2, 2, 2, 2, 2, 2})
			require.NoError(t, a.engine.Targeters().Select(orc.Position()))

			assert.Equal(t, 28, orc.HP())
			assert.Equal(t, tt.wantGoblin, goblin.HP())
			assert.Equal(t, 40, ally.HP())
			assert.Equal(t, 7000, mage.ActionTimer().AP())
		})
	}
}

func TestFireball_NoTargets(t *testing.T) {
	a := newArena(t)
	mage := a.spawn("mage", "party", grid.Point{X: 0, Y: 0}, "Fireball")

	require.NoError(t, a.service.Activate(mage.SlotFor("Fireball")))
	assert.Nil(t, a.engine.Targeters().Current())
	assert.Equal(t, 10000, mage.ActionTimer().AP())
}

func TestBless(t *testing.T) {
	a := newArena(t)
	priest := a.spawn("priest", "party", grid.Point{X: 0, Y: 0}, "Bless")
	knight := a.spawn("knight", "party", grid.Point{X: 2, Y: 0})
	a.spawn("orc", "horde", grid.Point{X: 1, Y: 0})
	a.spawn("archer", "party", grid.Point{X: 9, Y: 9})

	require.NoError(t, a.service.Activate(priest.SlotFor("Bless")))
	targeter := a.engine.Targeters().Current()
	require.NotNil(t, targeter)
	assert.ElementsMatch(t, []grid.Point{priest.Position(), knight.Position()}, targeter.Points)

	require.NoError(t, a.engine.Targeters().Select(knight.Position()))
	assert.Equal(t, 2, knight.Stat(bonus.TypeAttack))
	assert.Equal(t, 9, knight.Stat(bonus.TypeMentalResistance))
	assert.Equal(t, 0, priest.Stat(bonus.TypeAttack))

	for range 4 {
		priest.ElapseRounds(1)
	}
	assert.Equal(t, 0, knight.Stat(bonus.TypeAttack), "blessing lasts 3 + level/4 rounds")
	assert.Equal(t, 0, knight.Effects().Size())
}

func TestDivineAura(t *testing.T) {
	a := newArena(t)
	cleric := a.spawn("cleric", "party", grid.Point{X: 5, Y: 5}, "Divine Aura")
	ally := a.spawn("ally", "party", grid.Point{X: 5, Y: 6})
	foe := a.spawn("foe", "horde", grid.Point{X: 6, Y: 5})
	far := a.spawn("far", "horde", grid.Point{X: 12, Y: 12})

	slot := cleric.SlotFor("Divine Aura")
	require.NoError(t, a.service.Activate(slot))
	require.True(t, slot.IsActive())
	assert.Equal(t, 4, slot.ActiveRoundsLeft())

	assert.Equal(t, 9, cleric.Stat(bonus.TypeAttack))
	assert.Equal(t, 9, ally.Stat(bonus.TypeAttack))
	assert.Equal(t, 18, ally.Stat(bonus.TypeDamage))
	assert.Equal(t, -9, foe.Stat(bonus.TypeAttack))
	assert.Equal(t, 0, far.Stat(bonus.TypeAttack))

	foe.SetPosition(grid.Point{X: 12, Y: 5})
	assert.Equal(t, 0, foe.Stat(bonus.TypeAttack), "leaving the aura drops its penalty")

	far.SetPosition(grid.Point{X: 5, Y: 4})
	assert.Equal(t, -9, far.Stat(bonus.TypeAttack))

	require.True(t, slot.CanDeactivate())
	require.NoError(t, a.service.Activate(slot))
	assert.False(t, slot.IsActive())
	assert.Equal(t, 0, cleric.Effects().Size())
	assert.Equal(t, 0, ally.Stat(bonus.TypeAttack))
	assert.Equal(t, 0, far.Stat(bonus.TypeAttack))
	assert.Empty(t, a.area.Effects())
}

func TestStance(t *testing.T) {
	tests := []struct {
		name      string
		entry     string
		wantAtk   int
		wantArmor int
	}{
		{name: "attack", entry: core.StanceAttack, wantAtk: 3, wantArmor: -3},
		{name: "defend", entry: core.StanceDefend, wantAtk: -3, wantArmor: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newArena(t)
			fighter := a.spawn("fighter", "party", grid.Point{X: 2, Y: 2}, "Stance")
			slot := fighter.SlotFor("Stance")

			require.NoError(t, a.service.Activate(slot))
			require.True(t, a.engine.Menu().IsOpening())
			level, ok := a.engine.Menu().LowestLevel()
			require.True(t, ok)
			assert.Equal(t, []string{core.StanceAttack, core.StanceDefend}, level.Texts())

			require.NoError(t, a.engine.Menu().Dispatch(ui.SelectEntry{Text: tt.entry}))
			assert.False(t, a.engine.Menu().IsOpen())
			require.NoError(t, a.engine.Targeters().Select(fighter.Position()))

			assert.Equal(t, tt.wantAtk, fighter.Stat(bonus.TypeAttack))
			assert.Equal(t, tt.wantArmor, fighter.Stat(bonus.TypeArmorClass))

			require.NoError(t, a.service.Activate(slot))
			assert.Equal(t, 0, fighter.Stat(bonus.TypeAttack))
			assert.Equal(t, 0, fighter.Effects().Size())
		})
	}
}

func TestRegeneration(t *testing.T) {
	a := newArena(t)
	troll := a.spawn("troll", "horde", grid.Point{X: 0, Y: 0})

	regen, err := core.NewEffect(a.scripts, core.RegenerationID, "Regeneration")
	require.NoError(t, err)
	troll.ApplyEffect(regen)
	require.True(t, regen.IsPermanent())

	troll.TakeDamage(10)
	troll.ElapseRounds(2)
	assert.Equal(t, 34, troll.HP())

	troll.ElapseRounds(5)
	assert.Equal(t, 40, troll.HP(), "never above maximum")

	troll.TakeDamage(40)
	troll.ElapseRounds(1)
	assert.True(t, troll.IsDead())
}
