package ability_test

import (
	"testing"

	"github.com/KirkDiggler/tactics-engine/internal/domain/ability"
	"github.com/KirkDiggler/tactics-engine/internal/domain/grid"
	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"github.com/KirkDiggler/tactics-engine/internal/events"
	"github.com/KirkDiggler/tactics-engine/internal/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type owner map[string]bool

func (o owner) HasAbility(id string) bool { return o[id] }

func intPtr(v int) *int { return &v }

func newFireballRuleset(t *testing.T) *ability.Ruleset {
	t.Helper()
	rs := ability.NewRuleset()
	_, err := rs.Register(&ability.Definition{
		ID:           "Fireball",
		Kind:         ability.KindSpell,
		Script:       "fireball",
		Activateable: true,
		RangeType:    "Long",
		GroupType:    "Multiple",
		ActionType:   "Damage",
		AIPower:      50,
		SpellLevel:   3,
		Upgrades:     map[string]string{"GreaterFireball": "Bigger explosion"},
	})
	require.NoError(t, err)
	_, err = rs.Register(&ability.Definition{
		ID:         "GreaterFireball",
		RangeType:  "Long",
		GroupType:  "Multiple",
		AIPower:    80,
		SpellLevel: 5,
	})
	require.NoError(t, err)
	return rs
}

func TestUpgradedAIPower_Fireball(t *testing.T) {
	rs := newFireballRuleset(t)
	fireball := rs.Ability("Fireball")
	require.NotNil(t, fireball)

	assert.Equal(t, 80, fireball.UpgradedAIPower(owner{"Fireball": true, "GreaterFireball": true}))
	assert.Equal(t, 50, fireball.UpgradedAIPower(owner{"Fireball": true}))
	assert.Equal(t, 50, fireball.UpgradedAIPower(nil))

	assert.Equal(t, 5, fireball.SpellLevelFor(owner{"GreaterFireball": true}))
	assert.Equal(t, 3, fireball.SpellLevelFor(nil))
	assert.Equal(t, []string{"GreaterFireball: Bigger explosion"},
		fireball.UpgradeDescriptions(owner{"GreaterFireball": true}))
}

func TestUpgrades_NeverDowngradeAndNotTransitive(t *testing.T) {
	rs := ability.NewRuleset()
	for _, def := range []*ability.Definition{
		{ID: "Bolt", RangeType: "Short", GroupType: "Multiple", AIPower: 40,
			Upgrades: map[string]string{"Spark": "", "Lance": ""}},
		{ID: "Spark", RangeType: "Touch", GroupType: "Single", AIPower: 10},
		{ID: "Lance", RangeType: "Short", AIPower: 40,
			Upgrades: map[string]string{"Storm": ""}},
		{ID: "Storm", RangeType: "Long", AIPower: 99},
	} {
		_, err := rs.Register(def)
		require.NoError(t, err)
	}

	bolt := rs.Ability("Bolt")
	everything := owner{"Spark": true, "Lance": true, "Storm": true}

	rt, ok := bolt.UpgradedRangeType(everything)
	require.True(t, ok)
	assert.Equal(t, ability.RangeShort, rt)

	gt, ok := bolt.UpgradedGroupType(everything)
	require.True(t, ok)
	assert.Equal(t, ability.GroupMultiple, gt)

	assert.Equal(t, 40, bolt.UpgradedAIPower(everything))
}

func TestUpgrades_UndefinedCategorizationStaysUndefined(t *testing.T) {
	rs := ability.NewRuleset()
	_, err := rs.Register(&ability.Definition{ID: "Shove", Upgrades: map[string]string{"Throw": ""}})
	require.NoError(t, err)
	_, err = rs.Register(&ability.Definition{ID: "Throw", RangeType: "Touch", GroupType: "Single"})
	require.NoError(t, err)

	shove := rs.Ability("Shove")
	_, ok := shove.UpgradedRangeType(owner{"Throw": true})
	assert.False(t, ok)
	_, ok = shove.UpgradedGroupType(owner{"Throw": true})
	assert.False(t, ok)
	_, ok = shove.ActionType()
	assert.False(t, ok)
}

func TestNew_Defaults(t *testing.T) {
	a, err := ability.New(&ability.Definition{ID: "Cleave", ActionPointCost: 3000}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Cleave", a.Name())
	assert.Equal(t, "Ability", a.Type())
	assert.Equal(t, "30", a.ActionPointCostDescription())
	assert.Equal(t, 1, a.AIPriority())
	assert.Equal(t, ability.KindAbility, a.Kind())
	assert.False(t, a.SpellResistance())
	assert.Empty(t, a.UpgradeIDs())

	spell, err := ability.New(&ability.Definition{ID: "Sleep", Kind: ability.KindSpell, AIPriority: intPtr(4)}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Spell", spell.Type())
	assert.True(t, spell.SpellResistance())
	assert.Equal(t, 4, spell.AIPriority())

	noSR := false
	spell, err = ability.New(&ability.Definition{ID: "Heal", Kind: ability.KindSpell, SpellResistance: &noSR}, nil)
	require.NoError(t, err)
	assert.False(t, spell.SpellResistance())
}

func TestNew_ConfigurationWarningsAreNotFatal(t *testing.T) {
	a, err := ability.New(&ability.Definition{ID: "Odd", Cancelable: true, Mode: true, Fixed: true}, nil)
	require.NoError(t, err)
	assert.True(t, a.Cancelable())
	assert.True(t, a.Mode())
	assert.True(t, a.Fixed())
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name string
		def  *ability.Definition
	}{
		{name: "missing id", def: &ability.Definition{}},
		{name: "bad action type", def: &ability.Definition{ID: "x", ActionType: "buff"}},
		{name: "bad group type", def: &ability.Definition{ID: "x", GroupType: "Many"}},
		{name: "bad range type", def: &ability.Definition{ID: "x", RangeType: "Near"}},
		{name: "bad kind", def: &ability.Definition{ID: "x", Kind: "prayer"}},
		{name: "negative cost", def: &ability.Definition{ID: "x", ActionPointCost: -1}},
		{name: "self upgrade", def: &ability.Definition{ID: "x", Upgrades: map[string]string{"x": ""}}},
		{name: "bad prereq", def: &ability.Definition{ID: "x", Prereqs: []ability.PrereqDefinition{{Type: "luck"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ability.New(tt.def, nil)
			require.Error(t, err)
			assert.True(t, rpgerr.IsValidation(err), "got %v", err)
		})
	}
}

func TestUpgrades_ReturnsCopy(t *testing.T) {
	rs := newFireballRuleset(t)
	fireball := rs.Ability("Fireball")

	ups := fireball.Upgrades()
	ups["Hacked"] = "nope"
	assert.NotContains(t, fireball.Upgrades(), "Hacked")
}

type fakeTimer struct{ ap int }

func (t *fakeTimer) AP() int                        { return t.ap }
func (t *fakeTimer) CanPerformAction(cost int) bool { return t.ap >= cost }
func (t *fakeTimer) PerformAction(cost int) bool {
	if t.ap < cost {
		return false
	}
	t.ap -= cost
	return true
}

type fakeActivator struct {
	owner
	timer      *fakeTimer
	dispatched []script.FunctionType
	args       [][]any
}

func (f *fakeActivator) ID() string           { return "aria" }
func (f *fakeActivator) Name() string         { return "Aria" }
func (f *fakeActivator) Position() grid.Point { return grid.Point{X: 4, Y: 2} }
func (f *fakeActivator) Timer() ability.Timer { return f.timer }
func (f *fakeActivator) ExecuteOnEffects(fn script.FunctionType, args ...any) {
	f.dispatched = append(f.dispatched, fn)
	f.args = append(f.args, args)
}

func TestActivate(t *testing.T) {
	a, err := ability.New(&ability.Definition{ID: "bless", Name: "Bless", Activateable: true, ActionPointCost: 2500}, nil)
	require.NoError(t, err)

	bus := events.NewBus()
	var got []events.Event
	collect := &events.ListenerFunc{Name: "collect", Callback: func(e events.Event) error {
		got = append(got, e)
		return nil
	}}
	bus.Subscribe(events.EventTypeMessage, collect)
	bus.Subscribe(events.EventTypeFadeAway, collect)
	bus.Subscribe(events.EventTypeAbilityActivated, collect)

	parent := &fakeActivator{owner: owner{}, timer: &fakeTimer{ap: 10000}}
	a.Activate(parent, events.NewBusMessenger(bus))

	assert.Equal(t, []script.FunctionType{script.OnAbilityActivated}, parent.dispatched)
	assert.Equal(t, []any{a, parent}, parent.args[0])
	assert.Equal(t, 7500, parent.timer.AP())

	require.Len(t, got, 3)
	assert.Equal(t, "Aria uses Bless", got[0].(*events.MessageEvent).Text)
	fade := got[1].(*events.FadeAwayEvent)
	assert.Equal(t, "green", fade.Color)
	assert.Equal(t, grid.Point{X: 4, Y: 2}, fade.Position)
	assert.Equal(t, "bless", got[2].(*events.AbilityActivatedEvent).AbilityID)
}
