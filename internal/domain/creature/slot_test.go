package creature_test

import (
	"testing"

	"github.com/KirkDiggler/tactics-engine/internal/domain/ability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbilitySlot_ActivateAndCooldown(t *testing.T) {
	rs := ability.NewRuleset()
	c := newCreature(t, "aria", nil)
	c.AddAbility(mustAbility(t, rs, &ability.Definition{
		ID: "Fireball", Activateable: true, Cooldown: 2, ActionPointCost: 4000,
	}))

	s := c.SlotFor("Fireball")
	require.NotNil(t, s)
	assert.Same(t, c, s.Parent())
	assert.True(t, s.CanActivate())
	assert.False(t, s.CanDeactivate())

	s.Activate()
	assert.Equal(t, 6000, c.Timer().AP())
	assert.Equal(t, 2, s.CooldownRemaining())
	assert.False(t, s.CanActivate())

	c.ElapseRounds(1)
	assert.False(t, s.CanActivate())
	c.ElapseRounds(1)
	assert.True(t, s.CanActivate())

	c.ActionTimer().EndTurn()
	assert.False(t, s.CanActivate(), "cannot afford the AP")
}

func TestAbilitySlot_ModeDeactivateRemovesEffects(t *testing.T) {
	rs := ability.NewRuleset()
	c := newCreature(t, "cleric", nil)
	ally := newCreature(t, "fighter", nil)
	c.AddAbility(mustAbility(t, rs, &ability.Definition{
		ID: "DivineAura", Activateable: true, Mode: true, Cancelable: true,
	}))

	s := c.SlotFor("DivineAura")
	s.Activate()
	assert.True(t, s.IsActive())
	assert.True(t, s.CanDeactivate())
	assert.False(t, s.CanActivate())

	onCaster := s.CreateEffect("")
	onCaster.SetRemoveOnDeactivate(true)
	c.ApplyEffect(onCaster)

	onAlly := s.CreateEffect("")
	onAlly.SetRemoveOnDeactivate(true)
	ally.ApplyEffect(onAlly)

	lingering := s.CreateEffect("")
	ally.ApplyEffect(lingering)

	s.Deactivate()
	assert.False(t, s.IsActive())
	assert.Equal(t, 0, c.Effects().Size())
	assert.Equal(t, 1, ally.Effects().Size())
	assert.Len(t, s.Effects(), 1)
}

func TestAbilitySlot_TimedModeAndEffects(t *testing.T) {
	rs := ability.NewRuleset()
	c := newCreature(t, "aria", nil)
	c.AddAbility(mustAbility(t, rs, &ability.Definition{ID: "Stance", Activateable: true, Mode: true}))

	s := c.SlotFor("Stance")
	s.Activate()
	s.SetActiveRoundsLeft(2)

	e := s.CreateEffect("missing-script")
	e.SetDuration(1)
	c.ApplyEffect(e)

	c.ElapseRounds(1)
	assert.Equal(t, 0, c.Effects().Size(), "slot times its own effects")
	assert.True(t, s.IsActive())
	assert.Equal(t, 1, s.ActiveRoundsLeft())

	c.ElapseRounds(1)
	assert.False(t, s.IsActive())
	assert.Empty(t, s.Effects())
}
