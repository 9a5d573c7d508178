package testutils

import (
	"github.com/KirkDiggler/tactics-engine/internal/dice"
	mockdice "github.com/KirkDiggler/tactics-engine/internal/dice/mock"
	"github.com/KirkDiggler/tactics-engine/internal/domain/ability"
	"github.com/KirkDiggler/tactics-engine/internal/domain/creature"
	"github.com/KirkDiggler/tactics-engine/internal/events"
	"github.com/KirkDiggler/tactics-engine/internal/script"
	"github.com/KirkDiggler/tactics-engine/internal/uuid"
)

// CreateTestEngine creates a script engine around roller with a fresh
// event bus. A nil roller gets a manual mock roller.
func CreateTestEngine(roller dice.Roller) *script.GameEngine {
	if roller == nil {
		roller = mockdice.NewManualMockRoller()
	}
	return script.NewGameEngine(&script.GameEngineConfig{
		Dice:     roller,
		Messages: events.NewBusMessenger(events.NewBus()),
	})
}

// CreateTestCreature creates a level 5 creature with 30 hit points and
// deterministic effect IDs
func CreateTestCreature(engine script.Engine, scripts *script.Registry, id, faction string) *creature.Creature {
	return creature.New(&creature.Config{
		ID:      id,
		Name:    id,
		Faction: faction,
		Level:   5,
		MaxHP:   30,
		Engine:  engine,
		Scripts: scripts,
		IDs:     &uuid.Sequence{Prefix: id + "-fx-"},
	})
}

// CreateTestRuleset registers defs into a new ruleset, panicking on bad
// fixtures
func CreateTestRuleset(defs ...*ability.Definition) *ability.Ruleset {
	rs := ability.NewRuleset()
	for _, def := range defs {
		if _, err := rs.Register(def); err != nil {
			panic(err)
		}
	}
	return rs
}
