package script

import (
	"github.com/KirkDiggler/tactics-engine/internal/dice"
	"github.com/KirkDiggler/tactics-engine/internal/events"
	"github.com/KirkDiggler/tactics-engine/internal/ui"
)

// GameEngine is the Engine handed to hooks during play
type GameEngine struct {
	dice      dice.Roller
	menu      *ui.Menu
	targeters *ui.TargeterManager
	messages  events.Messenger
}

// GameEngineConfig holds the collaborators of a GameEngine
type GameEngineConfig struct {
	Dice      dice.Roller
	Menu      *ui.Menu
	Targeters *ui.TargeterManager
	Messages  events.Messenger
}

// NewGameEngine creates an engine. Menu and targeters default to fresh
// instances; dice and messages are required.
func NewGameEngine(cfg *GameEngineConfig) *GameEngine {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Dice == nil {
		panic("dice roller is required")
	}
	if cfg.Messages == nil {
		panic("messenger is required")
	}

	e := &GameEngine{
		dice:      cfg.Dice,
		menu:      cfg.Menu,
		targeters: cfg.Targeters,
		messages:  cfg.Messages,
	}
	if e.menu == nil {
		e.menu = ui.NewMenu()
	}
	if e.targeters == nil {
		e.targeters = ui.NewTargeterManager()
	}
	return e
}

func (e *GameEngine) Dice() dice.Roller              { return e.dice }
func (e *GameEngine) Menu() *ui.Menu                 { return e.menu }
func (e *GameEngine) Targeters() *ui.TargeterManager { return e.targeters }
func (e *GameEngine) Messages() events.Messenger     { return e.messages }
