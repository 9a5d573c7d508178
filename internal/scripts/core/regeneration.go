package core

import (
	"fmt"
	"strconv"

	"github.com/KirkDiggler/tactics-engine/internal/domain/creature"
	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"github.com/KirkDiggler/tactics-engine/internal/script"
)

// regeneration heals its bearer every round
func regeneration() *script.Script {
	return &script.Script{
		ID: RegenerationID,
		Hooks: map[script.FunctionType]script.Func{
			script.OnRoundElapsed: func(engine script.Engine, args ...any) error {
				if len(args) < 3 {
					return rpgerr.InvalidArgumentf("regeneration expects creature and rounds, got %d args", len(args))
				}
				c, ok := args[0].(*creature.Creature)
				if !ok {
					return rpgerr.InvalidArgumentf("expected a creature, got %T", args[0])
				}
				rounds, ok := args[1].(int)
				if !ok {
					return rpgerr.InvalidArgumentf("expected rounds, got %T", args[1])
				}
				if c.IsDead() || c.HP() >= c.MaxHP() {
					return nil
				}

				before := c.HP()
				c.Heal(rounds * max(1, c.Level()/2))
				healed := c.HP() - before

				engine.Messages().AddMessage(fmt.Sprintf("%s regenerates %d hit points", c.Name(), healed))
				engine.Messages().AddFadeAway(strconv.Itoa(healed), c.Position(), "green")
				return nil
			},
		},
	}
}
