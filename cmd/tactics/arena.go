package main

import (
	"context"
	"fmt"
	"log"

	"github.com/KirkDiggler/tactics-engine/internal/domain/ability"
	"github.com/KirkDiggler/tactics-engine/internal/domain/area"
	"github.com/KirkDiggler/tactics-engine/internal/domain/creature"
	"github.com/KirkDiggler/tactics-engine/internal/domain/effect"
	"github.com/KirkDiggler/tactics-engine/internal/domain/grid"
	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"github.com/KirkDiggler/tactics-engine/internal/repositories/effectstate"
	"github.com/KirkDiggler/tactics-engine/internal/script"
	"github.com/KirkDiggler/tactics-engine/internal/scripts/core"
	"github.com/KirkDiggler/tactics-engine/internal/services/ai"
)

const arenaID = "pale-pass"

type spawn struct {
	id         string
	name       string
	faction    string
	level      int
	maxHP      int
	attributes map[string]int
	at         grid.Point
	abilities  []string
	regenerate bool
}

var roster = []spawn{
	{id: "aria", name: "Aria", faction: "party", level: 9, maxHP: 45, attributes: map[string]int{"wisdom": 16},
		at: grid.Point{X: 5, Y: 5}, abilities: []string{"Divine Aura", "Bless", "Stance"}},
	{id: "brann", name: "Brann", faction: "party", level: 9, maxHP: 36,
		at: grid.Point{X: 4, Y: 5}, abilities: []string{"Fireball", "Greater Fireball"}},
	{id: "grusk", name: "Grusk", faction: "horde", level: 6, maxHP: 60,
		at: grid.Point{X: 8, Y: 5}, abilities: []string{"Stance"}, regenerate: true},
	{id: "snik", name: "Snik", faction: "horde", level: 5, maxHP: 28, attributes: map[string]int{"wisdom": 12},
		at: grid.Point{X: 9, Y: 6}, abilities: []string{"Fireball", "Bless", "Divine Aura"}},
}

type arenaConfig struct {
	Engine  *script.GameEngine
	Scripts *script.Registry
	Rules   *ability.Ruleset
	AI      *ai.Standard
	Repo    effectstate.Repository
}

type arena struct {
	engine   *script.GameEngine
	scripts  *script.Registry
	ai       *ai.Standard
	repo     effectstate.Repository
	area     *area.Area
	fighters []*creature.Creature
}

func newArena(cfg *arenaConfig) (*arena, error) {
	a := &arena{
		engine:  cfg.Engine,
		scripts: cfg.Scripts,
		ai:      cfg.AI,
		repo:    cfg.Repo,
		area:    area.New(arenaID, cfg.Engine),
	}

	for _, s := range roster {
		c := creature.New(&creature.Config{
			ID:         s.id,
			Name:       s.name,
			Faction:    s.faction,
			Level:      s.level,
			Attributes: s.attributes,
			MaxHP:      s.maxHP,
			Engine:     cfg.Engine,
			Scripts:    cfg.Scripts,
		})

		for _, id := range s.abilities {
			ab := cfg.Rules.Ability(id)
			if ab == nil {
				return nil, rpgerr.NotFoundf("ability %s for %s is not defined", id, s.name)
			}
			if !ab.MeetsPrereqs(c) {
				log.Printf("Arena: %s does not meet the prerequisites of %s (%s)", s.name, id, ab.Prereqs().All())
				continue
			}
			c.AddAbility(ab)
		}

		if s.regenerate {
			regen, err := core.NewEffect(cfg.Scripts, core.RegenerationID, "Regeneration")
			if err != nil {
				return nil, err
			}
			c.ApplyEffect(regen)
		}

		c.EnterArea(a.area, s.at)
		a.fighters = append(a.fighters, c)
	}

	return a, nil
}

// playRound gives every living fighter an AI turn, then advances effects
// and persists them
func (a *arena) playRound(ctx context.Context) error {
	for _, c := range a.fighters {
		if c.IsDead() {
			continue
		}
		c.NewTurn()

		result, err := a.ai.RunTurn(c, c.Visible())
		if err != nil {
			return rpgerr.Wrapf(err, "turn of %s failed", c.Name())
		}
		if result.Fallback {
			fmt.Printf("%s has no abilities left to use\n", c.Name())
		}
	}

	for _, c := range a.fighters {
		if c.IsDead() {
			continue
		}
		c.ElapseRounds(1)
	}

	for _, c := range a.fighters {
		err := a.repo.Save(ctx, &effectstate.Record{
			EntityID: c.ID(),
			AreaID:   a.area.ID(),
			Effects:  c.SaveEffects(),
		})
		if err != nil {
			return err
		}
	}

	for _, c := range a.fighters {
		fmt.Printf("  %-6s %3d/%-3d HP  %d effects\n", c.Name(), c.HP(), c.MaxHP(), c.Effects().Size())
	}
	return nil
}

// decided reports whether only one faction is still standing
func (a *arena) decided() bool {
	standing := make(map[string]bool)
	for _, c := range a.fighters {
		if !c.IsDead() {
			standing[c.Faction()] = true
		}
	}
	return len(standing) <= 1
}

// report reloads the saved effects into fresh clones to show the saved
// state round trips
func (a *arena) report(ctx context.Context) error {
	records, err := a.repo.ListByArea(ctx, a.area.ID())
	if err != nil {
		return err
	}

	byID := make(map[string]*creature.Creature, len(a.fighters))
	for _, c := range a.fighters {
		byID[c.ID()] = c
	}

	fmt.Println("\n== Saved effect state ==")
	refs := effect.NewRefTable()
	for _, rec := range records {
		c, ok := byID[rec.EntityID]
		if !ok {
			log.Printf("Arena: no fighter for saved record %s", rec.EntityID)
			continue
		}

		restored := c.Clone(c.ID())
		if err := restored.RestoreEffects(rec.Effects, refs); err != nil {
			return err
		}
		fmt.Printf("  %-6s saved %s, %d effects restored\n",
			c.Name(), rec.UpdatedAt.Format("15:04:05"), restored.Effects().Size())
	}
	return nil
}
