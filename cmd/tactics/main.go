package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/tactics-engine/data"
	"github.com/KirkDiggler/tactics-engine/internal/config"
	"github.com/KirkDiggler/tactics-engine/internal/dice"
	"github.com/KirkDiggler/tactics-engine/internal/domain/ability"
	"github.com/KirkDiggler/tactics-engine/internal/events"
	notifydiscord "github.com/KirkDiggler/tactics-engine/internal/notify/discord"
	"github.com/KirkDiggler/tactics-engine/internal/repositories/effectstate"
	"github.com/KirkDiggler/tactics-engine/internal/script"
	"github.com/KirkDiggler/tactics-engine/internal/scripts/core"
	abilitysvc "github.com/KirkDiggler/tactics-engine/internal/services/ability"
	"github.com/KirkDiggler/tactics-engine/internal/services/ai"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bus := events.NewBus()
	bus.Subscribe(events.EventTypeMessage, &events.ListenerFunc{
		Name:  "stdout",
		Order: 10,
		Callback: func(event events.Event) error {
			if msg, ok := event.(*events.MessageEvent); ok {
				fmt.Println(msg.Text)
			}
			return nil
		},
	})

	var combatLog *notifydiscord.CombatLog
	if cfg.Discord.Enabled() {
		dg, err := discordgo.New("Bot " + cfg.Discord.Token)
		if err != nil {
			log.Fatalf("Failed to create Discord session: %v", err)
		}
		combatLog = notifydiscord.NewCombatLog(&notifydiscord.CombatLogConfig{
			Session:   dg,
			ChannelID: cfg.Discord.CombatLogChannel,
		})
		combatLog.Subscribe(bus)
		log.Printf("Relaying combat log to channel %s", cfg.Discord.CombatLogChannel)
	}

	engine := script.NewGameEngine(&script.GameEngineConfig{
		Dice:     dice.NewRandomRoller(time.Now().UnixNano()),
		Messages: events.NewBusMessenger(bus),
	})

	scripts := script.NewRegistry()
	if err := core.Register(scripts); err != nil {
		log.Fatalf("Failed to register scripts: %v", err)
	}

	rules := ability.NewRuleset()
	if err := rules.LoadFS(ctx, data.Abilities, data.AbilitiesDir); err != nil {
		log.Printf("Some embedded abilities failed to load: %v", err)
	}
	if dir := cfg.Abilities.DefinitionsDir; dir != "" {
		if err := rules.LoadFS(ctx, os.DirFS(dir), "."); err != nil {
			log.Printf("Some abilities in %s failed to load: %v", dir, err)
		}
	}
	log.Printf("Loaded %d abilities", rules.Len())

	repo, redisClient := newRepository(ctx, cfg.Redis)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Printf("Error closing Redis connection: %v", err)
			}
		}()
	}

	abilities := abilitysvc.NewService(&abilitysvc.ServiceConfig{Engine: engine, Scripts: scripts})
	a, err := newArena(&arenaConfig{
		Engine:  engine,
		Scripts: scripts,
		Rules:   rules,
		AI:      ai.NewStandard(&ai.StandardConfig{Abilities: abilities, Engine: engine}),
		Repo:    repo,
	})
	if err != nil {
		log.Fatalf("Failed to set up arena: %v", err)
	}

	for round := 1; round <= cfg.AI.Turns; round++ {
		if ctx.Err() != nil {
			log.Println("Interrupted")
			break
		}

		fmt.Printf("\n== Round %d ==\n", round)
		if err := a.playRound(ctx); err != nil {
			log.Printf("Round %d failed: %v", round, err)
		}
		if combatLog != nil {
			if err := combatLog.Flush(fmt.Sprintf("Round %d", round)); err != nil {
				log.Printf("Failed to relay combat log: %v", err)
			}
		}
		if a.decided() {
			break
		}
	}

	if err := a.report(ctx); err != nil {
		log.Printf("Failed to report saved state: %v", err)
	}
}

// newRepository connects to Redis when configured, falling back to memory
func newRepository(ctx context.Context, cfg config.RedisConfig) (effectstate.Repository, *redis.Client) {
	if !cfg.Enabled {
		log.Println("No Redis configured, keeping effect state in memory")
		return effectstate.NewInMemoryRepository(nil), nil
	}

	opts, err := cfg.Options()
	if err != nil {
		log.Printf("Failed to build Redis options: %v", err)
		return effectstate.NewInMemoryRepository(nil), nil
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		log.Println("Falling back to in-memory effect state")
		_ = client.Close()
		return effectstate.NewInMemoryRepository(nil), nil
	}

	log.Printf("Using Redis at %s for effect state", opts.Addr)
	return effectstate.NewRedis(client), client
}
