// Package config loads runtime settings from the environment.
package config

import (
	"log"
	"os"
	"strconv"

	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"github.com/redis/go-redis/v9"
)

// Config holds all configuration for the application
type Config struct {
	Discord   DiscordConfig
	Redis     RedisConfig
	DND5E     DND5EConfig
	Abilities AbilitiesConfig
	AI        AIConfig
}

// DiscordConfig holds the optional combat log relay settings
type DiscordConfig struct {
	Token            string
	CombatLogChannel string
}

// Enabled reports whether the combat log should be relayed
func (c DiscordConfig) Enabled() bool {
	return c.Token != ""
}

// RedisConfig holds Redis-specific configuration. When URL is empty and
// Enabled is false, effect state is kept in memory.
type RedisConfig struct {
	URL      string
	Addr     string
	Password string
	DB       int
	// Enabled is set when any Redis variable was given explicitly
	Enabled bool
}

// Options builds go-redis options, preferring URL over the discrete fields
func (c RedisConfig) Options() (*redis.Options, error) {
	if c.URL != "" {
		opts, err := redis.ParseURL(c.URL)
		if err != nil {
			return nil, rpgerr.WrapWithCode(err, rpgerr.CodeInvalidArgument, "invalid REDIS_URL")
		}
		return opts, nil
	}
	return &redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	}, nil
}

// DND5EConfig holds D&D 5e API configuration
type DND5EConfig struct {
	BaseURL     string
	ImportClass string
}

// AbilitiesConfig points at extra ability definitions
type AbilitiesConfig struct {
	// DefinitionsDir is loaded on top of the embedded definitions
	DefinitionsDir string
}

// AIConfig tunes the demo runner
type AIConfig struct {
	Turns int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Discord: DiscordConfig{
			Token:            os.Getenv("DISCORD_TOKEN"),
			CombatLogChannel: os.Getenv("DISCORD_COMBAT_LOG_CHANNEL"),
		},
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			Enabled:  anySet("REDIS_URL", "REDIS_ADDR"),
		},
		DND5E: DND5EConfig{
			BaseURL:     getEnvOrDefault("DND5E_API_URL", "https://www.dnd5eapi.co/api"),
			ImportClass: getEnvOrDefault("DND5E_IMPORT_CLASS", "wizard"),
		},
		Abilities: AbilitiesConfig{
			DefinitionsDir: os.Getenv("ABILITY_DEFINITIONS_DIR"),
		},
		AI: AIConfig{
			Turns: getEnvAsIntOrDefault("AI_TURNS", 3),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that depend on each other
func (c *Config) Validate() error {
	if c.AI.Turns < 0 {
		return rpgerr.InvalidArgumentf("AI_TURNS must not be negative, got %d", c.AI.Turns).
			WithMeta("AI_TURNS", c.AI.Turns)
	}
	if c.Discord.Enabled() && c.Discord.CombatLogChannel == "" {
		return rpgerr.InvalidArgument("DISCORD_COMBAT_LOG_CHANNEL is required when DISCORD_TOKEN is set")
	}
	if c.Redis.DB < 0 {
		return rpgerr.InvalidArgumentf("REDIS_DB must not be negative, got %d", c.Redis.DB)
	}
	if _, err := c.Redis.Options(); err != nil {
		return err
	}
	return nil
}

func anySet(keys ...string) bool {
	for _, k := range keys {
		if os.Getenv(k) != "" {
			return true
		}
	}
	return false
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
		log.Printf("Config: %s=%q is not a number, using %d", key, value, defaultValue)
	}
	return defaultValue
}
