package config

import (
	"testing"

	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"DISCORD_TOKEN", "DISCORD_COMBAT_LOG_CHANNEL",
	"REDIS_URL", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"DND5E_API_URL", "DND5E_IMPORT_CLASS",
	"ABILITY_DEFINITIONS_DIR", "AI_TURNS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Discord.Enabled())
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, "https://www.dnd5eapi.co/api", cfg.DND5E.BaseURL)
	assert.Equal(t, "wizard", cfg.DND5E.ImportClass)
	assert.Empty(t, cfg.Abilities.DefinitionsDir)
	assert.Equal(t, 3, cfg.AI.Turns)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_COMBAT_LOG_CHANNEL", "123")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("REDIS_PASSWORD", "secret")
	t.Setenv("REDIS_DB", "4")
	t.Setenv("DND5E_IMPORT_CLASS", "cleric")
	t.Setenv("ABILITY_DEFINITIONS_DIR", "/srv/abilities")
	t.Setenv("AI_TURNS", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Discord.Enabled())
	assert.Equal(t, "123", cfg.Discord.CombatLogChannel)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cleric", cfg.DND5E.ImportClass)
	assert.Equal(t, "/srv/abilities", cfg.Abilities.DefinitionsDir)
	assert.Equal(t, 7, cfg.AI.Turns)

	opts, err := cfg.Redis.Options()
	require.NoError(t, err)
	assert.Equal(t, "redis:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 4, opts.DB)
}

func TestLoad_RedisURLWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_URL", "redis://:pw@cache:6390/2")
	t.Setenv("REDIS_ADDR", "ignored:1")

	cfg, err := Load()
	require.NoError(t, err)

	opts, err := cfg.Redis.Options()
	require.NoError(t, err)
	assert.Equal(t, "cache:6390", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "negative turns", env: map[string]string{"AI_TURNS": "-1"}},
		{name: "token without channel", env: map[string]string{"DISCORD_TOKEN": "token"}},
		{name: "bad redis url", env: map[string]string{"REDIS_URL": "mysql://nope"}},
		{name: "negative redis db", env: map[string]string{"REDIS_DB": "-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.True(t, rpgerr.IsInvalidArgument(err), err.Error())
		})
	}
}

func TestLoad_UnparsableNumberFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_TURNS", "many")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.AI.Turns)
}
