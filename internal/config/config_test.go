package config_test

import (
	"testing"
	"time"

	"github.com/KirkDiggler/spellbook/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SPELLBOOK_LOG_LEVEL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("DND5E_TIMEOUT_SECONDS", "")
	t.Setenv("SPELLBOOK_IMPORT_CLASSES", "")
	t.Setenv("SPELLBOOK_MASTER_FORBIDDEN", "")
	t.Setenv("SPELLBOOK_MASTER_MAX_SPELLS", "")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, 30*time.Second, cfg.DND5E.Timeout)
	assert.Equal(t, []string{"wizard"}, cfg.DND5E.Classes)
	assert.Equal(t, "Ice", cfg.Master.Forbidden)
	assert.Equal(t, 5, cfg.Master.MaxSpells)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SPELLBOOK_LOG_LEVEL", "debug")
	t.Setenv("REDIS_URL", "redis://localhost:6379/2")
	t.Setenv("DND5E_TIMEOUT_SECONDS", "5")
	t.Setenv("SPELLBOOK_IMPORT_CLASSES", "wizard, sorcerer,,druid")
	t.Setenv("SPELLBOOK_MASTER_FORBIDDEN", "Fire")
	t.Setenv("SPELLBOOK_MASTER_MAX_SPELLS", "3")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "redis://localhost:6379/2", cfg.Redis.URL)
	assert.Equal(t, 5*time.Second, cfg.DND5E.Timeout)
	assert.Equal(t, []string{"wizard", "sorcerer", "druid"}, cfg.DND5E.Classes)
	assert.Equal(t, "Fire", cfg.Master.Forbidden)
	assert.Equal(t, 3, cfg.Master.MaxSpells)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "log level", key: "SPELLBOOK_LOG_LEVEL", value: "loud"},
		{name: "forbidden element", key: "SPELLBOOK_MASTER_FORBIDDEN", value: "Shadow"},
		{name: "master capacity", key: "SPELLBOOK_MASTER_MAX_SPELLS", value: "0"},
		{name: "timeout", key: "DND5E_TIMEOUT_SECONDS", value: "0"},
		{name: "redis url", key: "REDIS_URL", value: "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()

			assert.Error(t, err)
		})
	}
}
