package app

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/decker502/cartographer/pkg/config"
	"github.com/decker502/cartographer/pkg/embedded"
	"github.com/decker502/cartographer/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadQuestConfigEmbedded(t *testing.T) {
	embedded.Init(nil)
	cfg, err := LoadQuestConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultQuestConfig(), cfg)

	embedded.Init(fstest.MapFS{
		QuestConfigPath: {Data: []byte("chapter3:\n  variant: route\n")},
	})
	defer embedded.Init(nil)

	cfg, err = LoadQuestConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.Chapter3Route, cfg.Chapter3.Variant)
}

func TestLoadQuestConfigInvalidEmbedded(t *testing.T) {
	embedded.Init(fstest.MapFS{
		QuestConfigPath: {Data: []byte("chapter3:\n  variant: maze\n")},
	})
	defer embedded.Init(nil)

	_, err := LoadQuestConfig("")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestNewSessionStores(t *testing.T) {
	tests := []struct {
		name       string
		store      string
		persistent bool
	}{
		{"memory", config.StoreMemory, true},
		{"sqlite", config.StoreSQLite, true},
		{"none", config.StoreNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultQuestConfig()
			cfg.Seed = 7
			cfg.Persistence.Store = tt.store
			cfg.Persistence.SQLitePath = filepath.Join(t.TempDir(), "quest.db")

			s, err := NewSession(cfg, nil)
			require.NoError(t, err)
			defer s.Close()

			assert.Equal(t, tt.persistent, s.Saves.Enabled())
			require.NoError(t, s.Manager.Start())
			require.NoError(t, s.Manager.Begin())
			assert.Equal(t, game.SceneNavigation, s.Manager.ActiveScene())

			_, err = s.Saves.Load(s.Manager.SnapshotRules())
			if tt.persistent {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, game.ErrNoSnapshot)
			}
		})
	}
}

func TestNewSessionUsesEmbeddedStrings(t *testing.T) {
	embedded.Init(fstest.MapFS{
		QuestStringsPath: {Data: []byte("[TITLE]\nCustom Title\n")},
	})
	defer embedded.Init(nil)

	cfg := config.DefaultQuestConfig()
	cfg.Persistence.Store = config.StoreNone
	s, err := NewSession(cfg, nil)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "Custom Title", s.Manager.Strings().GetString(game.StrTitle))
}

func TestSessionCloseTwice(t *testing.T) {
	cfg := config.DefaultQuestConfig()
	cfg.Persistence.Store = config.StoreSQLite
	s, err := NewSession(cfg, nil)
	require.NoError(t, err)

	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}
