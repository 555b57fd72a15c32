package main

import (
	"flag"
	"path/filepath"
	"testing"
	"time"

	"github.com/aleister1102/snapgallery/internal/config"
	"github.com/aleister1102/snapgallery/internal/datastore"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want AppFlags
	}{
		{name: "none", args: []string{}, want: AppFlags{}},
		{name: "long", args: []string{"-config", "a.yaml", "-listen", ":9000"}, want: AppFlags{GlobalConfigFile: "a.yaml", ListenAddr: ":9000"}},
		{name: "alias", args: []string{"-c", "b.yml", "-l", "127.0.0.1:8080"}, want: AppFlags{GlobalConfigFile: "b.yml", ListenAddr: "127.0.0.1:8080"}},
		{name: "long wins", args: []string{"-c", "alias.yaml", "-config", "long.yaml"}, want: AppFlags{GlobalConfigFile: "long.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			assert.Equal(t, tt.want, parseFlags(fs, tt.args))
		})
	}
}

func TestNewCursorStore(t *testing.T) {
	cfg := config.NewDefaultSessionStoreConfig()

	cfg.Driver = config.StoreDriverMemory
	store, err := newCursorStore(cfg, time.UTC, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &datastore.MemoryCursorStore{}, store)
	require.NoError(t, store.Close())

	cfg.Driver = config.StoreDriverSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "db", "sessions.db")
	store, err = newCursorStore(cfg, time.UTC, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &datastore.SQLiteCursorStore{}, store)
	require.NoError(t, store.Close())

	cfg.Driver = "redis"
	_, err = newCursorStore(cfg, time.UTC, zerolog.Nop())
	assert.Error(t, err)
}
