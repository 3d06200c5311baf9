package database

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantdefender/internal/config"
	"plantdefender/internal/models"
)

func TestOpenMemoryStore(t *testing.T) {
	cfg := &config.AppConfig{Store: config.StoreConfig{Driver: config.StoreDriverMemory, UniqueEmail: true}}

	store, err := Open(context.Background(), cfg, zerolog.New(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, config.StoreDriverMemory, store.Driver)
	assert.NoError(t, store.Ping(context.Background()))

	ctx := context.Background()
	require.NoError(t, store.Users.Create(ctx, models.User{ID: "u1", Email: "a@example.com"}))
	assert.Error(t, store.Users.Create(ctx, models.User{ID: "u2", Email: "a@example.com"}))
	assert.NoError(t, store.Close(ctx))
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := &config.AppConfig{Store: config.StoreConfig{Driver: "sqlite"}}
	_, err := Open(context.Background(), cfg, zerolog.New(io.Discard))
	assert.Error(t, err)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "00001_init.sql", entries[0].Name())
}

func TestNewPostgresPoolRequiresDSN(t *testing.T) {
	_, err := NewPostgresPool(context.Background(), config.PostgresConfig{})
	assert.ErrorContains(t, err, "postgres.dsn")
}
