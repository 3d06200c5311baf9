package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantdefender/internal/models"
)

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository(false)

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, models.User{ID: "u2", Email: "alice@example.com", CreatedAt: base.Add(time.Second)}))
	require.NoError(t, repo.Create(ctx, models.User{ID: "u1", Email: "alice@example.com", CreatedAt: base}))

	got, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID, "oldest duplicate wins")

	_, err = repo.FindByEmail(ctx, "bob@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	got, err = repo.GetByID(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryUserRepositoryUniqueEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository(true)

	require.NoError(t, repo.Create(ctx, models.User{ID: "u1", Email: "a@example.com"}))
	assert.ErrorIs(t, repo.Create(ctx, models.User{ID: "u2", Email: "a@example.com"}), ErrDuplicateEmail)
}

func TestMemoryScanRepositoryOwnershipAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryScanRepository()
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, models.Scan{
			ID:        fmt.Sprintf("a%d", i),
			UserID:    "alice",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Create(ctx, models.Scan{ID: "b0", UserID: "bob", CreatedAt: base.Add(time.Hour)}))

	list, err := repo.ListByUser(ctx, "alice", MaxScanPage)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"a2", "a1", "a0"}, []string{list[0].ID, list[1].ID, list[2].ID})

	_, err = repo.FindByOwner(ctx, "alice", "b0")
	assert.ErrorIs(t, err, ErrScanNotFound)

	got, err := repo.FindByOwner(ctx, "bob", "b0")
	require.NoError(t, err)
	assert.Equal(t, "bob", got.UserID)

	empty, err := repo.ListByUser(ctx, "carol", MaxScanPage)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMemoryScanRepositoryLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryScanRepository()
	base := time.Now().UTC()

	for i := 0; i < MaxScanPage+5; i++ {
		require.NoError(t, repo.Create(ctx, models.Scan{
			ID:        fmt.Sprintf("s%03d", i),
			UserID:    "alice",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	list, err := repo.ListByUser(ctx, "alice", 0)
	require.NoError(t, err)
	assert.Len(t, list, MaxScanPage)
	assert.Equal(t, fmt.Sprintf("s%03d", MaxScanPage+4), list[0].ID)

	list, err = repo.ListByUser(ctx, "alice", 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestMemoryScanRepositoryEqualTimestampsNewestInsertFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryScanRepository()
	at := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, models.Scan{ID: "first", UserID: "u", CreatedAt: at}))
	require.NoError(t, repo.Create(ctx, models.Scan{ID: "second", UserID: "u", CreatedAt: at}))

	list, err := repo.ListByUser(ctx, "u", 10)
	require.NoError(t, err)
	assert.Equal(t, "second", list[0].ID)
}
