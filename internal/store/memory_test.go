package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryUpsert_CreatesOfflineReview(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	r, err := m.Upsert(ctx, "u1", "1", "Blade Runner 2049", "", 5, "great")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(r.ID, "offline-"))
	require.Equal(t, OfflineUsername, r.Username)
	require.Equal(t, 5, r.Rating)
	require.False(t, r.CreatedAt.IsZero())
}

func TestMemoryUpsert_UpdatesInPlace(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	first, err := m.Upsert(ctx, "u1", "1", "Blade Runner 2049", "", 5, "great")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	second, err := m.Upsert(ctx, "u1", "1", "Blade Runner 2049", "", 3, "on reflection")
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, first.CreatedAt, second.CreatedAt)
	require.Equal(t, 3, second.Rating)
	require.Equal(t, "on reflection", second.Comment)
	require.True(t, second.UpdatedAt.After(first.UpdatedAt))

	all, err := m.MovieReviews(ctx, "1")
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestMemoryQueries_FilterByMovieAndUser(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.Upsert(ctx, "u1", "1", "Blade Runner 2049", "", 5, "")
	require.NoError(t, err)
	_, err = m.Upsert(ctx, "u1", "2", "Arrival", "", 4, "")
	require.NoError(t, err)
	_, err = m.Upsert(ctx, "u2", "1", "Blade Runner 2049", "", 2, "")
	require.NoError(t, err)

	byMovie, err := m.MovieReviews(ctx, "1")
	require.NoError(t, err)
	require.Len(t, byMovie, 2)

	byUser, err := m.UserReviews(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, byUser, 2)

	one, err := m.UserMovieReview(ctx, "u2", "1")
	require.NoError(t, err)
	require.NotNil(t, one)
	require.Equal(t, 2, one.Rating)

	none, err := m.UserMovieReview(ctx, "u2", "2")
	require.NoError(t, err)
	require.Nil(t, none)
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.Upsert(ctx, "u1", "1", "Blade Runner 2049", "", 5, "")
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, "u1", "1"))
	// deleting a missing review is a no-op
	require.NoError(t, m.Delete(ctx, "u1", "1"))

	r, err := m.UserMovieReview(ctx, "u1", "1")
	require.NoError(t, err)
	require.Nil(t, r)
}
