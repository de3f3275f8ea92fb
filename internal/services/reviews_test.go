package services

import (
	"context"
	"errors"
	"testing"

	"github.com/kryptocritics/kryptocritics/internal/logging"
	"github.com/kryptocritics/kryptocritics/internal/models"
	"github.com/kryptocritics/kryptocritics/internal/offline"
	"github.com/kryptocritics/kryptocritics/internal/remote"
	"github.com/kryptocritics/kryptocritics/internal/store"
	"github.com/stretchr/testify/require"
)

func newReviewService(client remote.Client) (*ReviewService, *store.Memory, *offline.Status) {
	fallback := store.NewMemory()
	status := offline.NewStatus(logging.NewDiscard())
	return NewReviewService(client, fallback, status, logging.NewDiscard()), fallback, status
}

func TestMovieReviews_RemoteFirst(t *testing.T) {
	client := &fakeClient{
		movieReviewsFn: func(_ context.Context, movieID string) ([]models.Review, error) {
			return []models.Review{{ID: "r1", MovieID: movieID, Rating: 5, Username: "rick"}}, nil
		},
	}
	svc, _, status := newReviewService(client)

	reviews, err := svc.MovieReviews(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	require.Equal(t, "rick", reviews[0].Username)
	require.False(t, status.Offline())
}

func TestMovieReviews_FallsBackOnConnectivityError(t *testing.T) {
	client := &fakeClient{
		movieReviewsFn: func(context.Context, string) ([]models.Review, error) {
			return nil, errConn
		},
	}
	svc, fallback, status := newReviewService(client)

	_, err := fallback.Upsert(context.Background(), "u1", "1", "Blade Runner 2049", "", 4, "local")
	require.NoError(t, err)

	reviews, err := svc.MovieReviews(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	require.Equal(t, "local", reviews[0].Comment)
	require.True(t, status.Offline())
}

func TestMovieReviews_NonConnectivityErrorSurfaces(t *testing.T) {
	client := &fakeClient{
		movieReviewsFn: func(context.Context, string) ([]models.Review, error) {
			return nil, remote.ErrUnauthorized
		},
	}
	svc, _, status := newReviewService(client)

	_, err := svc.MovieReviews(context.Background(), "1")
	require.ErrorIs(t, err, remote.ErrUnauthorized)
	require.False(t, status.Offline())
}

func TestMovieReviews_SuccessFlipsBackOnline(t *testing.T) {
	client := &fakeClient{
		movieReviewsFn: func(context.Context, string) ([]models.Review, error) {
			return nil, nil
		},
	}
	svc, _, status := newReviewService(client)
	status.SetOffline("backend unreachable")

	_, err := svc.MovieReviews(context.Background(), "1")
	require.NoError(t, err)
	require.False(t, status.Offline())
}

func TestSubmit_ValidatesInput(t *testing.T) {
	svc, _, _ := newReviewService(&fakeClient{})

	_, err := svc.Submit(context.Background(), "u1", "1", "Blade Runner 2049", "", models.ReviewInput{Rating: 0})
	require.Error(t, err)

	_, err = svc.Submit(context.Background(), "u1", "1", "Blade Runner 2049", "", models.ReviewInput{Rating: 6})
	require.Error(t, err)
}

func TestSubmit_OfflineWriteGetsOfflineIdentity(t *testing.T) {
	client := &fakeClient{
		upsertReviewFn: func(context.Context, remote.ReviewUpsert) (*models.Review, error) {
			return nil, errConn
		},
	}
	svc, _, status := newReviewService(client)

	review, err := svc.Submit(context.Background(), "u1", "1", "Blade Runner 2049", "", models.ReviewInput{Rating: 4, Comment: "good"})
	require.NoError(t, err)
	require.Contains(t, review.ID, "offline-")
	require.Equal(t, store.OfflineUsername, review.Username)
	require.True(t, status.Offline())
}

func TestSubmit_InvokesChangeHook(t *testing.T) {
	client := &fakeClient{
		upsertReviewFn: func(_ context.Context, up remote.ReviewUpsert) (*models.Review, error) {
			return &models.Review{ID: "r1", MovieID: up.MovieID, Rating: up.Rating}, nil
		},
	}
	svc, _, _ := newReviewService(client)

	var changed []string
	svc.OnChange(func(_ context.Context, movieID string) { changed = append(changed, movieID) })

	_, err := svc.Submit(context.Background(), "u1", "3", "Dune", "", models.ReviewInput{Rating: 4})
	require.NoError(t, err)
	require.Equal(t, []string{"3"}, changed)
}

func TestSubmit_RemoteErrorSkipsChangeHook(t *testing.T) {
	client := &fakeClient{
		upsertReviewFn: func(context.Context, remote.ReviewUpsert) (*models.Review, error) {
			return nil, remote.ErrUnauthorized
		},
	}
	svc, _, _ := newReviewService(client)

	called := false
	svc.OnChange(func(context.Context, string) { called = true })

	_, err := svc.Submit(context.Background(), "u1", "1", "Blade Runner 2049", "", models.ReviewInput{Rating: 4})
	require.ErrorIs(t, err, remote.ErrUnauthorized)
	require.False(t, called)
}

func TestDelete_FallsBackOffline(t *testing.T) {
	client := &fakeClient{
		deleteReviewFn: func(context.Context, string, string) error { return errConn },
	}
	svc, fallback, status := newReviewService(client)

	_, err := fallback.Upsert(context.Background(), "u1", "1", "Blade Runner 2049", "", 4, "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "u1", "1"))
	require.True(t, status.Offline())

	r, err := fallback.UserMovieReview(context.Background(), "u1", "1")
	require.NoError(t, err)
	require.Nil(t, r)
}

func TestNilRemote_ServesFromFallback(t *testing.T) {
	svc := NewReviewService(nil, store.NewMemory(), offline.NewStatus(logging.NewDiscard()), logging.NewDiscard())

	review, err := svc.Submit(context.Background(), "u1", "1", "Blade Runner 2049", "", models.ReviewInput{Rating: 5})
	require.NoError(t, err)
	require.NotNil(t, review)

	reviews, err := svc.MovieReviews(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)

	mine, err := svc.UserReviews(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)

	require.NoError(t, svc.Delete(context.Background(), "u1", "1"))
	reviews, err = svc.MovieReviews(context.Background(), "1")
	require.NoError(t, err)
	require.Empty(t, reviews)
}

func TestUserMovieReview_Fallback(t *testing.T) {
	calls := 0
	client := &fakeClient{
		userMovieReviewFn: func(context.Context, string, string) (*models.Review, error) {
			calls++
			return nil, errConn
		},
	}
	svc, fallback, _ := newReviewService(client)

	_, err := fallback.Upsert(context.Background(), "u1", "1", "Blade Runner 2049", "", 3, "")
	require.NoError(t, err)

	r, err := svc.UserMovieReview(context.Background(), "u1", "1")
	require.NoError(t, err)
	require.NotNil(t, r)
	require.Equal(t, 3, r.Rating)
	require.Equal(t, 1, calls)
}

func TestDelete_NonConnectivityErrorSurfaces(t *testing.T) {
	client := &fakeClient{
		deleteReviewFn: func(context.Context, string, string) error {
			return errors.New("row level security violation")
		},
	}
	svc, _, _ := newReviewService(client)

	called := false
	svc.OnChange(func(context.Context, string) { called = true })

	err := svc.Delete(context.Background(), "u1", "1")
	require.Error(t, err)
	require.False(t, called)
}
