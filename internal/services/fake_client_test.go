package services

import (
	"context"
	"fmt"

	"github.com/kryptocritics/kryptocritics/internal/models"
	"github.com/kryptocritics/kryptocritics/internal/remote"
)

// errConn simulates an unreachable backend.
var errConn = fmt.Errorf("%w: dial tcp: connection refused", remote.ErrUnavailable)

// fakeClient implements remote.Client with overridable behavior per method.
// Unset methods return zero values.
type fakeClient struct {
	signUpFn          func(ctx context.Context, in models.SignUpInput) (*remote.AuthResult, error)
	signInFn          func(ctx context.Context, email, password string) (*remote.AuthResult, error)
	signOutFn         func(ctx context.Context) error
	currentUserFn     func(ctx context.Context) (*models.User, error)
	refreshFn         func(ctx context.Context, refreshToken string) (*remote.AuthResult, error)
	pingFn            func(ctx context.Context) error
	movieReviewsFn    func(ctx context.Context, movieID string) ([]models.Review, error)
	userReviewsFn     func(ctx context.Context, userID string) ([]models.Review, error)
	userMovieReviewFn func(ctx context.Context, userID, movieID string) (*models.Review, error)
	upsertReviewFn    func(ctx context.Context, up remote.ReviewUpsert) (*models.Review, error)
	deleteReviewFn    func(ctx context.Context, userID, movieID string) error
	profileFn         func(ctx context.Context, userID string) (*models.Profile, error)
	updateProfileFn   func(ctx context.Context, userID string, patch remote.ProfilePatch) error
	addWishlistFn     func(ctx context.Context, userID, movieID string) error
	removeWishlistFn  func(ctx context.Context, userID, movieID string) error
	wishlistFn        func(ctx context.Context, userID string) ([]string, error)
	inWishlistFn      func(ctx context.Context, userID, movieID string) (bool, error)

	session           *models.Session
	clearSessionCalls int
}

func (f *fakeClient) SignUp(ctx context.Context, in models.SignUpInput) (*remote.AuthResult, error) {
	if f.signUpFn != nil {
		return f.signUpFn(ctx, in)
	}
	return &remote.AuthResult{}, nil
}

func (f *fakeClient) SignIn(ctx context.Context, email, password string) (*remote.AuthResult, error) {
	if f.signInFn != nil {
		return f.signInFn(ctx, email, password)
	}
	return &remote.AuthResult{}, nil
}

func (f *fakeClient) SignOut(ctx context.Context) error {
	if f.signOutFn != nil {
		return f.signOutFn(ctx)
	}
	return nil
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*models.User, error) {
	if f.currentUserFn != nil {
		return f.currentUserFn(ctx)
	}
	return nil, nil
}

func (f *fakeClient) RefreshSession(ctx context.Context, refreshToken string) (*remote.AuthResult, error) {
	if f.refreshFn != nil {
		return f.refreshFn(ctx, refreshToken)
	}
	return &remote.AuthResult{}, nil
}

func (f *fakeClient) SetSession(accessToken, refreshToken string) {
	f.session = &models.Session{AccessToken: accessToken, RefreshToken: refreshToken}
}

func (f *fakeClient) ClearSession() {
	f.clearSessionCalls++
	f.session = nil
}

func (f *fakeClient) Session() *models.Session { return f.session }

func (f *fakeClient) Ping(ctx context.Context) error {
	if f.pingFn != nil {
		return f.pingFn(ctx)
	}
	return nil
}

func (f *fakeClient) MovieReviews(ctx context.Context, movieID string) ([]models.Review, error) {
	if f.movieReviewsFn != nil {
		return f.movieReviewsFn(ctx, movieID)
	}
	return nil, nil
}

func (f *fakeClient) UserReviews(ctx context.Context, userID string) ([]models.Review, error) {
	if f.userReviewsFn != nil {
		return f.userReviewsFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeClient) UserMovieReview(ctx context.Context, userID, movieID string) (*models.Review, error) {
	if f.userMovieReviewFn != nil {
		return f.userMovieReviewFn(ctx, userID, movieID)
	}
	return nil, nil
}

func (f *fakeClient) UpsertReview(ctx context.Context, up remote.ReviewUpsert) (*models.Review, error) {
	if f.upsertReviewFn != nil {
		return f.upsertReviewFn(ctx, up)
	}
	return &models.Review{}, nil
}

func (f *fakeClient) DeleteReview(ctx context.Context, userID, movieID string) error {
	if f.deleteReviewFn != nil {
		return f.deleteReviewFn(ctx, userID, movieID)
	}
	return nil
}

func (f *fakeClient) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	if f.profileFn != nil {
		return f.profileFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeClient) UpdateProfile(ctx context.Context, userID string, patch remote.ProfilePatch) error {
	if f.updateProfileFn != nil {
		return f.updateProfileFn(ctx, userID, patch)
	}
	return nil
}

func (f *fakeClient) AddToWishlist(ctx context.Context, userID, movieID string) error {
	if f.addWishlistFn != nil {
		return f.addWishlistFn(ctx, userID, movieID)
	}
	return nil
}

func (f *fakeClient) RemoveFromWishlist(ctx context.Context, userID, movieID string) error {
	if f.removeWishlistFn != nil {
		return f.removeWishlistFn(ctx, userID, movieID)
	}
	return nil
}

func (f *fakeClient) Wishlist(ctx context.Context, userID string) ([]string, error) {
	if f.wishlistFn != nil {
		return f.wishlistFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeClient) InWishlist(ctx context.Context, userID, movieID string) (bool, error) {
	if f.inWishlistFn != nil {
		return f.inWishlistFn(ctx, userID, movieID)
	}
	return false, nil
}

var _ remote.Client = (*fakeClient)(nil)

// fakeMeta is an in-memory MetadataStore.
type fakeMeta struct {
	data map[string][]byte
}

func newFakeMeta() *fakeMeta { return &fakeMeta{data: map[string][]byte{}} }

func (m *fakeMeta) Get(_ context.Context, key string) ([]byte, error) { return m.data[key], nil }

func (m *fakeMeta) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *fakeMeta) DeleteMeta(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// fakeWishlistStore is an in-memory WishlistStore.
type fakeWishlistStore struct {
	entries map[string][]string
}

func newFakeWishlistStore() *fakeWishlistStore {
	return &fakeWishlistStore{entries: map[string][]string{}}
}

func (s *fakeWishlistStore) AddWishlist(_ context.Context, userID, movieID string) error {
	for _, id := range s.entries[userID] {
		if id == movieID {
			return nil
		}
	}
	s.entries[userID] = append(s.entries[userID], movieID)
	return nil
}

func (s *fakeWishlistStore) RemoveWishlist(_ context.Context, userID, movieID string) error {
	ids := s.entries[userID]
	for i, id := range ids {
		if id == movieID {
			s.entries[userID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *fakeWishlistStore) Wishlist(_ context.Context, userID string) ([]string, error) {
	return s.entries[userID], nil
}

func (s *fakeWishlistStore) InWishlist(_ context.Context, userID, movieID string) (bool, error) {
	for _, id := range s.entries[userID] {
		if id == movieID {
			return true, nil
		}
	}
	return false, nil
}
