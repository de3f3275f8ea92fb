package services

import (
	"context"

	"github.com/kryptocritics/kryptocritics/internal/logging"
	"github.com/kryptocritics/kryptocritics/internal/offline"
	"github.com/kryptocritics/kryptocritics/internal/remote"
	"github.com/kryptocritics/kryptocritics/internal/store"
)

// WishlistService is the wishlist façade. Writes go through to the local
// store as well as the backend so the wishlist stays usable offline; reads
// prefer the backend and fall back to the local copy on connectivity
// failure. Non-connectivity backend errors are logged and absorbed into safe
// defaults, matching the fire-and-forget nature of the feature.
type WishlistService struct {
	remote remote.Client
	local  store.WishlistStore
	status *offline.Status
	log    logging.Logger
}

func NewWishlistService(client remote.Client, local store.WishlistStore, status *offline.Status, log logging.Logger) *WishlistService {
	return &WishlistService{remote: client, local: local, status: status, log: log}
}

func (s *WishlistService) Add(ctx context.Context, userID, movieID string) error {
	if err := s.local.AddWishlist(ctx, userID, movieID); err != nil {
		return err
	}
	if s.remote == nil {
		return nil
	}
	if err := s.remote.AddToWishlist(ctx, userID, movieID); err != nil {
		if remote.IsConnectivity(err) {
			s.status.SetOffline("backend unreachable")
			return nil
		}
		s.log.Warn(ctx, "wishlist add not persisted remotely", "movie_id", movieID, "error", err)
		return nil
	}
	s.status.SetOnline()
	return nil
}

func (s *WishlistService) Remove(ctx context.Context, userID, movieID string) error {
	if err := s.local.RemoveWishlist(ctx, userID, movieID); err != nil {
		return err
	}
	if s.remote == nil {
		return nil
	}
	if err := s.remote.RemoveFromWishlist(ctx, userID, movieID); err != nil {
		if remote.IsConnectivity(err) {
			s.status.SetOffline("backend unreachable")
			return nil
		}
		s.log.Warn(ctx, "wishlist remove not persisted remotely", "movie_id", movieID, "error", err)
		return nil
	}
	s.status.SetOnline()
	return nil
}

// MovieIDs returns the wishlisted movie ids, newest first. Errors resolve to
// an empty list.
func (s *WishlistService) MovieIDs(ctx context.Context, userID string) []string {
	if s.remote != nil {
		ids, err := s.remote.Wishlist(ctx, userID)
		if err == nil {
			s.status.SetOnline()
			return ids
		}
		if remote.IsConnectivity(err) {
			s.status.SetOffline("backend unreachable")
		} else {
			s.log.Warn(ctx, "wishlist fetch failed", "error", err)
		}
	}

	ids, err := s.local.Wishlist(ctx, userID)
	if err != nil {
		s.log.Warn(ctx, "local wishlist fetch failed", "error", err)
		return nil
	}
	return ids
}

// Contains reports whether the movie is wishlisted. Errors resolve to false.
func (s *WishlistService) Contains(ctx context.Context, userID, movieID string) bool {
	if s.remote != nil {
		in, err := s.remote.InWishlist(ctx, userID, movieID)
		if err == nil {
			s.status.SetOnline()
			return in
		}
		if remote.IsConnectivity(err) {
			s.status.SetOffline("backend unreachable")
		} else {
			s.log.Warn(ctx, "wishlist lookup failed", "movie_id", movieID, "error", err)
		}
	}

	in, err := s.local.InWishlist(ctx, userID, movieID)
	if err != nil {
		s.log.Warn(ctx, "local wishlist lookup failed", "movie_id", movieID, "error", err)
		return false
	}
	return in
}
