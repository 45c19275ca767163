package service

import (
	"context"
	"sync/atomic"

	"storefront-banners/internal/core/logger"
	"storefront-banners/internal/features/banners/domain"
	"storefront-banners/internal/features/banners/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// BannerStore implements ports.BannerStore.
// API errors are returned untouched; cache failures are logged and never fail a call.
type BannerStore struct {
	api    ports.BannerAPI
	cache  ports.QueryCache
	flight singleflight.Group
	// generation increases on every invalidation; fetches started earlier are not cached.
	generation atomic.Uint64
	logger     *zap.Logger
}

// NewBannerStore creates a new BannerStore.
func NewBannerStore(api ports.BannerAPI, cache ports.QueryCache) *BannerStore {
	return &BannerStore{
		api:    api,
		cache:  cache,
		logger: logger.Named("banners"),
	}
}

// FetchMainBanners returns the public main banners.
func (s *BannerStore) FetchMainBanners(ctx context.Context) ([]domain.Banner, error) {
	return fetchQuery(ctx, s, domain.MainBannersKey, s.api.ListMain)
}

// FetchSectionBanners returns the public section banners.
func (s *BannerStore) FetchSectionBanners(ctx context.Context) ([]domain.Banner, error) {
	return fetchQuery(ctx, s, domain.SectionBannersKey, s.api.ListSection)
}

// FetchAllBannersAdmin returns every banner grouped by variant.
func (s *BannerStore) FetchAllBannersAdmin(ctx context.Context) (*domain.AdminBanners, error) {
	all, err := fetchQuery(ctx, s, domain.AdminBannersKey, func(ctx context.Context) (domain.AdminBanners, error) {
		res, err := s.api.ListAdmin(ctx)
		if err != nil {
			return domain.AdminBanners{}, err
		}
		return *res, nil
	})
	if err != nil {
		return nil, err
	}
	return &all, nil
}

// CreateBanner creates a banner and invalidates the banner queries.
func (s *BannerStore) CreateBanner(ctx context.Context, payload domain.Payload) (*domain.Banner, error) {
	created, err := s.api.Create(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return created, nil
}

// UpdateBanner replaces a banner and invalidates the banner queries.
func (s *BannerStore) UpdateBanner(ctx context.Context, id int, payload domain.Payload) (*domain.Banner, error) {
	updated, err := s.api.Update(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

// DeleteBanner removes a banner and invalidates the banner queries.
func (s *BannerStore) DeleteBanner(ctx context.Context, id int) error {
	if err := s.api.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// ReorderBanners bulk-updates display order and invalidates the banner queries.
func (s *BannerStore) ReorderBanners(ctx context.Context, items []domain.ReorderItem) error {
	if err := s.api.Reorder(ctx, items); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// invalidate marks every group in domain.MutationInvalidates stale.
func (s *BannerStore) invalidate(ctx context.Context) {
	s.generation.Add(1)
	for _, key := range []domain.QueryKey{domain.MainBannersKey, domain.SectionBannersKey, domain.AdminBannersKey} {
		s.flight.Forget(key.String())
	}

	for _, group := range domain.MutationInvalidates() {
		if err := s.cache.Invalidate(ctx, group); err != nil {
			s.logger.Warn("Failed to invalidate banner queries",
				zap.String("group", group.String()),
				zap.Error(err),
			)
		}
	}
}

// fetchQuery serves key from the cache, or fetches it once for all concurrent callers and stores it.
func fetchQuery[T any](ctx context.Context, s *BannerStore, key domain.QueryKey, fetch func(context.Context) (T, error)) (T, error) {
	var cached T
	hit, err := s.cache.Load(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("Query cache read failed", zap.String("query", key.String()), zap.Error(err))
	}
	if hit {
		return cached, nil
	}

	v, err, shared := s.flight.Do(key.String(), func() (interface{}, error) {
		// Joined callers must not fail because the first caller went away.
		// The API client timeout still bounds the request.
		ctx := context.WithoutCancel(ctx)

		generation := s.generation.Load()
		fresh, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		if s.generation.Load() != generation {
			return fresh, nil
		}
		if err := s.cache.Store(ctx, key, fresh); err != nil {
			s.logger.Warn("Query cache write failed", zap.String("query", key.String()), zap.Error(err))
		}
		// An invalidation that ran between the check above and the write leaves stale data behind.
		if s.generation.Load() != generation {
			if err := s.cache.Invalidate(ctx, key); err != nil {
				s.logger.Warn("Failed to drop stale query", zap.String("query", key.String()), zap.Error(err))
			}
		}
		return fresh, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	if shared {
		s.logger.Debug("Joined in-flight query", zap.String("query", key.String()))
	}
	return v.(T), nil
}
