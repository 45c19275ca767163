package ports

import (
	"context"

	"storefront-banners/internal/features/banners/domain"
)

// BannerAPI is the secondary port to the remote banner REST API.
type BannerAPI interface {
	ListMain(ctx context.Context) ([]domain.Banner, error)
	ListSection(ctx context.Context) ([]domain.Banner, error)
	ListAdmin(ctx context.Context) (*domain.AdminBanners, error)
	Create(ctx context.Context, payload domain.Payload) (*domain.Banner, error)
	Update(ctx context.Context, id int, payload domain.Payload) (*domain.Banner, error)
	Delete(ctx context.Context, id int) error
	Reorder(ctx context.Context, items []domain.ReorderItem) error
}

// BannerStore is the primary port of the banner data access layer.
// Reads are served from the query cache; writes invalidate it.
type BannerStore interface {
	FetchMainBanners(ctx context.Context) ([]domain.Banner, error)
	FetchSectionBanners(ctx context.Context) ([]domain.Banner, error)
	FetchAllBannersAdmin(ctx context.Context) (*domain.AdminBanners, error)
	CreateBanner(ctx context.Context, payload domain.Payload) (*domain.Banner, error)
	UpdateBanner(ctx context.Context, id int, payload domain.Payload) (*domain.Banner, error)
	DeleteBanner(ctx context.Context, id int) error
	ReorderBanners(ctx context.Context, items []domain.ReorderItem) error
}

// QueryCache stores query results under namespaced keys and invalidates them by key group.
type QueryCache interface {
	// Load decodes the cached value for key into dst. Returns false on a miss.
	Load(ctx context.Context, key domain.QueryKey, dst any) (bool, error)
	// Store encodes and stores value under key.
	Store(ctx context.Context, key domain.QueryKey, value any) error
	// Invalidate marks every query under group stale.
	Invalidate(ctx context.Context, group domain.QueryKey) error
}
