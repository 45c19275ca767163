package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"storefront-banners/internal/core/cache"
	"storefront-banners/internal/features/banners/adapters"
	"storefront-banners/internal/features/banners/domain"
	"storefront-banners/internal/features/banners/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBannerAPI is a mock implementation of ports.BannerAPI
type MockBannerAPI struct {
	mock.Mock
}

func (m *MockBannerAPI) ListMain(ctx context.Context) ([]domain.Banner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Banner), args.Error(1)
}

func (m *MockBannerAPI) ListSection(ctx context.Context) ([]domain.Banner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Banner), args.Error(1)
}

func (m *MockBannerAPI) ListAdmin(ctx context.Context) (*domain.AdminBanners, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminBanners), args.Error(1)
}

func (m *MockBannerAPI) Create(ctx context.Context, payload domain.Payload) (*domain.Banner, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Banner), args.Error(1)
}

func (m *MockBannerAPI) Update(ctx context.Context, id int, payload domain.Payload) (*domain.Banner, error) {
	args := m.Called(ctx, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Banner), args.Error(1)
}

func (m *MockBannerAPI) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBannerAPI) Reorder(ctx context.Context, items []domain.ReorderItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

// MockQueryCache is a mock implementation of ports.QueryCache
type MockQueryCache struct {
	mock.Mock
}

func (m *MockQueryCache) Load(ctx context.Context, key domain.QueryKey, dst any) (bool, error) {
	args := m.Called(ctx, key, dst)
	return args.Bool(0), args.Error(1)
}

func (m *MockQueryCache) Store(ctx context.Context, key domain.QueryKey, value any) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockQueryCache) Invalidate(ctx context.Context, group domain.QueryKey) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func mainBanners() []domain.Banner {
	return []domain.Banner{
		{ID: 1, Title: "Hero", IsActive: true, Variant: domain.MainDetails{}},
	}
}

func sectionBanners() []domain.Banner {
	return []domain.Banner{
		{ID: 2, Title: "Shoes", IsActive: true, Variant: domain.SectionDetails{}},
	}
}

func newStore(api *MockBannerAPI) *BannerStore {
	return NewBannerStore(api, adapters.NewCacheQueryStore(cache.NewMemoryAdapter(time.Minute), time.Minute, nil))
}

func TestBannerStore_FetchMainBanners_Cached(t *testing.T) {
	api := new(MockBannerAPI)
	store := newStore(api)
	ctx := context.Background()

	api.On("ListMain", mock.Anything).Return(mainBanners(), nil).Once()

	first, err := store.FetchMainBanners(ctx)
	require.NoError(t, err)
	second, err := store.FetchMainBanners(ctx)
	require.NoError(t, err)

	assert.Equal(t, mainBanners(), first)
	assert.Equal(t, first, second)
	api.AssertExpectations(t)
}

func TestBannerStore_FetchError_NotCached(t *testing.T) {
	api := new(MockBannerAPI)
	store := newStore(api)
	ctx := context.Background()

	apiErr := &domain.APIError{StatusCode: 500, Message: "boom"}
	api.On("ListSection", mock.Anything).Return(nil, apiErr).Once()
	api.On("ListSection", mock.Anything).Return(sectionBanners(), nil).Once()

	_, err := store.FetchSectionBanners(ctx)
	assert.Same(t, apiErr, err)

	banners, err := store.FetchSectionBanners(ctx)
	require.NoError(t, err)
	assert.Equal(t, sectionBanners(), banners)
	api.AssertExpectations(t)
}

func TestBannerStore_FetchAllBannersAdmin(t *testing.T) {
	api := new(MockBannerAPI)
	store := newStore(api)

	all := &domain.AdminBanners{Main: mainBanners(), Section: sectionBanners()}
	api.On("ListAdmin", mock.Anything).Return(all, nil).Once()

	got, err := store.FetchAllBannersAdmin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, all, got)

	got, err = store.FetchAllBannersAdmin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, all, got)
	api.AssertExpectations(t)
}

// TestBannerStore_MutationsInvalidate verifies every successful write makes the next reads refetch.
func TestBannerStore_MutationsInvalidate(t *testing.T) {
	payload := domain.JSONPayload{"type": "section", "title": "X"}

	mutations := map[string]struct {
		setup func(api *MockBannerAPI)
		run   func(ctx context.Context, s *BannerStore) error
	}{
		"Create": {
			setup: func(api *MockBannerAPI) {
				api.On("Create", mock.Anything, payload).Return(&domain.Banner{ID: 3, Variant: domain.SectionDetails{}}, nil).Once()
			},
			run: func(ctx context.Context, s *BannerStore) error {
				_, err := s.CreateBanner(ctx, payload)
				return err
			},
		},
		"Update": {
			setup: func(api *MockBannerAPI) {
				api.On("Update", mock.Anything, 2, payload).Return(&domain.Banner{ID: 2, Variant: domain.SectionDetails{}}, nil).Once()
			},
			run: func(ctx context.Context, s *BannerStore) error {
				_, err := s.UpdateBanner(ctx, 2, payload)
				return err
			},
		},
		"Delete": {
			setup: func(api *MockBannerAPI) {
				api.On("Delete", mock.Anything, 2).Return(nil).Once()
			},
			run: func(ctx context.Context, s *BannerStore) error {
				return s.DeleteBanner(ctx, 2)
			},
		},
		"Reorder": {
			setup: func(api *MockBannerAPI) {
				api.On("Reorder", mock.Anything, []domain.ReorderItem{{ID: 2, Order: 5}}).Return(nil).Once()
			},
			run: func(ctx context.Context, s *BannerStore) error {
				return s.ReorderBanners(ctx, []domain.ReorderItem{{ID: 2, Order: 5}})
			},
		},
	}

	for name, tc := range mutations {
		t.Run(name, func(t *testing.T) {
			api := new(MockBannerAPI)
			store := newStore(api)
			ctx := context.Background()

			api.On("ListMain", mock.Anything).Return(mainBanners(), nil).Twice()
			api.On("ListSection", mock.Anything).Return(sectionBanners(), nil).Twice()
			api.On("ListAdmin", mock.Anything).Return(&domain.AdminBanners{}, nil).Twice()
			tc.setup(api)

			warm := func() {
				_, err := store.FetchMainBanners(ctx)
				require.NoError(t, err)
				_, err = store.FetchSectionBanners(ctx)
				require.NoError(t, err)
				_, err = store.FetchAllBannersAdmin(ctx)
				require.NoError(t, err)
			}

			warm()
			warm() // served from cache
			require.NoError(t, tc.run(ctx, store))
			warm() // refetched after invalidation

			api.AssertExpectations(t)
		})
	}
}

func TestBannerStore_FailedMutationKeepsCache(t *testing.T) {
	api := new(MockBannerAPI)
	store := newStore(api)
	ctx := context.Background()

	apiErr := &domain.APIError{StatusCode: 422, Errors: map[string][]string{"title": {"required"}}}
	api.On("ListMain", mock.Anything).Return(mainBanners(), nil).Once()
	api.On("Delete", mock.Anything, 1).Return(apiErr).Once()

	_, err := store.FetchMainBanners(ctx)
	require.NoError(t, err)

	err = store.DeleteBanner(ctx, 1)
	assert.Same(t, apiErr, err)

	_, err = store.FetchMainBanners(ctx)
	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestBannerStore_CacheFailuresAreNotFatal(t *testing.T) {
	api := new(MockBannerAPI)
	qc := new(MockQueryCache)
	store := NewBannerStore(api, qc)
	ctx := context.Background()

	qc.On("Load", mock.Anything, domain.MainBannersKey, mock.Anything).Return(false, errors.New("redis down"))
	qc.On("Store", mock.Anything, domain.MainBannersKey, mock.Anything).Return(errors.New("redis down"))
	qc.On("Invalidate", mock.Anything, mock.Anything).Return(errors.New("redis down"))
	api.On("ListMain", mock.Anything).Return(mainBanners(), nil)
	api.On("Delete", mock.Anything, 1).Return(nil)

	banners, err := store.FetchMainBanners(ctx)
	require.NoError(t, err)
	assert.Equal(t, mainBanners(), banners)

	assert.NoError(t, store.DeleteBanner(ctx, 1))
	qc.AssertCalled(t, "Invalidate", mock.Anything, domain.AdminGroup)
	qc.AssertCalled(t, "Invalidate", mock.Anything, domain.PublicGroup)
}

// TestBannerStore_ConcurrentFetchesShareRequest verifies identical in-flight reads are deduplicated.
func TestBannerStore_ConcurrentFetchesShareRequest(t *testing.T) {
	api := new(MockBannerAPI)
	store := newStore(api)
	release := make(chan struct{})

	api.On("ListMain", mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return(mainBanners(), nil).Once()

	var wg sync.WaitGroup
	results := make([][]domain.Banner, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = store.FetchMainBanners(context.Background())
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, mainBanners(), r)
	}
	api.AssertExpectations(t)
}

// gatedQueryCache holds the first Store of a key until released.
type gatedQueryCache struct {
	ports.QueryCache
	key     domain.QueryKey
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedQueryCache) Store(ctx context.Context, key domain.QueryKey, value any) error {
	if key.String() == g.key.String() {
		g.once.Do(func() {
			close(g.entered)
			<-g.release
		})
	}
	return g.QueryCache.Store(ctx, key, value)
}

// TestBannerStore_WriteDuringCacheStoreIsNotLost verifies that a mutation finishing while a
// fetch is writing its result does not leave the pre-write list cached.
func TestBannerStore_WriteDuringCacheStoreIsNotLost(t *testing.T) {
	api := new(MockBannerAPI)
	qc := &gatedQueryCache{
		QueryCache: adapters.NewCacheQueryStore(cache.NewMemoryAdapter(time.Minute), time.Minute, nil),
		key:        domain.MainBannersKey,
		entered:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	store := NewBannerStore(api, qc)
	ctx := context.Background()

	fresh := []domain.Banner{{ID: 9, Title: "New", IsActive: true, Variant: domain.MainDetails{}}}
	created := &domain.Banner{ID: 9, Title: "New", IsActive: true, Variant: domain.MainDetails{}}

	api.On("ListMain", mock.Anything).Return(mainBanners(), nil).Once()
	api.On("ListMain", mock.Anything).Return(fresh, nil).Once()
	api.On("Create", mock.Anything, mock.Anything).Return(created, nil).Once()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = store.FetchMainBanners(ctx)
	}()

	select {
	case <-qc.entered:
	case <-time.After(time.Second):
		t.Fatal("fetch never reached the cache write")
	}

	_, err := store.CreateBanner(ctx, domain.JSONPayload{"title": "New", "type": "main"})
	require.NoError(t, err)

	close(qc.release)
	<-done

	banners, err := store.FetchMainBanners(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh, banners)
	api.AssertExpectations(t)
}

// TestBannerStore_CanceledCallerDoesNotFailJoinedFetch verifies the shared request outlives the
// context of the caller that started it.
func TestBannerStore_CanceledCallerDoesNotFailJoinedFetch(t *testing.T) {
	api := new(MockBannerAPI)
	store := newStore(api)
	release := make(chan struct{})
	started := make(chan struct{})

	api.On("ListMain", mock.Anything).
		Run(func(args mock.Arguments) {
			close(started)
			<-release
			assert.NoError(t, args.Get(0).(context.Context).Err())
		}).
		Return(mainBanners(), nil).Once()

	first, cancel := context.WithCancel(context.Background())
	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		_, _ = store.FetchMainBanners(first)
	}()
	<-started

	joined := make(chan []domain.Banner, 1)
	go func() {
		banners, err := store.FetchMainBanners(context.Background())
		assert.NoError(t, err)
		joined <- banners
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	close(release)
	<-firstDone

	assert.Equal(t, mainBanners(), <-joined)
	api.AssertExpectations(t)
}
