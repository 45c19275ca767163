package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-banners/internal/features/banners/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBannerReader is a mock implementation of PublicBannerReader
type MockBannerReader struct {
	mock.Mock
}

func (m *MockBannerReader) FetchMainBanners(ctx context.Context) ([]domain.Banner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Banner), args.Error(1)
}

func (m *MockBannerReader) FetchSectionBanners(ctx context.Context) ([]domain.Banner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Banner), args.Error(1)
}

func setupApp(store *MockBannerReader) *fiber.App {
	app := fiber.New()
	NewBannerHandler(store).Register(app.Group("/api"))
	return app
}

func TestBannerHandler_GetMainBanners(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := new(MockBannerReader)
		app := setupApp(store)

		store.On("FetchMainBanners", mock.Anything).Return([]domain.Banner{
			{ID: 1, Title: "Hero", Variant: domain.MainDetails{Tag: "HOT"}},
		}, nil).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/api/banners/main", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body []map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body, 1)
		assert.Equal(t, "main", body[0]["type"])
		assert.Equal(t, "HOT", body[0]["tag"])
		store.AssertExpectations(t)
	})

	t.Run("Empty", func(t *testing.T) {
		store := new(MockBannerReader)
		app := setupApp(store)

		store.On("FetchMainBanners", mock.Anything).Return(nil, nil).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/api/banners/main", nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `[]`, string(body))
	})

	t.Run("UpstreamError", func(t *testing.T) {
		store := new(MockBannerReader)
		app := setupApp(store)

		store.On("FetchMainBanners", mock.Anything).Return(nil, &domain.APIError{StatusCode: 500}).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/api/banners/main", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})
}

func TestBannerHandler_GetSectionBanners(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := new(MockBannerReader)
		app := setupApp(store)

		store.On("FetchSectionBanners", mock.Anything).Return([]domain.Banner{
			{ID: 2, Variant: domain.SectionDetails{Action: &domain.CallToAction{Text: "Go", Link: "/go"}}},
		}, nil).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/api/banners/section", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		store.AssertExpectations(t)
	})

	t.Run("TransportError", func(t *testing.T) {
		store := new(MockBannerReader)
		app := setupApp(store)

		store.On("FetchSectionBanners", mock.Anything).Return(nil, errors.New("dial tcp: refused")).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/api/banners/section", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}
