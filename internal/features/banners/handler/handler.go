package handler

import (
	"context"
	"errors"
	"net/http"

	"storefront-banners/internal/core/logger"
	"storefront-banners/internal/features/banners/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PublicBannerReader is the read side of the banner data layer used by storefront clients.
type PublicBannerReader interface {
	FetchMainBanners(ctx context.Context) ([]domain.Banner, error)
	FetchSectionBanners(ctx context.Context) ([]domain.Banner, error)
}

// BannerHandler handles HTTP requests for public banner lists.
type BannerHandler struct {
	store PublicBannerReader
}

// NewBannerHandler creates a new BannerHandler.
func NewBannerHandler(store PublicBannerReader) *BannerHandler {
	return &BannerHandler{
		store: store,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// Register mounts the public banner routes.
func (h *BannerHandler) Register(router fiber.Router) {
	router.Get("/banners/main", h.GetMainBanners)
	router.Get("/banners/section", h.GetSectionBanners)
}

// GetMainBanners handles GET /api/banners/main.
// @Summary List main banners
// @Description Returns the active hero banners ordered by display order.
// @Tags Banners
// @Produce json
// @Success 200 {array} domain.Banner
// @Failure 502 {object} ErrorResponse
// @Router /api/banners/main [get]
func (h *BannerHandler) GetMainBanners(c *fiber.Ctx) error {
	banners, err := h.store.FetchMainBanners(c.UserContext())
	if err != nil {
		return h.fail(c, "Failed to fetch main banners", err)
	}
	return c.Status(http.StatusOK).JSON(nonNil(banners))
}

// GetSectionBanners handles GET /api/banners/section.
// @Summary List section banners
// @Description Returns the active section banners ordered by display order.
// @Tags Banners
// @Produce json
// @Success 200 {array} domain.Banner
// @Failure 502 {object} ErrorResponse
// @Router /api/banners/section [get]
func (h *BannerHandler) GetSectionBanners(c *fiber.Ctx) error {
	banners, err := h.store.FetchSectionBanners(c.UserContext())
	if err != nil {
		return h.fail(c, "Failed to fetch section banners", err)
	}
	return c.Status(http.StatusOK).JSON(nonNil(banners))
}

func (h *BannerHandler) fail(c *fiber.Ctx, msg string, err error) error {
	rayID, _ := c.Locals("requestid").(string)

	logger.Get().Error(msg, zap.String("ray_id", rayID), zap.Error(err))

	status := http.StatusBadGateway
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		status = http.StatusServiceUnavailable
	}

	return c.Status(status).JSON(ErrorResponse{
		Message: msg,
		RayID:   rayID,
	})
}

// nonNil makes an empty result encode as [] instead of null.
func nonNil(banners []domain.Banner) []domain.Banner {
	if banners == nil {
		return []domain.Banner{}
	}
	return banners
}
