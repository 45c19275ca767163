package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"storefront-banners/internal/core/logger"
	"storefront-banners/internal/features/carousel/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Rotator is the carousel state machine driven by the handler.
type Rotator interface {
	Refresh(ctx context.Context) error
	Snapshot() domain.Snapshot
	Next() domain.Snapshot
	Prev() domain.Snapshot
	Select(i int) (domain.Snapshot, error)
}

// CarouselHandler serves the hero carousel fragment and its navigation.
// The carousel is shared by every client of the process: navigation from one
// visitor moves the slide shown to all of them. Serve one handler per viewer
// when independent rotation is needed.
type CarouselHandler struct {
	carousel Rotator
	renderer *Renderer
}

// NewCarouselHandler creates a new CarouselHandler.
func NewCarouselHandler(carousel Rotator, renderer *Renderer) *CarouselHandler {
	return &CarouselHandler{
		carousel: carousel,
		renderer: renderer,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	Message string `json:"message"`
	RayID   string `json:"ray_id,omitempty"`
}

// Register mounts the carousel routes.
func (h *CarouselHandler) Register(router fiber.Router) {
	router.Get("/carousel", h.Render)
	router.Get("/carousel/state", h.State)
	router.Post("/carousel/next", h.Next)
	router.Post("/carousel/prev", h.Prev)
	router.Post("/carousel/select/:index", h.Select)
}

// Render handles GET /carousel.
// @Summary Render carousel
// @Description Renders the hero carousel as an HTML fragment. Falls back to a placeholder while no banners are available.
// @Tags Carousel
// @Produce html
// @Success 200 {string} string
// @Router /carousel [get]
func (h *CarouselHandler) Render(c *fiber.Ctx) error {
	if err := h.carousel.Refresh(c.UserContext()); err != nil {
		rayID, _ := c.Locals("requestid").(string)
		logger.Get().Warn("Rendering carousel without fresh banners", zap.String("ray_id", rayID), zap.Error(err))
	}
	return h.render(c, h.carousel.Snapshot())
}

// State handles GET /carousel/state.
// @Summary Carousel state
// @Tags Carousel
// @Produce json
// @Success 200 {object} domain.Snapshot
// @Router /carousel/state [get]
func (h *CarouselHandler) State(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(h.carousel.Snapshot())
}

// Next handles POST /carousel/next.
// @Summary Next slide
// @Tags Carousel
// @Produce json
// @Success 200 {object} domain.Snapshot
// @Router /carousel/next [post]
func (h *CarouselHandler) Next(c *fiber.Ctx) error {
	return h.respond(c, h.carousel.Next())
}

// Prev handles POST /carousel/prev.
// @Summary Previous slide
// @Tags Carousel
// @Produce json
// @Success 200 {object} domain.Snapshot
// @Router /carousel/prev [post]
func (h *CarouselHandler) Prev(c *fiber.Ctx) error {
	return h.respond(c, h.carousel.Prev())
}

// Select handles POST /carousel/select/:index.
// @Summary Jump to slide
// @Tags Carousel
// @Produce json
// @Param index path int true "Slide index"
// @Success 200 {object} domain.Snapshot
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /carousel/select/{index} [post]
func (h *CarouselHandler) Select(c *fiber.Ctx) error {
	rayID, _ := c.Locals("requestid").(string)

	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid slide index",
			RayID:   rayID,
		})
	}

	snapshot, err := h.carousel.Select(index)
	if errors.Is(err, domain.ErrIndexOutOfRange) {
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Message: "Slide not found",
			RayID:   rayID,
		})
	}
	if err != nil {
		return err
	}

	return h.respond(c, snapshot)
}

// respond answers navigation requests. Plain form posts are redirected back to the fragment.
func (h *CarouselHandler) respond(c *fiber.Ctx, s domain.Snapshot) error {
	if c.Accepts(fiber.MIMEApplicationJSON, fiber.MIMETextHTML) == fiber.MIMETextHTML {
		return c.Redirect("/carousel", http.StatusSeeOther)
	}
	return c.Status(http.StatusOK).JSON(s)
}

func (h *CarouselHandler) render(c *fiber.Ctx, s domain.Snapshot) error {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, s); err != nil {
		rayID, _ := c.Locals("requestid").(string)
		logger.Get().Error("Failed to render carousel", zap.String("ray_id", rayID), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Failed to render carousel",
			RayID:   rayID,
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(http.StatusOK).Send(buf.Bytes())
}
