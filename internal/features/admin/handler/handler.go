package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"storefront-banners/internal/core/config"
	"storefront-banners/internal/core/logger"
	"storefront-banners/internal/features/admin/domain"
	"storefront-banners/internal/features/admin/service"
	banners "storefront-banners/internal/features/banners/domain"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// maxImageSize bounds uploaded banner images.
const maxImageSize = 5 << 20

var (
	errImageTooLarge = errors.New("image exceeds 5MB")
	errNotAnImage    = errors.New("uploaded file is not an image")
)

// ConsoleHandler exposes the admin banner page over HTTP.
// Each request drives a fresh page through open -> edit -> submit.
type ConsoleHandler struct {
	store       service.Store
	mainEnabled bool
	validate    *validator.Validate
}

// NewConsoleHandler creates a new ConsoleHandler.
func NewConsoleHandler(store service.Store, cfg config.AdminConfig) *ConsoleHandler {
	return &ConsoleHandler{
		store:       store,
		mainEnabled: cfg.MainBannersEnabled,
		validate:    newValidator(),
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// Errors lists per-field problems as "field: message".
	Errors []string `json:"errors,omitempty"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// ListResponse is the managed banner listing.
type ListResponse struct {
	MainEnabled bool             `json:"main_enabled"`
	Main        []banners.Banner `json:"main"`
	Section     []banners.Banner `json:"section"`
}

// Register mounts the console routes.
func (h *ConsoleHandler) Register(router fiber.Router) {
	g := router.Group("/admin/console/banners")
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}

func (h *ConsoleHandler) newPage() *service.Page {
	return service.NewPage(h.store, service.WithMainBanners(h.mainEnabled))
}

// List handles GET /admin/console/banners.
// @Summary List managed banners
// @Description Section banners, plus main banners when their management is enabled.
// @Tags Admin
// @Produce json
// @Success 200 {object} ListResponse
// @Failure 502 {object} ErrorResponse
// @Router /admin/console/banners [get]
func (h *ConsoleHandler) List(c *fiber.Ctx) error {
	page := h.newPage()

	view, err := page.List(c.UserContext())
	if err != nil {
		return h.fail(c, "Failed to load banners", err)
	}

	resp := ListResponse{
		MainEnabled: page.MainBannersEnabled(),
		Main:        []banners.Banner{},
		Section:     []banners.Banner{},
	}
	if view.Main != nil {
		resp.Main = view.Main
	}
	if view.Section != nil {
		resp.Section = view.Section
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// Create handles POST /admin/console/banners.
// @Summary Create banner
// @Description Accepts JSON (image_url) or multipart/form-data (image file).
// @Tags Admin
// @Accept json,mpfd
// @Produce json
// @Param banner body BannerRequest true "Banner fields"
// @Success 201 {object} banners.Banner
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /admin/console/banners [post]
func (h *ConsoleHandler) Create(c *fiber.Ctx) error {
	req, image, err := h.parse(c)
	if err != nil {
		return h.badRequest(c, err)
	}

	page := h.newPage()
	if err := page.OpenCreate(banners.Kind(req.Type)); err != nil {
		return h.fail(c, "Cannot create banner", err)
	}

	saved, err := h.submit(c.UserContext(), page, req, image)
	if err != nil {
		return h.fail(c, "Failed to save banner", err)
	}
	return c.Status(http.StatusCreated).JSON(saved)
}

// Update handles PUT /admin/console/banners/:id.
// @Summary Update banner
// @Description Full replace of an existing banner. The banner type cannot change.
// @Tags Admin
// @Accept json,mpfd
// @Produce json
// @Param id path int true "Banner ID"
// @Param banner body BannerRequest true "Banner fields"
// @Success 200 {object} banners.Banner
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /admin/console/banners/{id} [put]
func (h *ConsoleHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return h.badRequest(c, errors.New("invalid banner id"))
	}

	req, image, err := h.parse(c)
	if err != nil {
		return h.badRequest(c, err)
	}

	page := h.newPage()
	view, err := page.List(c.UserContext())
	if err != nil {
		return h.fail(c, "Failed to load banners", err)
	}

	existing, ok := find(view, id)
	if !ok {
		return h.respond(c, http.StatusNotFound, ErrorResponse{Message: "Banner not found"})
	}
	if banners.Kind(req.Type) != existing.Kind() {
		return h.badRequest(c, fmt.Errorf("%w: banner %d is %s", domain.ErrKindMismatch, id, existing.Kind()))
	}

	if err := page.OpenEdit(existing); err != nil {
		return h.fail(c, "Cannot edit banner", err)
	}

	saved, err := h.submit(c.UserContext(), page, req, image)
	if err != nil {
		return h.fail(c, "Failed to save banner", err)
	}
	return c.Status(http.StatusOK).JSON(saved)
}

// Delete handles DELETE /admin/console/banners/:id.
// @Summary Delete banner
// @Description Requires confirm=true; without it nothing is sent to the banner API.
// @Tags Admin
// @Param id path int true "Banner ID"
// @Param confirm query bool true "Confirm deletion"
// @Success 204
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /admin/console/banners/{id} [delete]
func (h *ConsoleHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return h.badRequest(c, errors.New("invalid banner id"))
	}

	confirmed := c.QueryBool("confirm", false)
	deleted, err := h.newPage().Delete(c.UserContext(), id, service.ConfirmFunc(func(context.Context, string) bool {
		return confirmed
	}))
	if err != nil {
		return h.fail(c, "Failed to delete banner", err)
	}
	if !deleted {
		return h.respond(c, http.StatusConflict, ErrorResponse{Message: "Deletion requires confirmation (confirm=true)"})
	}

	return c.SendStatus(http.StatusNoContent)
}

func (h *ConsoleHandler) submit(ctx context.Context, page *service.Page, req *BannerRequest, image *banners.ImageFile) (*banners.Banner, error) {
	err := page.SetForm(req.Apply(page.Form()))
	if err != nil {
		return nil, err
	}

	if image != nil {
		err = page.SelectImage(*image)
	} else {
		err = page.SetImageURL(page.Form().ImageURL)
	}
	if err != nil {
		return nil, err
	}

	return page.Submit(ctx)
}

// parse binds and validates the body. A multipart "image" part selects file input.
func (h *ConsoleHandler) parse(c *fiber.Ctx) (*BannerRequest, *banners.ImageFile, error) {
	var req BannerRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, nil, fmt.Errorf("invalid request body: %w", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return nil, nil, err
	}

	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return &req, nil, nil
	}

	fh, err := c.FormFile(banners.FieldImage)
	if err != nil {
		// No file part: the image stays a URL.
		return &req, nil, nil
	}

	contentType := fh.Header.Get(fiber.HeaderContentType)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, nil, errNotAnImage
	}
	if fh.Size > maxImageSize {
		return nil, nil, errImageTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageSize+1))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > maxImageSize {
		return nil, nil, errImageTooLarge
	}

	return &req, &banners.ImageFile{
		Filename:    fh.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

func find(view *banners.AdminBanners, id int) (banners.Banner, bool) {
	for _, list := range [][]banners.Banner{view.Main, view.Section} {
		for _, b := range list {
			if b.ID == id {
				return b, true
			}
		}
	}
	return banners.Banner{}, false
}

func (h *ConsoleHandler) badRequest(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return h.respond(c, http.StatusBadRequest, ErrorResponse{
			Message: "Invalid banner",
			Errors:  validationLines(err),
		})
	}
	return h.respond(c, http.StatusBadRequest, ErrorResponse{Message: err.Error()})
}

// fail maps page and API errors to a status and the user-facing alert.
func (h *ConsoleHandler) fail(c *fiber.Ctx, fallback string, err error) error {
	var apiErr *banners.APIError
	status := http.StatusServiceUnavailable

	switch {
	case errors.Is(err, domain.ErrMainBannersDisabled):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrSubmitInProgress):
		status = http.StatusConflict
	case errors.Is(err, banners.ErrInvalidKind),
		errors.Is(err, domain.ErrKindMismatch),
		errors.Is(err, domain.ErrNoImageSelected):
		status = http.StatusBadRequest
	case errors.As(err, &apiErr):
		switch {
		case apiErr.IsValidation():
			status = http.StatusUnprocessableEntity
		case apiErr.StatusCode == http.StatusNotFound:
			status = http.StatusNotFound
		default:
			status = http.StatusBadGateway
		}
	}

	if status == http.StatusServiceUnavailable || status == http.StatusBadGateway {
		rayID, _ := c.Locals("requestid").(string)
		logger.Get().Error(fallback, zap.String("ray_id", rayID), zap.Error(err))
	}

	alert := domain.NewAlert(fallback, err)
	if status == http.StatusForbidden || status == http.StatusBadRequest || status == http.StatusConflict {
		alert = domain.Alert{Message: err.Error()}
	}

	return h.respond(c, status, ErrorResponse{Message: alert.Message, Errors: alert.Lines})
}

func (h *ConsoleHandler) respond(c *fiber.Ctx, status int, body ErrorResponse) error {
	body.RayID, _ = c.Locals("requestid").(string)
	return c.Status(status).JSON(body)
}
