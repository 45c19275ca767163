package service

import (
	"context"
	"fmt"
	"sync"

	"storefront-banners/internal/core/logger"
	"storefront-banners/internal/features/admin/domain"
	banners "storefront-banners/internal/features/banners/domain"

	"go.uber.org/zap"
)

const (
	saveFailed   = "Failed to save banner"
	deleteFailed = "Failed to delete banner"
	listFailed   = "Failed to load banners"

	deletePrompt = "Are you sure you want to delete this banner?"
)

// Store is the part of the banner data layer used by the admin page.
type Store interface {
	FetchAllBannersAdmin(ctx context.Context) (*banners.AdminBanners, error)
	CreateBanner(ctx context.Context, payload banners.Payload) (*banners.Banner, error)
	UpdateBanner(ctx context.Context, id int, payload banners.Payload) (*banners.Banner, error)
	DeleteBanner(ctx context.Context, id int) error
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, message string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, message string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, message string) bool {
	return f(ctx, message)
}

// Notifier shows failure alerts to the user.
type Notifier interface {
	Alert(ctx context.Context, alert domain.Alert)
}

// Option configures a Page.
type Option func(*Page)

// WithMainBanners enables management of main banners.
func WithMainBanners(enabled bool) Option {
	return func(p *Page) { p.mainEnabled = enabled }
}

// WithNotifier sets where failure alerts go. Without one, failures are only logged.
func WithNotifier(n Notifier) Option {
	return func(p *Page) { p.notifier = n }
}

// Page is the admin banner management page: a list plus a modal editor.
// The modal moves closed -> create|edit -> submitting -> closed (success) or back to create|edit (failure).
type Page struct {
	store       Store
	mainEnabled bool
	notifier    Notifier
	logger      *zap.Logger

	mu         sync.Mutex
	modal      domain.Modal
	form       domain.Form
	editing    *banners.Banner
	imageInput domain.ImageInputType
	image      *banners.ImageFile
}

// NewPage creates a page with the editor closed.
func NewPage(store Store, opts ...Option) *Page {
	p := &Page{
		store:      store,
		logger:     logger.Named("admin"),
		modal:      domain.ModalClosed,
		imageInput: domain.ImageInputURL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MainBannersEnabled reports whether main banners can be managed.
func (p *Page) MainBannersEnabled() bool {
	return p.mainEnabled
}

// State returns the editor state.
func (p *Page) State() domain.State {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := domain.State{
		Modal:      p.modal,
		Kind:       p.form.Kind(),
		ImageInput: p.imageInput,
		HasImage:   p.image != nil,
	}
	if p.editing != nil {
		s.EditingID = p.editing.ID
	}
	return s
}

// Form returns a copy of the draft.
func (p *Page) Form() domain.Form {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.form
}

// OpenCreate opens the editor in create mode with the defaults of kind.
func (p *Page) OpenCreate(kind banners.Kind) error {
	if err := p.allowKind(kind); err != nil {
		return err
	}
	form, err := domain.NewForm(kind)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.modal == domain.ModalSubmitting {
		return domain.ErrSubmitInProgress
	}
	p.open(domain.ModalCreate, form, nil)
	return nil
}

// OpenEdit opens the editor on an existing banner.
func (p *Page) OpenEdit(b banners.Banner) error {
	if err := p.allowKind(b.Kind()); err != nil {
		return err
	}
	form, err := domain.FormFromBanner(b)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.modal == domain.ModalSubmitting {
		return domain.ErrSubmitInProgress
	}
	p.open(domain.ModalEdit, form, &b)
	return nil
}

// SetForm replaces the draft. The variant cannot change while the editor is open.
func (p *Page) SetForm(f domain.Form) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.editable(); err != nil {
		return err
	}
	if f.Kind() != p.form.Kind() {
		return fmt.Errorf("%w: %s != %s", domain.ErrKindMismatch, f.Kind(), p.form.Kind())
	}

	p.form = f
	return nil
}

// SetImageURL switches to URL input and sets the image URL. Any selected file is dropped.
func (p *Page) SetImageURL(url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.editable(); err != nil {
		return err
	}
	p.imageInput = domain.ImageInputURL
	p.form.ImageURL = url
	p.image = nil
	return nil
}

// SelectImage switches to file input with the given file.
func (p *Page) SelectImage(file banners.ImageFile) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.editable(); err != nil {
		return err
	}
	p.imageInput = domain.ImageInputFile
	p.image = &file
	return nil
}

// editable reports whether the draft may change. Callers hold p.mu.
func (p *Page) editable() error {
	switch p.modal {
	case domain.ModalClosed:
		return domain.ErrModalClosed
	case domain.ModalSubmitting:
		return domain.ErrSubmitInProgress
	}
	return nil
}

// Cancel closes the editor and discards the draft.
func (p *Page) Cancel() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.modal == domain.ModalSubmitting {
		return domain.ErrSubmitInProgress
	}
	p.reset()
	return nil
}

// Submit creates or updates the banner from the draft. While a submission is pending,
// further calls fail with ErrSubmitInProgress and issue no request.
func (p *Page) Submit(ctx context.Context) (*banners.Banner, error) {
	p.mu.Lock()

	switch p.modal {
	case domain.ModalClosed:
		p.mu.Unlock()
		return nil, domain.ErrModalClosed
	case domain.ModalSubmitting:
		p.mu.Unlock()
		return nil, domain.ErrSubmitInProgress
	}

	var image *banners.ImageFile
	if p.imageInput == domain.ImageInputFile {
		if p.image == nil {
			p.mu.Unlock()
			return nil, domain.ErrNoImageSelected
		}
		image = p.image
	}

	payload, err := domain.BuildPayload(p.form, image)
	if err != nil {
		p.mu.Unlock()
		return nil, err
	}

	previous := p.modal
	editing := p.editing
	p.modal = domain.ModalSubmitting
	p.mu.Unlock()

	var saved *banners.Banner
	if editing != nil {
		saved, err = p.store.UpdateBanner(ctx, editing.ID, payload)
	} else {
		saved, err = p.store.CreateBanner(ctx, payload)
	}

	p.mu.Lock()
	if err != nil {
		p.modal = previous
		p.mu.Unlock()

		p.fail(ctx, saveFailed, err)
		return nil, err
	}
	p.reset()
	p.mu.Unlock()

	p.logger.Info("Banner saved",
		zap.Int("id", saved.ID),
		zap.String("type", string(saved.Kind())),
		zap.Bool("update", editing != nil),
		zap.Bool("multipart", image != nil))

	return saved, nil
}

// Delete removes a banner after confirmation. It returns false without a request when the user declines.
func (p *Page) Delete(ctx context.Context, id int, confirm Confirmer) (bool, error) {
	if confirm == nil || !confirm.Confirm(ctx, deletePrompt) {
		return false, nil
	}

	if err := p.store.DeleteBanner(ctx, id); err != nil {
		p.fail(ctx, deleteFailed, err)
		return false, err
	}

	p.logger.Info("Banner deleted", zap.Int("id", id))
	return true, nil
}

// List returns the banners to manage. Main banners are left out unless enabled.
func (p *Page) List(ctx context.Context) (*banners.AdminBanners, error) {
	all, err := p.store.FetchAllBannersAdmin(ctx)
	if err != nil {
		p.fail(ctx, listFailed, err)
		return nil, err
	}

	view := &banners.AdminBanners{Section: all.Section}
	if p.mainEnabled {
		view.Main = all.Main
	}
	return view, nil
}

func (p *Page) allowKind(kind banners.Kind) error {
	if kind == banners.KindMain && !p.mainEnabled {
		return domain.ErrMainBannersDisabled
	}
	return nil
}

func (p *Page) open(modal domain.Modal, form domain.Form, editing *banners.Banner) {
	p.modal = modal
	p.form = form
	p.editing = editing
	p.imageInput = domain.ImageInputURL
	p.image = nil
}

func (p *Page) reset() {
	p.open(domain.ModalClosed, domain.Form{}, nil)
}

func (p *Page) fail(ctx context.Context, fallback string, err error) {
	alert := domain.NewAlert(fallback, err)
	p.logger.Warn(fallback, zap.Error(err), zap.Strings("errors", alert.Lines))
	if p.notifier != nil {
		p.notifier.Alert(ctx, alert)
	}
}
