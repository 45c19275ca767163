package domain

import (
	"errors"
	"fmt"

	banners "storefront-banners/internal/features/banners/domain"
)

// Modal is the state of the banner editor dialog.
type Modal string

const (
	ModalClosed     Modal = "closed"
	ModalCreate     Modal = "create"
	ModalEdit       Modal = "edit"
	ModalSubmitting Modal = "submitting"
)

// ImageInputType selects how the banner image is supplied.
type ImageInputType string

const (
	ImageInputURL  ImageInputType = "url"
	ImageInputFile ImageInputType = "file"
)

// DefaultTextColor is pre-filled when creating a banner.
const DefaultTextColor = "#ffffff"

var (
	// ErrMainBannersDisabled is returned while main banner management is switched off.
	ErrMainBannersDisabled = errors.New("main banner management is disabled")
	// ErrSubmitInProgress is returned when the editor is busy with a pending request.
	ErrSubmitInProgress = errors.New("a submission is already in progress")
	// ErrModalClosed is returned when submitting without an open editor.
	ErrModalClosed = errors.New("no banner is being edited")
	// ErrNoImageSelected is returned in file input mode without a chosen file.
	ErrNoImageSelected = errors.New("no image file selected")
	// ErrKindMismatch is returned when a form's variant differs from the one being edited.
	ErrKindMismatch = errors.New("form variant does not match the banner being edited")
)

// Draft is the variant-specific part of a Form.
// It is sealed: only MainDraft and SectionDraft implement it.
type Draft interface {
	Kind() banners.Kind
	isDraft()
}

// MainDraft holds the editable optional fields of a main banner.
type MainDraft struct {
	GradientTitle       string
	Tag                 string
	PrimaryButtonText   string
	PrimaryButtonLink   string
	SecondaryButtonText string
	SecondaryButtonLink string
}

// Kind implements Draft.
func (MainDraft) Kind() banners.Kind { return banners.KindMain }
func (MainDraft) isDraft()           {}

// SectionDraft holds the editable optional fields of a section banner.
type SectionDraft struct {
	ButtonText string
	ButtonLink string
}

// Kind implements Draft.
func (SectionDraft) Kind() banners.Kind { return banners.KindSection }
func (SectionDraft) isDraft()           {}

// Form is the editor's draft: fields shared by both variants plus the variant draft.
type Form struct {
	// ImageURL is used in URL input mode only.
	ImageURL    string
	Title       string
	Description string
	IsActive    bool
	Order       int
	TextColor   string
	Draft       Draft
}

// Kind returns the variant being edited, or "" without a draft.
func (f Form) Kind() banners.Kind {
	if f.Draft == nil {
		return ""
	}
	return f.Draft.Kind()
}

// NewForm returns the create-mode defaults for kind.
func NewForm(kind banners.Kind) (Form, error) {
	f := Form{
		IsActive:  true,
		TextColor: DefaultTextColor,
	}

	switch kind {
	case banners.KindMain:
		f.Draft = MainDraft{
			PrimaryButtonText:   "Shop Now",
			PrimaryButtonLink:   "/products",
			SecondaryButtonText: "Learn More",
			SecondaryButtonLink: "/about",
		}
	case banners.KindSection:
		f.Draft = SectionDraft{
			ButtonText: "Shop Now",
			ButtonLink: "/products",
		}
	default:
		return Form{}, fmt.Errorf("%w: %q", banners.ErrInvalidKind, kind)
	}

	return f, nil
}

// FormFromBanner projects an existing banner into the editor.
// Fields the banner does not carry are left empty.
func FormFromBanner(b banners.Banner) (Form, error) {
	f := Form{
		ImageURL:    b.ImageURL,
		Title:       b.Title,
		Description: b.Description,
		IsActive:    b.IsActive,
		Order:       b.Order,
	}

	switch v := b.Variant.(type) {
	case banners.MainDetails:
		f.TextColor = v.TextColor
		d := MainDraft{
			GradientTitle: v.GradientTitle,
			Tag:           v.Tag,
		}
		d.PrimaryButtonText, d.PrimaryButtonLink = ctaFields(v.Primary)
		d.SecondaryButtonText, d.SecondaryButtonLink = ctaFields(v.Secondary)
		f.Draft = d
	case banners.SectionDetails:
		f.TextColor = v.TextColor
		d := SectionDraft{}
		d.ButtonText, d.ButtonLink = ctaFields(v.Action)
		f.Draft = d
	default:
		return Form{}, fmt.Errorf("banner %d: %w", b.ID, banners.ErrUnknownVariant)
	}

	return f, nil
}

func ctaFields(cta *banners.CallToAction) (string, string) {
	if cta == nil {
		return "", ""
	}
	return cta.Text, cta.Link
}

// State is a read-only view of the editor.
type State struct {
	Modal      Modal          `json:"modal"`
	Kind       banners.Kind   `json:"kind,omitempty"`
	EditingID  int            `json:"editing_id,omitempty"`
	ImageInput ImageInputType `json:"image_input"`
	HasImage   bool           `json:"has_image"`
}
