package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind is the banner variant discriminant, sent on the wire as "type".
type Kind string

const (
	// KindMain is the hero carousel variant.
	KindMain Kind = "main"
	// KindSection is the secondary placement variant.
	KindSection Kind = "section"
)

var (
	// ErrInvalidKind is returned when a banner type is neither main nor section.
	ErrInvalidKind = errors.New("invalid banner type")
	// ErrUnknownVariant is returned when a Banner carries no (or a foreign) variant.
	ErrUnknownVariant = errors.New("unknown banner variant")
)

// ParseKind validates a wire discriminant.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindMain:
		return KindMain, nil
	case KindSection:
		return KindSection, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// CallToAction is a button label and its target link.
type CallToAction struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

// newCallToAction returns nil unless both text and link are set.
func newCallToAction(text, link string) *CallToAction {
	if text == "" || link == "" {
		return nil
	}
	return &CallToAction{Text: text, Link: link}
}

// Variant is the variant-specific part of a Banner.
// It is sealed: only MainDetails and SectionDetails implement it.
type Variant interface {
	Kind() Kind
	isVariant()
}

// MainDetails holds the optional fields of a hero banner.
type MainDetails struct {
	// GradientTitle is a CSS gradient applied to the title text.
	GradientTitle string
	TextColor     string
	// Tag is a short label rendered above the title.
	Tag       string
	Primary   *CallToAction
	Secondary *CallToAction
}

// Kind implements Variant.
func (MainDetails) Kind() Kind { return KindMain }
func (MainDetails) isVariant() {}

// SectionDetails holds the optional fields of a section banner.
type SectionDetails struct {
	TextColor string
	Action    *CallToAction
}

// Kind implements Variant.
func (SectionDetails) Kind() Kind { return KindSection }
func (SectionDetails) isVariant() {}

// Banner is a promotional content unit. ID is always assigned by the server.
type Banner struct {
	ID          int
	ImageURL    string
	Title       string
	Description string
	IsActive    bool
	// Order is the display priority; lower values come first, ties are server-defined.
	Order   int
	Variant Variant
}

// Kind returns the variant discriminant, or "" when Variant is nil.
func (b Banner) Kind() Kind {
	if b.Variant == nil {
		return ""
	}
	return b.Variant.Kind()
}

// Key is the stable render identity of a banner.
func (b Banner) Key() string {
	return fmt.Sprintf("banner-%d", b.ID)
}

// AdminBanners is the privileged listing grouped by variant.
type AdminBanners struct {
	Main    []Banner `json:"main"`
	Section []Banner `json:"section"`
}

// ReorderItem assigns a new display order to one banner.
type ReorderItem struct {
	ID    int `json:"id"`
	Order int `json:"order"`
}

// wireBanner is the flat JSON shape exchanged with the banner API.
type wireBanner struct {
	ID                  int    `json:"id"`
	Type                Kind   `json:"type"`
	ImageURL            string `json:"image_url"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	IsActive            bool   `json:"is_active"`
	Order               int    `json:"order"`
	TextColor           string `json:"text_color,omitempty"`
	GradientTitle       string `json:"gradient_title,omitempty"`
	Tag                 string `json:"tag,omitempty"`
	PrimaryButtonText   string `json:"primary_button_text,omitempty"`
	PrimaryButtonLink   string `json:"primary_button_link,omitempty"`
	SecondaryButtonText string `json:"secondary_button_text,omitempty"`
	SecondaryButtonLink string `json:"secondary_button_link,omitempty"`
	ButtonText          string `json:"button_text,omitempty"`
	ButtonLink          string `json:"button_link,omitempty"`
}

// MarshalJSON encodes the banner in the flat wire shape with a "type" discriminant.
func (b Banner) MarshalJSON() ([]byte, error) {
	w := wireBanner{
		ID:          b.ID,
		ImageURL:    b.ImageURL,
		Title:       b.Title,
		Description: b.Description,
		IsActive:    b.IsActive,
		Order:       b.Order,
	}

	switch v := b.Variant.(type) {
	case MainDetails:
		w.Type = KindMain
		w.TextColor = v.TextColor
		w.GradientTitle = v.GradientTitle
		w.Tag = v.Tag
		if v.Primary != nil {
			w.PrimaryButtonText, w.PrimaryButtonLink = v.Primary.Text, v.Primary.Link
		}
		if v.Secondary != nil {
			w.SecondaryButtonText, w.SecondaryButtonLink = v.Secondary.Text, v.Secondary.Link
		}
	case SectionDetails:
		w.Type = KindSection
		w.TextColor = v.TextColor
		if v.Action != nil {
			w.ButtonText, w.ButtonLink = v.Action.Text, v.Action.Link
		}
	default:
		return nil, fmt.Errorf("banner %d: %w", b.ID, ErrUnknownVariant)
	}

	return json.Marshal(w)
}

// UnmarshalJSON decodes the flat wire shape, keeping only the fields of the declared variant.
func (b *Banner) UnmarshalJSON(data []byte) error {
	var w wireBanner
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	kind, err := ParseKind(string(w.Type))
	if err != nil {
		return fmt.Errorf("banner %d: %w", w.ID, err)
	}

	*b = Banner{
		ID:          w.ID,
		ImageURL:    w.ImageURL,
		Title:       w.Title,
		Description: w.Description,
		IsActive:    w.IsActive,
		Order:       w.Order,
	}

	switch kind {
	case KindMain:
		b.Variant = MainDetails{
			GradientTitle: w.GradientTitle,
			TextColor:     w.TextColor,
			Tag:           w.Tag,
			Primary:       newCallToAction(w.PrimaryButtonText, w.PrimaryButtonLink),
			Secondary:     newCallToAction(w.SecondaryButtonText, w.SecondaryButtonLink),
		}
	case KindSection:
		b.Variant = SectionDetails{
			TextColor: w.TextColor,
			Action:    newCallToAction(w.ButtonText, w.ButtonLink),
		}
	}

	return nil
}
