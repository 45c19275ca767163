package domain

import (
	"html/template"
	"regexp"
	"strings"

	banners "storefront-banners/internal/features/banners/domain"
)

var (
	gradientPattern = regexp.MustCompile(`^(repeating-)?(linear|radial|conic)-gradient\([#%.,\w\s()-]+\)$`)
	colorPattern    = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+|rgba?\([\d\s.,%]+\))$`)
)

// Action is a rendered call-to-action button.
type Action struct {
	// Role is "primary", "secondary" or "action" (section banners).
	Role string
	Text string
	Link string
}

// Slide is the render model of one banner. Optional affordances are zero when absent.
type Slide struct {
	// Key stays equal for the same banner id across renders.
	Key           string
	ImageURL      string
	Title         string
	Description   string
	Tag           string
	TextColor     template.CSS
	GradientTitle template.CSS
	Actions       []Action
}

// NewSlide projects a banner into its render model.
func NewSlide(b banners.Banner) (Slide, error) {
	s := Slide{
		Key:         b.Key(),
		ImageURL:    b.ImageURL,
		Title:       b.Title,
		Description: b.Description,
	}

	switch v := b.Variant.(type) {
	case banners.MainDetails:
		s.Tag = v.Tag
		s.TextColor = safeColor(v.TextColor)
		s.GradientTitle = safeGradient(v.GradientTitle)
		s.Actions = appendAction(s.Actions, "primary", v.Primary)
		s.Actions = appendAction(s.Actions, "secondary", v.Secondary)
	case banners.SectionDetails:
		s.TextColor = safeColor(v.TextColor)
		s.Actions = appendAction(s.Actions, "action", v.Action)
	default:
		return Slide{}, banners.ErrUnknownVariant
	}

	return s, nil
}

func appendAction(actions []Action, role string, cta *banners.CallToAction) []Action {
	if cta == nil {
		return actions
	}
	return append(actions, Action{Role: role, Text: cta.Text, Link: cta.Link})
}

// safeGradient admits only plain CSS gradient functions.
func safeGradient(s string) template.CSS {
	lower := strings.ToLower(s)
	if !gradientPattern.MatchString(s) || strings.Contains(lower, "url") || strings.Contains(lower, "expression") {
		return ""
	}
	return template.CSS(s)
}

// safeColor admits hex, named and rgb()/rgba() colors.
func safeColor(s string) template.CSS {
	if !colorPattern.MatchString(s) {
		return ""
	}
	return template.CSS(s)
}
