package handler

import (
	"errors"
	"reflect"
	"strings"

	"storefront-banners/internal/features/admin/domain"

	"github.com/go-playground/validator/v10"
)

// BannerRequest is the console create/update body, accepted as JSON or multipart form fields.
// Absent optional fields keep the value pre-filled by the editor.
// Only presence of type and title is checked here; the banner API owns every other rule.
type BannerRequest struct {
	Type                string  `json:"type" form:"type" validate:"required"`
	Title               string  `json:"title" form:"title" validate:"required"`
	ImageURL            string  `json:"image_url" form:"image_url"`
	Description         *string `json:"description" form:"description"`
	IsActive            *bool   `json:"is_active" form:"is_active"`
	Order               *int    `json:"order" form:"order"`
	TextColor           *string `json:"text_color" form:"text_color"`
	GradientTitle       *string `json:"gradient_title" form:"gradient_title"`
	Tag                 *string `json:"tag" form:"tag"`
	PrimaryButtonText   *string `json:"primary_button_text" form:"primary_button_text"`
	PrimaryButtonLink   *string `json:"primary_button_link" form:"primary_button_link"`
	SecondaryButtonText *string `json:"secondary_button_text" form:"secondary_button_text"`
	SecondaryButtonLink *string `json:"secondary_button_link" form:"secondary_button_link"`
	ButtonText          *string `json:"button_text" form:"button_text"`
	ButtonLink          *string `json:"button_link" form:"button_link"`
}

// Apply overlays the request on the editor's draft. Fields of the other variant are ignored.
func (r BannerRequest) Apply(base domain.Form) domain.Form {
	f := base
	f.Title = r.Title
	if r.ImageURL != "" {
		f.ImageURL = r.ImageURL
	}
	set(&f.Description, r.Description)
	set(&f.TextColor, r.TextColor)
	if r.IsActive != nil {
		f.IsActive = *r.IsActive
	}
	if r.Order != nil {
		f.Order = *r.Order
	}

	switch d := base.Draft.(type) {
	case domain.MainDraft:
		set(&d.GradientTitle, r.GradientTitle)
		set(&d.Tag, r.Tag)
		set(&d.PrimaryButtonText, r.PrimaryButtonText)
		set(&d.PrimaryButtonLink, r.PrimaryButtonLink)
		set(&d.SecondaryButtonText, r.SecondaryButtonText)
		set(&d.SecondaryButtonLink, r.SecondaryButtonLink)
		f.Draft = d
	case domain.SectionDraft:
		set(&d.ButtonText, r.ButtonText)
		set(&d.ButtonLink, r.ButtonLink)
		f.Draft = d
	}

	return f
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationLines renders validator failures as "field: rule" lines.
func validationLines(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	lines := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		lines = append(lines, fe.Field()+": "+rule)
	}
	return lines
}
