package domain

import (
	"fmt"
	"strconv"

	banners "storefront-banners/internal/features/banners/domain"
)

type field struct {
	name  string
	value any
}

// BuildPayload projects the form into a create/update body.
// With an image file the body is multipart, otherwise JSON referencing ImageURL.
// The shared fields are always sent; empty variant fields are omitted.
func BuildPayload(f Form, image *banners.ImageFile) (banners.Payload, error) {
	fields, err := f.fields()
	if err != nil {
		return nil, err
	}

	if image != nil {
		p := banners.MultipartPayload{
			Fields: make(map[string]string, len(fields)),
			Image:  *image,
		}
		for _, fl := range fields {
			p.Fields[fl.name] = formValue(fl.value)
		}
		return p, nil
	}

	p := make(banners.JSONPayload, len(fields)+1)
	for _, fl := range fields {
		p[fl.name] = fl.value
	}
	if f.ImageURL != "" {
		p[banners.FieldImageURL] = f.ImageURL
	}
	return p, nil
}

func (f Form) fields() ([]field, error) {
	fields := []field{
		{banners.FieldTitle, f.Title},
		{banners.FieldDescription, f.Description},
		{banners.FieldIsActive, f.IsActive},
		{banners.FieldOrder, f.Order},
		{banners.FieldTextColor, f.TextColor},
	}

	switch d := f.Draft.(type) {
	case MainDraft:
		fields = append(fields, field{banners.FieldType, string(banners.KindMain)})
		fields = appendOptional(fields, banners.FieldGradientTitle, d.GradientTitle)
		fields = appendOptional(fields, banners.FieldTag, d.Tag)
		fields = appendOptional(fields, banners.FieldPrimaryButtonText, d.PrimaryButtonText)
		fields = appendOptional(fields, banners.FieldPrimaryButtonLink, d.PrimaryButtonLink)
		fields = appendOptional(fields, banners.FieldSecondaryButtonText, d.SecondaryButtonText)
		fields = appendOptional(fields, banners.FieldSecondaryButtonLink, d.SecondaryButtonLink)
	case SectionDraft:
		fields = append(fields, field{banners.FieldType, string(banners.KindSection)})
		fields = appendOptional(fields, banners.FieldButtonText, d.ButtonText)
		fields = appendOptional(fields, banners.FieldButtonLink, d.ButtonLink)
	default:
		return nil, fmt.Errorf("form: %w", banners.ErrUnknownVariant)
	}

	return fields, nil
}

func appendOptional(fields []field, name, value string) []field {
	if value == "" {
		return fields
	}
	return append(fields, field{name, value})
}

// formValue renders a field for multipart bodies. Booleans are sent as "1"/"0".
func formValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		if x {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}
