package domain

// Field names shared by JSON and multipart request bodies.
const (
	FieldType                = "type"
	FieldImage               = "image"
	FieldImageURL            = "image_url"
	FieldTitle               = "title"
	FieldDescription         = "description"
	FieldIsActive            = "is_active"
	FieldOrder               = "order"
	FieldTextColor           = "text_color"
	FieldGradientTitle       = "gradient_title"
	FieldTag                 = "tag"
	FieldPrimaryButtonText   = "primary_button_text"
	FieldPrimaryButtonLink   = "primary_button_link"
	FieldSecondaryButtonText = "secondary_button_text"
	FieldSecondaryButtonLink = "secondary_button_link"
	FieldButtonText          = "button_text"
	FieldButtonLink          = "button_link"
)

// ImageFile is an uploaded image chosen in the admin form.
type ImageFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Payload is a create/update request body. It is sealed: either JSONPayload or MultipartPayload.
type Payload interface {
	isPayload()
}

// JSONPayload is sent as application/json when the image is referenced by URL.
type JSONPayload map[string]any

func (JSONPayload) isPayload() {}

// MultipartPayload is sent as multipart/form-data when an image file was selected.
type MultipartPayload struct {
	Fields map[string]string
	Image  ImageFile
}

func (MultipartPayload) isPayload() {}
