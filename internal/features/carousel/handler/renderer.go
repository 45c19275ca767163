package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"storefront-banners/internal/features/carousel/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

const carouselTemplate = "carousel.html"

// Renderer turns carousel snapshots into HTML fragments.
type Renderer struct {
	tmpl *template.Template
}

type dot struct {
	Index  int
	Active bool
}

type carouselView struct {
	State domain.State
	Index int
	Total int
	// Slide is nil while loading or empty.
	Slide *domain.Slide
	Dots  []dot
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New(carouselTemplate).
		Funcs(template.FuncMap{"add": add}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse carousel templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the fragment for s.
func (r *Renderer) Render(w io.Writer, s domain.Snapshot) error {
	view := carouselView{
		State: s.State,
		Index: s.Index,
		Total: s.Total,
		Dots:  make([]dot, s.Total),
	}
	for i := range view.Dots {
		view.Dots[i] = dot{Index: i, Active: i == s.Index}
	}

	if s.Current != nil {
		slide, err := domain.NewSlide(*s.Current)
		if err != nil {
			return fmt.Errorf("failed to project banner %d: %w", s.Current.ID, err)
		}
		view.Slide = &slide
	}

	return r.tmpl.ExecuteTemplate(w, carouselTemplate, view)
}

func add(a, b int) int {
	return a + b
}
