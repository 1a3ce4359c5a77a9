package page

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/wedloom/wedloom-api/internal/domain/event"
	"github.com/wedloom/wedloom-api/internal/pkg/mediastore"
)

// Data is what templates render
type Data struct {
	Event  *event.Event
	Photos []mediastore.Descriptor
}

// Renderer dispatches event pages to one of the compiled-in templates.
// Unknown template identifiers fall back to the classic one.
type Renderer struct {
	templates map[string]*template.Template
	notFound  *template.Template
	base      *template.Template
}

// NewRenderer parses all templates
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template)}

	base, err := template.New("base").Parse(BaseTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base template: %w", err)
	}
	r.base = base

	pages := map[string]string{
		event.TemplateClassic:   ClassicTemplate,
		event.TemplateEditorial: EditorialTemplate,
		event.TemplateNoir:      NoirTemplate,
	}
	for name, content := range pages {
		tmpl, err := template.New(name).Parse(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		r.templates[name] = tmpl
	}

	r.notFound, err = template.New("not_found").Parse(NotFoundTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse not_found template: %w", err)
	}

	return r, nil
}

// Render writes the event page using the event's template, falling back
// to classic when the identifier is empty or unknown.
func (r *Renderer) Render(w io.Writer, data *Data) error {
	tmpl, ok := r.templates[data.Event.TemplateID]
	if !ok {
		tmpl = r.templates[event.TemplateClassic]
	}

	var contentBuf bytes.Buffer
	if err := tmpl.Execute(&contentBuf, data); err != nil {
		return err
	}

	return r.base.Execute(w, map[string]interface{}{
		"Title":   data.Event.Title,
		"Content": template.HTML(contentBuf.String()),
		"Year":    time.Now().Year(),
	})
}

// RenderNotFound writes the missing-event page
func (r *Renderer) RenderNotFound(w io.Writer) error {
	var contentBuf bytes.Buffer
	if err := r.notFound.Execute(&contentBuf, nil); err != nil {
		return err
	}

	return r.base.Execute(w, map[string]interface{}{
		"Title":   "Page not found",
		"Content": template.HTML(contentBuf.String()),
		"Year":    time.Now().Year(),
	})
}
