package html

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/Masterminds/sprig/v3"
	"github.com/kvboard/kvboard/internal"
)

const (
	// Paths to templates relative to the templates filesystem. For use with
	// the newTemplateCache function below.
	layoutTemplatePath   = "static/templates/layout.tmpl"
	contentTemplatesGlob = "static/templates/content/*.tmpl"
	partialTemplatesGlob = "static/templates/partials/*.tmpl"
)

type (
	// Renderer locates and renders templates to http responses.
	Renderer struct {
		renderer
	}

	// renderer is capable of locating and rendering a template.
	renderer interface {
		renderTemplate(name string, w io.Writer, data templateData) error
	}

	// templateData is the data made available to every rendered template.
	templateData struct {
		// Content is the content for the template to render
		Content any
		// Flash messages populated from the flash cookie
		Flashes []Flash
		// Version of the running binary
		Version string
		// CurrentPath is the path of the current request
		CurrentPath string
	}

	// embeddedRenderer renders templates embedded in the go bin. Uses cache for
	// performance.
	embeddedRenderer struct {
		cache map[string]*template.Template
	}

	// devRenderer renders templates located on disk. No cache is used; ideal
	// for development purposes with something like livereload.
	devRenderer struct{}
)

// NewRenderer constructs a Renderer. Enabling dev mode sources templates from
// local disk on every render rather than from the embedded filesystem.
func NewRenderer(devMode bool) (*Renderer, error) {
	if devMode {
		return &Renderer{&devRenderer{}}, nil
	}
	cache, err := newTemplateCache(embedded)
	if err != nil {
		return nil, err
	}
	return &Renderer{&embeddedRenderer{cache: cache}}, nil
}

// Render the named template to the http response, making any flash messages
// available to it. Any error is rendered as an HTML error page instead.
func (v *Renderer) Render(name string, w http.ResponseWriter, r *http.Request, content any) {
	flashes, err := PopFlashes(r, w)
	if err != nil {
		Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	data := templateData{
		Content:     content,
		Flashes:     flashes,
		Version:     internal.Version,
		CurrentPath: r.URL.Path,
	}
	if err := v.renderTemplate(name, w, data); err != nil {
		Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (r *embeddedRenderer) renderTemplate(name string, w io.Writer, data templateData) error {
	return renderTemplateFromCache(r.cache, name, w, data)
}

func (r *devRenderer) renderTemplate(name string, w io.Writer, data templateData) error {
	cache, err := newTemplateCache(localDisk)
	if err != nil {
		return err
	}
	return renderTemplateFromCache(cache, name, w, data)
}

func renderTemplateFromCache(cache map[string]*template.Template, name string, w io.Writer, data templateData) error {
	tmpl, ok := cache[name]
	if !ok {
		return fmt.Errorf("unable to locate template: %s", name)
	}

	// Render tmpl out to a tmp buffer first to prevent error messages from
	// being written to browser
	buf := new(bytes.Buffer)

	if err := tmpl.Execute(buf, &data); err != nil {
		return err
	}

	_, err := buf.WriteTo(w)
	return err
}

// newTemplateCache populates a cache of templates.
func newTemplateCache(templates fs.FS) (map[string]*template.Template, error) {
	static := &CacheBuster{templates}

	funcs := sprig.HtmlFuncMap()
	funcs["addHash"] = static.Path

	cache := make(map[string]*template.Template)

	pages, err := fs.Glob(templates, contentTemplatesGlob)
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := filepath.Base(page)

		template, err := template.New(name).Funcs(funcs).ParseFS(templates,
			layoutTemplatePath,
			partialTemplatesGlob,
			page,
		)
		if err != nil {
			return nil, err
		}

		cache[name] = template
	}

	return cache, nil
}
