package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"sync"

	"github.com/gin-gonic/gin/render"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var embedded embed.FS

const (
	layoutFile   = "layout.html"
	partialsFile = "partials.html"
	rootTemplate = "layout"
)

// Templates возвращает встроенные шаблоны.
func Templates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Renderer собирает для каждой страницы layout + partials + саму страницу.
// Реализует render.HTMLRender, поэтому подключается через gin.Engine.HTMLRender.
type Renderer struct {
	fsys   fs.FS
	debug  bool // шаблоны перечитываются при каждом рендере
	funcs  template.FuncMap
	logger *zap.Logger

	mu    sync.RWMutex
	pages map[string]*template.Template
}

// NewRenderer разбирает все страницы из fsys. Ошибка разбора возвращается сразу.
func NewRenderer(fsys fs.FS, debug bool, logger *zap.Logger) (*Renderer, error) {
	r := &Renderer{
		fsys:   fsys,
		debug:  debug,
		funcs:  FuncMap(),
		logger: logger.Named("TemplateRenderer"),
	}
	pages, err := r.load()
	if err != nil {
		return nil, err
	}
	r.pages = pages
	r.logger.Info("Templates loaded", zap.Int("pages", len(pages)), zap.Bool("debug", debug))
	return r, nil
}

func (r *Renderer) load() (map[string]*template.Template, error) {
	base, err := template.New("").Funcs(r.funcs).ParseFS(r.fsys, layoutFile, partialsFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	names, err := fs.Glob(r.fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		if name == layoutFile || name == partialsFile {
			continue
		}
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		tmpl, err := clone.ParseFS(r.fsys, name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[path.Base(name)] = tmpl
	}
	return pages, nil
}

func (r *Renderer) lookup(name string) (*template.Template, error) {
	if r.debug {
		pages, err := r.load()
		if err != nil {
			r.logger.Error("Failed to reload templates", zap.Error(err))
			return nil, err
		}
		r.mu.Lock()
		r.pages = pages
		r.mu.Unlock()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	tmpl, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("template %s not found", name)
	}
	return tmpl, nil
}

// Render исполняет страницу name в layout.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	tmpl, err := r.lookup(name)
	if err != nil {
		return err
	}
	if err := tmpl.ExecuteTemplate(w, rootTemplate, data); err != nil {
		r.logger.Error("Failed to execute template", zap.String("template", name), zap.Error(err))
		return fmt.Errorf("execute %s: %w", name, err)
	}
	return nil
}

// Has сообщает, есть ли страница с таким именем.
func (r *Renderer) Has(name string) bool {
	_, err := r.lookup(name)
	return err == nil
}

// Instance реализует render.HTMLRender.
func (r *Renderer) Instance(name string, data any) render.Render {
	tmpl, err := r.lookup(name)
	if err != nil {
		return failedRender{err: err}
	}
	return render.HTML{Template: tmpl, Name: rootTemplate, Data: data}
}

type failedRender struct{ err error }

func (f failedRender) Render(http.ResponseWriter) error { return f.err }

func (f failedRender) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if val := header["Content-Type"]; len(val) == 0 {
		header["Content-Type"] = []string{"text/html; charset=utf-8"}
	}
}
