package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formwizard/pkg/render"
	rendertemplate "github.com/goliatone/go-formwizard/pkg/render/template"
	"github.com/goliatone/go-formwizard/pkg/view"
	"github.com/goliatone/go-formwizard/pkg/widgets"
)

const (
	pageTemplate     = "page"
	formTemplate     = "form"
	messagesTemplate = "messages"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS fs.FS
	templates  *rendertemplate.Engine
	theme      *theme.RendererConfig
	assetBase  string
	widgets    *widgets.Registry
}

// WithTemplatesFS supplies an alternate template bundle. It must provide
// page.tmpl, form.tmpl and messages.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateEngine injects a preconfigured engine.
func WithTemplateEngine(engine *rendertemplate.Engine) Option {
	return func(cfg *config) {
		if engine != nil {
			cfg.templates = engine
		}
	}
}

// WithTheme applies theme tokens and CSS variables to the page.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithAssetBase sets the URL prefix the page uses for the stylesheet and the
// runtime script. Defaults to "/assets".
func WithAssetBase(base string) Option {
	return func(cfg *config) {
		cfg.assetBase = strings.TrimRight(strings.TrimSpace(base), "/")
	}
}

// WithWidgets replaces the registry that picks the input for each field.
func WithWidgets(reg *widgets.Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.widgets = reg
		}
	}
}

// PageOptions carries per-request data that is not part of the description.
type PageOptions struct {
	// Action is the URL the form posts to.
	Action string
}

// Renderer renders wizard screens as HTML. The page keeps the form and the
// messages in separate wrappers so transports can replace either one.
type Renderer struct {
	templates *rendertemplate.Engine
	theme     rendererTheme
	assetURL  func(string) string
	widgets   *widgets.Registry
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), assetBase: "/assets"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}

	engine := cfg.templates
	if engine == nil {
		var err error
		engine, err = rendertemplate.New(
			rendertemplate.WithFS(cfg.templateFS),
			rendertemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template engine: %w", err)
		}
	}

	base := cfg.assetBase
	assetURL := func(name string) string { return base + "/" + name }
	if resolver := themeAssetResolver(cfg.theme); resolver != nil {
		fallback := assetURL
		assetURL = func(name string) string {
			if resolved := resolver(name); resolved != "" {
				return resolved
			}
			return fallback(name)
		}
	}

	return &Renderer{
		templates: engine,
		theme:     buildThemeContext(cfg.theme),
		assetURL:  assetURL,
		widgets:   cfg.widgets,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render renders the full page with the form posting to the current URL.
func (r *Renderer) Render(ctx context.Context, desc view.Description) ([]byte, error) {
	return r.RenderPage(ctx, desc, PageOptions{})
}

// RenderPage renders a complete HTML document.
func (r *Renderer) RenderPage(_ context.Context, desc view.Description, opts PageOptions) ([]byte, error) {
	data := r.pageData(desc, opts)
	data["stylesheet"] = r.assetURL(StylesheetName)
	data["script"] = r.assetURL(RuntimeScriptName)
	return r.execute(pageTemplate, data)
}

// RenderForm renders only the form wrapper contents.
func (r *Renderer) RenderForm(_ context.Context, desc view.Description, opts PageOptions) ([]byte, error) {
	return r.execute(formTemplate, r.pageData(desc, opts))
}

// RenderMessages renders only the messages wrapper contents. It returns an
// empty result when the description has no messages.
func (r *Renderer) RenderMessages(_ context.Context, desc view.Description) ([]byte, error) {
	if desc.MessagesCleared || len(desc.Messages) == 0 {
		return nil, nil
	}
	out, err := r.execute(messagesTemplate, map[string]any{"messages": messageData(desc.Messages)})
	if err != nil {
		return nil, err
	}
	return []byte(strings.TrimSpace(string(out))), nil
}

func (r *Renderer) execute(name string, data map[string]any) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template engine is nil")
	}
	result, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render %s: %w", name, err)
	}
	return []byte(result), nil
}

func (r *Renderer) pageData(desc view.Description, opts PageOptions) map[string]any {
	return map[string]any{
		"action":   opts.Action,
		"step":     desc.Step,
		"total":    desc.Total,
		"title":    desc.Title,
		"fields":   fieldData(desc, r.widgets),
		"buttons":  buttonData(desc.Buttons),
		"messages": messageData(desc.Messages),
		"theme":    r.theme.context(),
	}
}
