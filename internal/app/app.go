// internal/app/app.go
//
// Reference router + renderer.
//
// Context
// -------
// App satisfies adapter.App so both platform adapters can drive it.  Each
// Render call builds a fresh render.Context, runs the page's Load hook
// through the component facade, and executes the page template.
//
// Template set
// ------------
// Templates are parsed once by the caller with Funcs() installed, so the
// helper names resolve at parse time.  Render clones the set for every
// request and rebinds the helpers to that request's facade:
//
//	{{ head }}                  – links, styles, and scripts, deduplicated
//	{{ slot "default" }}        – cached slot output
//	{{ slot "row" .Data.Item }} – slot expression applied to arguments
//	{{ if hasSlot "aside" }}    – slot presence
//	{{ markdown .Data.Body }}   – injected Markdown renderer
//	{{ safe .Data.HTML }}       – trusted HTML produced by server code
//
// Template data is a View: the *render.Facade embedded (so .Props, .URL,
// .Params, and friends work) plus whatever Load returned as .Data.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package app

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/yanizio/adept-ssr/internal/adapter"
	"github.com/yanizio/adept-ssr/internal/head"
	"github.com/yanizio/adept-ssr/internal/markdown"
	"github.com/yanizio/adept-ssr/internal/render"
	"github.com/yanizio/adept-ssr/internal/slots"
	"github.com/yanizio/adept-ssr/internal/web"
)

// Options wires the app into its environment.
type Options struct {
	AdapterName      string
	SSR              bool
	Origin           string // overrides the request origin when set
	Site             string
	Runtime          string
	Markdown         *markdown.Handle
	MarkdownDefaults markdown.Options
	Logger           *zap.SugaredLogger
}

// View is the data handed to page templates.
type View struct {
	*render.Facade
	Data any
}

// App renders pages from a Router with a parsed template set.
type App struct {
	router *Router
	tmpl   *template.Template
	opts   Options
}

var _ adapter.App = (*App)(nil)

// Funcs returns the helper names page templates may call.  Install them
// before parsing; Render replaces them with request-bound versions.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"head":     func() template.HTML { return "" },
		"slot":     func(string, ...any) (template.HTML, error) { return "", nil },
		"hasSlot":  func(string) bool { return false },
		"markdown": func(string) (template.HTML, error) { return "", nil },
		"safe":     func(s string) template.HTML { return template.HTML(s) },
	}
}

// New returns an App.  tmpl must have been parsed with Funcs().
func New(router *Router, tmpl *template.Template, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = zap.S()
	}
	return &App{router: router, tmpl: tmpl, opts: opts}
}

// Match implements adapter.App.
func (a *App) Match(r *http.Request, opts adapter.MatchOptions) (adapter.RouteMatch, bool) {
	return a.router.Match(r, opts)
}

// SetCookieHeaders implements adapter.App.
func (a *App) SetCookieHeaders(resp *web.Response) []string {
	return resp.SetCookieHeaders()
}

// Render implements adapter.App.
func (a *App) Render(ctx context.Context, req *web.Request, m adapter.RouteMatch) (*web.Response, error) {
	p, ok := m.Route.(*Page)
	if !ok || p == nil {
		return nil, fmt.Errorf("app: route %q carries no page", m.Pattern)
	}

	rc := render.New(render.Args{
		AdapterName:      a.opts.AdapterName,
		SSR:              a.opts.SSR,
		Logger:           a.opts.Logger,
		Origin:           a.opts.Origin,
		Site:             a.opts.Site,
		Markdown:         a.opts.Markdown,
		MarkdownDefaults: a.opts.MarkdownDefaults,
		Runtime:          a.opts.Runtime,
		Params:           m.Params,
		Pathname:         req.URL().Path,
		Props:            p.Props,
		Styles:           head.NewSet(p.Styles...),
		Scripts:          head.NewSet(p.Scripts...),
		Links:            head.NewSet(p.Links...),
		Request:          req,
		Status:           p.Status,
	})
	if p.Status != 0 {
		rc.Response().StatusText = http.StatusText(p.Status)
	}
	for _, d := range p.Directives {
		rc.Metadata.AddDirective(d)
	}

	table, err := slots.NewTable(p.Slots)
	if err != nil {
		return nil, fmt.Errorf("app: page %q: %w", m.Pattern, err)
	}
	f := rc.NewFacade(p.Props, table)

	var data any
	if p.Load != nil {
		d, short, err := p.Load(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("app: load %q: %w", m.Pattern, err)
		}
		if short != nil {
			rc.Finalize(short)
			return short, nil
		}
		data = d
	}

	t, err := a.tmpl.Clone()
	if err != nil {
		return nil, fmt.Errorf("app: clone templates: %w", err)
	}
	t.Funcs(bind(ctx, rc, f))

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, p.Template, View{Facade: f, Data: data}); err != nil {
		return nil, fmt.Errorf("app: execute %q: %w", p.Template, err)
	}

	ri := rc.Response()
	resp := web.NewResponse(ri.Status, buf.Bytes())
	resp.StatusText = ri.StatusText
	for k, vs := range ri.Header() {
		resp.Header[k] = append([]string(nil), vs...)
	}
	rc.Finalize(resp)
	return resp, nil
}

// bind returns the template helpers for one request.
func bind(ctx context.Context, rc *render.Context, f *render.Facade) template.FuncMap {
	return template.FuncMap{
		"head": func() template.HTML {
			return rc.Links.HTML() + rc.Styles.HTML() + rc.Scripts.HTML()
		},
		"slot": func(name string, args ...any) (template.HTML, error) {
			s, _, err := f.Slots().Render(ctx, name, args...)
			return template.HTML(s), err
		},
		"hasSlot": f.Slots().Has,
		"markdown": func(content string) (template.HTML, error) {
			html, err := f.RenderMarkdown(ctx, content, markdown.Options{})
			return template.HTML(html), err
		},
	}
}
