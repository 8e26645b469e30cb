// internal/render/facade.go
//
// Facade: the execution context handed to component code.
//
// Context
// -------
// A Facade is a fixed set of members over the shared *Context.  Slot names
// never become members; they live in the slots.Table behind Slots().
// Accessors that need platform wiring fail loudly instead of returning a
// zero value, so a misconfigured adapter is caught on the first request
// rather than producing wrong telemetry or security decisions.
//
// Notes
// -----
// • RenderMarkdown is for the component pipeline, not page authors.
// • Oxford commas, two spaces after periods.
package render

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/yanizio/adept-ssr/internal/cookies"
	"github.com/yanizio/adept-ssr/internal/markdown"
	"github.com/yanizio/adept-ssr/internal/slots"
	"github.com/yanizio/adept-ssr/internal/web"
)

// Facade is one component instance's view of the request.
type Facade struct {
	ctx   *Context
	props map[string]any
	slots *slots.Renderer
}

// ClientAddress returns the caller's address as reported by the adapter.
func (f *Facade) ClientAddress() (string, error) {
	if addr, ok := f.ctx.args.Request.ClientAddress(); ok {
		return addr, nil
	}
	if name := f.ctx.args.AdapterName; name != "" {
		return "", fmt.Errorf("%w: clientAddress is not available in the %s adapter; file an issue with the adapter to add support",
			ErrConfiguration, name)
	}
	return "", fmt.Errorf("%w: clientAddress is not available in your environment; ensure that you are using an SSR adapter that supports this feature",
		ErrConfiguration)
}

// Cookies returns the request's cookie jar, creating it on first use.
// Every facade of the same Context gets the same jar.
func (f *Facade) Cookies() *cookies.Jar { return f.ctx.cookieJar() }

// Params returns the route parameters.
func (f *Facade) Params() map[string]string { return f.ctx.args.Params }

// Props returns the component's props.
func (f *Facade) Props() map[string]any { return f.props }

// Request returns the original request.
func (f *Facade) Request() *http.Request { return f.ctx.args.Request.HTTP }

// URL returns the parsed request URL.
func (f *Facade) URL() *url.URL { return f.ctx.url }

// Response returns the shared response descriptor.
func (f *Facade) Response() *ResponseInit { return f.ctx.response }

// Slots returns the slot renderer for this component instance.
func (f *Facade) Slots() *slots.Renderer { return f.slots }

// Site returns the configured site URL, or nil.
func (f *Facade) Site() *url.URL {
	if f.ctx.args.Site == "" {
		return nil
	}
	u, err := url.Parse(f.ctx.args.Site)
	if err != nil {
		return nil
	}
	return u
}

// Redirect builds a 302 to path.  Page code must return the response to
// stop rendering.  Outside server-rendering mode it fails with
// ErrCapability and returns no response.
func (f *Facade) Redirect(path string) (*web.Response, error) {
	if !f.ctx.args.SSR {
		return nil, fmt.Errorf("%w: you are trying to use redirect, which is only available with SSR", ErrCapability)
	}
	return web.Redirect(http.StatusFound, path), nil
}

// RenderMarkdown converts content with the injected renderer.  Call-time
// opts are merged over the context defaults.
func (f *Facade) RenderMarkdown(ctx context.Context, content string, opts markdown.Options) (string, error) {
	h := f.ctx.args.Markdown
	if h == nil {
		return "", fmt.Errorf("%w: Markdown is not supported in this environment", ErrEnvironment)
	}
	if rt := f.ctx.args.Runtime; !h.Supports(rt) {
		return "", fmt.Errorf("%w: Markdown is not supported in %s SSR", ErrEnvironment, rt)
	}
	r, err := h.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load markdown renderer: %w", err)
	}
	res, err := r.RenderMarkdown(ctx, content, f.ctx.args.MarkdownDefaults.Merge(opts))
	if err != nil {
		return "", err
	}
	return res.Code, nil
}
