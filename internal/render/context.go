// internal/render/context.go
//
// Render Context Factory.
//
// Context
// -------
// The component renderer calls New once per inbound request.  The returned
// *Context is the request's shared state: the style, script, and link sets
// the pipeline fills while it walks the component tree, the response
// descriptor, hydration metadata, the lazily created cookie jar, and the
// slot cache.  Every component instance then gets its own *Facade from
// NewFacade; facades are cheap and share all of the above.
//
// Lifecycle
// ---------
//
//  1. Adapter normalizes the invocation → *web.Request.
//  2. Renderer calls render.New(args).
//  3. Renderer calls ctx.NewFacade(props, slots) per component.
//  4. Renderer builds a *web.Response and calls ctx.Finalize(resp) so the
//     adapter can drain cookies set during rendering.
//
// Notes
// -----
// • A Context is owned by one request; nothing here locks.
// • The header map of ResponseInit can be mutated but never replaced.
// • Oxford commas, two spaces after periods.
package render

import (
	"context"
	"net/http"
	"net/url"
	"sort"

	"go.uber.org/zap"

	"github.com/yanizio/adept-ssr/internal/cookies"
	"github.com/yanizio/adept-ssr/internal/head"
	"github.com/yanizio/adept-ssr/internal/markdown"
	"github.com/yanizio/adept-ssr/internal/slots"
	"github.com/yanizio/adept-ssr/internal/web"
)

//
// inputs
//

// LoadedRenderer describes a framework renderer available to the page.
// The core passes it through untouched.
type LoadedRenderer struct {
	Name             string
	ClientEntrypoint string
	SSR              any
}

// Args is everything the factory needs for one request.
type Args struct {
	AdapterName string // "" when running without an adapter
	SSR         bool   // server-rendering mode; enables Redirect
	Logger      *zap.SugaredLogger

	Origin string // request origin, "https://example.com"
	Site   string // configured public site URL, may be ""

	Markdown         *markdown.Handle
	MarkdownDefaults markdown.Options
	Runtime          string // checked against Markdown.Supports

	Params    map[string]string
	Pathname  string
	Props     map[string]any
	Renderers []LoadedRenderer
	Resolve   func(ctx context.Context, specifier string) (string, error)

	Styles  *head.Set
	Scripts *head.Set
	Links   *head.Set

	Request *web.Request // required
	Status  int

	SlotContent slots.ContentRenderer // nil → slots.Resolve
}

//
// response descriptor
//

// ResponseInit is the status line and headers the page will answer with.
type ResponseInit struct {
	Status     int
	StatusText string

	header http.Header
}

// Header returns the live header map.  Mutate it in place.
func (r *ResponseInit) Header() http.Header { return r.header }

//
// metadata
//

// Metadata is hydration bookkeeping the pipeline updates while rendering.
type Metadata struct {
	Pathname           string
	Renderers          []LoadedRenderer
	HasHydrationScript bool

	directives map[string]struct{}
}

// AddDirective records a hydration directive ("load", "idle", ...).
func (m *Metadata) AddDirective(d string) { m.directives[d] = struct{}{} }

// HasDirective reports whether d was recorded.
func (m *Metadata) HasDirective(d string) bool {
	_, ok := m.directives[d]
	return ok
}

// Directives returns the recorded directives, sorted.
func (m *Metadata) Directives() []string {
	out := make([]string, 0, len(m.directives))
	for d := range m.directives {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

//
// context
//

// Context is the per-request render state.
type Context struct {
	Styles   *head.Set
	Scripts  *head.Set
	Links    *head.Set
	Metadata *Metadata

	// Resolve maps a module specifier to a public URL.  Supplied by the
	// pipeline; nil when the pipeline has none.
	Resolve func(ctx context.Context, specifier string) (string, error)

	args      Args
	log       *zap.SugaredLogger
	url       *url.URL
	response  *ResponseInit
	cookies   *cookies.Jar
	slotCache *slots.Cache
}

// New builds the render context for one request.  It panics when
// args.Request is nil; that is a programming error in the caller.
func New(args Args) *Context {
	if args.Request == nil || args.Request.HTTP == nil {
		panic("render: Args.Request is required")
	}
	log := args.Logger
	if log == nil {
		log = zap.S()
	}
	if args.Origin == "" {
		args.Origin = args.Request.Origin()
	}
	status := args.Status
	if status == 0 {
		status = http.StatusOK
	}

	h := make(http.Header)
	h.Set("Content-Type", "text/html")

	u := *args.Request.URL()

	c := &Context{
		Styles:  orEmpty(args.Styles),
		Scripts: orEmpty(args.Scripts),
		Links:   orEmpty(args.Links),
		Metadata: &Metadata{
			Pathname:   args.Pathname,
			Renderers:  args.Renderers,
			directives: make(map[string]struct{}),
		},
		Resolve:   args.Resolve,
		args:      args,
		log:       log,
		url:       &u,
		response:  &ResponseInit{Status: status, StatusText: "OK", header: h},
		slotCache: slots.NewCache(),
	}
	return c
}

func orEmpty(s *head.Set) *head.Set {
	if s == nil {
		return head.NewSet()
	}
	return s
}

// Response returns the response descriptor.
func (c *Context) Response() *ResponseInit { return c.response }

// Request returns the canonical request.
func (c *Context) Request() *web.Request { return c.args.Request }

// Props returns the page-level props.
func (c *Context) Props() map[string]any { return c.args.Props }

// Cookies returns the jar if any facade created it, else nil.
func (c *Context) Cookies() *cookies.Jar { return c.cookies }

// Finalize links the cookie jar, if one was created, to resp.  Call it
// after rendering and before handing resp back to the adapter.
func (c *Context) Finalize(resp *web.Response) {
	if c.cookies != nil {
		resp.AttachCookies(c.cookies)
	}
}

// cookieJar creates the jar on first use and caches it on the context.
func (c *Context) cookieJar() *cookies.Jar {
	if c.cookies == nil {
		c.cookies = cookies.New(c.args.Request.HTTP)
	}
	return c.cookies
}

// NewFacade returns the execution context for one component instance.
// props are the component's props; table may be nil.
func (c *Context) NewFacade(props map[string]any, table *slots.Table) *Facade {
	return &Facade{
		ctx:   c,
		props: props,
		slots: slots.NewRenderer(table, c.slotCache, c.args.SlotContent, c.log),
	}
}
