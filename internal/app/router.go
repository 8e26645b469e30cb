// internal/app/router.go
//
// chi-backed route table.
//
// Context
// -------
// Pages are registered on a chi.Mux only so its radix tree can answer
// "which pattern matches this path" through Mux.Find.  Nothing is ever
// served through the mux itself; the adapter owns the request/response
// cycle and calls Match + App.Render instead.
//
// Notes
// -----
// • A path that matches nothing resolves to the not-found page only when
//   the caller asks for it with MatchNotFound.
// • Oxford commas, two spaces after periods.
package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/adept-ssr/internal/adapter"
)

// notFoundPattern labels matches that fell through to the not-found page.
const notFoundPattern = "404"

// Router maps URL paths to pages.
type Router struct {
	mux      *chi.Mux
	pages    map[string]*Page
	notFound *Page
}

// NewRouter returns an empty router.
func NewRouter() *Router {
	return &Router{mux: chi.NewRouter(), pages: make(map[string]*Page)}
}

// Handle registers p under p.Pattern.  Registering a pattern twice
// replaces the earlier page.
func (rt *Router) Handle(p *Page) {
	rt.mux.Handle(p.Pattern, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	rt.pages[p.Pattern] = p
}

// NotFound sets the page used for unmatched paths.
func (rt *Router) NotFound(p *Page) {
	if p.Status == 0 {
		p.Status = http.StatusNotFound
	}
	rt.notFound = p
}

// Match finds the page for r.  The returned RouteMatch carries the
// *Page in Route and the chi URL params in Params.
func (rt *Router) Match(r *http.Request, opts adapter.MatchOptions) (adapter.RouteMatch, bool) {
	rctx := chi.NewRouteContext()
	if pattern := rt.mux.Find(rctx, r.Method, r.URL.Path); pattern != "" {
		if p, ok := rt.pages[pattern]; ok {
			params := make(map[string]string, len(rctx.URLParams.Keys))
			for i, k := range rctx.URLParams.Keys {
				params[k] = rctx.URLParams.Values[i]
			}
			return adapter.RouteMatch{Pattern: pattern, Params: params, Route: p}, true
		}
	}
	if opts.MatchNotFound && rt.notFound != nil {
		return adapter.RouteMatch{Pattern: notFoundPattern, Params: map[string]string{}, Route: rt.notFound}, true
	}
	return adapter.RouteMatch{}, false
}
