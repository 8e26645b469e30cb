// internal/adapter/adapter.go
//
// Shared adapter contract.
//
// Context
// -------
// Every hosting platform gets its own adapter package (edge, functions).
// They differ in how an invocation arrives and how the reply must leave,
// but the middle of the pipeline is identical:
//
//  1. match the canonical request, asking the router to fall back to its
//     not-found route;
//  2. answer a literal 404 when even that fails, without rendering;
//  3. render the match;
//  4. collect the Set-Cookie values produced while rendering.
//
// Pipeline implements those steps once.  Adapters call it between their
// own normalize and denormalize code and merge the returned cookies with
// whatever multi-value mechanism their platform offers.
//
// Notes
// -----
// • Render errors become a 500 here; the error itself is logged, never
//   sent to the client.
// • Oxford commas, two spaces after periods.
package adapter

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/adept-ssr/internal/metrics"
	"github.com/yanizio/adept-ssr/internal/web"
)

//
// external collaborators
//

// MatchOptions tunes App.Match.
type MatchOptions struct {
	// MatchNotFound lets an unmatched path resolve to the configured
	// not-found route.
	MatchNotFound bool
}

// RouteMatch is the router's answer.  Adapters never look inside it.
type RouteMatch struct {
	Pattern string
	Params  map[string]string
	Route   any
}

// App is the router + renderer pair an adapter drives.
type App interface {
	Match(r *http.Request, opts MatchOptions) (RouteMatch, bool)
	Render(ctx context.Context, req *web.Request, m RouteMatch) (*web.Response, error)
	// SetCookieHeaders reports the Set-Cookie values produced while
	// rendering resp.
	SetCookieHeaders(resp *web.Response) []string
}

//
// pipeline
//

// Pipeline runs match → render → cookie collection for one adapter.
type Pipeline struct {
	Name string
	App  App
	Log  *zap.SugaredLogger
}

// Result is what Pipeline.Serve hands back to the adapter.
type Result struct {
	Response *web.Response
	Cookies  []string // Set-Cookie values still to merge
	Outcome  string   // metrics.Outcome*
}

// Serve matches and renders req.  Cookies are collected only after the
// render step has returned.
func (p *Pipeline) Serve(ctx context.Context, req *web.Request) Result {
	start := time.Now()
	defer func() {
		metrics.RenderDuration.WithLabelValues(p.Name).Observe(time.Since(start).Seconds())
	}()

	log := p.Logger().With("adapter", p.Name, "request_id", RequestID(req.HTTP.Header), "path", req.URL().Path)

	m, ok := p.App.Match(req.HTTP, MatchOptions{MatchNotFound: true})
	if !ok {
		log.Debugw("no route matched")
		return p.done(Result{Response: web.NotFound(), Outcome: metrics.OutcomeNotFound})
	}

	resp, err := p.App.Render(ctx, req, m)
	if err != nil {
		log.Errorw("render failed", "route", m.Pattern, "err", err)
		return p.done(Result{
			Response: web.Text(http.StatusInternalServerError, "Internal Server Error"),
			Outcome:  metrics.OutcomeError,
		})
	}

	cookies := p.App.SetCookieHeaders(resp)
	log.Debugw("rendered", "route", m.Pattern, "status", resp.Status, "cookies", len(cookies))
	return p.done(Result{Response: resp, Cookies: cookies, Outcome: metrics.OutcomeRendered})
}

// Static records a static-asset short-circuit.
func (p *Pipeline) Static() {
	metrics.AdapterRequestsTotal.WithLabelValues(p.Name, metrics.OutcomeStatic).Inc()
}

func (p *Pipeline) done(r Result) Result {
	metrics.AdapterRequestsTotal.WithLabelValues(p.Name, r.Outcome).Inc()
	return r
}

// Logger returns Log, or the global logger when Log is nil.
func (p *Pipeline) Logger() *zap.SugaredLogger {
	if p.Log != nil {
		return p.Log
	}
	return zap.S()
}
