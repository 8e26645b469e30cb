// internal/adapter/edge/edge.go
//
// Edge-middleware adapter.
//
// Context
// -------
// CDN edge runtimes hand the application a native request and a "next"
// continuation that forwards to the origin's static storage.  OnRequest
// follows that shape:
//
//   - a path listed in the asset manifest is rewritten to
//     origin + "/static" + path and passed to next untouched;
//   - everything else goes through the shared adapter pipeline, with the
//     caller address read from CF-Connecting-IP;
//   - every cookie set while rendering is appended as its own Set-Cookie
//     field so each one survives intact.
//
// Middleware wraps the same flow for net/http, which is how the dev
// server and tests run it.  There "next" is the downstream handler and
// the caller address falls back to RemoteAddr.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package edge

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/yanizio/adept-ssr/internal/adapter"
	"github.com/yanizio/adept-ssr/internal/web"
)

// Name labels logs and metrics.
const Name = "edge"

// StaticPrefix is where the platform serves build assets from.
const StaticPrefix = "/static"

// ClientIPHeader carries the caller address on the edge platform.
const ClientIPHeader = "CF-Connecting-IP"

// Next forwards a request to the platform's downstream handler.
type Next func(r *http.Request) (*web.Response, error)

// Options configures an Adapter.
type Options struct {
	App      adapter.App
	Manifest *adapter.Manifest
	Logger   *zap.SugaredLogger

	// TrustRemoteAddr makes Middleware fall back to r.RemoteAddr when
	// the platform header is absent.
	TrustRemoteAddr bool
}

// Adapter runs an App behind an edge runtime.
type Adapter struct {
	pipe     adapter.Pipeline
	manifest *adapter.Manifest
	remote   bool
}

// New returns an edge adapter.  App is required.
func New(opts Options) *Adapter {
	if opts.App == nil {
		panic("edge: nil App")
	}
	return &Adapter{
		pipe:     adapter.Pipeline{Name: Name, App: opts.App, Log: opts.Logger},
		manifest: opts.Manifest,
		remote:   opts.TrustRemoteAddr,
	}
}

// OnRequest handles one edge invocation.  r.URL may be path-only; it is
// made absolute before anything else looks at it.
func (a *Adapter) OnRequest(ctx context.Context, r *http.Request, next Next) (*web.Response, error) {
	r = r.Clone(ctx)
	r.URL = adapter.AbsoluteURL(r)

	if a.manifest.Has(r.URL.Path) {
		a.pipe.Static()
		u := *r.URL
		u.Path = StaticPrefix + r.URL.Path
		u.RawPath = ""
		r.URL = &u
		r.RequestURI = ""
		return next(r)
	}

	// The address is always attached: empty when the platform sent no
	// header for this request.
	req := web.NewRequest(r)
	ip, ok := adapter.HeaderIP(r.Header, ClientIPHeader)
	if !ok && a.remote {
		ip, _ = adapter.RemoteIP(r)
	}
	req.WithClientAddress(ip)

	res := a.pipe.Serve(ctx, req)
	for _, c := range res.Cookies {
		res.Response.Header.Add("Set-Cookie", c)
	}
	return res.Response, nil
}

// Middleware adapts OnRequest to net/http.  Static requests reach next
// with the "/static" prefix already applied.
func (a *Adapter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp, err := a.OnRequest(r.Context(), r, func(fr *http.Request) (*web.Response, error) {
			return web.Capture(next, fr), nil
		})
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		_ = resp.Write(w)
	})
}
