// internal/adapter/functions/functions.go
//
// Function-style adapter.
//
// Context
// -------
// Serverless function platforms deliver each request as a JSON event and
// expect a JSON reply: status, single-valued headers, multi-valued
// headers, a string body, and a flag saying whether that body is base64.
// Handler converts the event into a canonical request, runs the shared
// adapter pipeline, and converts the result back.
//
//   Normalize    method, headers, and URL from the event; for anything
//                but GET/HEAD the body is decoded (base64 when flagged,
//                literal 400 when that fails);
//                the caller address comes from X-Nf-Client-Connection-Ip,
//                else the request-context source IP.
//   Static       manifest paths are served from Options.Static, or get a
//                literal 404 when that is nil or lacks the file.
//   Denormalize  headers with more than one value, and every Set-Cookie,
//                go to MultiValueHeaders so none is folded.  Bodies whose
//                media type is on the binary allowlist are base64.
//
// Notes
// -----
// • Header names in the reply are lower-cased.
// • Oxford commas, two spaces after periods.
package functions

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/yanizio/adept-ssr/internal/adapter"
	"github.com/yanizio/adept-ssr/internal/web"
)

// Name labels logs and metrics.
const Name = "functions"

// ClientIPHeader carries the caller address on the functions platform.
const ClientIPHeader = "X-Nf-Client-Connection-Ip"

// Event is the proxy request plus the raw URL fields some platforms add.
type Event struct {
	events.APIGatewayProxyRequest
	RawURL   string `json:"rawUrl"`
	RawQuery string `json:"rawQuery"`
}

// Options configures an Adapter.
type Options struct {
	App              adapter.App
	Manifest         *adapter.Manifest
	Static           fs.FS
	BinaryMediaTypes []string // added to the built-in allowlist
	Logger           *zap.SugaredLogger
}

// Adapter runs an App behind a function platform.
type Adapter struct {
	pipe     adapter.Pipeline
	manifest *adapter.Manifest
	static   fs.FS
	binary   adapter.MediaTypes
}

// New returns a functions adapter.  App is required.
func New(opts Options) *Adapter {
	if opts.App == nil {
		panic("functions: nil App")
	}
	return &Adapter{
		pipe:     adapter.Pipeline{Name: Name, App: opts.App, Log: opts.Logger},
		manifest: opts.Manifest,
		static:   opts.Static,
		binary:   adapter.BinaryMediaTypes(opts.BinaryMediaTypes...),
	}
}

// Start hands Handler to the platform runtime.  It does not return.
func (a *Adapter) Start() { lambda.Start(a.Handler) }

// errBadBody marks a request body that does not decode.
var errBadBody = errors.New("functions: undecodable body")

// Handler serves one invocation.  Only events with no usable URL produce
// an error; a body that does not decode gets a literal 400, and
// everything else is expressed as a reply.
func (a *Adapter) Handler(ctx context.Context, ev Event) (events.APIGatewayProxyResponse, error) {
	r, err := normalize(ctx, ev)
	if errors.Is(err, errBadBody) {
		a.pipe.Logger().Warnw("bad request body", "path", ev.Path, "error", err)
		return a.denormalize(badRequest(), nil), nil
	}
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	if a.manifest.Has(r.URL.Path) {
		a.pipe.Static()
		return a.denormalize(a.serveStatic(r.URL.Path), nil), nil
	}

	req := web.NewRequest(r)
	ip, ok := adapter.HeaderIP(r.Header, ClientIPHeader)
	if !ok {
		ip = ev.RequestContext.Identity.SourceIP
	}
	req.WithClientAddress(ip)

	res := a.pipe.Serve(ctx, req)
	return a.denormalize(res.Response, res.Cookies), nil
}

//
// normalize
//

func normalize(ctx context.Context, ev Event) (*http.Request, error) {
	method := ev.HTTPMethod
	if method == "" {
		method = http.MethodGet
	}

	header := make(http.Header)
	if len(ev.MultiValueHeaders) > 0 {
		for k, vs := range ev.MultiValueHeaders {
			for _, v := range vs {
				header.Add(k, v)
			}
		}
	} else {
		for k, v := range ev.Headers {
			header.Set(k, v)
		}
	}

	u, err := eventURL(ev, header)
	if err != nil {
		return nil, fmt.Errorf("functions: bad request url: %w", err)
	}

	var body []byte
	if adapter.HasBody(method) && ev.Body != "" {
		if body, err = adapter.DecodeBody(ev.Body, ev.IsBase64Encoded); err != nil {
			return nil, fmt.Errorf("%w: %w", errBadBody, err)
		}
	}

	r, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	r.Header = header
	r.Host = r.URL.Host
	return r, nil
}

// eventURL prefers the platform's rawUrl and otherwise rebuilds one from
// the Host header, path, and query parameters.
func eventURL(ev Event, h http.Header) (string, error) {
	if ev.RawURL != "" {
		if _, err := url.Parse(ev.RawURL); err != nil {
			return "", err
		}
		return ev.RawURL, nil
	}

	host := h.Get("Host")
	if host == "" {
		host = ev.RequestContext.DomainName
	}
	if host == "" {
		return "", errors.New("no rawUrl and no host")
	}
	u := url.URL{Scheme: adapter.ForwardedProto(h, "https"), Host: host, Path: ev.Path}
	switch {
	case ev.RawQuery != "":
		u.RawQuery = ev.RawQuery
	case len(ev.MultiValueQueryStringParameters) > 0:
		q := url.Values{}
		for k, vs := range ev.MultiValueQueryStringParameters {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	case len(ev.QueryStringParameters) > 0:
		q := url.Values{}
		for k, v := range ev.QueryStringParameters {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}

func badRequest() *web.Response {
	resp := web.Text(http.StatusBadRequest, "Bad Request")
	resp.StatusText = "Bad Request"
	return resp
}

//
// static
//

func (a *Adapter) serveStatic(urlPath string) *web.Response {
	if a.static == nil {
		return web.NotFound()
	}
	name := strings.TrimPrefix(path.Clean(urlPath), "/")
	data, err := fs.ReadFile(a.static, name)
	if err != nil {
		return web.NotFound()
	}
	resp := web.NewResponse(http.StatusOK, data)
	ct := mime.TypeByExtension(path.Ext(name))
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	resp.Header.Set("Content-Type", ct)
	return resp
}

//
// denormalize
//

func (a *Adapter) denormalize(resp *web.Response, cookies []string) events.APIGatewayProxyResponse {
	out := events.APIGatewayProxyResponse{
		StatusCode: resp.Status,
		Headers:    map[string]string{},
	}
	multi := map[string][]string{}

	keys := make([]string, 0, len(resp.Header))
	for k := range resp.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		vs := resp.Header[k]
		name := strings.ToLower(k)
		switch {
		case len(vs) == 0:
		case name == "set-cookie" || len(vs) > 1:
			multi[name] = append(multi[name], vs...)
		default:
			out.Headers[name] = vs[0]
		}
	}
	if len(cookies) > 0 {
		multi["set-cookie"] = append(multi["set-cookie"], cookies...)
	}
	if len(multi) > 0 {
		out.MultiValueHeaders = multi
	}

	if a.binary.Has(resp.MediaType()) {
		out.Body = base64.StdEncoding.EncodeToString(resp.Body)
		out.IsBase64Encoded = true
	} else {
		out.Body = string(resp.Body)
	}
	return out
}
