// internal/web/request.go
//
// Canonical request wrapper.
//
// Context
// -------
// Every adapter normalizes its platform invocation into a *web.Request
// before handing it to the router and renderer.  The wrapper carries the
// plain *http.Request plus one side-channel value, the caller's network
// address, which the platform reports out of band (a CDN header, a Lambda
// request-context field, and so on).  Keeping it beside the request rather
// than inside its headers means rendering code sees exactly what the client
// sent.
//
// Notes
// -----
// • The address is set once by the adapter and never mutated afterwards.
// • Oxford commas, two spaces after periods.
package web

import (
	"net/http"
	"net/url"
)

// Request is the canonical inbound request plus its side channel.
type Request struct {
	HTTP *http.Request

	clientAddr    string
	hasClientAddr bool
}

// NewRequest wraps r.  The client address starts unset.
func NewRequest(r *http.Request) *Request {
	return &Request{HTTP: r}
}

// WithClientAddress records the caller's address and returns the receiver.
func (r *Request) WithClientAddress(addr string) *Request {
	r.clientAddr = addr
	r.hasClientAddr = true
	return r
}

// ClientAddress reports the side-channel address.  ok is false when no
// adapter attached one.
func (r *Request) ClientAddress() (addr string, ok bool) {
	return r.clientAddr, r.hasClientAddr
}

// URL returns the request URL.  Adapters always build absolute URLs, so
// Scheme and Host are populated.
func (r *Request) URL() *url.URL { return r.HTTP.URL }

// Origin returns "scheme://host" of the request URL.
func (r *Request) Origin() string {
	u := r.HTTP.URL
	if u.Host == "" {
		return ""
	}
	scheme := u.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + u.Host
}
