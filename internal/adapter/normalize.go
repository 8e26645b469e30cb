// internal/adapter/normalize.go
//
// Helpers shared by the normalize / denormalize halves of each adapter.
//
// Context
// -------
//   • DecodeBody     – platform body string → bytes, honouring base64.
//   • HasBody        – GET and HEAD never carry a body.
//   • AbsoluteURL    – rebuild scheme://host for requests served by
//     net/http, whose URL is path-only.
//   • HeaderIP       – first parseable address from a list of headers.
//   • RemoteIP       – host part of r.RemoteAddr.
//   • RequestID      – X-Request-Id or a fresh UUID, for log correlation.
//
// Notes
// -----
// • HeaderIP walks comma lists left to right, so for X-Forwarded-For the
//   original client wins over intermediate proxies.
// • Oxford commas, two spaces after periods.
package adapter

import (
	"encoding/base64"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// HasBody reports whether a request with method may carry a body.
func HasBody(method string) bool {
	return method != http.MethodGet && method != http.MethodHead
}

// DecodeBody converts a platform body string to bytes.
func DecodeBody(body string, isBase64 bool) ([]byte, error) {
	if !isBase64 {
		return []byte(body), nil
	}
	return base64.StdEncoding.DecodeString(body)
}

// AbsoluteURL returns r.URL with Scheme and Host filled in.  It trusts
// X-Forwarded-Proto because the edge sits behind a TLS terminator.
func AbsoluteURL(r *http.Request) *url.URL {
	u := *r.URL
	if u.Host == "" {
		u.Host = r.Host
	}
	if u.Scheme == "" {
		switch {
		case r.TLS != nil:
			u.Scheme = "https"
		default:
			u.Scheme = ForwardedProto(r.Header, "http")
		}
	}
	return &u
}

// ForwardedProto returns the client-facing scheme from X-Forwarded-Proto,
// or def when the header is absent or empty.  Proxy chains append to the
// header, so only the first element counts.
func ForwardedProto(h http.Header, def string) string {
	v := h.Get("X-Forwarded-Proto")
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	if v = strings.ToLower(strings.TrimSpace(v)); v == "" {
		return def
	}
	return v
}

// HeaderIP returns the first valid address found in the named headers.
func HeaderIP(h http.Header, names ...string) (string, bool) {
	for _, name := range names {
		v := h.Get(name)
		if v == "" {
			continue
		}
		for _, part := range strings.Split(v, ",") {
			if ip := net.ParseIP(strings.TrimSpace(part)); ip != nil {
				return ip.String(), true
			}
		}
	}
	return "", false
}

// RemoteIP returns the host part of r.RemoteAddr.
func RemoteIP(r *http.Request) (string, bool) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.String(), true
	}
	return "", false
}

// RequestID returns the inbound X-Request-Id or a new UUID.
func RequestID(h http.Header) string {
	if id := h.Get("X-Request-Id"); id != "" {
		return id
	}
	return uuid.NewString()
}
