// internal/web/response.go
//
// Canonical response.
//
// Context
// -------
// The renderer produces a fully buffered *web.Response.  Headers use
// http.Header so repeated fields (Set-Cookie above all) stay separate
// values instead of being folded into one line.  A response may also
// carry a CookieSource, the render context's cookie jar, so the adapter
// can drain cookies set during rendering once the render step is done.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package web

import (
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// CookieSource yields pre-formatted Set-Cookie header values.
type CookieSource interface {
	Headers() []string
}

// Response is the canonical outbound response.
type Response struct {
	Status     int
	StatusText string
	Header     http.Header
	Body       []byte

	cookies CookieSource
}

// NewResponse returns a response with an empty header map.
func NewResponse(status int, body []byte) *Response {
	return &Response{
		Status:     status,
		StatusText: http.StatusText(status),
		Header:     make(http.Header),
		Body:       body,
	}
}

// Text is shorthand for a text/plain response.
func Text(status int, body string) *Response {
	resp := NewResponse(status, []byte(body))
	resp.Header.Set("Content-Type", "text/plain; charset=utf-8")
	return resp
}

// NotFound is the literal 404 used when nothing matched.
func NotFound() *Response {
	resp := Text(http.StatusNotFound, "Not found")
	resp.StatusText = "Not found"
	return resp
}

// Redirect builds a bodiless redirect to location.
func Redirect(status int, location string) *Response {
	resp := NewResponse(status, nil)
	resp.Header.Set("Location", location)
	return resp
}

// MediaType returns the Content-Type without parameters, lower-cased.
// "text/html; charset=utf-8" → "text/html".
func (r *Response) MediaType() string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		return mt
	}
	// Malformed parameters; keep the part before the first ';'.
	mt, _, _ := strings.Cut(ct, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

// AttachCookies links the render context's cookie jar to the response.
func (r *Response) AttachCookies(src CookieSource) { r.cookies = src }

// SetCookieHeaders returns the Set-Cookie values accumulated during
// rendering, or nil when no jar was attached.
func (r *Response) SetCookieHeaders() []string {
	if r.cookies == nil {
		return nil
	}
	return r.cookies.Headers()
}

// Write copies the response onto w.  Multi-valued headers are written
// one field per value.
func (r *Response) Write(w http.ResponseWriter) error {
	dst := w.Header()
	for k, vs := range r.Header {
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
	if r.Body != nil && dst.Get("Content-Length") == "" {
		dst.Set("Content-Length", strconv.Itoa(len(r.Body)))
	}
	w.WriteHeader(r.Status)
	if len(r.Body) == 0 {
		return nil
	}
	_, err := w.Write(r.Body)
	return err
}
