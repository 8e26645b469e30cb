// internal/web/capture.go
//
// Capture runs an http.Handler and buffers what it writes into a
// *Response.  The edge adapter uses it to treat a downstream handler
// (static files, another middleware) as a "next" function that returns a
// value instead of streaming to the client.
package web

import (
	"bytes"
	"net/http"
)

type recorder struct {
	header      http.Header
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (rec *recorder) Header() http.Header { return rec.header }

func (rec *recorder) WriteHeader(code int) {
	if rec.wroteHeader {
		return
	}
	rec.status = code
	rec.wroteHeader = true
}

func (rec *recorder) Write(p []byte) (int, error) {
	if !rec.wroteHeader {
		rec.WriteHeader(http.StatusOK)
	}
	return rec.body.Write(p)
}

// Capture serves r through h and returns the buffered result.
func Capture(h http.Handler, r *http.Request) *Response {
	rec := &recorder{header: make(http.Header), status: http.StatusOK}
	h.ServeHTTP(rec, r)
	resp := NewResponse(rec.status, rec.body.Bytes())
	resp.Header = rec.header
	return resp
}
