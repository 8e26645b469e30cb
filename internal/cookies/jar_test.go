// internal/cookies/jar_test.go
//
// Unit-tests for cookies.Jar.

package cookies

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func requestWith(cookies ...*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestGetReadsRequestCookies(t *testing.T) {
	j := New(requestWith(&http.Cookie{Name: "theme", Value: "dark"}))
	if c := j.Get("theme"); !c.Found || c.Value != "dark" {
		t.Fatalf("Get(theme) = %+v", c)
	}
	if j.Has("missing") {
		t.Fatalf("Has(missing) = true")
	}
	if len(j.Headers()) != 0 {
		t.Fatalf("reading must not queue Set-Cookie values")
	}
}

func TestSetShadowsAndSerializes(t *testing.T) {
	j := New(requestWith(&http.Cookie{Name: "count", Value: "1"}))
	if err := j.Set("count", 2, WithPath("/"), WithHTTPOnly(true)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := j.Set("prefs", map[string]bool{"beta": true}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	n, err := j.Get("count").Number()
	if err != nil || n != 2 {
		t.Fatalf("Number = %v, %v", n, err)
	}
	var prefs map[string]bool
	if err := j.Get("prefs").JSON(&prefs); err != nil || !prefs["beta"] {
		t.Fatalf("JSON = %v, %v", prefs, err)
	}

	h := j.Headers()
	if len(h) != 2 {
		t.Fatalf("Headers = %v, want 2 values", h)
	}
	if h[0] != "count=2; Path=/; HttpOnly" {
		t.Fatalf("Headers[0] = %q", h[0])
	}
	if !strings.HasPrefix(h[1], "prefs=") {
		t.Fatalf("Headers[1] = %q", h[1])
	}
}

func TestDelete(t *testing.T) {
	j := New(requestWith(&http.Cookie{Name: "session", Value: "abc"}))
	j.Delete("session", WithPath("/"))

	if j.Has("session") {
		t.Fatalf("deleted cookie still visible")
	}
	h := j.Headers()
	if len(h) != 1 || !strings.Contains(h[0], "Expires=Thu, 01 Jan 1970") {
		t.Fatalf("Headers = %v", h)
	}
}

func TestBool(t *testing.T) {
	j := New(nil)
	_ = j.Set("flag", true)
	if !j.Get("flag").Bool() {
		t.Fatalf("Bool() = false")
	}
	if j.Get("nope").Bool() {
		t.Fatalf("missing cookie is true")
	}
}

func TestValuesArePercentEncoded(t *testing.T) {
	j := New(nil)
	_ = j.Set("prefs", map[string]string{"lang": "en US"})
	h := j.Headers()
	if len(h) != 1 || h[0] != "prefs=%7B%22lang%22%3A%22en%20US%22%7D" {
		t.Fatalf("Headers = %v", h)
	}

	// The browser echoes the encoded value; Get decodes it.
	j = New(requestWith(&http.Cookie{Name: "prefs", Value: "%7B%22lang%22%3A%22en%20US%22%7D"}))
	var prefs map[string]string
	if err := j.Get("prefs").JSON(&prefs); err != nil || prefs["lang"] != "en US" {
		t.Fatalf("JSON = %v, %v", prefs, err)
	}
}
