package site

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/aws/aws-lambda-go/events"

	"github.com/yanizio/adept-ssr/internal/adapter"
	"github.com/yanizio/adept-ssr/internal/adapter/edge"
	"github.com/yanizio/adept-ssr/internal/adapter/functions"
	"github.com/yanizio/adept-ssr/internal/app"
	"github.com/yanizio/adept-ssr/internal/markdown"
)

func newApp(t *testing.T, adapterName string) *app.App {
	t.Helper()
	th, err := Theme()
	if err != nil {
		t.Fatalf("Theme: %v", err)
	}
	return app.New(Router(), th.Templates, app.Options{
		AdapterName: adapterName,
		SSR:         true,
		Site:        "https://example.com",
		Markdown:    markdown.NewHandle(markdown.GoldmarkLoader(16)),
	})
}

func TestEdgeEndToEnd(t *testing.T) {
	a := edge.New(edge.Options{
		App:      newApp(t, edge.Name),
		Manifest: adapter.NewManifest("/site.css"),
	})
	static := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/static/site.css" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/css")
		_, _ = io.WriteString(w, "body{}")
	})
	srv := httptest.NewServer(a.Middleware(static))
	defer srv.Close()

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
	get := func(path string, hdr map[string]string) (*http.Response, string) {
		t.Helper()
		req, _ := http.NewRequest(http.MethodGet, srv.URL+path, nil)
		for k, v := range hdr {
			req.Header.Set(k, v)
		}
		res, err := client.Do(req)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		defer res.Body.Close()
		b, _ := io.ReadAll(res.Body)
		return res, string(b)
	}

	res, body := get("/", map[string]string{"CF-Connecting-IP": "203.0.113.9", "Cookie": "visits=4"})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("home status %d", res.StatusCode)
	}
	for _, want := range []string{
		"Your address: 203.0.113.9",
		"Visit number 5.",
		"<strong>on demand</strong>",
		`<link href="/site.css" rel="stylesheet">`,
		"Served by the reference app.",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("home body missing %q", want)
		}
	}
	if got := res.Header.Values("Set-Cookie"); len(got) != 1 || !strings.HasPrefix(got[0], "visits=5;") {
		t.Fatalf("Set-Cookie = %v", got)
	}

	res, body = get("/site.css", nil)
	if res.StatusCode != http.StatusOK || body != "body{}" {
		t.Fatalf("static: %d %q", res.StatusCode, body)
	}

	res, body = get("/blog/hello-world", nil)
	if res.StatusCode != http.StatusOK || !strings.Contains(body, "Hello, world</h1>") {
		t.Fatalf("post: %d %q", res.StatusCode, body)
	}

	res, _ = get("/blog/missing", nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("missing post status %d", res.StatusCode)
	}

	res, body = get("/no/such/page", nil)
	if res.StatusCode != http.StatusNotFound || !strings.Contains(body, "Nothing lives at /no/such/page.") {
		t.Fatalf("not-found page: %d %q", res.StatusCode, body)
	}

	res, _ = get("/old-home", nil)
	if res.StatusCode != http.StatusFound || res.Header.Get("Location") != "/" {
		t.Fatalf("redirect: %d %q", res.StatusCode, res.Header.Get("Location"))
	}
}

func TestFunctionsEndToEnd(t *testing.T) {
	a := functions.New(functions.Options{
		App:      newApp(t, functions.Name),
		Manifest: adapter.NewManifest("/site.css"),
		Static:   fstest.MapFS{"site.css": {Data: []byte("body{}")}},
	})

	ev := functions.Event{
		APIGatewayProxyRequest: events.APIGatewayProxyRequest{
			HTTPMethod: http.MethodGet,
			Headers:    map[string]string{"x-nf-client-connection-ip": "192.0.2.44"},
		},
		RawURL: "https://example.com/debug?x=1",
	}
	reply, err := a.Handler(context.Background(), ev)
	if err != nil {
		t.Fatalf("Handler: %v", err)
	}
	var dbg map[string]any
	if err := json.Unmarshal([]byte(reply.Body), &dbg); err != nil {
		t.Fatalf("debug body %q: %v", reply.Body, err)
	}
	if dbg["client_address"] != "192.0.2.44" || dbg["url"] != "https://example.com/debug?x=1" || dbg["site"] != "https://example.com" {
		t.Fatalf("debug = %v", dbg)
	}

	ev.RawURL = "https://example.com/"
	reply, _ = a.Handler(context.Background(), ev)
	if reply.StatusCode != http.StatusOK || reply.IsBase64Encoded {
		t.Fatalf("home reply = %d base64=%v", reply.StatusCode, reply.IsBase64Encoded)
	}
	if got := reply.MultiValueHeaders["set-cookie"]; len(got) != 1 || !strings.HasPrefix(got[0], "visits=1;") {
		t.Fatalf("set-cookie = %v", got)
	}

	ev.RawURL = "https://example.com/site.css"
	reply, _ = a.Handler(context.Background(), ev)
	if reply.StatusCode != http.StatusOK || reply.Body != "body{}" || !strings.HasPrefix(reply.Headers["content-type"], "text/css") {
		t.Fatalf("static reply = %+v", reply)
	}
}

