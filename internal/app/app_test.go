package app

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yanizio/adept-ssr/internal/adapter"
	"github.com/yanizio/adept-ssr/internal/cookies"
	"github.com/yanizio/adept-ssr/internal/head"
	"github.com/yanizio/adept-ssr/internal/markdown"
	"github.com/yanizio/adept-ssr/internal/render"
	"github.com/yanizio/adept-ssr/internal/slots"
	"github.com/yanizio/adept-ssr/internal/web"
)

const templates = `
{{ define "home" }}<head>{{ head }}</head><h1>{{ index .Props "title" }}</h1>{{ slot "default" }}{{ if hasSlot "aside" }}[aside]{{ end }}{{ end }}
{{ define "post" }}<p>{{ index .Params "slug" }}</p>{{ end }}
{{ define "404" }}<p>missing {{ .URL.Path }}</p>{{ end }}
{{ define "md" }}{{ markdown .Data }}{{ end }}
`

func newApp(t *testing.T, opts Options) *App {
	t.Helper()
	tmpl := template.Must(template.New("pages").Funcs(Funcs()).Parse(templates))

	rt := NewRouter()
	rt.Handle(&Page{
		Pattern:  "/",
		Template: "home",
		Props:    map[string]any{"title": "Welcome"},
		Slots:    map[string]slots.Provider{"default": slots.Static("<em>body</em>")},
		Styles: []head.Element{
			{Name: "link", Props: map[string]string{"rel": "stylesheet", "href": "/a.css"}},
			{Name: "link", Props: map[string]string{"rel": "stylesheet", "href": "/a.css"}},
		},
	})
	rt.Handle(&Page{Pattern: "/blog/{slug}", Template: "post"})
	rt.Handle(&Page{
		Pattern:  "/account",
		Template: "home",
		Load: func(_ context.Context, f *render.Facade) (any, *web.Response, error) {
			if err := f.Cookies().Set("visited", true, cookies.WithPath("/")); err != nil {
				return nil, nil, err
			}
			resp, err := f.Redirect("/login")
			return nil, resp, err
		},
	})
	rt.Handle(&Page{
		Pattern:  "/md",
		Template: "md",
		Load: func(context.Context, *render.Facade) (any, *web.Response, error) {
			return "*hi*", nil, nil
		},
	})
	rt.NotFound(&Page{Pattern: "/404", Template: "404"})
	return New(rt, tmpl, opts)
}

func serve(t *testing.T, a *App, target string) (*web.Response, bool) {
	t.Helper()
	req := web.NewRequest(httptest.NewRequest(http.MethodGet, target, nil))
	m, ok := a.Match(req.HTTP, adapter.MatchOptions{MatchNotFound: true})
	if !ok {
		return nil, false
	}
	resp, err := a.Render(context.Background(), req, m)
	if err != nil {
		t.Fatalf("Render %s: %v", target, err)
	}
	return resp, true
}

func TestRenderHome(t *testing.T) {
	a := newApp(t, Options{SSR: true})
	resp, _ := serve(t, a, "https://example.com/")

	if resp.Status != http.StatusOK || resp.MediaType() != "text/html" {
		t.Fatalf("status %d, type %q", resp.Status, resp.MediaType())
	}
	body := string(resp.Body)
	want := `<head><link href="/a.css" rel="stylesheet"></head><h1>Welcome</h1><em>body</em>`
	if body != want {
		t.Fatalf("body = %q\nwant  %q", body, want)
	}
	if n := strings.Count(body, "<link"); n != 1 {
		t.Fatalf("head element emitted %d times", n)
	}
}

func TestMatchParams(t *testing.T) {
	a := newApp(t, Options{})
	resp, _ := serve(t, a, "https://example.com/blog/hello-world")
	if string(resp.Body) != "<p>hello-world</p>" {
		t.Fatalf("body = %q", resp.Body)
	}
}

func TestNotFoundPage(t *testing.T) {
	a := newApp(t, Options{})
	resp, ok := serve(t, a, "https://example.com/nowhere")
	if !ok {
		t.Fatal("not-found page not matched")
	}
	if resp.Status != http.StatusNotFound || resp.StatusText != "Not Found" {
		t.Fatalf("status %d %q", resp.Status, resp.StatusText)
	}
	if string(resp.Body) != "<p>missing /nowhere</p>" {
		t.Fatalf("body = %q", resp.Body)
	}

	r := httptest.NewRequest(http.MethodGet, "https://example.com/nowhere", nil)
	if _, ok := a.Match(r, adapter.MatchOptions{}); ok {
		t.Fatal("matched without MatchNotFound")
	}
}

func TestRedirectKeepsCookies(t *testing.T) {
	a := newApp(t, Options{SSR: true})
	resp, _ := serve(t, a, "https://example.com/account")
	if resp.Status != http.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("status %d, location %q", resp.Status, resp.Header.Get("Location"))
	}
	got := a.SetCookieHeaders(resp)
	if len(got) != 1 || got[0] != "visited=true; Path=/" {
		t.Fatalf("SetCookieHeaders = %v", got)
	}
}

func TestRedirectWithoutSSR(t *testing.T) {
	a := newApp(t, Options{})
	req := web.NewRequest(httptest.NewRequest(http.MethodGet, "https://example.com/account", nil))
	m, _ := a.Match(req.HTTP, adapter.MatchOptions{})
	if _, err := a.Render(context.Background(), req, m); err == nil {
		t.Fatal("expected capability error")
	}
}

func TestMarkdownHelper(t *testing.T) {
	a := newApp(t, Options{Markdown: markdown.NewHandle(markdown.GoldmarkLoader(8))})
	resp, _ := serve(t, a, "https://example.com/md")
	if got := strings.TrimSpace(string(resp.Body)); got != "<p><em>hi</em></p>" {
		t.Fatalf("body = %q", got)
	}

	a = newApp(t, Options{})
	req := web.NewRequest(httptest.NewRequest(http.MethodGet, "https://example.com/md", nil))
	m, _ := a.Match(req.HTTP, adapter.MatchOptions{})
	if _, err := a.Render(context.Background(), req, m); err == nil {
		t.Fatal("expected environment error without a markdown handle")
	}
}
