// internal/site/site.go
//
// Demo site served by both binaries.
//
// Context
// -------
// The site exercises every member of the component facade so a fresh
// deployment can be smoke-tested on each platform:
//
//   /               home: client address, visit counter cookie, Markdown
//                   intro, default slot, and head elements
//   /blog/{slug}    Markdown post looked up by route param
//   /old-home       redirect to /
//   /debug          JSON echo of what the render context saw, with the
//                   parsed User-Agent
//   (anything else) not-found page, rendered with status 404
//
// Templates live in templates/*.html and are embedded into the binary.
package site

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"

	"github.com/yanizio/adept-ssr/internal/app"
	"github.com/yanizio/adept-ssr/internal/cookies"
	"github.com/yanizio/adept-ssr/internal/head"
	"github.com/yanizio/adept-ssr/internal/markdown"
	"github.com/yanizio/adept-ssr/internal/render"
	"github.com/yanizio/adept-ssr/internal/routing"
	"github.com/yanizio/adept-ssr/internal/slots"
	"github.com/yanizio/adept-ssr/internal/theme"
	"github.com/yanizio/adept-ssr/internal/ua"
	"github.com/yanizio/adept-ssr/internal/web"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates returns the embedded template file system.
func Templates() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err) // embed path is fixed at compile time
	}
	return sub
}

// Theme parses the embedded templates with the app helpers installed.
func Theme() (*theme.Theme, error) {
	return theme.Load("default", Templates(), app.Funcs())
}

// entry is one demo blog post.
type entry struct {
	Title string
	Body  string
}

var entries = []entry{
	{"Hello, world", "This page was rendered on the *server*."},
	{"Adapters", "- edge middleware\n- serverless functions\n"},
}

// posts indexes entries by slug.
var posts = func() map[string]entry {
	m := make(map[string]entry, len(entries))
	for _, e := range entries {
		m[routing.MakeSlug(e.Title)] = e
	}
	return m
}()

// PostLink is one row of the home page index.
type PostLink struct {
	Title string
	Path  string
}

func postLinks() []PostLink {
	out := make([]PostLink, 0, len(entries))
	for _, e := range entries {
		out = append(out, PostLink{Title: e.Title, Path: routing.BuildPath("blog", routing.MakeSlug(e.Title))})
	}
	return out
}

var stylesheet = head.Element{Name: "link", Props: map[string]string{"rel": "stylesheet", "href": "/site.css"}}

// Router registers the demo pages.
func Router() *app.Router {
	rt := app.NewRouter()

	rt.Handle(&app.Page{
		Pattern:  "/",
		Template: "home",
		Props:    map[string]any{"title": "adept-ssr"},
		Slots: map[string]slots.Provider{
			"default": slots.Static("<p>Served by the reference app.</p>"),
		},
		Styles: []head.Element{stylesheet},
		Links: []head.Element{
			{Name: "link", Props: map[string]string{"rel": "icon", "href": "/favicon.ico"}},
		},
		Load: loadHome,
	})

	rt.Handle(&app.Page{
		Pattern:  "/blog/{slug}",
		Template: "post",
		Styles:   []head.Element{stylesheet},
		Load:     loadPost,
	})

	rt.Handle(&app.Page{
		Pattern:  "/old-home",
		Template: "home",
		Load: func(_ context.Context, f *render.Facade) (any, *web.Response, error) {
			resp, err := f.Redirect("/")
			return nil, resp, err
		},
	})

	rt.Handle(&app.Page{Pattern: "/debug", Template: "home", Load: loadDebug})

	rt.NotFound(&app.Page{Pattern: "/404", Template: "404", Styles: []head.Element{stylesheet}})
	return rt
}

//
// loaders
//

// Home is the data for the home template.
type Home struct {
	ClientAddress string
	Visits        int
	Intro         string
	Posts         []PostLink
}

func loadHome(ctx context.Context, f *render.Facade) (any, *web.Response, error) {
	var h Home

	if addr, err := f.ClientAddress(); err == nil {
		h.ClientAddress = addr
	} else if !errors.Is(err, render.ErrConfiguration) {
		return nil, nil, err
	}

	jar := f.Cookies()
	if n, err := jar.Get("visits").Number(); err == nil {
		h.Visits = int(n)
	}
	h.Visits++
	if err := jar.Set("visits", h.Visits, cookies.WithPath("/"), cookies.WithHTTPOnly(true), cookies.WithMaxAge(86400)); err != nil {
		return nil, nil, err
	}

	h.Intro = "Rendered **on demand** by the per-request core."
	h.Posts = postLinks()
	return h, nil, nil
}

// Post is the data for the post template.
type Post struct {
	Slug  string
	Title string
	HTML  string
}

func loadPost(ctx context.Context, f *render.Facade) (any, *web.Response, error) {
	slug := f.Params()["slug"]
	e, ok := posts[slug]
	if !ok {
		return nil, web.NotFound(), nil
	}
	src := "# " + e.Title + "\n\n" + e.Body
	html, err := f.RenderMarkdown(ctx, src, markdown.Options{Typographer: markdown.Bool(true)})
	if err != nil {
		return nil, nil, fmt.Errorf("post %q: %w", slug, err)
	}
	return Post{Slug: slug, Title: e.Title, HTML: html}, nil, nil
}

func loadDebug(_ context.Context, f *render.Facade) (any, *web.Response, error) {
	addr, _ := f.ClientAddress()
	out := map[string]any{
		"url":            f.URL().String(),
		"params":         f.Params(),
		"client_address": addr,
		"site":           urlString(f.Site()),
		"user_agent":     ua.Parse(f.Request().UserAgent()),
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, nil, err
	}
	resp := web.NewResponse(http.StatusOK, b)
	resp.Header.Set("Content-Type", "application/json")
	return nil, resp, nil
}

func urlString(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}
