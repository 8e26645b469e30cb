// internal/app/page.go
//
// Page definitions for the reference app.
//
// A Page is one route: a chi pattern, the template it renders, and the
// optional server code that runs first.  Load receives the component
// facade and may either return template data or a finished response
// (usually a redirect), in which case the template is skipped.
package app

import (
	"context"

	"github.com/yanizio/adept-ssr/internal/head"
	"github.com/yanizio/adept-ssr/internal/render"
	"github.com/yanizio/adept-ssr/internal/slots"
	"github.com/yanizio/adept-ssr/internal/web"
)

// LoadFunc runs a page's server code.  A non-nil response short-circuits
// rendering.
type LoadFunc func(ctx context.Context, f *render.Facade) (data any, resp *web.Response, err error)

// Page is a routable template.
type Page struct {
	Pattern  string // chi pattern, "/blog/{slug}"
	Template string // name within the app's template set
	Status   int    // 0 → 200; the not-found page defaults to 404

	Props      map[string]any
	Slots      map[string]slots.Provider
	Load       LoadFunc
	Styles     []head.Element
	Scripts    []head.Element
	Links      []head.Element
	Directives []string // hydration directives used by the page
}
