// internal/render/legacy.go
//
// Deprecated facade members kept so older pages keep rendering.  Both log
// a deprecation warning on every call and are scheduled for removal in
// the next major version.
package render

import (
	"fmt"
	"net/url"
	"regexp"
)

var (
	styleRe  = regexp.MustCompile(`\.(css|pcss|postcss|scss|sass|styl|stylus|less)($|\?)`)
	scriptRe = regexp.MustCompile(`\.(js|ts)($|\?)`)
)

// Resolve used to map a specifier to a public URL.  It now only logs a
// migration hint and always returns "".
//
// Deprecated: import the asset from the component instead.  Scheduled
// for removal.
func (f *Facade) Resolve(path string) string {
	hint := fmt.Sprintf("This can be replaced with a dynamic import like so: await import(%q)", path)
	switch {
	case styleRe.MatchString(path):
		hint = fmt.Sprintf("It looks like you are resolving styles.  If you are adding a link tag, replace it with an import in the component script:  import %q", path)
	case scriptRe.MatchString(path):
		hint = fmt.Sprintf("It looks like you are resolving scripts.  If you are adding a script tag, replace it with:  "+
			"<script type=\"module\" src={(await import(\"%s?url\")).default}></script>  "+
			"or make it a module:  <script>import MyModule from %q;</script>", path, path)
	}
	f.ctx.log.Warnw(fmt.Sprintf("Resolve() is deprecated.  We see that you are trying to resolve %s.  %s", path, hint),
		"label", "deprecation", "path", path)
	return ""
}

// CanonicalURL returns the request path resolved against the site URL
// (or the request origin when no site is configured).
//
// Deprecated: use URL() and Site() instead:
//
//	canonical := f.Site().ResolveReference(&url.URL{Path: f.URL().Path})
//
// Scheduled for removal.
func (f *Facade) CanonicalURL() *url.URL {
	f.ctx.log.Warnw("CanonicalURL() is deprecated!  Use URL() instead, "+
		"e.g. f.Site().ResolveReference(&url.URL{Path: f.URL().Path})",
		"label", "deprecation")

	ref := &url.URL{Path: f.ctx.url.Path}
	base := f.Site()
	if base == nil {
		base, _ = url.Parse(f.ctx.args.Origin)
	}
	if base == nil {
		return ref
	}
	return base.ResolveReference(ref)
}
